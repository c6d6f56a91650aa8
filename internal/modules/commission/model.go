// README: Commission terms carried on each booking.
package commission

import (
	"time"

	"caravan/internal/types"
)

// DefaultRate is the platform's share of a booking price.
const DefaultRate = 0.10

// Terms is the commission recorded against one booking. Paid only ever
// moves from false to true, and PaidAt keeps the first settlement time.
type Terms struct {
	BookingID  types.ID
	Amount     types.Money
	Percentage float64
	Paid       bool
	PaidAt     *time.Time
}
