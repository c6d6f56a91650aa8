// README: Booking aggregate and status definitions.
package booking

import (
	"time"

	"caravan/internal/modules/commission"
	"caravan/internal/types"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PriceSource records how a booking's price was obtained.
type PriceSource string

const (
	PriceQuoted PriceSource = "quoted"
	PriceAdhoc  PriceSource = "adhoc"
)

type Booking struct {
	ID          types.ID
	Name        string
	Email       string
	Phone       string
	Pickup      string
	Dropoff     string
	PickupDate  time.Time
	PickupTime  string
	Passengers  int
	VehicleID   *int64
	PartnerID   *int64
	Message     string
	Status      Status
	Price       types.Money
	PriceSource PriceSource
	Commission  commission.Terms
	CreatedAt   time.Time
}

const pickupDateLayout = "2006-01-02"

type CreateCommand struct {
	FullName    string   `validate:"required,max=255"`
	Email       string   `validate:"required,email,max=255"`
	Phone       string   `validate:"required,max=20"`
	PickupDate  string   `validate:"required,datetime=2006-01-02"`
	PickupTime  string   `validate:"omitempty,max=20"`
	Pickup      string   `validate:"required,max=255"`
	Dropoff     string   `validate:"required,max=255"`
	Passengers  int      `validate:"min=1"`
	VehicleID   int64    `validate:"gt=0"`
	VehicleType string   `validate:"omitempty,max=100"`
	Message     string   `validate:"omitempty,max=2000"`
	PriceMAD    *float64 `validate:"omitempty,gt=0"`
}

type UpdateCommand struct {
	ID       types.ID `validate:"required"`
	Status   Status   `validate:"required,oneof=pending confirmed completed cancelled"`
	PriceMAD *float64 `validate:"omitempty,gt=0"`
}
