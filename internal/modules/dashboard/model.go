// README: Admin dashboard figures for a reporting period.
package dashboard

import (
	"strings"
	"time"

	"caravan/internal/apperr"
	"caravan/internal/types"
)

type Period string

const (
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// ParsePeriod accepts "month" or "year"; empty means month.
func ParsePeriod(raw string) (Period, error) {
	switch Period(strings.ToLower(strings.TrimSpace(raw))) {
	case "", PeriodMonth:
		return PeriodMonth, nil
	case PeriodYear:
		return PeriodYear, nil
	default:
		return "", apperr.Validation("period must be month or year, got %q", raw)
	}
}

// Start is the first instant of the period containing now, in now's location.
func (p Period) Start(now time.Time) time.Time {
	if p == PeriodYear {
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	}
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}

// BookingFigures are the booking aggregates for one period.
type BookingFigures struct {
	TotalBookings  int64
	PeriodBookings int64
	PeriodRevenue  int64
}

type FleetFigures struct {
	TotalPartners   int64
	PendingPartners int64
	TotalVehicles   int64
	PendingVehicles int64
}

// PartnerRanking ranks partners by how many vehicles they list. It stands in
// for a booking-based ranking.
type PartnerRanking struct {
	PartnerID    int64
	Name         string
	CompanyName  string
	VehicleCount int64
}

type RecentBooking struct {
	ID             types.ID
	Name           string
	Pickup         string
	Dropoff        string
	Status         string
	Price          types.Money
	Commission     types.Money
	CommissionPaid bool
	CreatedAt      time.Time
}

type Snapshot struct {
	Period           Period
	PeriodStart      time.Time
	TotalBookings    int64
	PeriodBookings   int64
	PeriodRevenue    types.Money
	PeriodCommission types.Money
	LedgerCommission types.Money
	CommissionDrift  types.Money
	UnpaidCommission types.Money
	TopPartner       *PartnerRanking
	RecentBookings   []RecentBooking
	FleetFigures
}
