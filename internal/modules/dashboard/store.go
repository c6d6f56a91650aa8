// README: Dashboard store computes every figure as a single aggregate query.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"caravan/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) BookingFigures(ctx context.Context, since time.Time) (BookingFigures, error) {
	var f BookingFigures
	err := s.db.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE created_at >= $1),
		       COALESCE(SUM(price) FILTER (WHERE created_at >= $1), 0)::BIGINT
		FROM bookings`, since,
	).Scan(&f.TotalBookings, &f.PeriodBookings, &f.PeriodRevenue)
	return f, err
}

func (s *Store) FleetFigures(ctx context.Context) (FleetFigures, error) {
	var f FleetFigures
	err := s.db.QueryRow(ctx, `
		SELECT (SELECT COUNT(*) FROM partners),
		       (SELECT COUNT(*) FROM partners WHERE NOT is_approved),
		       (SELECT COUNT(*) FROM vehicles),
		       (SELECT COUNT(*) FROM vehicles WHERE NOT is_approved)`,
	).Scan(&f.TotalPartners, &f.PendingPartners, &f.TotalVehicles, &f.PendingVehicles)
	return f, err
}

// TopPartner returns the approved partner with the most vehicles, lowest id
// first on ties, or nil when no partner is approved.
func (s *Store) TopPartner(ctx context.Context) (*PartnerRanking, error) {
	var r PartnerRanking
	var company *string
	err := s.db.QueryRow(ctx, `
		SELECT p.id, p.name, p.company_name, COUNT(v.id)
		FROM partners p
		LEFT JOIN vehicles v ON v.partner_id = p.id
		WHERE p.is_approved
		GROUP BY p.id
		ORDER BY COUNT(v.id) DESC, p.id ASC
		LIMIT 1`,
	).Scan(&r.PartnerID, &r.Name, &company, &r.VehicleCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if company != nil {
		r.CompanyName = *company
	}
	return &r, nil
}

func (s *Store) RecentBookings(ctx context.Context, limit int) ([]RecentBooking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, pickup, dropoff, status, price, commission_amount, commission_paid, created_at
		FROM bookings
		ORDER BY created_at DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (RecentBooking, error) {
		var b RecentBooking
		var id string
		err := row.Scan(&id, &b.Name, &b.Pickup, &b.Dropoff, &b.Status,
			&b.Price.Amount, &b.Commission.Amount, &b.CommissionPaid, &b.CreatedAt)
		b.ID = types.ID(id)
		b.Price.Currency = types.CurrencyMAD
		b.Commission.Currency = types.CurrencyMAD
		return b, err
	})
}
