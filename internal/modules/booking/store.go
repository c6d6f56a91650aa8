// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"caravan/internal/apperr"
	"caravan/internal/types"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const bookingColumns = `
	id, name, email, phone, pickup, dropoff, pickup_date, pickup_time, passengers,
	vehicle_id, partner_id, message, status, price, price_source,
	commission_amount, commission_percentage, commission_paid, commission_paid_at, created_at`

// Create inserts the booking together with its commission terms.
func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (
			id, name, email, phone, pickup, dropoff, pickup_date, pickup_time, passengers,
			vehicle_id, partner_id, message, status, price, price_source,
			commission_amount, commission_percentage, commission_paid, commission_paid_at, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9,
			$10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20
		)`,
		string(b.ID), b.Name, b.Email, b.Phone, b.Pickup, b.Dropoff,
		b.PickupDate.Format(pickupDateLayout), b.PickupTime, b.Passengers,
		b.VehicleID, b.PartnerID, b.Message, string(b.Status), b.Price.Amount, string(b.PriceSource),
		b.Commission.Amount.Amount, b.Commission.Percentage, b.Commission.Paid, b.Commission.PaidAt,
		b.CreatedAt,
	)
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, apperr.NotFound("booking %s not found", id)
	}
	return b, err
}

// Update sets the status and, when price is non-nil, the price together
// with its commission. A settled commission keeps its amount.
func (s *Store) Update(ctx context.Context, id types.ID, status Status, price, fee *types.Money) (Booking, error) {
	var amount, feeAmount *int64
	if price != nil {
		amount = &price.Amount
	}
	if fee != nil {
		feeAmount = &fee.Amount
	}
	row := s.db.QueryRow(ctx, `
		UPDATE bookings
		SET status = $2,
		    price = COALESCE($3, price),
		    price_source = CASE WHEN $3::BIGINT IS NULL THEN price_source ELSE 'quoted' END,
		    commission_amount = CASE
		        WHEN $4::BIGINT IS NULL OR commission_paid THEN commission_amount
		        ELSE $4
		    END
		WHERE id = $1
		RETURNING `+bookingColumns,
		string(id), string(status), amount, feeAmount,
	)
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Booking{}, apperr.NotFound("booking %s not found", id)
	}
	return b, err
}

func scanBooking(row pgx.Row) (Booking, error) {
	var (
		b           Booking
		id          string
		pickupTime  *string
		status      string
		priceSource string
	)
	err := row.Scan(
		&id, &b.Name, &b.Email, &b.Phone, &b.Pickup, &b.Dropoff, &b.PickupDate, &pickupTime, &b.Passengers,
		&b.VehicleID, &b.PartnerID, &b.Message, &status, &b.Price.Amount, &priceSource,
		&b.Commission.Amount.Amount, &b.Commission.Percentage, &b.Commission.Paid, &b.Commission.PaidAt, &b.CreatedAt,
	)
	if err != nil {
		return Booking{}, err
	}
	b.ID = types.ID(id)
	b.Status = Status(status)
	b.PriceSource = PriceSource(priceSource)
	b.Price.Currency = types.CurrencyMAD
	b.Commission.BookingID = b.ID
	b.Commission.Amount.Currency = types.CurrencyMAD
	if pickupTime != nil {
		b.PickupTime = *pickupTime
	}
	return b, nil
}
