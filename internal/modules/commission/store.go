// README: Commission store reads and writes commission columns on bookings.
package commission

import (
	"context"
	"errors"
	"time"

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

const termsColumns = `id, commission_amount, commission_percentage, commission_paid, commission_paid_at`

func scanTerms(row pgx.Row, id types.ID) (Terms, error) {
	var t Terms
	var bookingID string
	err := row.Scan(&bookingID, &t.Amount.Amount, &t.Percentage, &t.Paid, &t.PaidAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Terms{}, apperr.NotFound("booking %s not found", id)
	}
	if err != nil {
		return Terms{}, err
	}
	t.BookingID = types.ID(bookingID)
	t.Amount.Currency = types.CurrencyMAD
	return t, nil
}

// MarkPaid settles the commission. The first settlement time is kept on
// repeated calls.
func (s *Store) MarkPaid(ctx context.Context, id types.ID, at time.Time) (Terms, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE bookings
		SET commission_paid = TRUE,
		    commission_paid_at = COALESCE(commission_paid_at, $2)
		WHERE id = $1
		RETURNING `+termsColumns,
		string(id), at,
	)
	return scanTerms(row, id)
}

func (s *Store) Get(ctx context.Context, id types.ID) (Terms, error) {
	row := s.db.QueryRow(ctx, `SELECT `+termsColumns+` FROM bookings WHERE id = $1`, string(id))
	return scanTerms(row, id)
}

func (s *Store) OutstandingTotal(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(commission_amount), 0)::BIGINT
		FROM bookings
		WHERE NOT commission_paid`,
	).Scan(&total)
	return total, err
}

func (s *Store) EarnedTotal(ctx context.Context, since time.Time) (int64, error) {
	var total int64
	err := s.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(commission_amount), 0)::BIGINT
		FROM bookings
		WHERE created_at >= $1`, since,
	).Scan(&total)
	return total, err
}
