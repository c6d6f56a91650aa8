// README: Commission ledger derives, settles and totals booking commissions.
package commission

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"caravan/internal/apperr"
	"caravan/internal/clock"
	"caravan/internal/types"
)

type LedgerStore interface {
	MarkPaid(ctx context.Context, id types.ID, at time.Time) (Terms, error)
	Get(ctx context.Context, id types.ID) (Terms, error)
	OutstandingTotal(ctx context.Context) (int64, error)
	EarnedTotal(ctx context.Context, since time.Time) (int64, error)
}

type Ledger struct {
	store LedgerStore
	rate  float64
	clock clock.Clock
	log   *zap.Logger
}

func NewLedger(store LedgerStore, rate float64, clk clock.Clock, log *zap.Logger) *Ledger {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Ledger{store: store, rate: rate, clock: clk, log: log}
}

// Rate is the percentage applied when none is given.
func (l *Ledger) Rate() float64 { return l.rate }

// Derive computes unsettled terms for a price without persisting them. The
// booking store writes them in the same statement as the price.
func (l *Ledger) Derive(id types.ID, price types.Money, percentage float64) (Terms, error) {
	if !price.IsPositive() {
		return Terms{}, apperr.Validation("price must be positive")
	}
	if percentage < 0 || percentage > 1 {
		return Terms{}, apperr.Validation("commission percentage must be within [0, 1], got %v", percentage)
	}
	return Terms{
		BookingID:  id,
		Amount:     price.MulRate(percentage),
		Percentage: percentage,
	}, nil
}

// MarkPaid settles a booking's commission. Calling it again is a no-op that
// keeps the original settlement time.
func (l *Ledger) MarkPaid(ctx context.Context, id types.ID) (Terms, error) {
	if id == "" {
		return Terms{}, apperr.Validation("booking id is required")
	}
	t, err := l.store.MarkPaid(ctx, id, l.clock.Now().UTC())
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return Terms{}, err
		}
		return Terms{}, fmt.Errorf("mark commission paid for %s: %w", id, err)
	}
	l.log.Info("commission marked paid", zap.String("booking_id", string(id)), zap.Timep("paid_at", t.PaidAt))
	return t, nil
}

func (l *Ledger) Terms(ctx context.Context, id types.ID) (Terms, error) {
	if id == "" {
		return Terms{}, apperr.Validation("booking id is required")
	}
	t, err := l.store.Get(ctx, id)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return Terms{}, err
		}
		return Terms{}, fmt.Errorf("load commission for %s: %w", id, err)
	}
	return t, nil
}

// OutstandingTotal sums every unsettled commission, across all time.
func (l *Ledger) OutstandingTotal(ctx context.Context) (types.Money, error) {
	total, err := l.store.OutstandingTotal(ctx)
	if err != nil {
		return types.Money{}, fmt.Errorf("sum outstanding commissions: %w", err)
	}
	return types.MAD(total), nil
}

// EarnedTotal sums commission on bookings created at or after since.
func (l *Ledger) EarnedTotal(ctx context.Context, since time.Time) (types.Money, error) {
	total, err := l.store.EarnedTotal(ctx, since)
	if err != nil {
		return types.Money{}, fmt.Errorf("sum earned commissions: %w", err)
	}
	return types.MAD(total), nil
}
