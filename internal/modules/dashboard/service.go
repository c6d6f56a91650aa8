// README: Dashboard aggregator assembles the admin snapshot for a period.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"caravan/internal/clock"
	"caravan/internal/types"
)

const recentBookingsLimit = 10

type FigureStore interface {
	BookingFigures(ctx context.Context, since time.Time) (BookingFigures, error)
	FleetFigures(ctx context.Context) (FleetFigures, error)
	TopPartner(ctx context.Context) (*PartnerRanking, error)
	RecentBookings(ctx context.Context, limit int) ([]RecentBooking, error)
}

// Ledger supplies the commission sums recorded on bookings.
type Ledger interface {
	OutstandingTotal(ctx context.Context) (types.Money, error)
	EarnedTotal(ctx context.Context, since time.Time) (types.Money, error)
}

type Aggregator struct {
	store  FigureStore
	ledger Ledger
	rate   float64
	clock  clock.Clock
	log    *zap.Logger
}

func NewAggregator(store FigureStore, ledger Ledger, rate float64, clk clock.Clock, log *zap.Logger) *Aggregator {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Aggregator{store: store, ledger: ledger, rate: rate, clock: clk, log: log}
}

// Stats reports period figures alongside all-time totals. Period commission
// is revenue times the platform rate; the ledger sum is reported next to it
// and CommissionDrift is their difference.
func (a *Aggregator) Stats(ctx context.Context, period Period) (Snapshot, error) {
	since := period.Start(a.clock.Now())

	bf, err := a.store.BookingFigures(ctx, since)
	if err != nil {
		return Snapshot{}, fmt.Errorf("booking figures: %w", err)
	}
	ff, err := a.store.FleetFigures(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fleet figures: %w", err)
	}
	unpaid, err := a.ledger.OutstandingTotal(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	earned, err := a.ledger.EarnedTotal(ctx, since)
	if err != nil {
		return Snapshot{}, err
	}
	top, err := a.store.TopPartner(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("top partner: %w", err)
	}
	recent, err := a.store.RecentBookings(ctx, recentBookingsLimit)
	if err != nil {
		return Snapshot{}, fmt.Errorf("recent bookings: %w", err)
	}

	revenue := types.MAD(bf.PeriodRevenue)
	derived := revenue.MulRate(a.rate)
	drift := derived.Sub(earned)
	if drift.Amount != 0 {
		a.log.Warn("period commission differs from ledger",
			zap.String("period", string(period)),
			zap.Int64("derived_centimes", derived.Amount),
			zap.Int64("ledger_centimes", earned.Amount))
	}

	return Snapshot{
		Period:           period,
		PeriodStart:      since,
		TotalBookings:    bf.TotalBookings,
		PeriodBookings:   bf.PeriodBookings,
		PeriodRevenue:    revenue,
		PeriodCommission: derived,
		LedgerCommission: earned,
		CommissionDrift:  drift,
		UnpaidCommission: unpaid,
		TopPartner:       top,
		RecentBookings:   recent,
		FleetFigures:     ff,
	}, nil
}
