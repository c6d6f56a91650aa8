// README: Pricing service is the fare estimator facade over the three pricing strategies.
package pricing

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"caravan/internal/config"
)

type Service struct {
	profiles RateProfiles
	rate     *RateStrategy
	rng      *RangeStrategy
	adhoc    *AdhocStrategy
	log      *zap.Logger
}

func NewService(distances DistanceResolver, profiles RateProfiles, cfg config.PricingConfig, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		profiles: profiles,
		rate:     NewRateStrategy(distances, profiles, cfg.DefaultRatePerKm),
		rng:      NewRangeStrategy(distances, profiles),
		adhoc:    NewAdhocStrategy(profiles, cfg.AdhocVarianceEnabled),
		log:      log,
	}
}

// Calculate prices a trip from the distance table.
func (s *Service) Calculate(ctx context.Context, originID, destinationID int64, in PricingInput) (RateQuote, error) {
	q, err := s.rate.Quote(ctx, originID, destinationID, in)
	if err != nil {
		return RateQuote{}, err
	}
	s.log.Debug("rate quote",
		zap.Int64("origin_id", originID),
		zap.Int64("destination_id", destinationID),
		zap.Stringer("input", in.Kind()),
		zap.Float64("distance_km", q.DistanceKm),
		zap.Int64("total_centimes", q.Total.Amount))
	return q, nil
}

// EstimateRange prices a trip from coordinates and returns a band.
func (s *Service) EstimateRange(ctx context.Context, fromID, toID int64, in PricingInput) (RangeQuote, error) {
	return s.rng.Quote(ctx, fromID, toID, in)
}

// Guess is the booking-time fallback used when a booking arrives without a price.
func (s *Service) Guess(ctx context.Context, in PricingInput, vehicleType string) (AdhocQuote, error) {
	q, err := s.adhoc.Guess(ctx, in, vehicleType)
	if err != nil {
		return AdhocQuote{}, err
	}
	s.log.Info("adhoc booking price used",
		zap.String("basis", string(q.Basis)),
		zap.Bool("variance", q.VarianceApplied),
		zap.Int64("price_centimes", q.Price.Amount))
	return q, nil
}

func (s *Service) Vehicle(ctx context.Context, id int64) (Vehicle, error) {
	return s.profiles.Vehicle(ctx, id)
}

func (s *Service) VehicleTypes(ctx context.Context) ([]VehicleType, error) {
	vts, err := s.profiles.VehicleTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list vehicle types: %w", err)
	}
	return vts, nil
}
