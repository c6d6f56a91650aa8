package pricing

import (
	"context"

	"caravan/internal/apperr"
	"caravan/internal/modules/location"
	"caravan/internal/types"
)

// DistanceResolver is the part of the location service pricing depends on.
type DistanceResolver interface {
	Resolve(ctx context.Context, originID, destinationID int64) (float64, error)
	Location(ctx context.Context, id int64) (location.Location, error)
	ResolveLocations(ctx context.Context, fromID, toID int64) (location.Route, error)
}

// RateProfiles reads the per-km rates a quote is priced against.
type RateProfiles interface {
	Vehicle(ctx context.Context, id int64) (Vehicle, error)
	CategoryAverageRate(ctx context.Context, categoryID int64) (float64, bool, error)
	VehicleType(ctx context.Context, id int64) (VehicleType, error)
	VehicleTypes(ctx context.Context) ([]VehicleType, error)
}

// RateStrategy prices a trip as table distance times a per-km rate.
type RateStrategy struct {
	distances   DistanceResolver
	profiles    RateProfiles
	defaultRate float64
}

func NewRateStrategy(distances DistanceResolver, profiles RateProfiles, defaultRate float64) *RateStrategy {
	if defaultRate <= 0 {
		defaultRate = DefaultRatePerKm
	}
	return &RateStrategy{distances: distances, profiles: profiles, defaultRate: defaultRate}
}

func (s *RateStrategy) Quote(ctx context.Context, originID, destinationID int64, in PricingInput) (RateQuote, error) {
	origin, err := s.distances.Location(ctx, originID)
	if err != nil {
		return RateQuote{}, err
	}
	destination, err := s.distances.Location(ctx, destinationID)
	if err != nil {
		return RateQuote{}, err
	}

	rate, err := s.ratePerKm(ctx, in)
	if err != nil {
		return RateQuote{}, err
	}

	km, err := s.distances.Resolve(ctx, originID, destinationID)
	if err != nil {
		return RateQuote{}, err
	}

	return RateQuote{
		Origin:      origin.Name,
		Destination: destination.Name,
		DistanceKm:  km,
		PricePerKm:  types.RoundHalfUp(rate, 2),
		Total:       rateTotal(km, rate),
	}, nil
}

func (s *RateStrategy) ratePerKm(ctx context.Context, in PricingInput) (float64, error) {
	switch in.Kind() {
	case KindByVehicle:
		v, err := s.profiles.Vehicle(ctx, in.ID())
		if err != nil {
			return 0, err
		}
		return v.PricePerKm, nil
	case KindByCategory:
		avg, ok, err := s.profiles.CategoryAverageRate(ctx, in.ID())
		if err != nil {
			return 0, err
		}
		if !ok {
			return s.defaultRate, nil
		}
		return avg, nil
	case KindDefault:
		return s.defaultRate, nil
	default:
		return 0, apperr.Validation("rate pricing does not accept %s input", in.Kind())
	}
}

// rateTotal rounds distance times rate half-up to the centime.
func rateTotal(km, ratePerKm float64) types.Money {
	return types.MADFromFloat(km * ratePerKm)
}
