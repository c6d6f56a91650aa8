package pricing

import (
	"context"
	"math/rand"
	"strings"

	"caravan/internal/types"
)

// AdhocStrategy guesses a booking price when no route was quoted. It assumes
// a 10 km trip and is kept only so booking price provenance stays auditable.
// TODO(pricing): drop once booking intake requires a RateQuote or RangeQuote.
type AdhocStrategy struct {
	profiles RateProfiles
	variance bool
	random   func() float64
}

const (
	adhocAssumedKm     = 10
	adhocVarianceSpan  = 0.20
	adhocDefaultAmount = 500.0
)

// adhocTypeTable is keyed by the free-text vehicle type sent at booking time.
var adhocTypeTable = map[string]float64{
	"economy": 300,
	"sedan":   400,
	"suv":     600,
	"van":     700,
	"minibus": 900,
	"luxury":  1200,
}

func NewAdhocStrategy(profiles RateProfiles, variance bool) *AdhocStrategy {
	return &AdhocStrategy{profiles: profiles, variance: variance, random: rand.Float64}
}

// WithRandom replaces the variance source; random must return values in [0, 1).
func (s *AdhocStrategy) WithRandom(random func() float64) *AdhocStrategy {
	s.random = random
	return s
}

// Guess prices from the vehicle's own rate when it has one, otherwise from
// the vehicle-type table.
func (s *AdhocStrategy) Guess(ctx context.Context, in PricingInput, vehicleType string) (AdhocQuote, error) {
	amount, basis := adhocTableAmount(vehicleType), BasisTypeTable
	if in.Kind() == KindByVehicle {
		v, err := s.profiles.Vehicle(ctx, in.ID())
		if err != nil {
			return AdhocQuote{}, err
		}
		if v.PricePerKm > 0 {
			amount, basis = v.PricePerKm*adhocAssumedKm, BasisVehicleRate
		}
	}

	if s.variance {
		amount *= 1 - adhocVarianceSpan/2 + adhocVarianceSpan*s.random()
	}
	return AdhocQuote{
		Price:           types.MADFromFloat(amount),
		Basis:           basis,
		VarianceApplied: s.variance,
	}, nil
}

func adhocTableAmount(vehicleType string) float64 {
	if amount, ok := adhocTypeTable[strings.ToLower(strings.TrimSpace(vehicleType))]; ok {
		return amount
	}
	return adhocDefaultAmount
}
