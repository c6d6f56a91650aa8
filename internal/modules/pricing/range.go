package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"caravan/internal/apperr"
	"caravan/internal/types"
)

const (
	overCapacityMultiplier = 1.30
	bandLow                = 0.9
	bandHigh               = 1.1
)

var validate = validator.New()

type rangeRequest struct {
	VehicleTypeID int64 `validate:"gt=0"`
	Passengers    int   `validate:"min=1"`
}

// RangeStrategy estimates a price band from the straight-line distance and a
// vehicle type's base rate, floor and capacity.
type RangeStrategy struct {
	routes   DistanceResolver
	profiles RateProfiles
}

func NewRangeStrategy(routes DistanceResolver, profiles RateProfiles) *RangeStrategy {
	return &RangeStrategy{routes: routes, profiles: profiles}
}

func (s *RangeStrategy) Quote(ctx context.Context, fromID, toID int64, in PricingInput) (RangeQuote, error) {
	if in.Kind() != KindByType {
		return RangeQuote{}, apperr.Validation("range estimate requires a vehicle type")
	}
	if err := validate.Struct(rangeRequest{VehicleTypeID: in.ID(), Passengers: in.Passengers()}); err != nil {
		return RangeQuote{}, apperr.Validation("invalid estimate request: %s", describe(err))
	}

	vt, err := s.profiles.VehicleType(ctx, in.ID())
	if err != nil {
		return RangeQuote{}, err
	}
	route, err := s.routes.ResolveLocations(ctx, fromID, toID)
	if err != nil {
		return RangeQuote{}, err
	}

	q := estimateRange(route.DistanceKm, vt, in.Passengers())
	q.Route = route.Label()
	return q, nil
}

// estimateRange applies the minimum price first and the over-capacity
// surcharge second, then widens the result to a ±10% band.
func estimateRange(km float64, vt VehicleType, passengers int) RangeQuote {
	final := km * vt.BasePricePerKm
	if final < vt.MinPrice {
		final = vt.MinPrice
	}
	surcharged := passengers > vt.Capacity
	if surcharged {
		final *= overCapacityMultiplier
	}
	return RangeQuote{
		DistanceKm:  types.RoundHalfUp(km, 1),
		Final:       final,
		Min:         int64(types.RoundHalfUp(final*bandLow, 0)),
		Max:         int64(types.RoundHalfUp(final*bandHigh, 0)),
		Currency:    types.CurrencyMAD,
		VehicleType: vt.Name,
		Surcharged:  surcharged,
	}
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s failed %s", verrs[0].Field(), verrs[0].Tag())
	}
	return err.Error()
}
