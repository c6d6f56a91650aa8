// README: Pure geographic computation helpers (haversine).
package location

import (
	"math"

	"github.com/go-playground/validator/v10"

	"caravan/internal/apperr"
)

const earthRadiusKm = 6371.0

var validate = validator.New()

type coordinatePair struct {
	Lat1 float64 `validate:"latitude"`
	Lng1 float64 `validate:"longitude"`
	Lat2 float64 `validate:"latitude"`
	Lng2 float64 `validate:"longitude"`
}

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees. This is a straight-line
// approximation; it ignores road topology and always underestimates the
// driving distance.
func haversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := degreesToRadians(lat2 - lat1)
	dLng := degreesToRadians(lng2 - lng1)

	rLat1 := degreesToRadians(lat1)
	rLat2 := degreesToRadians(lat2)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// a can drift a hair above 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// validateCoordinates rejects NaN, infinities and out-of-range degrees.
func validateCoordinates(lat1, lng1, lat2, lng2 float64) error {
	if err := validate.Struct(coordinatePair{Lat1: lat1, Lng1: lng1, Lat2: lat2, Lng2: lng2}); err != nil {
		return apperr.Validation("malformed coordinates (%v,%v) -> (%v,%v)", lat1, lng1, lat2, lng2)
	}
	return nil
}
