package location

import (
	"context"
	"errors"
	"fmt"

	"googlemaps.github.io/maps"

	"caravan/internal/types"
)

var errNoGeocodeResult = errors.New("no geocode result")

// MapsGeocoder looks cities up with the Google Geocoding API. It is only
// used to fill in missing coordinates, never for road distances.
type MapsGeocoder struct {
	client *maps.Client
}

func NewMapsGeocoder(client *maps.Client) *MapsGeocoder {
	return &MapsGeocoder{client: client}
}

func (g *MapsGeocoder) Geocode(ctx context.Context, l Location) (types.Point, error) {
	r := &maps.GeocodingRequest{
		Address: l.Name + ", Morocco",
		Region:  "ma",
	}
	results, err := g.client.Geocode(ctx, r)
	if err != nil {
		return types.Point{}, fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, fmt.Errorf("%s: %w", l.Name, errNoGeocodeResult)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, nil
}
