// README: Location reference data and the precomputed distance table.
package location

import "caravan/internal/types"

// Location is a supported city. Coordinates are optional; cities seeded
// without them can only be priced through the distance table.
type Location struct {
	ID        int64
	Name      string
	NameAr    string
	Latitude  *float64
	Longitude *float64
}

// Point returns the location's coordinates, if both are known.
func (l Location) Point() (types.Point, bool) {
	if l.Latitude == nil || l.Longitude == nil {
		return types.Point{}, false
	}
	return types.Point{Lat: *l.Latitude, Lng: *l.Longitude}, true
}

// DistanceEntry is one directed row of the distance table.
type DistanceEntry struct {
	OriginID      int64
	DestinationID int64
	DistanceKm    float64
}

// Route is a resolved pair of locations with the distance between them.
type Route struct {
	From       Location
	To         Location
	DistanceKm float64
}

// Label renders the route the way it is shown to travellers ("A → B").
func (r Route) Label() string {
	return r.From.Name + " → " + r.To.Name
}
