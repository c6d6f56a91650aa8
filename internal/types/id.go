package types

// ID is an opaque string identifier (bookings use UUIDs).
type ID string

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lng float64
}
