package pricing

import (
	"context"

	"caravan/internal/apperr"
	"caravan/internal/modules/location"
)

type fakeDistances struct {
	cities map[int64]location.Location
	table  map[[2]int64]float64
	routes map[[2]int64]float64
}

func (f *fakeDistances) Location(_ context.Context, id int64) (location.Location, error) {
	l, ok := f.cities[id]
	if !ok {
		return location.Location{}, apperr.NotFound("city %d not found", id)
	}
	return l, nil
}

func (f *fakeDistances) Resolve(_ context.Context, o, d int64) (float64, error) {
	if km, ok := f.table[[2]int64{o, d}]; ok {
		return km, nil
	}
	if km, ok := f.table[[2]int64{d, o}]; ok {
		return km, nil
	}
	return 0, apperr.ErrRouteNotFound
}

func (f *fakeDistances) ResolveLocations(ctx context.Context, from, to int64) (location.Route, error) {
	a, err := f.Location(ctx, from)
	if err != nil {
		return location.Route{}, err
	}
	b, err := f.Location(ctx, to)
	if err != nil {
		return location.Route{}, err
	}
	km, ok := f.routes[[2]int64{from, to}]
	if !ok {
		return location.Route{}, apperr.ErrRouteNotFound
	}
	return location.Route{From: a, To: b, DistanceKm: km}, nil
}

type fakeProfiles struct {
	vehicles   map[int64]Vehicle
	categories map[int64][]Vehicle
	types      map[int64]VehicleType
}

func (f *fakeProfiles) Vehicle(_ context.Context, id int64) (Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return Vehicle{}, apperr.NotFound("vehicle %d not found", id)
	}
	return v, nil
}

func (f *fakeProfiles) CategoryAverageRate(_ context.Context, id int64) (float64, bool, error) {
	vs, ok := f.categories[id]
	if !ok {
		return 0, false, apperr.NotFound("vehicle category %d not found", id)
	}
	var sum float64
	var n int
	for _, v := range vs {
		if v.IsApproved {
			sum += v.PricePerKm
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}

func (f *fakeProfiles) VehicleType(_ context.Context, id int64) (VehicleType, error) {
	vt, ok := f.types[id]
	if !ok {
		return VehicleType{}, apperr.NotFound("vehicle type %d not found", id)
	}
	return vt, nil
}

func (f *fakeProfiles) VehicleTypes(_ context.Context) ([]VehicleType, error) {
	out := make([]VehicleType, 0, len(f.types))
	for _, vt := range f.types {
		out = append(out, vt)
	}
	return out, nil
}

const (
	casablanca int64 = 1
	marrakech  int64 = 2
	ouarzazate int64 = 3
	essaouira  int64 = 4
)

func fixtures() (*fakeDistances, *fakeProfiles) {
	d := &fakeDistances{
		cities: map[int64]location.Location{
			casablanca: {ID: casablanca, Name: "Casablanca"},
			marrakech:  {ID: marrakech, Name: "Marrakech"},
			ouarzazate: {ID: ouarzazate, Name: "Ouarzazate"},
			essaouira:  {ID: essaouira, Name: "Essaouira"},
		},
		table: map[[2]int64]float64{
			{casablanca, marrakech}: 240,
			{marrakech, casablanca}: 240,
		},
		routes: map[[2]int64]float64{
			{marrakech, casablanca}: 219.23,
			{marrakech, essaouira}:  50,
		},
	}
	p := &fakeProfiles{
		vehicles: map[int64]Vehicle{
			10: {ID: 10, Name: "Dacia Logan", Capacity: 4, PricePerKm: 5.00, IsApproved: true},
			11: {ID: 11, Name: "Mercedes Vito", Capacity: 7, PricePerKm: 8.00, IsApproved: true},
		},
		categories: map[int64][]Vehicle{
			1: {
				{PricePerKm: 4.0, IsApproved: true},
				{PricePerKm: 5.5, IsApproved: true},
				{PricePerKm: 20, IsApproved: false},
			},
			2: {{PricePerKm: 9, IsApproved: false}},
		},
		types: map[int64]VehicleType{
			1: {ID: 1, Name: "Economy Car", Capacity: 4, BasePricePerKm: 5.0, MinPrice: 150},
			2: {ID: 2, Name: "Compact Van", Capacity: 4, BasePricePerKm: 8.0, MinPrice: 250},
		},
	}
	return d, p
}
