// README: Location service resolves travel distances from the table or from coordinates.
package location

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"caravan/internal/apperr"
	"caravan/internal/types"
)

// Source is the read side of the location reference data.
type Source interface {
	Get(ctx context.Context, id int64) (Location, error)
	List(ctx context.Context) ([]Location, error)
	Distance(ctx context.Context, originID, destinationID int64) (float64, bool, error)
}

// Geocoder backfills coordinates for a location seeded without them.
type Geocoder interface {
	Geocode(ctx context.Context, l Location) (types.Point, error)
}

type Service struct {
	source   Source
	geocoder Geocoder
	log      *zap.Logger
}

// NewService builds the resolver. geocoder may be nil, in which case
// locations without coordinates cannot be resolved by coordinates.
func NewService(source Source, geocoder Geocoder, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{source: source, geocoder: geocoder, log: log}
}

// Resolve returns the table distance for the ordered pair, falling back to
// the reverse pair when only that direction was seeded.
func (s *Service) Resolve(ctx context.Context, originID, destinationID int64) (float64, error) {
	if originID <= 0 || destinationID <= 0 {
		return 0, apperr.Validation("city ids must be positive")
	}
	km, ok, err := s.source.Distance(ctx, originID, destinationID)
	if err != nil {
		return 0, fmt.Errorf("lookup distance %d->%d: %w", originID, destinationID, err)
	}
	if ok {
		return km, nil
	}
	km, ok, err = s.source.Distance(ctx, destinationID, originID)
	if err != nil {
		return 0, fmt.Errorf("lookup distance %d->%d: %w", destinationID, originID, err)
	}
	if ok {
		s.log.Debug("distance resolved from reverse pair",
			zap.Int64("origin_id", originID), zap.Int64("destination_id", destinationID))
		return km, nil
	}
	return 0, apperr.ErrRouteNotFound
}

// ResolveByCoordinates is the straight-line distance between two points.
// It underestimates road distance and is only used for range estimates.
func (s *Service) ResolveByCoordinates(lat1, lng1, lat2, lng2 float64) (float64, error) {
	if err := validateCoordinates(lat1, lng1, lat2, lng2); err != nil {
		return 0, err
	}
	return haversineKm(lat1, lng1, lat2, lng2), nil
}

// ResolveLocations loads both cities and measures the straight-line distance
// between them.
func (s *Service) ResolveLocations(ctx context.Context, fromID, toID int64) (Route, error) {
	from, err := s.source.Get(ctx, fromID)
	if err != nil {
		return Route{}, err
	}
	to, err := s.source.Get(ctx, toID)
	if err != nil {
		return Route{}, err
	}

	p1, err := s.point(ctx, from)
	if err != nil {
		return Route{}, err
	}
	p2, err := s.point(ctx, to)
	if err != nil {
		return Route{}, err
	}

	km, err := s.ResolveByCoordinates(p1.Lat, p1.Lng, p2.Lat, p2.Lng)
	if err != nil {
		return Route{}, err
	}
	return Route{From: from, To: to, DistanceKm: km}, nil
}

func (s *Service) point(ctx context.Context, l Location) (types.Point, error) {
	if p, ok := l.Point(); ok {
		return p, nil
	}
	if s.geocoder == nil {
		return types.Point{}, apperr.ErrRouteNotFound
	}
	p, err := s.geocoder.Geocode(ctx, l)
	if err != nil {
		s.log.Warn("geocoding failed", zap.Int64("city_id", l.ID), zap.String("city", l.Name), zap.Error(err))
		return types.Point{}, apperr.ErrRouteNotFound
	}
	return p, nil
}

func (s *Service) Location(ctx context.Context, id int64) (Location, error) {
	return s.source.Get(ctx, id)
}

func (s *Service) Locations(ctx context.Context) ([]Location, error) {
	locs, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cities: %w", err)
	}
	return locs, nil
}
