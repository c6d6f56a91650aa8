// README: Location store backed by PostgreSQL (cities and city_distances).
package location

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"caravan/internal/apperr"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Get(ctx context.Context, id int64) (Location, error) {
	var l Location
	var nameAr *string
	err := s.db.QueryRow(ctx, `
		SELECT id, name, name_ar, latitude, longitude
		FROM cities
		WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name, &nameAr, &l.Latitude, &l.Longitude)
	if errors.Is(err, pgx.ErrNoRows) {
		return Location{}, apperr.NotFound("city %d not found", id)
	}
	if err != nil {
		return Location{}, err
	}
	if nameAr != nil {
		l.NameAr = *nameAr
	}
	return l, nil
}

func (s *Store) List(ctx context.Context) ([]Location, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(name_ar, ''), latitude, longitude
		FROM cities
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Location, error) {
		var l Location
		err := row.Scan(&l.ID, &l.Name, &l.NameAr, &l.Latitude, &l.Longitude)
		return l, err
	})
}

// Distance looks up the directed pair only. ok is false when no row exists.
func (s *Store) Distance(ctx context.Context, originID, destinationID int64) (float64, bool, error) {
	var km float64
	err := s.db.QueryRow(ctx, `
		SELECT distance_km
		FROM city_distances
		WHERE origin_city_id = $1 AND destination_city_id = $2`,
		originID, destinationID,
	).Scan(&km)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return km, true, nil
}

// UpsertLocation inserts or refreshes a city by name and returns its id.
func (s *Store) UpsertLocation(ctx context.Context, l Location) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO cities (name, name_ar, latitude, longitude)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET name_ar = COALESCE(EXCLUDED.name_ar, cities.name_ar),
		    latitude = COALESCE(EXCLUDED.latitude, cities.latitude),
		    longitude = COALESCE(EXCLUDED.longitude, cities.longitude)
		RETURNING id`,
		l.Name, l.NameAr, l.Latitude, l.Longitude,
	).Scan(&id)
	return id, err
}

// SeedRoute writes the pair in both directions in one transaction so the
// table stays symmetric. Only reference-data tooling calls this.
func (s *Store) SeedRoute(ctx context.Context, e DistanceEntry) error {
	if e.DistanceKm < 0 {
		return apperr.Validation("distance must not be negative, got %v", e.DistanceKm)
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		INSERT INTO city_distances (origin_city_id, destination_city_id, distance_km)
		VALUES ($1, $2, $3)
		ON CONFLICT (origin_city_id, destination_city_id) DO UPDATE
		SET distance_km = EXCLUDED.distance_km`
	if _, err := tx.Exec(ctx, q, e.OriginID, e.DestinationID, e.DistanceKm); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, q, e.DestinationID, e.OriginID, e.DistanceKm); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
