// README: Pricing store reads rate profiles (vehicles, categories, vehicle types) from PostgreSQL.
package pricing

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

func (s *Store) Vehicle(ctx context.Context, id int64) (Vehicle, error) {
	var v Vehicle
	err := s.db.QueryRow(ctx, `
		SELECT id, partner_id, category_id, name, capacity, price_per_km, is_approved
		FROM vehicles
		WHERE id = $1`, id,
	).Scan(&v.ID, &v.PartnerID, &v.CategoryID, &v.Name, &v.Capacity, &v.PricePerKm, &v.IsApproved)
	if errors.Is(err, pgx.ErrNoRows) {
		return Vehicle{}, apperr.NotFound("vehicle %d not found", id)
	}
	return v, err
}

// CategoryAverageRate averages price_per_km over approved vehicles in the
// category. ok is false when the category has no approved vehicle.
func (s *Store) CategoryAverageRate(ctx context.Context, categoryID int64) (float64, bool, error) {
	var exists bool
	var avg *float64
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM vehicle_categories WHERE id = $1),
		       (SELECT AVG(price_per_km) FROM vehicles WHERE category_id = $1 AND is_approved)`,
		categoryID,
	).Scan(&exists, &avg)
	if err != nil {
		return 0, false, err
	}
	if !exists {
		return 0, false, apperr.NotFound("vehicle category %d not found", categoryID)
	}
	if avg == nil {
		return 0, false, nil
	}
	return *avg, true, nil
}

func (s *Store) VehicleType(ctx context.Context, id int64) (VehicleType, error) {
	var vt VehicleType
	err := s.db.QueryRow(ctx, `
		SELECT id, name, COALESCE(name_ar, ''), capacity, base_price_per_km, min_price
		FROM vehicle_types
		WHERE id = $1`, id,
	).Scan(&vt.ID, &vt.Name, &vt.NameAr, &vt.Capacity, &vt.BasePricePerKm, &vt.MinPrice)
	if errors.Is(err, pgx.ErrNoRows) {
		return VehicleType{}, apperr.NotFound("vehicle type %d not found", id)
	}
	return vt, err
}

func (s *Store) VehicleTypes(ctx context.Context) ([]VehicleType, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, COALESCE(name_ar, ''), capacity, base_price_per_km, min_price
		FROM vehicle_types
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (VehicleType, error) {
		var vt VehicleType
		err := row.Scan(&vt.ID, &vt.Name, &vt.NameAr, &vt.Capacity, &vt.BasePricePerKm, &vt.MinPrice)
		return vt, err
	})
}

// UpsertVehicleType is used by the seeder.
func (s *Store) UpsertVehicleType(ctx context.Context, vt VehicleType) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO vehicle_types (name, name_ar, capacity, base_price_per_km, min_price)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET name_ar = EXCLUDED.name_ar,
		    capacity = EXCLUDED.capacity,
		    base_price_per_km = EXCLUDED.base_price_per_km,
		    min_price = EXCLUDED.min_price
		RETURNING id`,
		vt.Name, vt.NameAr, vt.Capacity, vt.BasePricePerKm, vt.MinPrice,
	).Scan(&id)
	return id, err
}

// UpsertCategory is used by the seeder.
func (s *Store) UpsertCategory(ctx context.Context, name, description string, multiplier float64) (int64, error) {
	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO vehicle_categories (name, description, price_multiplier)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE
		SET description = EXCLUDED.description, price_multiplier = EXCLUDED.price_multiplier
		RETURNING id`,
		name, description, multiplier,
	).Scan(&id)
	return id, err
}
