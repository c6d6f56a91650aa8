// Package testdb opens the Postgres database used by store tests.
package testdb

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"caravan/internal/infra"
)

// Open connects to CARAVAN_TEST_DSN, applies migrations and empties every
// table. The test is skipped when the variable is not set.
func Open(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("CARAVAN_TEST_DSN")
	if dsn == "" {
		t.Skip("CARAVAN_TEST_DSN not set; skipping DB-backed test")
	}

	ctx := context.Background()
	db, err := infra.NewDB(ctx, dsn)
	require.NoError(t, err, "connect db")
	t.Cleanup(db.Close)

	dir, err := infra.FindMigrationsDir()
	require.NoError(t, err, "locate migrations")
	require.NoError(t, infra.ApplyMigrations(ctx, db, dir), "apply migrations")
	_, err = db.Exec(ctx, `TRUNCATE TABLE bookings, vehicles, partners, vehicle_categories,
		vehicle_types, city_distances, cities RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "truncate tables")
	return db
}
