package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caravan/internal/apperr"
)

func TestAdhocStrategy_WithoutVariance(t *testing.T) {
	_, profiles := fixtures()
	s := NewAdhocStrategy(profiles, false)
	ctx := context.Background()

	q, err := s.Guess(ctx, ByVehicle(11), "")
	require.NoError(t, err)
	assert.Equal(t, int64(8000), q.Price.Amount)
	assert.Equal(t, BasisVehicleRate, q.Basis)
	assert.False(t, q.VarianceApplied)

	q, err = s.Guess(ctx, Default(), " Minibus ")
	require.NoError(t, err)
	assert.Equal(t, int64(90000), q.Price.Amount)
	assert.Equal(t, BasisTypeTable, q.Basis)

	q, err = s.Guess(ctx, Default(), "hovercraft")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), q.Price.Amount)

	_, err = s.Guess(ctx, ByVehicle(99), "")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAdhocStrategy_ZeroRateVehicleUsesTypeTable(t *testing.T) {
	_, profiles := fixtures()
	profiles.vehicles[12] = Vehicle{ID: 12, Name: "Toyota Land Cruiser", Capacity: 5, PricePerKm: 0, IsApproved: true}
	s := NewAdhocStrategy(profiles, false)

	q, err := s.Guess(context.Background(), ByVehicle(12), "suv")
	require.NoError(t, err)
	assert.Equal(t, int64(60000), q.Price.Amount)
	assert.Equal(t, BasisTypeTable, q.Basis)

	q, err = s.Guess(context.Background(), ByVehicle(12), "")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), q.Price.Amount)
	assert.Equal(t, BasisTypeTable, q.Basis)
}

func TestAdhocStrategy_VarianceStaysWithinTenPercent(t *testing.T) {
	_, profiles := fixtures()

	tests := []struct {
		random float64
		want   int64
	}{
		{0, 27000},
		{0.5, 30000},
		{0.75, 31500},
		{0.999999, 33000},
	}
	for _, tt := range tests {
		s := NewAdhocStrategy(profiles, true).WithRandom(func() float64 { return tt.random })
		q, err := s.Guess(context.Background(), Default(), "economy")
		require.NoError(t, err)
		assert.True(t, q.VarianceApplied)
		assert.Equal(t, tt.want, q.Price.Amount, "random=%v", tt.random)
		assert.GreaterOrEqual(t, q.Price.Amount, int64(27000))
		assert.LessOrEqual(t, q.Price.Amount, int64(33000))
	}
}
