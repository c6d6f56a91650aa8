package location

import (
	"math"
	"testing"

	"caravan/internal/apperr"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lng1      float64
		lat2      float64
		lng2      float64
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			lat1:      33.5731, lng1: -7.5898,
			lat2:      33.5731, lng2: -7.5898,
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			// Straight line; the road table value for this pair is 240 km.
			name:      "Marrakech to Casablanca (~219km)",
			lat1:      31.6295, lng1: -7.9811,
			lat2:      33.5731, lng2: -7.5898,
			wantKm:    219.2,
			tolerance: 1.0,
		},
		{
			name:      "Tangier to Tetouan (~45km straight line)",
			lat1:      35.7595, lng1: -5.8340,
			lat2:      35.5889, lng2: -5.3626,
			wantKm:    46,
			tolerance: 5,
		},
		{
			name:      "New York to Los Angeles (~3944km)",
			lat1:      40.7128, lng1: -74.0060,
			lat2:      34.0522, lng2: -118.2437,
			wantKm:    3944,
			tolerance: 50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.lat1, tt.lng1, tt.lat2, tt.lng2)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_BelowRoadTable(t *testing.T) {
	const tableKm = 240.0
	got := haversineKm(31.6295, -7.9811, 33.5731, -7.5898)
	if got > tableKm {
		t.Errorf("straight line %f exceeds road distance %f", got, tableKm)
	}
	if got < tableKm*0.9 {
		t.Errorf("straight line %f more than 10%% under road distance %f", got, tableKm)
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	d1 := haversineKm(31.6295, -7.9811, 34.0331, -5.0003)
	d2 := haversineKm(34.0331, -5.0003, 31.6295, -7.9811)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestHaversineKm_Antipodal(t *testing.T) {
	got := haversineKm(0, 0, 0, 180)
	want := math.Pi * earthRadiusKm
	if math.IsNaN(got) || math.Abs(got-want) > 0.01 {
		t.Errorf("haversineKm(antipodal) = %f, want %f", got, want)
	}
}

func TestValidateCoordinates(t *testing.T) {
	valid := [][4]float64{
		{31.6295, -7.9811, 33.5731, -7.5898},
		{90, 180, -90, -180},
		{0, 0, 0, 0},
	}
	for _, c := range valid {
		if err := validateCoordinates(c[0], c[1], c[2], c[3]); err != nil {
			t.Errorf("validateCoordinates(%v) unexpected error: %v", c, err)
		}
	}

	invalid := [][4]float64{
		{91, 0, 0, 0},
		{0, 181, 0, 0},
		{0, 0, -90.5, 0},
		{math.NaN(), 0, 0, 0},
		{0, math.Inf(1), 0, 0},
	}
	for _, c := range invalid {
		err := validateCoordinates(c[0], c[1], c[2], c[3])
		if apperr.KindOf(err) != apperr.KindValidation {
			t.Errorf("validateCoordinates(%v) = %v, want validation error", c, err)
		}
	}
}
