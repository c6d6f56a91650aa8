// README: Route-level tests for pricing, booking and admin endpoints.
package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"caravan/internal/apperr"
	caravanhttp "caravan/internal/http"
	"caravan/internal/infra"
	"caravan/internal/modules/booking"
	"caravan/internal/modules/commission"
	"caravan/internal/modules/dashboard"
	"caravan/internal/modules/location"
	"caravan/internal/modules/pricing"
	"caravan/internal/types"
)

type mockPricing struct{ mock.Mock }

func (m *mockPricing) Calculate(ctx context.Context, o, d int64, in pricing.PricingInput) (pricing.RateQuote, error) {
	args := m.Called(ctx, o, d, in)
	return args.Get(0).(pricing.RateQuote), args.Error(1)
}

func (m *mockPricing) EstimateRange(ctx context.Context, from, to int64, in pricing.PricingInput) (pricing.RangeQuote, error) {
	args := m.Called(ctx, from, to, in)
	return args.Get(0).(pricing.RangeQuote), args.Error(1)
}

func (m *mockPricing) VehicleTypes(ctx context.Context) ([]pricing.VehicleType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]pricing.VehicleType), args.Error(1)
}

type mockLocations struct{ mock.Mock }

func (m *mockLocations) Locations(ctx context.Context) ([]location.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]location.Location), args.Error(1)
}

type mockBookings struct{ mock.Mock }

func (m *mockBookings) Create(ctx context.Context, cmd booking.CreateCommand) (booking.Booking, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(booking.Booking), args.Error(1)
}

func (m *mockBookings) Update(ctx context.Context, cmd booking.UpdateCommand) (booking.Booking, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(booking.Booking), args.Error(1)
}

type mockDashboard struct{ mock.Mock }

func (m *mockDashboard) Stats(ctx context.Context, p dashboard.Period) (dashboard.Snapshot, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(dashboard.Snapshot), args.Error(1)
}

type mockCommissions struct{ mock.Mock }

func (m *mockCommissions) MarkPaid(ctx context.Context, id types.ID) (commission.Terms, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(commission.Terms), args.Error(1)
}

func (m *mockCommissions) Terms(ctx context.Context, id types.ID) (commission.Terms, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(commission.Terms), args.Error(1)
}

type stubVerifier struct {
	token *infra.Token
	err   error
}

func (s *stubVerifier) VerifyToken(context.Context, string) (*infra.Token, error) {
	return s.token, s.err
}

type fixture struct {
	router      *gin.Engine
	pricing     *mockPricing
	locations   *mockLocations
	bookings    *mockBookings
	dashboard   *mockDashboard
	commissions *mockCommissions
}

func newFixture(role string) *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		pricing:     new(mockPricing),
		locations:   new(mockLocations),
		bookings:    new(mockBookings),
		dashboard:   new(mockDashboard),
		commissions: new(mockCommissions),
	}
	srv := caravanhttp.NewServer(caravanhttp.ServerDeps{
		Pricing:     f.pricing,
		Locations:   f.locations,
		Bookings:    f.bookings,
		Dashboard:   f.dashboard,
		Commissions: f.commissions,
		Verifier:    &stubVerifier{token: &infra.Token{UID: "ops1", Role: role}},
	})
	f.router = srv.Routes()
	return f
}

func (f *fixture) do(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	f := newFixture("")
	w := f.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCalculatePrice(t *testing.T) {
	f := newFixture("")
	f.pricing.On("Calculate", mock.Anything, int64(1), int64(2), pricing.ByVehicle(10)).Return(pricing.RateQuote{
		Origin: "Casablanca", Destination: "Marrakech", DistanceKm: 240, PricePerKm: 5, Total: types.MAD(120000),
	}, nil)

	w := f.do(http.MethodPost, "/api/calculate-price", map[string]any{
		"origin_city_id": 1, "destination_city_id": 2, "vehicle_id": 10, "category_id": 3,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"origin": "Casablanca",
		"destination": "Marrakech",
		"distance_km": 240,
		"price_per_km": 5,
		"total_price": 1200,
		"currency": "MAD"
	}`, w.Body.String())
}

func TestCalculatePrice_CategoryAndDefaultInputs(t *testing.T) {
	f := newFixture("")
	f.pricing.On("Calculate", mock.Anything, int64(1), int64(2), pricing.ByCategory(3)).
		Return(pricing.RateQuote{Total: types.MAD(1)}, nil).Once()
	f.pricing.On("Calculate", mock.Anything, int64(1), int64(2), pricing.Default()).
		Return(pricing.RateQuote{Total: types.MAD(1)}, nil).Once()

	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/calculate-price",
		map[string]any{"origin_city_id": 1, "destination_city_id": 2, "category_id": 3}).Code)
	assert.Equal(t, http.StatusOK, f.do(http.MethodPost, "/api/calculate-price",
		map[string]any{"origin_city_id": 1, "destination_city_id": 2}).Code)
	f.pricing.AssertExpectations(t)
}

func TestCalculatePrice_Errors(t *testing.T) {
	f := newFixture("")
	f.pricing.On("Calculate", mock.Anything, int64(1), int64(9), mock.Anything).Return(pricing.RateQuote{}, apperr.ErrRouteNotFound)
	f.pricing.On("Calculate", mock.Anything, int64(1), int64(8), mock.Anything).Return(pricing.RateQuote{}, errors.New("pool closed"))

	w := f.do(http.MethodPost, "/api/calculate-price", map[string]any{"origin_city_id": 1, "destination_city_id": 9})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"No route found between these cities"}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/calculate-price", map[string]any{"origin_city_id": 1, "destination_city_id": 8})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/calculate-price", map[string]any{"origin_city_id": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEstimatePrice(t *testing.T) {
	f := newFixture("")
	f.pricing.On("EstimateRange", mock.Anything, int64(2), int64(1), pricing.ByType(4, 6)).Return(pricing.RangeQuote{
		DistanceKm: 50, Min: 468, Max: 572, Currency: "MAD", VehicleType: "Compact Van", Route: "Marrakech → Casablanca",
	}, nil)

	w := f.do(http.MethodPost, "/api/estimate-price", map[string]any{
		"from_city_id": 2, "to_city_id": 1, "vehicle_type_id": 4, "passengers": 6,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"distance_km": 50,
		"estimated_price": {"min": 468, "max": 572, "currency": "MAD"},
		"vehicle_type": "Compact Van",
		"route": "Marrakech → Casablanca"
	}`, w.Body.String())

	w = f.do(http.MethodPost, "/api/estimate-price", map[string]any{
		"from_city_id": 2, "to_city_id": 1, "vehicle_type_id": 4, "passengers": 0,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReferenceLists(t *testing.T) {
	f := newFixture("")
	lat, lng := 33.5731, -7.5898
	f.locations.On("Locations", mock.Anything).Return([]location.Location{
		{ID: 1, Name: "Casablanca", Latitude: &lat, Longitude: &lng},
		{ID: 7, Name: "Ouarzazate"},
	}, nil)
	f.pricing.On("VehicleTypes", mock.Anything).Return([]pricing.VehicleType{
		{ID: 1, Name: "Economy Car", Capacity: 4, BasePricePerKm: 5, MinPrice: 150},
	}, nil)

	w := f.do(http.MethodGet, "/api/cities", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[
		{"id":1,"name":"Casablanca","latitude":33.5731,"longitude":-7.5898},
		{"id":7,"name":"Ouarzazate","latitude":null,"longitude":null}
	]`, w.Body.String())

	w = f.do(http.MethodGet, "/api/vehicle-types", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Economy Car","capacity":4,"base_price_per_km":5,"min_price":150}]`, w.Body.String())
}

func TestCreateBooking(t *testing.T) {
	f := newFixture("")
	created := time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(cmd booking.CreateCommand) bool {
		return cmd.FullName == "Youssef" && cmd.Phone == "+212612345678" && cmd.VehicleID == 7 && cmd.PriceMAD == nil
	})).Return(booking.Booking{
		ID:          "b-1",
		Name:        "Youssef",
		PickupDate:  time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		Passengers:  2,
		Status:      booking.StatusPending,
		Price:       types.MAD(80000),
		PriceSource: booking.PriceAdhoc,
		Commission:  commission.Terms{Amount: types.MAD(8000), Percentage: 0.10},
		CreatedAt:   created,
	}, nil)

	w := f.do(http.MethodPost, "/api/bookings", map[string]any{
		"full_name": "Youssef", "email": "y@example.com", "phone_number": "+212612345678",
		"pickup_date": "2026-05-20", "pickup_location": "Casablanca", "dropoff_location": "Marrakech",
		"passengers": 2, "vehicle_id": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Message string `json:"message"`
		Booking struct {
			ID               string  `json:"id"`
			Status           string  `json:"status"`
			Price            float64 `json:"price"`
			PriceSource      string  `json:"price_source"`
			CommissionAmount float64 `json:"commission_amount"`
			CommissionPaid   bool    `json:"commission_paid"`
			PickupDate       string  `json:"pickup_date"`
		} `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Booking created successfully", resp.Message)
	assert.Equal(t, "pending", resp.Booking.Status)
	assert.Equal(t, 800.0, resp.Booking.Price)
	assert.Equal(t, "adhoc", resp.Booking.PriceSource)
	assert.Equal(t, 80.0, resp.Booking.CommissionAmount)
	assert.False(t, resp.Booking.CommissionPaid)
	assert.Equal(t, "2026-05-20", resp.Booking.PickupDate)
}

func TestCreateBooking_ValidationError(t *testing.T) {
	f := newFixture("")
	f.bookings.On("Create", mock.Anything, mock.Anything).
		Return(booking.Booking{}, apperr.Validation("invalid fields: Email (email)"))

	w := f.do(http.MethodPost, "/api/bookings", map[string]any{"email": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"invalid fields: Email (email)"}`, w.Body.String())
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	f := newFixture("partner")

	assert.Equal(t, http.StatusForbidden, f.do(http.MethodGet, "/api/admin/stats", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPost, "/api/admin/bookings/b1/mark-commission-paid", nil).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodPut, "/api/admin/bookings/b1", map[string]any{"status": "confirmed"}).Code)
	f.dashboard.AssertNotCalled(t, "Stats", mock.Anything, mock.Anything)
}

func TestAdminStats(t *testing.T) {
	f := newFixture("admin")
	f.dashboard.On("Stats", mock.Anything, dashboard.PeriodYear).Return(dashboard.Snapshot{
		Period:           dashboard.PeriodYear,
		PeriodStart:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		TotalBookings:    12,
		PeriodBookings:   9,
		PeriodRevenue:    types.MAD(900000),
		PeriodCommission: types.MAD(90000),
		LedgerCommission: types.MAD(85000),
		CommissionDrift:  types.MAD(5000),
		UnpaidCommission: types.MAD(30000),
		TopPartner:       &dashboard.PartnerRanking{Name: "Hassan", CompanyName: "Atlas Tours", VehicleCount: 4},
		FleetFigures:     dashboard.FleetFigures{TotalPartners: 3, PendingPartners: 1, TotalVehicles: 9, PendingVehicles: 2},
	}, nil)

	w := f.do(http.MethodGet, "/api/admin/stats?period=year", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"period": "year",
		"period_start": "2026-01-01T00:00:00Z",
		"monthly_revenue": 9000,
		"monthly_commission": 900,
		"ledger_commission": 850,
		"commission_drift": 50,
		"unpaid_commissions": 300,
		"total_rides": 9,
		"total_bookings": 12,
		"total_partners": 3,
		"total_vehicles": 9,
		"pending_partners": 1,
		"pending_vehicles": 2,
		"top_partner": {"name": "Hassan", "company_name": "Atlas Tours", "bookings_count": 4},
		"recent_bookings": []
	}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/admin/stats?period=week", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMarkCommissionPaid(t *testing.T) {
	f := newFixture("admin")
	paidAt := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	f.commissions.On("MarkPaid", mock.Anything, types.ID("b1")).
		Return(commission.Terms{BookingID: "b1", Paid: true, PaidAt: &paidAt}, nil).Twice()
	f.commissions.On("MarkPaid", mock.Anything, types.ID("missing")).
		Return(commission.Terms{}, apperr.NotFound("booking missing not found"))

	for i := 0; i < 2; i++ {
		w := f.do(http.MethodPost, "/api/admin/bookings/b1/mark-commission-paid", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Commission marked as paid","commission_paid_at":"2026-03-10T08:00:00Z"}`, w.Body.String())
	}

	w := f.do(http.MethodPost, "/api/admin/bookings/missing/mark-commission-paid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommissionTerms(t *testing.T) {
	f := newFixture("admin")
	f.commissions.On("Terms", mock.Anything, types.ID("b1")).
		Return(commission.Terms{BookingID: "b1", Amount: types.MAD(10000), Percentage: 0.10}, nil)
	f.commissions.On("Terms", mock.Anything, types.ID("missing")).
		Return(commission.Terms{}, apperr.NotFound("booking missing not found"))

	w := f.do(http.MethodGet, "/api/admin/bookings/b1/commission", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"booking_id":"b1","commission_amount":100,"commission_percentage":0.1,
		"commission_paid":false,"commission_paid_at":null}`, w.Body.String())

	w = f.do(http.MethodGet, "/api/admin/bookings/missing/commission", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Equal(t, http.StatusForbidden, newFixture("partner").do(http.MethodGet, "/api/admin/bookings/b1/commission", nil).Code)
}

func TestUpdateBooking(t *testing.T) {
	f := newFixture("admin")
	price := 1500.0
	f.bookings.On("Update", mock.Anything, booking.UpdateCommand{ID: "b1", Status: booking.StatusConfirmed, PriceMAD: &price}).
		Return(booking.Booking{ID: "b1", Status: booking.StatusConfirmed, Price: types.MAD(150000),
			Commission: commission.Terms{Amount: types.MAD(15000), Percentage: 0.10}}, nil)

	w := f.do(http.MethodPut, "/api/admin/bookings/b1", map[string]any{"status": "confirmed", "price": 1500})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "confirmed", resp["status"])
	assert.Equal(t, 150.0, resp["commission_amount"])
}
