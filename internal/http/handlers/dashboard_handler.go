// README: Admin dashboard and commission settlement handlers.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/modules/commission"
	"caravan/internal/modules/dashboard"
	"caravan/internal/types"
)

type DashboardService interface {
	Stats(ctx context.Context, period dashboard.Period) (dashboard.Snapshot, error)
}

type CommissionService interface {
	MarkPaid(ctx context.Context, id types.ID) (commission.Terms, error)
	Terms(ctx context.Context, id types.ID) (commission.Terms, error)
}

type DashboardHandler struct {
	dashboard   DashboardService
	commissions CommissionService
	log         *zap.Logger
}

func NewDashboardHandler(d DashboardService, c CommissionService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: d, commissions: c, log: nopIfNil(log)}
}

type topPartnerResp struct {
	Name          string `json:"name"`
	CompanyName   string `json:"company_name"`
	BookingsCount int64  `json:"bookings_count"`
}

type recentBookingResp struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Pickup           string    `json:"pickup"`
	Dropoff          string    `json:"dropoff"`
	Status           string    `json:"status"`
	Price            float64   `json:"price"`
	CommissionAmount float64   `json:"commission_amount"`
	CommissionPaid   bool      `json:"commission_paid"`
	CreatedAt        time.Time `json:"created_at"`
}

type statsResp struct {
	Period            string              `json:"period"`
	PeriodStart       time.Time           `json:"period_start"`
	MonthlyRevenue    float64             `json:"monthly_revenue"`
	MonthlyCommission float64             `json:"monthly_commission"`
	LedgerCommission  float64             `json:"ledger_commission"`
	CommissionDrift   float64             `json:"commission_drift"`
	UnpaidCommissions float64             `json:"unpaid_commissions"`
	TotalRides        int64               `json:"total_rides"`
	TotalBookings     int64               `json:"total_bookings"`
	TotalPartners     int64               `json:"total_partners"`
	TotalVehicles     int64               `json:"total_vehicles"`
	PendingPartners   int64               `json:"pending_partners"`
	PendingVehicles   int64               `json:"pending_vehicles"`
	TopPartner        *topPartnerResp     `json:"top_partner"`
	RecentBookings    []recentBookingResp `json:"recent_bookings"`
}

// Stats keeps the monthly_* field names for both periods.
func (h *DashboardHandler) Stats(c *gin.Context) {
	period, err := dashboard.ParsePeriod(c.Query("period"))
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	s, err := h.dashboard.Stats(c.Request.Context(), period)
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}

	resp := statsResp{
		Period:            string(s.Period),
		PeriodStart:       s.PeriodStart,
		MonthlyRevenue:    s.PeriodRevenue.Float(),
		MonthlyCommission: s.PeriodCommission.Float(),
		LedgerCommission:  s.LedgerCommission.Float(),
		CommissionDrift:   s.CommissionDrift.Float(),
		UnpaidCommissions: s.UnpaidCommission.Float(),
		TotalRides:        s.PeriodBookings,
		TotalBookings:     s.TotalBookings,
		TotalPartners:     s.TotalPartners,
		TotalVehicles:     s.TotalVehicles,
		PendingPartners:   s.PendingPartners,
		PendingVehicles:   s.PendingVehicles,
		RecentBookings:    make([]recentBookingResp, 0, len(s.RecentBookings)),
	}
	if s.TopPartner != nil {
		resp.TopPartner = &topPartnerResp{
			Name:          s.TopPartner.Name,
			CompanyName:   s.TopPartner.CompanyName,
			BookingsCount: s.TopPartner.VehicleCount,
		}
	}
	for _, b := range s.RecentBookings {
		resp.RecentBookings = append(resp.RecentBookings, recentBookingResp{
			ID:               string(b.ID),
			Name:             b.Name,
			Pickup:           b.Pickup,
			Dropoff:          b.Dropoff,
			Status:           b.Status,
			Price:            b.Price.Float(),
			CommissionAmount: b.Commission.Float(),
			CommissionPaid:   b.CommissionPaid,
			CreatedAt:        b.CreatedAt,
		})
	}
	writeJSON(c, http.StatusOK, resp)
}

func (h *DashboardHandler) MarkCommissionPaid(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	t, err := h.commissions.MarkPaid(c.Request.Context(), types.ID(id))
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{
		"message":            "Commission marked as paid",
		"commission_paid_at": t.PaidAt,
	})
}

type commissionResp struct {
	BookingID  string     `json:"booking_id"`
	Amount     float64    `json:"commission_amount"`
	Percentage float64    `json:"commission_percentage"`
	Paid       bool       `json:"commission_paid"`
	PaidAt     *time.Time `json:"commission_paid_at"`
}

func (h *DashboardHandler) CommissionTerms(c *gin.Context) {
	t, err := h.commissions.Terms(c.Request.Context(), types.ID(c.Param("id")))
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusOK, commissionResp{
		BookingID:  string(t.BookingID),
		Amount:     t.Amount.Float(),
		Percentage: t.Percentage,
		Paid:       t.Paid,
		PaidAt:     t.PaidAt,
	})
}
