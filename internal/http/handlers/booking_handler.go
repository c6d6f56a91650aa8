// README: Booking handlers for intake and status/price updates.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/modules/booking"
	"caravan/internal/types"
)

type BookingService interface {
	Create(ctx context.Context, cmd booking.CreateCommand) (booking.Booking, error)
	Update(ctx context.Context, cmd booking.UpdateCommand) (booking.Booking, error)
}

type BookingHandler struct {
	bookings BookingService
	log      *zap.Logger
}

func NewBookingHandler(svc BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{bookings: svc, log: nopIfNil(log)}
}

type createBookingReq struct {
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	PhoneNumber     string   `json:"phone_number"`
	PickupDate      string   `json:"pickup_date"`
	PickupTime      string   `json:"pickup_time"`
	PickupLocation  string   `json:"pickup_location"`
	DropoffLocation string   `json:"dropoff_location"`
	Passengers      int      `json:"passengers"`
	VehicleID       int64    `json:"vehicle_id"`
	VehicleType     string   `json:"vehicle_type"`
	Message         string   `json:"message"`
	Price           *float64 `json:"price"`
}

type updateBookingReq struct {
	Status string   `json:"status"`
	Price  *float64 `json:"price"`
}

type bookingResp struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Email                string     `json:"email"`
	Phone                string     `json:"phone"`
	Pickup               string     `json:"pickup"`
	Dropoff              string     `json:"dropoff"`
	PickupDate           string     `json:"pickup_date"`
	PickupTime           string     `json:"pickup_time,omitempty"`
	Passengers           int        `json:"passengers"`
	VehicleID            *int64     `json:"vehicle_id"`
	PartnerID            *int64     `json:"partner_id"`
	Message              string     `json:"message"`
	Status               string     `json:"status"`
	Price                float64    `json:"price"`
	PriceSource          string     `json:"price_source"`
	CommissionAmount     float64    `json:"commission_amount"`
	CommissionPercentage float64    `json:"commission_percentage"`
	CommissionPaid       bool       `json:"commission_paid"`
	CommissionPaidAt     *time.Time `json:"commission_paid_at"`
	CreatedAt            time.Time  `json:"created_at"`
}

func toBookingResp(b booking.Booking) bookingResp {
	return bookingResp{
		ID:                   string(b.ID),
		Name:                 b.Name,
		Email:                b.Email,
		Phone:                b.Phone,
		Pickup:               b.Pickup,
		Dropoff:              b.Dropoff,
		PickupDate:           b.PickupDate.Format("2006-01-02"),
		PickupTime:           b.PickupTime,
		Passengers:           b.Passengers,
		VehicleID:            b.VehicleID,
		PartnerID:            b.PartnerID,
		Message:              b.Message,
		Status:               string(b.Status),
		Price:                b.Price.Float(),
		PriceSource:          string(b.PriceSource),
		CommissionAmount:     b.Commission.Amount.Float(),
		CommissionPercentage: b.Commission.Percentage,
		CommissionPaid:       b.Commission.Paid,
		CommissionPaidAt:     b.Commission.PaidAt,
		CreatedAt:            b.CreatedAt,
	}
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req createBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.Create(c.Request.Context(), booking.CreateCommand{
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.PhoneNumber,
		PickupDate:  req.PickupDate,
		PickupTime:  req.PickupTime,
		Pickup:      req.PickupLocation,
		Dropoff:     req.DropoffLocation,
		Passengers:  req.Passengers,
		VehicleID:   req.VehicleID,
		VehicleType: req.VehicleType,
		Message:     req.Message,
		PriceMAD:    req.Price,
	})
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{
		"message": "Booking created successfully",
		"booking": toBookingResp(b),
	})
}

func (h *BookingHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing booking id")
		return
	}
	var req updateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	b, err := h.bookings.Update(c.Request.Context(), booking.UpdateCommand{
		ID:       types.ID(id),
		Status:   booking.Status(req.Status),
		PriceMAD: req.Price,
	})
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusOK, toBookingResp(b))
}
