// README: Price calculator and estimator handlers, plus the reference lists they rely on.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/modules/location"
	"caravan/internal/modules/pricing"
)

type PricingService interface {
	Calculate(ctx context.Context, originID, destinationID int64, in pricing.PricingInput) (pricing.RateQuote, error)
	EstimateRange(ctx context.Context, fromID, toID int64, in pricing.PricingInput) (pricing.RangeQuote, error)
	VehicleTypes(ctx context.Context) ([]pricing.VehicleType, error)
}

type LocationService interface {
	Locations(ctx context.Context) ([]location.Location, error)
}

type PricingHandler struct {
	pricing   PricingService
	locations LocationService
	log       *zap.Logger
}

func NewPricingHandler(pricing PricingService, locations LocationService, log *zap.Logger) *PricingHandler {
	return &PricingHandler{pricing: pricing, locations: locations, log: nopIfNil(log)}
}

type calculatePriceReq struct {
	OriginCityID      int64  `json:"origin_city_id" binding:"required,gt=0"`
	DestinationCityID int64  `json:"destination_city_id" binding:"required,gt=0"`
	VehicleID         *int64 `json:"vehicle_id" binding:"omitempty,gt=0"`
	CategoryID        *int64 `json:"category_id" binding:"omitempty,gt=0"`
}

// input prefers the vehicle over the category when both are sent.
func (r calculatePriceReq) input() pricing.PricingInput {
	switch {
	case r.VehicleID != nil:
		return pricing.ByVehicle(*r.VehicleID)
	case r.CategoryID != nil:
		return pricing.ByCategory(*r.CategoryID)
	default:
		return pricing.Default()
	}
}

type calculatePriceResp struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	DistanceKm  float64 `json:"distance_km"`
	PricePerKm  float64 `json:"price_per_km"`
	TotalPrice  float64 `json:"total_price"`
	Currency    string  `json:"currency"`
}

func (h *PricingHandler) Calculate(c *gin.Context) {
	var req calculatePriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	q, err := h.pricing.Calculate(c.Request.Context(), req.OriginCityID, req.DestinationCityID, req.input())
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusOK, calculatePriceResp{
		Origin:      q.Origin,
		Destination: q.Destination,
		DistanceKm:  q.DistanceKm,
		PricePerKm:  q.PricePerKm,
		TotalPrice:  q.Total.Float(),
		Currency:    q.Total.Currency,
	})
}

type estimatePriceReq struct {
	FromCityID    int64 `json:"from_city_id" binding:"required,gt=0"`
	ToCityID      int64 `json:"to_city_id" binding:"required,gt=0"`
	VehicleTypeID int64 `json:"vehicle_type_id" binding:"required,gt=0"`
	Passengers    int   `json:"passengers" binding:"required,min=1"`
}

type priceBand struct {
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Currency string `json:"currency"`
}

type estimatePriceResp struct {
	DistanceKm     float64   `json:"distance_km"`
	EstimatedPrice priceBand `json:"estimated_price"`
	VehicleType    string    `json:"vehicle_type"`
	Route          string    `json:"route"`
}

func (h *PricingHandler) Estimate(c *gin.Context) {
	var req estimatePriceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	q, err := h.pricing.EstimateRange(c.Request.Context(), req.FromCityID, req.ToCityID,
		pricing.ByType(req.VehicleTypeID, req.Passengers))
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	writeJSON(c, http.StatusOK, estimatePriceResp{
		DistanceKm:     q.DistanceKm,
		EstimatedPrice: priceBand{Min: q.Min, Max: q.Max, Currency: q.Currency},
		VehicleType:    q.VehicleType,
		Route:          q.Route,
	})
}

type cityResp struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	NameAr    string   `json:"name_ar,omitempty"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (h *PricingHandler) Cities(c *gin.Context) {
	locs, err := h.locations.Locations(c.Request.Context())
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	out := make([]cityResp, 0, len(locs))
	for _, l := range locs {
		out = append(out, cityResp{ID: l.ID, Name: l.Name, NameAr: l.NameAr, Latitude: l.Latitude, Longitude: l.Longitude})
	}
	writeJSON(c, http.StatusOK, out)
}

func (h *PricingHandler) VehicleTypes(c *gin.Context) {
	vts, err := h.pricing.VehicleTypes(c.Request.Context())
	if err != nil {
		writeAppError(c, h.log, err)
		return
	}
	if vts == nil {
		vts = []pricing.VehicleType{}
	}
	writeJSON(c, http.StatusOK, vts)
}
