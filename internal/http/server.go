// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/http/handlers"
	"caravan/internal/http/middleware"
	"caravan/internal/infra"
)

type ServerDeps struct {
	Pricing     handlers.PricingService
	Locations   handlers.LocationService
	Bookings    handlers.BookingService
	Dashboard   handlers.DashboardService
	Commissions handlers.CommissionService
	Verifier    infra.TokenVerifier
	Log         *zap.Logger
}

type Server struct {
	deps ServerDeps
	log  *zap.Logger
}

func NewServer(deps ServerDeps) *Server {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{deps: deps, log: log}
}

func (s *Server) Routes() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logging(s.log))

	pricingHandler := handlers.NewPricingHandler(s.deps.Pricing, s.deps.Locations, s.log)
	bookingHandler := handlers.NewBookingHandler(s.deps.Bookings, s.log)
	dashboardHandler := handlers.NewDashboardHandler(s.deps.Dashboard, s.deps.Commissions, s.log)

	api := r.Group("/api")
	api.POST("/calculate-price", pricingHandler.Calculate)
	api.POST("/estimate-price", pricingHandler.Estimate)
	api.GET("/cities", pricingHandler.Cities)
	api.GET("/vehicle-types", pricingHandler.VehicleTypes)
	api.POST("/bookings", bookingHandler.Create)

	admin := api.Group("/admin", middleware.Auth(s.deps.Verifier), middleware.RequireRole(middleware.RoleAdmin))
	admin.GET("/stats", dashboardHandler.Stats)
	admin.GET("/bookings/:id/commission", dashboardHandler.CommissionTerms)
	admin.POST("/bookings/:id/mark-commission-paid", dashboardHandler.MarkCommissionPaid)
	admin.PUT("/bookings/:id", bookingHandler.Update)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	return r
}
