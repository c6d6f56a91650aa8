// README: Entry point; loads config, wires services and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"caravan/internal/clock"
	"caravan/internal/config"
	httptransport "caravan/internal/http"
	"caravan/internal/infra"
	"caravan/internal/modules/booking"
	"caravan/internal/modules/commission"
	"caravan/internal/modules/dashboard"
	"caravan/internal/modules/location"
	"caravan/internal/modules/pricing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	verifier, err := infra.NewJWTVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		return err
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	var locationSource location.Source = location.NewStore(dbPool)
	var geocoder location.Geocoder
	mapsClient, err := infra.NewMapsClient(cfg.Maps.APIKey)
	if err != nil {
		return err
	}
	if mapsClient != nil {
		geocoder = location.NewMapsGeocoder(mapsClient)
	}

	if cfg.Redis.Addr != "" {
		redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
		if err != nil {
			logger.Warn("redis unavailable; distance cache disabled", zap.Error(err))
		} else {
			defer func() { _ = redisClient.Close() }()
			locationSource = location.NewCachedSource(locationSource, redisClient, cfg.Redis.DistanceTTL, logger)
			if geocoder != nil {
				geocoder = location.NewCachedGeocoder(geocoder, redisClient, cfg.Redis.DistanceTTL, logger)
			}
		}
	}

	locationSvc := location.NewService(locationSource, geocoder, logger.Named("location"))
	pricingSvc := pricing.NewService(locationSvc, pricing.NewStore(dbPool), cfg.Pricing, logger.Named("pricing"))
	ledger := commission.NewLedger(commission.NewStore(dbPool), cfg.Commission.Rate, clock.System{}, logger.Named("commission"))
	bookingSvc := booking.NewService(booking.NewStore(dbPool), pricingSvc, ledger, clock.System{}, logger.Named("booking"))
	aggregator := dashboard.NewAggregator(dashboard.NewStore(dbPool), ledger, cfg.Commission.Rate, clock.System{}, logger.Named("dashboard"))

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	handler := httptransport.NewServer(httptransport.ServerDeps{
		Pricing:     pricingSvc,
		Locations:   locationSvc,
		Bookings:    bookingSvc,
		Dashboard:   aggregator,
		Commissions: ledger,
		Verifier:    verifier,
		Log:         logger.Named("http"),
	})

	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}
