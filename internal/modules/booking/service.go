// README: Booking service handles intake and status/price updates.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"caravan/internal/apperr"
	"caravan/internal/clock"
	"caravan/internal/modules/commission"
	"caravan/internal/modules/pricing"
	"caravan/internal/types"
)

type BookingStore interface {
	Create(ctx context.Context, b *Booking) error
	Get(ctx context.Context, id types.ID) (Booking, error)
	Update(ctx context.Context, id types.ID, status Status, price, fee *types.Money) (Booking, error)
}

// Pricer supplies vehicle details and the booking-time fallback price.
type Pricer interface {
	Vehicle(ctx context.Context, id int64) (pricing.Vehicle, error)
	Guess(ctx context.Context, in pricing.PricingInput, vehicleType string) (pricing.AdhocQuote, error)
}

// Commissions is the ledger surface bookings need.
type Commissions interface {
	Rate() float64
	Derive(id types.ID, price types.Money, percentage float64) (commission.Terms, error)
}

type Service struct {
	store       BookingStore
	pricer      Pricer
	commissions Commissions
	clock       clock.Clock
	validate    *validator.Validate
	log         *zap.Logger
}

func NewService(store BookingStore, pricer Pricer, commissions Commissions, clk clock.Clock, log *zap.Logger) *Service {
	if clk == nil {
		clk = clock.System{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		store:       store,
		pricer:      pricer,
		commissions: commissions,
		clock:       clk,
		validate:    validator.New(),
		log:         log,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateCommand) (Booking, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return Booking{}, validationError(err)
	}
	pickupDate, err := time.Parse(pickupDateLayout, cmd.PickupDate)
	if err != nil {
		return Booking{}, apperr.Validation("pickup_date must be YYYY-MM-DD")
	}

	vehicle, err := s.pricer.Vehicle(ctx, cmd.VehicleID)
	if err != nil {
		return Booking{}, err
	}

	price, source, err := s.price(ctx, cmd)
	if err != nil {
		return Booking{}, err
	}

	id := types.ID(uuid.NewString())
	terms, err := s.commissions.Derive(id, price, s.commissions.Rate())
	if err != nil {
		return Booking{}, err
	}

	b := Booking{
		ID:          id,
		Name:        strings.TrimSpace(cmd.FullName),
		Email:       strings.TrimSpace(cmd.Email),
		Phone:       strings.TrimSpace(cmd.Phone),
		Pickup:      strings.TrimSpace(cmd.Pickup),
		Dropoff:     strings.TrimSpace(cmd.Dropoff),
		PickupDate:  pickupDate,
		PickupTime:  cmd.PickupTime,
		Passengers:  cmd.Passengers,
		VehicleID:   &vehicle.ID,
		PartnerID:   vehicle.PartnerID,
		Message:     cmd.Message,
		Status:      StatusPending,
		Price:       price,
		PriceSource: source,
		Commission:  terms,
		CreatedAt:   s.clock.Now().UTC(),
	}
	if err := s.store.Create(ctx, &b); err != nil {
		return Booking{}, fmt.Errorf("create booking: %w", err)
	}
	s.log.Info("booking created",
		zap.String("booking_id", string(b.ID)),
		zap.Int64("vehicle_id", vehicle.ID),
		zap.String("price_source", string(source)),
		zap.Int64("price_centimes", price.Amount),
		zap.Int64("commission_centimes", terms.Amount.Amount))
	return b, nil
}

func (s *Service) price(ctx context.Context, cmd CreateCommand) (types.Money, PriceSource, error) {
	if cmd.PriceMAD != nil {
		return types.MADFromFloat(*cmd.PriceMAD), PriceQuoted, nil
	}
	q, err := s.pricer.Guess(ctx, pricing.ByVehicle(cmd.VehicleID), cmd.VehicleType)
	if err != nil {
		return types.Money{}, "", err
	}
	if !q.Price.IsPositive() {
		return types.Money{}, "", apperr.Validation("no price could be derived for vehicle %d", cmd.VehicleID)
	}
	return q.Price, PriceAdhoc, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (Booking, error) {
	return s.store.Get(ctx, id)
}

// Update changes the status and optionally the price. A price change
// recomputes the commission in the same write unless it has already been
// settled.
func (s *Service) Update(ctx context.Context, cmd UpdateCommand) (Booking, error) {
	if err := s.validate.Struct(cmd); err != nil {
		return Booking{}, validationError(err)
	}

	var price, fee *types.Money
	if cmd.PriceMAD != nil {
		m := types.MADFromFloat(*cmd.PriceMAD)
		if !m.IsPositive() {
			return Booking{}, apperr.Validation("price must be positive")
		}
		current, err := s.store.Get(ctx, cmd.ID)
		if err != nil {
			if apperr.KindOf(err) == apperr.KindNotFound {
				return Booking{}, err
			}
			return Booking{}, fmt.Errorf("load booking %s: %w", cmd.ID, err)
		}
		terms, err := s.commissions.Derive(cmd.ID, m, current.Commission.Percentage)
		if err != nil {
			return Booking{}, err
		}
		price, fee = &m, &terms.Amount
	}

	b, err := s.store.Update(ctx, cmd.ID, cmd.Status, price, fee)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return Booking{}, err
		}
		return Booking{}, fmt.Errorf("update booking %s: %w", cmd.ID, err)
	}
	if price != nil && b.Commission.Paid {
		s.log.Info("commission already settled; price change not applied to commission",
			zap.String("booking_id", string(b.ID)))
	}
	return b, nil
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation("invalid request")
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
	}
	return apperr.Validation("invalid fields: %s", strings.Join(fields, ", "))
}
