// README: Pricing inputs, rate profiles and the quotes each strategy produces.
package pricing

import "caravan/internal/types"

// DefaultRatePerKm applies when no vehicle or category rate is available.
const DefaultRatePerKm = 3.5

type InputKind int

const (
	KindDefault InputKind = iota
	KindByVehicle
	KindByCategory
	KindByType
)

func (k InputKind) String() string {
	switch k {
	case KindByVehicle:
		return "by_vehicle"
	case KindByCategory:
		return "by_category"
	case KindByType:
		return "by_type"
	default:
		return "default"
	}
}

// PricingInput selects the rate profile a quote is priced against.
// Build it with ByVehicle, ByCategory, ByType or Default.
type PricingInput struct {
	kind       InputKind
	id         int64
	passengers int
}

func ByVehicle(vehicleID int64) PricingInput {
	return PricingInput{kind: KindByVehicle, id: vehicleID}
}

func ByCategory(categoryID int64) PricingInput {
	return PricingInput{kind: KindByCategory, id: categoryID}
}

func ByType(vehicleTypeID int64, passengers int) PricingInput {
	return PricingInput{kind: KindByType, id: vehicleTypeID, passengers: passengers}
}

func Default() PricingInput {
	return PricingInput{}
}

func (in PricingInput) Kind() InputKind { return in.kind }
func (in PricingInput) ID() int64       { return in.id }
func (in PricingInput) Passengers() int { return in.passengers }

// Vehicle is the subset of a partner vehicle that pricing reads.
type Vehicle struct {
	ID         int64
	PartnerID  *int64
	CategoryID *int64
	Name       string
	Capacity   int
	PricePerKm float64
	IsApproved bool
}

type VehicleType struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	NameAr         string  `json:"name_ar,omitempty"`
	Capacity       int     `json:"capacity"`
	BasePricePerKm float64 `json:"base_price_per_km"`
	MinPrice       float64 `json:"min_price"`
}

// RateQuote is a table-distance price.
type RateQuote struct {
	Origin      string
	Destination string
	DistanceKm  float64
	PricePerKm  float64
	Total       types.Money
}

// RangeQuote is a straight-line estimate reported as a band of whole dirhams.
type RangeQuote struct {
	DistanceKm  float64
	Final       float64
	Min         int64
	Max         int64
	Currency    string
	VehicleType string
	Route       string
	Surcharged  bool
}

type AdhocBasis string

const (
	BasisVehicleRate AdhocBasis = "vehicle_rate"
	BasisTypeTable   AdhocBasis = "type_table"
)

// AdhocQuote is a booking-time guess made without a real distance.
type AdhocQuote struct {
	Price           types.Money
	Basis           AdhocBasis
	VarianceApplied bool
}
