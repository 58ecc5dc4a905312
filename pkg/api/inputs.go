// Package api defines the plain-data contracts shared by the estimation
// engines and their callers. Everything here is serializable: no hidden
// state, no behavior beyond defaults, so a computation can be handed to an
// exporter or an archive without re-entering the engine.
package api

import "github.com/shopspring/decimal"

// PricingType discriminates how a custom service is priced.
type PricingType string

const (
	PricingFlat      PricingType = "flat"       // one-time amount, quantity ignored
	PricingPerArea   PricingType = "per_area"   // unit price × project area (sq ft)
	PricingPerLength PricingType = "per_length" // unit price × quantity (linear ft)
	PricingPerUnit   PricingType = "per_unit"   // unit price × quantity
)

// CustomService is a caller-defined line item outside the standard catalog.
type CustomService struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  float64         `json:"quantity"`
	Pricing   PricingType     `json:"pricing"`
}

// CrackInputs describes crack-filling geometry.
type CrackInputs struct {
	LengthFt float64 `json:"length_ft"`
	WidthIn  float64 `json:"width_in"`
	DepthIn  float64 `json:"depth_in"`
}

// StripingInputs holds per-unit striping counts. When Include is false the
// whole category contributes nothing to the estimate.
type StripingInputs struct {
	Include        bool    `json:"include"`
	Lines          int     `json:"lines"`
	HandicapStalls int     `json:"handicap_stalls"`
	ArrowsLarge    int     `json:"arrows_large"`
	ArrowsSmall    int     `json:"arrows_small"`
	LetteringChars int     `json:"lettering_chars"`
	CurbFt         float64 `json:"curb_ft"`
}

// PremiumInputs toggles the premium service add-ons. Edge pushing and power
// washing carry a quantity; the rest are flat per-job services.
type PremiumInputs struct {
	EdgePushing      bool    `json:"edge_pushing"`
	EdgePushingFt    float64 `json:"edge_pushing_ft"`
	WeedKiller       bool    `json:"weed_killer"`
	CrackCleaning    bool    `json:"crack_cleaning"`
	PowerWashing     bool    `json:"power_washing"`
	PowerWashingSqFt float64 `json:"power_washing_sqft"`
	DebrisRemoval    bool    `json:"debris_removal"`
}

// LogisticsInputs covers prep work and getting the crew to the site.
// Vehicle indexes into BusinessSettings.Vehicles.
type LogisticsInputs struct {
	PrepHours      float64 `json:"prep_hours"`
	PropaneTanks   int     `json:"propane_tanks"`
	OilSpots       int     `json:"oil_spots"`
	RoundTripMiles float64 `json:"round_trip_miles"`
	Vehicle        int     `json:"vehicle"`
}

// ProjectInputs is an immutable snapshot of everything needed to price one
// job. Callers are expected to hand the engine already-validated form data;
// the quantity calculator still clamps non-finite and negative values to
// zero so a bad field can never poison the totals.
type ProjectInputs struct {
	TotalAreaSqFt   float64         `json:"total_area_sqft"`
	CoatCount       int             `json:"coat_count"` // 1-3
	SandAdditive    bool            `json:"sand_additive"`
	PolymerAdditive bool            `json:"polymer_additive"`
	PolymerType     string          `json:"polymer_type,omitempty"`
	WaterPercent    float64         `json:"water_percent"`
	Crack           CrackInputs     `json:"crack"`
	Striping        StripingInputs  `json:"striping"`
	Premium         PremiumInputs   `json:"premium"`
	Custom          []CustomService `json:"custom,omitempty"`
	Logistics       LogisticsInputs `json:"logistics"`
}

// VehicleProfile is one of the two configured work vehicles.
type VehicleProfile struct {
	Name string  `json:"name"`
	MPG  float64 `json:"mpg"`
}

// MaterialPrices holds per-unit purchase prices.
type MaterialPrices struct {
	SealerPerGallon  decimal.Decimal `json:"sealer_per_gallon"`
	SandPerBag       decimal.Decimal `json:"sand_per_bag"` // 50 lb bag
	PolymerPerGallon decimal.Decimal `json:"polymer_per_gallon"`
	CrackFillerBox   decimal.Decimal `json:"crack_filler_box"`
	PropaneTank      decimal.Decimal `json:"propane_tank"`
	PrimerPerSpot    decimal.Decimal `json:"primer_per_spot"`
	GasPerGallon     decimal.Decimal `json:"gas_per_gallon"`
}

// StripingRates holds the six striping unit rates.
type StripingRates struct {
	Line          decimal.Decimal `json:"line"`
	Handicap      decimal.Decimal `json:"handicap"`
	ArrowLarge    decimal.Decimal `json:"arrow_large"`
	ArrowSmall    decimal.Decimal `json:"arrow_small"`
	LetterPerChar decimal.Decimal `json:"letter_per_char"`
	CurbPerFt     decimal.Decimal `json:"curb_per_ft"`
}

// PremiumRates prices the premium add-ons.
type PremiumRates struct {
	EdgePushingPerFt    decimal.Decimal `json:"edge_pushing_per_ft"`
	WeedKiller          decimal.Decimal `json:"weed_killer"`
	CrackCleaning       decimal.Decimal `json:"crack_cleaning"`
	PowerWashingPerSqFt decimal.Decimal `json:"power_washing_per_sqft"`
	DebrisRemoval       decimal.Decimal `json:"debris_removal"`
}

// ProductionRates are the crew and product constants the quantity
// calculator runs on. Coverage and speed differ between the first coat and
// later coats: the first coat soaks into dry pavement, later coats ride on
// sealed surface.
type ProductionRates struct {
	// Gallons of concentrate per square foot, indexed by coat (coat 1 is
	// index 0). Coats beyond the configured slice reuse the last entry.
	CoverageGalPerSqFt []float64 `json:"coverage_gal_per_sqft"`

	SealcoatSqFtPerHour1 float64 `json:"sealcoat_sqft_per_hour_1"` // first coat
	SealcoatSqFtPerHour2 float64 `json:"sealcoat_sqft_per_hour_2"` // coats 2-3
	CrackFtPerHour       float64 `json:"crack_ft_per_hour"`

	SandRatioLbsPer100Gal  float64 `json:"sand_ratio_lbs_per_100_gal"`
	PolymerRatioPercent    float64 `json:"polymer_ratio_percent"` // % of concentrate volume
	CrackFillerBoxYieldFt3 float64 `json:"crack_filler_box_yield_ft3"`
}

// BusinessSettings carries the rates and prices of the business running the
// estimate. One instance is shared by all scenarios of a session; scenarios
// override individual fields through BusinessPatch.
type BusinessSettings struct {
	EmployeeCount   int             `json:"employee_count"`
	HourlyRate      decimal.Decimal `json:"hourly_rate"`
	OverheadPercent float64         `json:"overhead_percent"` // 0-100
	ProfitPercent   float64         `json:"profit_percent"`   // 0-100

	Prices   MaterialPrices    `json:"prices"`
	Striping StripingRates     `json:"striping"`
	Premium  PremiumRates      `json:"premium"`
	Vehicles [2]VehicleProfile `json:"vehicles"`
	Rates    ProductionRates   `json:"rates"`
}

// DefaultProductionRates returns the stock product and crew constants.
func DefaultProductionRates() ProductionRates {
	return ProductionRates{
		CoverageGalPerSqFt:     []float64{0.015, 0.012, 0.011},
		SealcoatSqFtPerHour1:   5500,
		SealcoatSqFtPerHour2:   8000,
		CrackFtPerHour:         125,
		SandRatioLbsPer100Gal:  300,
		PolymerRatioPercent:    2,
		CrackFillerBoxYieldFt3: 0.5,
	}
}

// DefaultBusinessSettings returns a workable settings block for callers
// that have not configured their own rates yet.
func DefaultBusinessSettings() BusinessSettings {
	return BusinessSettings{
		EmployeeCount:   2,
		HourlyRate:      decimal.NewFromInt(25),
		OverheadPercent: 10,
		ProfitPercent:   20,
		Prices: MaterialPrices{
			SealerPerGallon:  decimal.NewFromFloat(3.65),
			SandPerBag:       decimal.NewFromFloat(10.00),
			PolymerPerGallon: decimal.NewFromFloat(15.00),
			CrackFillerBox:   decimal.NewFromFloat(44.95),
			PropaneTank:      decimal.NewFromFloat(22.00),
			PrimerPerSpot:    decimal.NewFromFloat(8.50),
			GasPerGallon:     decimal.NewFromFloat(3.45),
		},
		Striping: StripingRates{
			Line:          decimal.NewFromFloat(4.50),
			Handicap:      decimal.NewFromFloat(35.00),
			ArrowLarge:    decimal.NewFromFloat(25.00),
			ArrowSmall:    decimal.NewFromFloat(15.00),
			LetterPerChar: decimal.NewFromFloat(5.00),
			CurbPerFt:     decimal.NewFromFloat(1.75),
		},
		Premium: PremiumRates{
			EdgePushingPerFt:    decimal.NewFromFloat(0.35),
			WeedKiller:          decimal.NewFromFloat(75.00),
			CrackCleaning:       decimal.NewFromFloat(125.00),
			PowerWashingPerSqFt: decimal.NewFromFloat(0.08),
			DebrisRemoval:       decimal.NewFromFloat(95.00),
		},
		Vehicles: [2]VehicleProfile{
			{Name: "C30 Pickup", MPG: 12},
			{Name: "Dakota + Trailer", MPG: 15},
		},
		Rates: DefaultProductionRates(),
	}
}
