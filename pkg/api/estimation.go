package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies a cost line for aggregation.
type Category string

const (
	CategoryLabor       Category = "labor"
	CategorySealcoat    Category = "sealcoat"
	CategorySand        Category = "sand"
	CategoryAdditives   Category = "additives"
	CategoryCrackFiller Category = "crack_filler"
	CategoryPropane     Category = "propane"
	CategoryPrimer      Category = "primer"
	CategoryStriping    Category = "striping"
	CategoryTravel      Category = "travel"
	CategoryPremium     Category = "premium_services"
	CategoryCustom      Category = "custom_services"
)

// Quantities is the output of the quantity calculator: every physical
// amount the job consumes, before any price is attached.
type Quantities struct {
	// Sealcoat volume. Concentrate is what gets purchased; applied volume
	// includes dilution water and only matters for crew planning.
	ConcentrateGalPerCoat []float64 `json:"concentrate_gal_per_coat"`
	ConcentrateGal        float64   `json:"concentrate_gal"`
	WaterGal              float64   `json:"water_gal"`
	AppliedGal            float64   `json:"applied_gal"`

	SandLbs    float64 `json:"sand_lbs"`
	SandBags   int     `json:"sand_bags"` // 50 lb bags, bought whole
	PolymerGal float64 `json:"polymer_gal"`

	CrackVolumeFt3   float64 `json:"crack_volume_ft3"`
	CrackFillerBoxes int     `json:"crack_filler_boxes"`

	PropaneTanks int     `json:"propane_tanks"`
	OilSpots     int     `json:"oil_spots"`
	FuelGal      float64 `json:"fuel_gal"`

	LaborHoursSealcoat float64 `json:"labor_hours_sealcoat"`
	LaborHoursPrep     float64 `json:"labor_hours_prep"`
	LaborHoursCrack    float64 `json:"labor_hours_crack"`
	LaborHoursTotal    float64 `json:"labor_hours_total"`
}

// CostLine is one entry of the itemized breakdown. Amount carries full
// precision; rounding happens only at display or archive time.
type CostLine struct {
	Category Category        `json:"category"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
}

// Costs is the canonical aggregate. Subtotal is the sum of every category
// except overhead and profit; Total = Subtotal + Overhead + Profit.
type Costs struct {
	Labor          decimal.Decimal `json:"labor"`
	Sealcoat       decimal.Decimal `json:"sealcoat"`
	Sand           decimal.Decimal `json:"sand"`
	Additives      decimal.Decimal `json:"additives"`
	CrackFiller    decimal.Decimal `json:"crack_filler"`
	Propane        decimal.Decimal `json:"propane"`
	Primer         decimal.Decimal `json:"primer"`
	Striping       decimal.Decimal `json:"striping"`
	Travel         decimal.Decimal `json:"travel"`
	PremiumService decimal.Decimal `json:"premium_services"`
	CustomService  decimal.Decimal `json:"custom_services"`

	Subtotal decimal.Decimal `json:"subtotal"`
	Overhead decimal.Decimal `json:"overhead"`
	Profit   decimal.Decimal `json:"profit"`
	Total    decimal.Decimal `json:"total"`
}

// ByCategory returns the per-category amount for a breakdown category.
func (c Costs) ByCategory(cat Category) decimal.Decimal {
	switch cat {
	case CategoryLabor:
		return c.Labor
	case CategorySealcoat:
		return c.Sealcoat
	case CategorySand:
		return c.Sand
	case CategoryAdditives:
		return c.Additives
	case CategoryCrackFiller:
		return c.CrackFiller
	case CategoryPropane:
		return c.Propane
	case CategoryPrimer:
		return c.Primer
	case CategoryStriping:
		return c.Striping
	case CategoryTravel:
		return c.Travel
	case CategoryPremium:
		return c.PremiumService
	case CategoryCustom:
		return c.CustomService
	default:
		return decimal.Zero
	}
}

// Severity ranks a compliance issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Rank maps severity to a sortable weight; higher sorts first.
func (s Severity) Rank() int {
	switch s {
	case SeverityError:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// ComplianceIssue is an advisory or blocking flag raised against a
// computed estimate. Issues are derived, never persisted on their own.
type ComplianceIssue struct {
	Severity Severity `json:"severity"`
	Code     string   `json:"code"`
	Message  string   `json:"message"`
}

// Computation bundles everything one pipeline run produces.
type Computation struct {
	Quantities Quantities        `json:"quantities"`
	Costs      Costs             `json:"costs"`
	Breakdown  []CostLine        `json:"breakdown"`
	Compliance []ComplianceIssue `json:"compliance"`
	ComputedAt time.Time         `json:"computed_at"`
}

// SensitivitySample is one point of a parameter sweep. A failed sample
// keeps its Value and carries the error; Total/Profit stay zero.
type SensitivitySample struct {
	Value  float64         `json:"value"`
	Total  decimal.Decimal `json:"total"`
	Profit decimal.Decimal `json:"profit"`
	Err    string          `json:"error,omitempty"`
}
