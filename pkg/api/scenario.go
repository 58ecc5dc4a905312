package api

// ScenarioStatus is the run state of one scenario.
type ScenarioStatus string

const (
	StatusIdle    ScenarioStatus = "idle"
	StatusRunning ScenarioStatus = "running"
	StatusDone    ScenarioStatus = "done"
	StatusError   ScenarioStatus = "error"
)

// ProjectPatch is a sparse override of ProjectInputs. Nil fields inherit
// the baseline unchanged. Typed fields keep override keys checked at
// compile time instead of silently dropping a typo.
type ProjectPatch struct {
	TotalAreaSqFt   *float64 `json:"total_area_sqft,omitempty"`
	CoatCount       *int     `json:"coat_count,omitempty"`
	SandAdditive    *bool    `json:"sand_additive,omitempty"`
	PolymerAdditive *bool    `json:"polymer_additive,omitempty"`
	WaterPercent    *float64 `json:"water_percent,omitempty"`
	CrackLengthFt   *float64 `json:"crack_length_ft,omitempty"`
	CrackWidthIn    *float64 `json:"crack_width_in,omitempty"`
	CrackDepthIn    *float64 `json:"crack_depth_in,omitempty"`
	IncludeStriping *bool    `json:"include_striping,omitempty"`
	PrepHours       *float64 `json:"prep_hours,omitempty"`
	PropaneTanks    *int     `json:"propane_tanks,omitempty"`
	OilSpots        *int     `json:"oil_spots,omitempty"`
	RoundTripMiles  *float64 `json:"round_trip_miles,omitempty"`
	Vehicle         *int     `json:"vehicle,omitempty"`
}

// BusinessPatch is a sparse override of BusinessSettings. Money fields are
// plain floats here so sweeps can set them numerically; they convert to
// decimal at apply time.
type BusinessPatch struct {
	EmployeeCount   *int     `json:"employee_count,omitempty"`
	HourlyRate      *float64 `json:"hourly_rate,omitempty"`
	OverheadPercent *float64 `json:"overhead_percent,omitempty"`
	ProfitPercent   *float64 `json:"profit_percent,omitempty"`
	SealerPerGallon *float64 `json:"sealer_per_gallon,omitempty"`
	SandPerBag      *float64 `json:"sand_per_bag,omitempty"`
	GasPerGallon    *float64 `json:"gas_per_gallon,omitempty"`
	SandRatio       *float64 `json:"sand_ratio_lbs_per_100_gal,omitempty"`
}

// ScenarioOverrides patches the two input namespaces of a scenario.
// Applying the zero value reproduces the baseline exactly.
type ScenarioOverrides struct {
	Project  ProjectPatch  `json:"project"`
	Business BusinessPatch `json:"business"`
}

// Scenario is a named what-if variant of the baseline estimate. A run that
// fails keeps the previous successful Computation so the caller can render
// stale-but-available numbers next to the error.
type Scenario struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Overrides   ScenarioOverrides `json:"overrides"`
	IsPrimary   bool              `json:"is_primary"`
	Status      ScenarioStatus    `json:"status"`
	Computation *Computation      `json:"computation,omitempty"`
	Error       string            `json:"error,omitempty"`
}
