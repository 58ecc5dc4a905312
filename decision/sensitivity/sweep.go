// Package sensitivity re-runs the estimation pipeline across a range of
// values for one parameter, producing a profit/total curve. The baseline
// scenario is never mutated; every sample works on its own override clone.
package sensitivity

import (
	"sealcost/decision/estimation"
	"sealcost/pkg/api"
	"sealcost/pkg/errors"
)

// Analyzer sweeps one parameter through the pipeline.
type Analyzer struct {
	engine *estimation.Engine
}

// NewAnalyzer creates an analyzer over an estimation engine.
func NewAnalyzer(engine *estimation.Engine) *Analyzer {
	return &Analyzer{engine: engine}
}

// Sweep holds the scenario's inputs fixed except the swept parameter and
// records total and profit per value. A failing sample carries its error
// and does not abort the rest of the curve. An unknown parameter path fails
// the whole sweep up front.
func (a *Analyzer) Sweep(
	baseline api.ProjectInputs,
	business api.BusinessSettings,
	overrides api.ScenarioOverrides,
	parameter string,
	values []float64,
) ([]api.SensitivitySample, error) {
	setter, ok := setters[parameter]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownParameter,
			"unsupported sweep parameter %q", parameter)
	}

	samples := make([]api.SensitivitySample, 0, len(values))
	for _, v := range values {
		sample := api.SensitivitySample{Value: v}

		ov := overrides // value copy; setter swaps in fresh pointers
		setter(&ov, v)

		in, bs := ov.Apply(baseline, business)
		comp, err := a.engine.Estimate(in, bs)
		if err != nil {
			sample.Err = err.Error()
		} else {
			sample.Total = comp.Costs.Total
			sample.Profit = comp.Costs.Profit
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

// Parameters lists the supported sweep parameter paths.
func Parameters() []string {
	out := make([]string, 0, len(setters))
	for p := range setters {
		out = append(out, p)
	}
	return out
}

// setters maps a parameter path onto the override field it drives.
var setters = map[string]func(*api.ScenarioOverrides, float64){
	"business.profit_percent": func(o *api.ScenarioOverrides, v float64) {
		o.Business.ProfitPercent = &v
	},
	"business.overhead_percent": func(o *api.ScenarioOverrides, v float64) {
		o.Business.OverheadPercent = &v
	},
	"business.hourly_rate": func(o *api.ScenarioOverrides, v float64) {
		o.Business.HourlyRate = &v
	},
	"business.sealer_per_gallon": func(o *api.ScenarioOverrides, v float64) {
		o.Business.SealerPerGallon = &v
	},
	"business.gas_per_gallon": func(o *api.ScenarioOverrides, v float64) {
		o.Business.GasPerGallon = &v
	},
	"business.sand_ratio": func(o *api.ScenarioOverrides, v float64) {
		o.Business.SandRatio = &v
	},
	"project.total_area_sqft": func(o *api.ScenarioOverrides, v float64) {
		o.Project.TotalAreaSqFt = &v
	},
	"project.water_percent": func(o *api.ScenarioOverrides, v float64) {
		o.Project.WaterPercent = &v
	},
	"project.coat_count": func(o *api.ScenarioOverrides, v float64) {
		n := int(v)
		o.Project.CoatCount = &n
	},
	"project.prep_hours": func(o *api.ScenarioOverrides, v float64) {
		o.Project.PrepHours = &v
	},
	"project.round_trip_miles": func(o *api.ScenarioOverrides, v float64) {
		o.Project.RoundTripMiles = &v
	},
	"project.crack_length_ft": func(o *api.ScenarioOverrides, v float64) {
		o.Project.CrackLengthFt = &v
	},
}
