package api

import "github.com/shopspring/decimal"

// ApplyTo returns a copy of the baseline inputs with every non-nil patch
// field substituted. The baseline is never mutated.
func (p ProjectPatch) ApplyTo(in ProjectInputs) ProjectInputs {
	if p.TotalAreaSqFt != nil {
		in.TotalAreaSqFt = *p.TotalAreaSqFt
	}
	if p.CoatCount != nil {
		in.CoatCount = *p.CoatCount
	}
	if p.SandAdditive != nil {
		in.SandAdditive = *p.SandAdditive
	}
	if p.PolymerAdditive != nil {
		in.PolymerAdditive = *p.PolymerAdditive
	}
	if p.WaterPercent != nil {
		in.WaterPercent = *p.WaterPercent
	}
	if p.CrackLengthFt != nil {
		in.Crack.LengthFt = *p.CrackLengthFt
	}
	if p.CrackWidthIn != nil {
		in.Crack.WidthIn = *p.CrackWidthIn
	}
	if p.CrackDepthIn != nil {
		in.Crack.DepthIn = *p.CrackDepthIn
	}
	if p.IncludeStriping != nil {
		in.Striping.Include = *p.IncludeStriping
	}
	if p.PrepHours != nil {
		in.Logistics.PrepHours = *p.PrepHours
	}
	if p.PropaneTanks != nil {
		in.Logistics.PropaneTanks = *p.PropaneTanks
	}
	if p.OilSpots != nil {
		in.Logistics.OilSpots = *p.OilSpots
	}
	if p.RoundTripMiles != nil {
		in.Logistics.RoundTripMiles = *p.RoundTripMiles
	}
	if p.Vehicle != nil {
		in.Logistics.Vehicle = *p.Vehicle
	}
	return in
}

// ApplyTo returns a copy of the baseline settings with every non-nil patch
// field substituted.
func (b BusinessPatch) ApplyTo(bs BusinessSettings) BusinessSettings {
	if b.EmployeeCount != nil {
		bs.EmployeeCount = *b.EmployeeCount
	}
	if b.HourlyRate != nil {
		bs.HourlyRate = decimal.NewFromFloat(*b.HourlyRate)
	}
	if b.OverheadPercent != nil {
		bs.OverheadPercent = *b.OverheadPercent
	}
	if b.ProfitPercent != nil {
		bs.ProfitPercent = *b.ProfitPercent
	}
	if b.SealerPerGallon != nil {
		bs.Prices.SealerPerGallon = decimal.NewFromFloat(*b.SealerPerGallon)
	}
	if b.SandPerBag != nil {
		bs.Prices.SandPerBag = decimal.NewFromFloat(*b.SandPerBag)
	}
	if b.GasPerGallon != nil {
		bs.Prices.GasPerGallon = decimal.NewFromFloat(*b.GasPerGallon)
	}
	if b.SandRatio != nil {
		bs.Rates.SandRatioLbsPer100Gal = *b.SandRatio
	}
	return bs
}

// Apply merges the overrides into a baseline and returns the effective
// inputs for one pipeline run.
func (o ScenarioOverrides) Apply(in ProjectInputs, bs BusinessSettings) (ProjectInputs, BusinessSettings) {
	return o.Project.ApplyTo(in), o.Business.ApplyTo(bs)
}

// Merge shallow-merges another patch into this one: non-nil fields of the
// incoming patch win, everything else is kept.
func (p ProjectPatch) Merge(in ProjectPatch) ProjectPatch {
	if in.TotalAreaSqFt != nil {
		p.TotalAreaSqFt = in.TotalAreaSqFt
	}
	if in.CoatCount != nil {
		p.CoatCount = in.CoatCount
	}
	if in.SandAdditive != nil {
		p.SandAdditive = in.SandAdditive
	}
	if in.PolymerAdditive != nil {
		p.PolymerAdditive = in.PolymerAdditive
	}
	if in.WaterPercent != nil {
		p.WaterPercent = in.WaterPercent
	}
	if in.CrackLengthFt != nil {
		p.CrackLengthFt = in.CrackLengthFt
	}
	if in.CrackWidthIn != nil {
		p.CrackWidthIn = in.CrackWidthIn
	}
	if in.CrackDepthIn != nil {
		p.CrackDepthIn = in.CrackDepthIn
	}
	if in.IncludeStriping != nil {
		p.IncludeStriping = in.IncludeStriping
	}
	if in.PrepHours != nil {
		p.PrepHours = in.PrepHours
	}
	if in.PropaneTanks != nil {
		p.PropaneTanks = in.PropaneTanks
	}
	if in.OilSpots != nil {
		p.OilSpots = in.OilSpots
	}
	if in.RoundTripMiles != nil {
		p.RoundTripMiles = in.RoundTripMiles
	}
	if in.Vehicle != nil {
		p.Vehicle = in.Vehicle
	}
	return p
}

// Merge shallow-merges another patch into this one.
func (b BusinessPatch) Merge(in BusinessPatch) BusinessPatch {
	if in.EmployeeCount != nil {
		b.EmployeeCount = in.EmployeeCount
	}
	if in.HourlyRate != nil {
		b.HourlyRate = in.HourlyRate
	}
	if in.OverheadPercent != nil {
		b.OverheadPercent = in.OverheadPercent
	}
	if in.ProfitPercent != nil {
		b.ProfitPercent = in.ProfitPercent
	}
	if in.SealerPerGallon != nil {
		b.SealerPerGallon = in.SealerPerGallon
	}
	if in.SandPerBag != nil {
		b.SandPerBag = in.SandPerBag
	}
	if in.GasPerGallon != nil {
		b.GasPerGallon = in.GasPerGallon
	}
	if in.SandRatio != nil {
		b.SandRatio = in.SandRatio
	}
	return b
}

// Merge combines both namespaces of two override sets.
func (o ScenarioOverrides) Merge(in ScenarioOverrides) ScenarioOverrides {
	return ScenarioOverrides{
		Project:  o.Project.Merge(in.Project),
		Business: o.Business.Merge(in.Business),
	}
}
