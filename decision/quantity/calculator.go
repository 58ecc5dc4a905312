// Package quantity converts physical job measurements into consumed
// material quantities and labor hours. All functions are pure: raw inputs
// in, quantities out, no I/O and no stored state.
package quantity

import (
	"math"

	"sealcost/pkg/api"
	"sealcost/pkg/errors"
	"sealcost/pkg/units"
)

// Clamp coerces a raw input into a usable non-negative number. Negative,
// NaN, and infinite values become 0 so a single bad field can never push
// NaN into the downstream totals.
func Clamp(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ClampInt coerces a count to a non-negative integer.
func ClampInt(v int) int {
	if v < 0 {
		return 0
	}
	return v
}

// ClampCoats keeps the coat count in the supported 1-3 range.
func ClampCoats(n int) int {
	if n < 1 {
		return 1
	}
	if n > 3 {
		return 3
	}
	return n
}

// coverageFor returns the gal/sq ft rate for a zero-based coat index.
// Coats past the configured slice reuse the last entry.
func coverageFor(rates api.ProductionRates, coat int) float64 {
	if len(rates.CoverageGalPerSqFt) == 0 {
		return 0
	}
	if coat >= len(rates.CoverageGalPerSqFt) {
		coat = len(rates.CoverageGalPerSqFt) - 1
	}
	return rates.CoverageGalPerSqFt[coat]
}

// Compute derives all consumed quantities for one job.
//
// Dilution water is added volume: concentrate purchased is computed before
// dilution, and the diluted (applied) volume is tracked only for crew
// planning. Dilution never reduces material cost, on any coat.
func Compute(in api.ProjectInputs, bs api.BusinessSettings) (api.Quantities, error) {
	var q api.Quantities
	rates := bs.Rates

	area := Clamp(in.TotalAreaSqFt)
	coats := ClampCoats(in.CoatCount)
	water := Clamp(in.WaterPercent)

	// Sealcoat concentrate, per coat.
	q.ConcentrateGalPerCoat = make([]float64, coats)
	for c := 0; c < coats; c++ {
		rate := coverageFor(rates, c)
		if area > 0 && rate <= 0 {
			return q, errors.Newf(errors.ErrCodeInvalidRates,
				"coverage rate for coat %d is not configured", c+1).WithField("coverage_gal_per_sqft")
		}
		q.ConcentrateGalPerCoat[c] = area * rate
		q.ConcentrateGal += q.ConcentrateGalPerCoat[c]
	}
	q.WaterGal = q.ConcentrateGal * water / 100
	q.AppliedGal = q.ConcentrateGal + q.WaterGal

	// Additives ride on total concentrate volume.
	if in.SandAdditive {
		q.SandLbs = q.ConcentrateGal * Clamp(rates.SandRatioLbsPer100Gal) / units.GallonsPer100
		q.SandBags = int(math.Ceil(q.SandLbs / units.LbsPerSandBag))
	}
	if in.PolymerAdditive {
		q.PolymerGal = q.ConcentrateGal * Clamp(rates.PolymerRatioPercent) / 100
	}

	// Crack filler: channel volume to whole product boxes.
	crackLen := Clamp(in.Crack.LengthFt)
	q.CrackVolumeFt3 = units.CrackVolumeFt3(crackLen, Clamp(in.Crack.WidthIn), Clamp(in.Crack.DepthIn))
	if q.CrackVolumeFt3 > 0 {
		if rates.CrackFillerBoxYieldFt3 <= 0 {
			return q, errors.New(errors.ErrCodeInvalidRates,
				"crack filler box yield is not configured").WithField("crack_filler_box_yield_ft3")
		}
		q.CrackFillerBoxes = int(math.Ceil(q.CrackVolumeFt3 / rates.CrackFillerBoxYieldFt3))
	}

	q.PropaneTanks = ClampInt(in.Logistics.PropaneTanks)
	q.OilSpots = ClampInt(in.Logistics.OilSpots)

	// Fuel for the round trip, using the selected vehicle profile.
	miles := Clamp(in.Logistics.RoundTripMiles)
	if miles > 0 {
		vehicle := in.Logistics.Vehicle
		if vehicle < 0 || vehicle >= len(bs.Vehicles) {
			vehicle = 0
		}
		mpg := bs.Vehicles[vehicle].MPG
		if mpg <= 0 {
			return q, errors.Newf(errors.ErrCodeInvalidRates,
				"vehicle %q has no MPG configured", bs.Vehicles[vehicle].Name).WithField("vehicles")
		}
		q.FuelGal = miles / mpg
	}

	// Labor: coat 1 on dry pavement is slower than later coats.
	if area > 0 {
		if rates.SealcoatSqFtPerHour1 <= 0 || (coats > 1 && rates.SealcoatSqFtPerHour2 <= 0) {
			return q, errors.New(errors.ErrCodeInvalidRates,
				"sealcoating speed is not configured").WithField("sealcoat_sqft_per_hour")
		}
		q.LaborHoursSealcoat = area / rates.SealcoatSqFtPerHour1
		for c := 1; c < coats; c++ {
			q.LaborHoursSealcoat += area / rates.SealcoatSqFtPerHour2
		}
	}
	if crackLen > 0 {
		if rates.CrackFtPerHour <= 0 {
			return q, errors.New(errors.ErrCodeInvalidRates,
				"crack sealing speed is not configured").WithField("crack_ft_per_hour")
		}
		q.LaborHoursCrack = crackLen / rates.CrackFtPerHour
	}
	q.LaborHoursPrep = Clamp(in.Logistics.PrepHours)
	q.LaborHoursTotal = q.LaborHoursSealcoat + q.LaborHoursPrep + q.LaborHoursCrack

	return q, nil
}
