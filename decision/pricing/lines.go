// Package pricing turns computed quantities and business rates into priced,
// ordered cost lines. Disabled or zero-quantity categories contribute no
// lines at all: the breakdown shrinks, it does not show $0 rows.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"sealcost/decision/quantity"
	"sealcost/pkg/api"
	"sealcost/pkg/errors"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// BuildLines produces the itemized breakdown for one job. Line order is
// stable: labor, materials, logistics, striping, premium, custom.
func BuildLines(q api.Quantities, in api.ProjectInputs, bs api.BusinessSettings) ([]api.CostLine, error) {
	var lines []api.CostLine

	add := func(cat api.Category, item string, amount decimal.Decimal) {
		lines = append(lines, api.CostLine{Category: cat, Item: item, Amount: amount})
	}

	// Labor is wall-clock hours times hourly rate times crew size.
	if q.LaborHoursTotal > 0 {
		crew := bs.EmployeeCount
		if crew < 1 {
			crew = 1
		}
		amount := bs.HourlyRate.Mul(dec(q.LaborHoursTotal)).Mul(decimal.NewFromInt(int64(crew)))
		add(api.CategoryLabor,
			fmt.Sprintf("Labor (%.1f hr, crew of %d)", q.LaborHoursTotal, crew), amount)
	}

	// Sealcoat concentrate, one line per coat to show the intermediate math.
	for c, gal := range q.ConcentrateGalPerCoat {
		if gal <= 0 {
			continue
		}
		add(api.CategorySealcoat,
			fmt.Sprintf("Sealcoat concentrate, coat %d (%.1f gal)", c+1, gal),
			bs.Prices.SealerPerGallon.Mul(dec(gal)))
	}

	if in.SandAdditive && q.SandBags > 0 {
		add(api.CategorySand,
			fmt.Sprintf("Silica sand (%d bags, %.0f lbs)", q.SandBags, q.SandLbs),
			bs.Prices.SandPerBag.Mul(decimal.NewFromInt(int64(q.SandBags))))
	}

	if in.PolymerAdditive && q.PolymerGal > 0 {
		label := "Polymer additive"
		if in.PolymerType != "" {
			label = fmt.Sprintf("Polymer additive (%s)", in.PolymerType)
		}
		add(api.CategoryAdditives,
			fmt.Sprintf("%s, %.1f gal", label, q.PolymerGal),
			bs.Prices.PolymerPerGallon.Mul(dec(q.PolymerGal)))
	}

	if q.CrackFillerBoxes > 0 {
		add(api.CategoryCrackFiller,
			fmt.Sprintf("Crack filler (%d boxes for %.0f ft)", q.CrackFillerBoxes, in.Crack.LengthFt),
			bs.Prices.CrackFillerBox.Mul(decimal.NewFromInt(int64(q.CrackFillerBoxes))))
	}

	if q.PropaneTanks > 0 {
		add(api.CategoryPropane,
			fmt.Sprintf("Propane (%d tanks)", q.PropaneTanks),
			bs.Prices.PropaneTank.Mul(decimal.NewFromInt(int64(q.PropaneTanks))))
	}

	if q.OilSpots > 0 {
		add(api.CategoryPrimer,
			fmt.Sprintf("Oil spot primer (%d spots)", q.OilSpots),
			bs.Prices.PrimerPerSpot.Mul(decimal.NewFromInt(int64(q.OilSpots))))
	}

	if q.FuelGal > 0 {
		add(api.CategoryTravel,
			fmt.Sprintf("Fuel (%.1f gal round trip)", q.FuelGal),
			bs.Prices.GasPerGallon.Mul(dec(q.FuelGal)))
	}

	if in.Striping.Include {
		lines = append(lines, stripingLines(in.Striping, bs.Striping)...)
	}

	lines = append(lines, premiumLines(in.Premium, bs.Premium)...)

	custom, err := customLines(in.Custom, in.TotalAreaSqFt)
	if err != nil {
		return nil, err
	}
	lines = append(lines, custom...)

	return lines, nil
}

// stripingLines prices the six striping unit types.
func stripingLines(s api.StripingInputs, rates api.StripingRates) []api.CostLine {
	var lines []api.CostLine
	count := func(item string, n int, rate decimal.Decimal) {
		if n > 0 {
			lines = append(lines, api.CostLine{
				Category: api.CategoryStriping,
				Item:     fmt.Sprintf("%s (%d)", item, n),
				Amount:   rate.Mul(decimal.NewFromInt(int64(n))),
			})
		}
	}
	count("Parking lines", s.Lines, rates.Line)
	count("Handicap stalls", s.HandicapStalls, rates.Handicap)
	count("Large arrows", s.ArrowsLarge, rates.ArrowLarge)
	count("Small arrows", s.ArrowsSmall, rates.ArrowSmall)
	count("Stencil lettering", s.LetteringChars, rates.LetterPerChar)
	if curb := quantity.Clamp(s.CurbFt); curb > 0 {
		lines = append(lines, api.CostLine{
			Category: api.CategoryStriping,
			Item:     fmt.Sprintf("Curb painting (%.0f ft)", curb),
			Amount:   rates.CurbPerFt.Mul(dec(curb)),
		})
	}
	return lines
}

// premiumLines prices the premium add-ons: flat toggles plus the two
// quantity-based services.
func premiumLines(p api.PremiumInputs, rates api.PremiumRates) []api.CostLine {
	var lines []api.CostLine
	add := func(item string, amount decimal.Decimal) {
		lines = append(lines, api.CostLine{Category: api.CategoryPremium, Item: item, Amount: amount})
	}
	if ft := quantity.Clamp(p.EdgePushingFt); p.EdgePushing && ft > 0 {
		add(fmt.Sprintf("Edge pushing (%.0f ft)", ft),
			rates.EdgePushingPerFt.Mul(dec(ft)))
	}
	if p.WeedKiller {
		add("Weed killer treatment", rates.WeedKiller)
	}
	if p.CrackCleaning {
		add("Crack cleaning", rates.CrackCleaning)
	}
	if sqft := quantity.Clamp(p.PowerWashingSqFt); p.PowerWashing && sqft > 0 {
		add(fmt.Sprintf("Power washing (%.0f sq ft)", sqft),
			rates.PowerWashingPerSqFt.Mul(dec(sqft)))
	}
	if p.DebrisRemoval {
		add("Debris removal", rates.DebrisRemoval)
	}
	return lines
}

// customLines dispatches on the pricing type discriminator. An empty type
// is treated as flat; anything unrecognized is a configuration error.
// Quantities and the area pass through the same clamp as the quantity
// calculator, so a NaN or negative field drops the line instead of
// poisoning the totals.
func customLines(services []api.CustomService, areaSqFt float64) ([]api.CostLine, error) {
	var lines []api.CostLine
	area := quantity.Clamp(areaSqFt)
	for _, svc := range services {
		qty := quantity.Clamp(svc.Quantity)
		var amount decimal.Decimal
		var item string
		switch svc.Pricing {
		case api.PricingFlat, "":
			amount = svc.UnitPrice
			item = svc.Name
		case api.PricingPerArea:
			amount = svc.UnitPrice.Mul(dec(area))
			item = fmt.Sprintf("%s (%.0f sq ft)", svc.Name, area)
		case api.PricingPerLength:
			amount = svc.UnitPrice.Mul(dec(qty))
			item = fmt.Sprintf("%s (%.0f ft)", svc.Name, qty)
		case api.PricingPerUnit:
			amount = svc.UnitPrice.Mul(dec(qty))
			item = fmt.Sprintf("%s (%.0f units)", svc.Name, qty)
		default:
			return nil, errors.Newf(errors.ErrCodeUnknownPricing,
				"custom service %q has unknown pricing type %q", svc.Name, svc.Pricing)
		}
		if amount.IsZero() {
			continue
		}
		lines = append(lines, api.CostLine{Category: api.CategoryCustom, Item: item, Amount: amount})
	}
	return lines, nil
}
