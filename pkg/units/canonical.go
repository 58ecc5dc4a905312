// Package units provides canonical unit conversions and currency
// rounding for the estimation pipeline.
package units

import (
	"github.com/shopspring/decimal"
)

const (
	// InchesPerFoot converts crack width/depth inches to feet.
	InchesPerFoot = 12.0

	// LbsPerSandBag is the purchase unit for silica sand.
	LbsPerSandBag = 50.0

	// GallonsPer100 expresses additive ratios given per 100 gallons.
	GallonsPer100 = 100.0
)

// InchesToFeet converts inches to feet.
func InchesToFeet(in float64) float64 {
	return in / InchesPerFoot
}

// CrackVolumeFt3 returns the cubic-foot volume of a crack channel given
// length in feet and width/depth in inches.
func CrackVolumeFt3(lengthFt, widthIn, depthIn float64) float64 {
	return lengthFt * InchesToFeet(widthIn) * InchesToFeet(depthIn)
}

// RoundCurrency rounds a money amount to cents. Only display and archive
// boundaries round; the pipeline itself carries full precision so repeated
// scenario runs never compound rounding error.
func RoundCurrency(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatUSD renders a money amount as $X,XXX.XX for tables and labels.
func FormatUSD(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	// Insert thousands separators into the integer part.
	dot := len(s) - 3
	intPart, frac := s[:dot], s[dot:]
	var out []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	res := "$" + string(out) + frac
	if neg {
		res = "-" + res
	}
	return res
}
