// Package compliance inspects a computed estimate and raises advisory or
// blocking issues. Evaluation is stateless and order-independent; issues
// come back in a stable order (severity descending, then rule order) so
// rendered lists and tests are reproducible.
package compliance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"sealcost/pkg/api"
)

var hundred = decimal.NewFromInt(100)

// Thresholds configures the rule set.
type Thresholds struct {
	// MinMarginPercent is the floor for profit as a share of total.
	MinMarginPercent float64
	// MaxWaterPercent caps dilution before application quality suffers.
	MaxWaterPercent float64
}

// DefaultThresholds returns the stock rule configuration.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinMarginPercent: 10,
		MaxWaterPercent:  30,
	}
}

// Evaluator runs the rule set against a computation.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator creates an evaluator with default thresholds.
func NewEvaluator() *Evaluator {
	return &Evaluator{thresholds: DefaultThresholds()}
}

// WithThresholds overrides the rule configuration.
func (e *Evaluator) WithThresholds(t Thresholds) *Evaluator {
	e.thresholds = t
	return e
}

// Evaluate derives the issue list for one computed estimate. Issues are
// recomputed on every run, never persisted.
func (e *Evaluator) Evaluate(costs api.Costs, in api.ProjectInputs) []api.ComplianceIssue {
	issues := []api.ComplianceIssue{}

	add := func(sev api.Severity, code, msg string) {
		issues = append(issues, api.ComplianceIssue{Severity: sev, Code: code, Message: msg})
	}

	// Required prep missing while a hazard flag is set: oil spots bleed
	// through sealcoat unless primed.
	if in.Logistics.OilSpots > 0 && costs.Primer.IsZero() {
		add(api.SeverityError, "PRIMER_MISSING",
			fmt.Sprintf("%d oil spots reported but no primer line is priced", in.Logistics.OilSpots))
	}

	if !costs.Total.IsZero() {
		margin, _ := costs.Profit.Div(costs.Total).Mul(hundred).Float64()
		if margin < e.thresholds.MinMarginPercent {
			add(api.SeverityWarning, "MARGIN_BELOW_FLOOR",
				fmt.Sprintf("profit margin %.1f%% is below the %.0f%% floor",
					margin, e.thresholds.MinMarginPercent))
		}
	}

	if in.WaterPercent > e.thresholds.MaxWaterPercent {
		add(api.SeverityWarning, "OVER_DILUTION",
			fmt.Sprintf("water dilution %.0f%% exceeds the %.0f%% application cap",
				in.WaterPercent, e.thresholds.MaxWaterPercent))
	}

	if in.Crack.LengthFt > 0 && !in.Premium.CrackCleaning {
		add(api.SeverityWarning, "CRACK_PREP_SKIPPED",
			fmt.Sprintf("%.0f ft of crack filling without crack cleaning", in.Crack.LengthFt))
	}

	if costs.Subtotal.IsZero() {
		add(api.SeverityInfo, "EMPTY_ESTIMATE", "estimate has no priced work")
	}

	// Stable sort: severity descending, insertion order within a severity.
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Severity.Rank() > issues[j].Severity.Rank()
	})
	return issues
}
