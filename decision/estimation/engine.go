// Package estimation combines quantities, cost lines, and markups into the
// final estimate. Engine.Estimate is the one-call pipeline used by the
// scenario manager, the sensitivity analyzer, and the outer surfaces.
package estimation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"sealcost/decision/compliance"
	"sealcost/decision/pricing"
	"sealcost/decision/quantity"
	"sealcost/pkg/api"
)

// Aggregate sums cost lines into the canonical Costs object and layers the
// overhead and profit markups on top.
//
// The markup ordering is load-bearing: overhead applies to the subtotal,
// profit applies to subtotal plus overhead. Amounts keep full precision;
// rounding belongs to display and archive boundaries.
func Aggregate(lines []api.CostLine, bs api.BusinessSettings) api.Costs {
	var c api.Costs

	for _, line := range lines {
		switch line.Category {
		case api.CategoryLabor:
			c.Labor = c.Labor.Add(line.Amount)
		case api.CategorySealcoat:
			c.Sealcoat = c.Sealcoat.Add(line.Amount)
		case api.CategorySand:
			c.Sand = c.Sand.Add(line.Amount)
		case api.CategoryAdditives:
			c.Additives = c.Additives.Add(line.Amount)
		case api.CategoryCrackFiller:
			c.CrackFiller = c.CrackFiller.Add(line.Amount)
		case api.CategoryPropane:
			c.Propane = c.Propane.Add(line.Amount)
		case api.CategoryPrimer:
			c.Primer = c.Primer.Add(line.Amount)
		case api.CategoryStriping:
			c.Striping = c.Striping.Add(line.Amount)
		case api.CategoryTravel:
			c.Travel = c.Travel.Add(line.Amount)
		case api.CategoryPremium:
			c.PremiumService = c.PremiumService.Add(line.Amount)
		case api.CategoryCustom:
			c.CustomService = c.CustomService.Add(line.Amount)
		}
		c.Subtotal = c.Subtotal.Add(line.Amount)
	}

	overheadPct := clampPercent(bs.OverheadPercent)
	profitPct := clampPercent(bs.ProfitPercent)

	hundred := decimal.NewFromInt(100)
	c.Overhead = c.Subtotal.Mul(decimal.NewFromFloat(overheadPct)).Div(hundred)
	c.Profit = c.Subtotal.Add(c.Overhead).Mul(decimal.NewFromFloat(profitPct)).Div(hundred)
	c.Total = c.Subtotal.Add(c.Overhead).Add(c.Profit)

	return c
}

// clampPercent keeps a markup percent inside [0, 100].
func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Engine runs the full pipeline: quantities, lines, aggregation,
// compliance. It is stateless and safe for concurrent use.
type Engine struct {
	evaluator *compliance.Evaluator
}

// NewEngine creates an engine with the default compliance thresholds.
func NewEngine() *Engine {
	return &Engine{evaluator: compliance.NewEvaluator()}
}

// WithEvaluator swaps in a configured compliance evaluator.
func (e *Engine) WithEvaluator(ev *compliance.Evaluator) *Engine {
	e.evaluator = ev
	return e
}

// Estimate prices one job end to end.
func (e *Engine) Estimate(in api.ProjectInputs, bs api.BusinessSettings) (*api.Computation, error) {
	q, err := quantity.Compute(in, bs)
	if err != nil {
		return nil, err
	}

	lines, err := pricing.BuildLines(q, in, bs)
	if err != nil {
		return nil, err
	}

	costs := Aggregate(lines, bs)

	return &api.Computation{
		Quantities: q,
		Costs:      costs,
		Breakdown:  lines,
		Compliance: e.evaluator.Evaluate(costs, in),
		ComputedAt: time.Now().UTC(),
	}, nil
}
