package compliance

import (
	"testing"

	"github.com/shopspring/decimal"

	"sealcost/pkg/api"
)

func hasIssue(issues []api.ComplianceIssue, code string) bool {
	for _, i := range issues {
		if i.Code == code {
			return true
		}
	}
	return false
}

func TestEvaluate_MarginFloor(t *testing.T) {
	ev := NewEvaluator()

	thin := api.Costs{
		Subtotal: decimal.NewFromInt(1000),
		Profit:   decimal.NewFromInt(50),
		Total:    decimal.NewFromInt(1050),
	}
	issues := ev.Evaluate(thin, api.ProjectInputs{})
	if !hasIssue(issues, "MARGIN_BELOW_FLOOR") {
		t.Fatalf("expected margin warning at %.1f%% margin, got %v", 50.0/1050*100, issues)
	}

	healthy := api.Costs{
		Subtotal: decimal.NewFromInt(1000),
		Profit:   decimal.NewFromInt(200),
		Total:    decimal.NewFromInt(1300),
	}
	if issues := ev.Evaluate(healthy, api.ProjectInputs{}); hasIssue(issues, "MARGIN_BELOW_FLOOR") {
		t.Fatalf("unexpected margin warning: %v", issues)
	}
}

func TestEvaluate_PrimerMissingIsError(t *testing.T) {
	ev := NewEvaluator()
	in := api.ProjectInputs{Logistics: api.LogisticsInputs{OilSpots: 4}}
	costs := api.Costs{
		Subtotal: decimal.NewFromInt(500),
		Profit:   decimal.NewFromInt(100),
		Total:    decimal.NewFromInt(600),
	}

	issues := ev.Evaluate(costs, in)
	if !hasIssue(issues, "PRIMER_MISSING") {
		t.Fatalf("expected primer error, got %v", issues)
	}
	for _, i := range issues {
		if i.Code == "PRIMER_MISSING" && i.Severity != api.SeverityError {
			t.Fatalf("primer issue severity = %s, want error", i.Severity)
		}
	}

	costs.Primer = decimal.NewFromInt(34)
	if issues := ev.Evaluate(costs, in); hasIssue(issues, "PRIMER_MISSING") {
		t.Fatalf("unexpected primer error once a primer line is priced: %v", issues)
	}
}

func TestEvaluate_StableSeverityOrdering(t *testing.T) {
	ev := NewEvaluator()
	// Trip an error (oil spots, no primer) and two warnings (thin margin,
	// over-dilution) at once.
	in := api.ProjectInputs{
		WaterPercent: 45,
		Logistics:    api.LogisticsInputs{OilSpots: 2},
	}
	costs := api.Costs{
		Subtotal: decimal.NewFromInt(1000),
		Profit:   decimal.NewFromInt(10),
		Total:    decimal.NewFromInt(1010),
	}

	issues := ev.Evaluate(costs, in)
	if len(issues) < 3 {
		t.Fatalf("issues = %v, want at least 3", issues)
	}
	if issues[0].Code != "PRIMER_MISSING" {
		t.Fatalf("first issue = %s, want the error first", issues[0].Code)
	}
	// Warnings keep rule order: margin before dilution.
	if issues[1].Code != "MARGIN_BELOW_FLOOR" || issues[2].Code != "OVER_DILUTION" {
		t.Fatalf("warning order = %s, %s; want MARGIN_BELOW_FLOOR then OVER_DILUTION",
			issues[1].Code, issues[2].Code)
	}

	// Order-independent: evaluating twice yields the identical list.
	again := ev.Evaluate(costs, in)
	for i := range issues {
		if issues[i] != again[i] {
			t.Fatalf("evaluation not deterministic at %d: %v vs %v", i, issues[i], again[i])
		}
	}
}

func TestEvaluate_EmptyEstimateInfo(t *testing.T) {
	issues := NewEvaluator().Evaluate(api.Costs{}, api.ProjectInputs{})
	if !hasIssue(issues, "EMPTY_ESTIMATE") {
		t.Fatalf("expected EMPTY_ESTIMATE info, got %v", issues)
	}
}

func TestEvaluate_CustomThresholds(t *testing.T) {
	ev := NewEvaluator().WithThresholds(Thresholds{MinMarginPercent: 30, MaxWaterPercent: 10})
	costs := api.Costs{
		Subtotal: decimal.NewFromInt(1000),
		Profit:   decimal.NewFromInt(250),
		Total:    decimal.NewFromInt(1250),
	}
	issues := ev.Evaluate(costs, api.ProjectInputs{WaterPercent: 15})
	if !hasIssue(issues, "MARGIN_BELOW_FLOOR") || !hasIssue(issues, "OVER_DILUTION") {
		t.Fatalf("custom thresholds not honored: %v", issues)
	}
}
