package pricing

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"sealcost/pkg/api"
)

func countCategory(lines []api.CostLine, cat api.Category) int {
	n := 0
	for _, l := range lines {
		if l.Category == cat {
			n++
		}
	}
	return n
}

func sumCategory(lines []api.CostLine, cat api.Category) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		if l.Category == cat {
			total = total.Add(l.Amount)
		}
	}
	return total
}

func TestBuildLines_DisabledStripingContributesNoLines(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	in := api.ProjectInputs{
		Striping: api.StripingInputs{
			Include:        false,
			Lines:          40,
			HandicapStalls: 2,
		},
	}

	lines, err := BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if n := countCategory(lines, api.CategoryStriping); n != 0 {
		t.Fatalf("striping lines = %d, want 0 (breakdown must shrink, not zero out)", n)
	}

	in.Striping.Include = true
	lines, err = BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if n := countCategory(lines, api.CategoryStriping); n != 2 {
		t.Fatalf("striping lines = %d, want 2", n)
	}
	want := bs.Striping.Line.Mul(decimal.NewFromInt(40)).
		Add(bs.Striping.Handicap.Mul(decimal.NewFromInt(2)))
	if got := sumCategory(lines, api.CategoryStriping); !got.Equal(want) {
		t.Fatalf("striping total = %s, want %s", got, want)
	}
}

func TestBuildLines_SealcoatPerCoatLines(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	bs.Prices.SealerPerGallon = decimal.NewFromInt(4)
	q := api.Quantities{ConcentrateGalPerCoat: []float64{150, 120}, ConcentrateGal: 270}

	lines, err := BuildLines(q, api.ProjectInputs{}, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if n := countCategory(lines, api.CategorySealcoat); n != 2 {
		t.Fatalf("sealcoat lines = %d, want one per coat", n)
	}
	if got := sumCategory(lines, api.CategorySealcoat); !got.Equal(decimal.NewFromInt(1080)) {
		t.Fatalf("sealcoat total = %s, want 1080", got)
	}
}

func TestBuildLines_LaborUsesCrewSize(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	bs.EmployeeCount = 3
	bs.HourlyRate = decimal.NewFromInt(20)
	q := api.Quantities{LaborHoursTotal: 5}

	lines, err := BuildLines(q, api.ProjectInputs{}, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if got := sumCategory(lines, api.CategoryLabor); !got.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("labor = %s, want 300 (5 hr x $20 x 3)", got)
	}
}

func TestBuildLines_PremiumTogglesAndQuantities(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	bs.Premium = api.PremiumRates{
		EdgePushingPerFt:    decimal.NewFromFloat(0.5),
		WeedKiller:          decimal.NewFromInt(75),
		PowerWashingPerSqFt: decimal.NewFromFloat(0.1),
		DebrisRemoval:       decimal.NewFromInt(90),
	}
	in := api.ProjectInputs{
		Premium: api.PremiumInputs{
			EdgePushing:      true,
			EdgePushingFt:    200,
			WeedKiller:       true,
			PowerWashing:     true,
			PowerWashingSqFt: 1000,
		},
	}

	lines, err := BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if n := countCategory(lines, api.CategoryPremium); n != 3 {
		t.Fatalf("premium lines = %d, want 3 (debris removal off)", n)
	}
	want := decimal.NewFromInt(100).Add(decimal.NewFromInt(75)).Add(decimal.NewFromInt(100))
	if got := sumCategory(lines, api.CategoryPremium); !got.Equal(want) {
		t.Fatalf("premium total = %s, want %s", got, want)
	}
}

func TestBuildLines_CustomServiceDispatch(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	in := api.ProjectInputs{
		TotalAreaSqFt: 2000,
		Custom: []api.CustomService{
			{Name: "Site survey", UnitPrice: decimal.NewFromInt(150), Quantity: 99, Pricing: api.PricingFlat},
			{Name: "Fog seal", UnitPrice: decimal.NewFromFloat(0.05), Pricing: api.PricingPerArea},
			{Name: "Thermo line", UnitPrice: decimal.NewFromInt(2), Quantity: 50, Pricing: api.PricingPerLength},
			{Name: "Bollard", UnitPrice: decimal.NewFromInt(40), Quantity: 3, Pricing: api.PricingPerUnit},
		},
	}

	lines, err := BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	// flat ignores quantity; per_area uses project area; the others use
	// the service quantity.
	want := decimal.NewFromInt(150).
		Add(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(100)).
		Add(decimal.NewFromInt(120))
	if got := sumCategory(lines, api.CategoryCustom); !got.Equal(want) {
		t.Fatalf("custom total = %s, want %s", got, want)
	}
}

func TestBuildLines_CustomServiceBadQuantitiesClampToZero(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	in := api.ProjectInputs{
		TotalAreaSqFt: math.NaN(),
		Custom: []api.CustomService{
			{Name: "Bollard", UnitPrice: decimal.NewFromInt(40), Quantity: -5, Pricing: api.PricingPerUnit},
			{Name: "Thermo line", UnitPrice: decimal.NewFromInt(2), Quantity: math.NaN(), Pricing: api.PricingPerLength},
			{Name: "Fog seal", UnitPrice: decimal.NewFromFloat(0.05), Pricing: api.PricingPerArea},
			{Name: "Site survey", UnitPrice: decimal.NewFromInt(150), Quantity: math.Inf(1), Pricing: api.PricingFlat},
		},
	}

	lines, err := BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	// Bad quantities clamp to zero and drop their lines; a flat service
	// never reads its quantity, so only it survives.
	if n := countCategory(lines, api.CategoryCustom); n != 1 {
		t.Fatalf("custom lines = %d, want 1", n)
	}
	got := sumCategory(lines, api.CategoryCustom)
	if got.IsNegative() {
		t.Fatalf("custom total = %s, must never go negative", got)
	}
	if !got.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("custom total = %s, want 150", got)
	}
}

func TestBuildLines_NonFinitePremiumQuantitiesClampToZero(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	in := api.ProjectInputs{
		Premium: api.PremiumInputs{
			EdgePushing:      true,
			EdgePushingFt:    math.Inf(1),
			PowerWashing:     true,
			PowerWashingSqFt: math.NaN(),
		},
		Striping: api.StripingInputs{Include: true, CurbFt: math.Inf(1)},
	}

	lines, err := BuildLines(api.Quantities{}, in, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("lines = %d, want 0 when every quantity clamps away", len(lines))
	}
}

func TestBuildLines_UnknownPricingTypeFails(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	in := api.ProjectInputs{
		Custom: []api.CustomService{
			{Name: "Mystery", UnitPrice: decimal.NewFromInt(10), Pricing: "per_mile"},
		},
	}
	if _, err := BuildLines(api.Quantities{}, in, bs); err == nil {
		t.Fatal("BuildLines() expected error for unknown pricing type")
	}
}

func TestBuildLines_ZeroQuantitiesProduceNoLines(t *testing.T) {
	bs := api.DefaultBusinessSettings()
	lines, err := BuildLines(api.Quantities{}, api.ProjectInputs{}, bs)
	if err != nil {
		t.Fatalf("BuildLines() error = %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("lines = %d, want 0 for an empty job", len(lines))
	}
}
