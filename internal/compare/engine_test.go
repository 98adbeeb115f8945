package compare

import (
	"context"
	"testing"
	"time"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCompareEngine() *CompareEngine {
	pe := calculation.NewProjectionEngine()
	pe.Clock = func() time.Time { return time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC) }
	return NewCompareEngine(pe, nil)
}

func TestCompare_WithTemplates(t *testing.T) {
	ce := newTestCompareEngine()
	cfg := domain.DefaultConfiguration(2025)
	cfg.ProjectionYears = 30

	set, err := ce.Compare(context.Background(), cfg, CompareOptions{
		Templates:  []string{"return_low", "return_high", "no_riders"},
		ConfigPath: "scenario.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "GLA4 default", set.BaseScenarioName)
	assert.Equal(t, "scenario.yaml", set.ConfigPath)
	require.NotNil(t, set.BaseResult)
	require.Len(t, set.AlternativeResults, 3)

	low, high, noRiders := set.AlternativeResults[0], set.AlternativeResults[1], set.AlternativeResults[2]
	assert.Equal(t, "GLA4 default_return_low", low.ScenarioName)
	assert.Equal(t, "Illustrate at 8% a year", high.Description)
	assert.Equal(t, "2", low.IllustratedReturnPct)
	assert.Equal(t, "8", high.IllustratedReturnPct)

	base := set.BaseResult
	assert.Equal(t, 30, base.YearsInForce)
	assert.True(t, high.FinalAccountValue.GreaterThan(base.FinalAccountValue))
	assert.True(t, low.FinalAccountValue.LessThan(base.FinalAccountValue))
	assert.True(t, high.ValueDiffFromBase.IsPositive())
	assert.True(t, low.ValueDiffFromBase.IsNegative())

	// Dropping the riders removes their COI.
	assert.True(t, noRiders.ChargesDiffFromBase.IsNegative())
	assert.Contains(t, set.Recommendations[0], "Highest Value: GLA4 default_return_high")

	// The base configuration is never modified.
	assert.True(t, cfg.Policy.IllustratedReturnPct.Equal(decimal.NewFromInt(4)))
}

func TestCompare_UnknownTemplate(t *testing.T) {
	ce := newTestCompareEngine()
	_, err := ce.Compare(context.Background(), domain.DefaultConfiguration(2025), CompareOptions{
		Templates: []string{"retire_early"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template retire_early not found")
}

func TestCompare_NilConfiguration(t *testing.T) {
	_, err := newTestCompareEngine().Compare(context.Background(), nil, CompareOptions{})
	assert.Error(t, err)
}

func TestCompare_BadTableSource(t *testing.T) {
	ce := newTestCompareEngine()
	cfg := domain.DefaultConfiguration(2025)
	cfg.Tables.CI = "/does/not/exist.csv"

	_, err := ce.Compare(context.Background(), cfg, CompareOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load tables")
}

func TestCompare_Cancelled(t *testing.T) {
	ce := newTestCompareEngine()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ce.Compare(ctx, domain.DefaultConfiguration(2025), CompareOptions{Templates: []string{"return_low"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareConfigurations(t *testing.T) {
	ce := newTestCompareEngine()
	base := domain.DefaultConfiguration(2025)
	base.ProjectionYears = 20

	alt := base.DeepCopy()
	alt.Name = ""
	alt.Policy.AnnualPremium = decimal.NewFromInt(3000)

	set, err := ce.CompareConfigurations(context.Background(), base, []*domain.Configuration{alt})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 1)

	got := set.AlternativeResults[0]
	assert.Equal(t, "alternative_1", got.ScenarioName)
	assert.True(t, got.TotalPremiums.Equal(decimal.NewFromInt(60000)))
	assert.True(t, got.FinalAccountValue.GreaterThan(set.BaseResult.FinalAccountValue))
}

func TestCompare_ChargeScheduleFollowsVariant(t *testing.T) {
	ce := newTestCompareEngine()
	base := domain.DefaultConfiguration(2025)
	base.ProjectionYears = 5

	alt := base.DeepCopy()
	alt.Name = "no charges"
	alt.Charges = []domain.ChargeBand{{FromYear: 1, ToYear: 200, PremiumChargePct: decimal.Zero}}

	set, err := ce.CompareConfigurations(context.Background(), base, []*domain.Configuration{alt})
	require.NoError(t, err)

	// Same tables, so the loaded reference is shared, but the charges differ.
	baseFirst := set.BaseResult.Projection.Records[0]
	altFirst := set.AlternativeResults[0].Projection.Records[0]
	assert.True(t, baseFirst.PremiumCharge.Equal(decimal.RequireFromString("1808.04")))
	assert.True(t, altFirst.PremiumCharge.IsZero())
}
