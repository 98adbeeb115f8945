package compare

import (
	"fmt"

	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string             `json:"scenarioName"`
	Description  string             `json:"description"`
	Projection   *domain.Projection `json:"-"`

	// Key Metrics
	YearsInForce      int             `json:"yearsInForce"`
	LapseYear         int             `json:"lapseYear"` // 0 when the policy never lapsed
	LapseAge          int             `json:"lapseAge"`
	FinalAccountValue decimal.Decimal `json:"finalAccountValue"`
	TotalPremiums     decimal.Decimal `json:"totalPremiums"`
	TotalCharges      decimal.Decimal `json:"totalCharges"`
	PeakNLGDebt       decimal.Decimal `json:"peakNlgDebt"`

	// Comparison to Base
	ValueDiffFromBase   decimal.Decimal `json:"valueDiffFromBase"`
	ValuePctFromBase    decimal.Decimal `json:"valuePctFromBase"`
	YearsDiffFromBase   int             `json:"yearsDiffFromBase"`
	ChargesDiffFromBase decimal.Decimal `json:"chargesDiffFromBase"`
	DebtDiffFromBase    decimal.Decimal `json:"debtDiffFromBase"`

	// Scenario specifics for display
	IllustratedReturnPct string `json:"illustratedReturnPct,omitempty"`
	PremiumHolidayYear   int    `json:"premiumHolidayYear,omitempty"`
	NLGActive            bool   `json:"nlgActive"`
}

// Lapsed reports whether the scenario ended in a lapse.
func (r ComparisonResult) Lapsed() bool { return r.LapseYear > 0 }

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ConfigPath         string             `json:"configPath"`
}

// All returns the base followed by the alternatives.
func (cs *ComparisonSet) All() []ComparisonResult {
	all := make([]ComparisonResult, 0, len(cs.AlternativeResults)+1)
	if cs.BaseResult != nil {
		all = append(all, *cs.BaseResult)
	}
	return append(all, cs.AlternativeResults...)
}

// MetricsCalculator extracts key metrics from projections
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the comparison metrics for one projection
func (mc *MetricsCalculator) CalculateMetrics(name string, params domain.PolicyParameters, p *domain.Projection) ComparisonResult {
	s := p.Summary
	return ComparisonResult{
		ScenarioName:         name,
		Projection:           p,
		YearsInForce:         mc.yearsInForce(s),
		LapseYear:            s.LapseYear,
		LapseAge:             s.LapseAge,
		FinalAccountValue:    s.FinalAccountValue,
		TotalPremiums:        s.TotalPremiums,
		TotalCharges:         s.TotalCharges,
		PeakNLGDebt:          s.PeakNLGDebt,
		IllustratedReturnPct: params.IllustratedReturnPct.String(),
		PremiumHolidayYear:   params.PremiumHolidayYear,
		NLGActive:            params.NLGActive,
	}
}

// The lapse row is recorded but the policy is not in force at its end.
func (mc *MetricsCalculator) yearsInForce(s domain.ProjectionSummary) int {
	if s.Lapsed() {
		return s.LapseYear - 1
	}
	return s.Years
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.ValueDiffFromBase = scenario.FinalAccountValue.Sub(base.FinalAccountValue)

	if !base.FinalAccountValue.IsZero() {
		scenario.ValuePctFromBase = scenario.ValueDiffFromBase.
			Div(base.FinalAccountValue).
			Mul(decimal.NewFromInt(100))
	}

	scenario.YearsDiffFromBase = scenario.YearsInForce - base.YearsInForce
	scenario.ChargesDiffFromBase = scenario.TotalCharges.Sub(base.TotalCharges)
	scenario.DebtDiffFromBase = scenario.PeakNLGDebt.Sub(base.PeakNLGDebt)

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Highest final account value
	bestValue := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalAccountValue.GreaterThan(bestValue.FinalAccountValue) {
			bestValue = alt
		}
	}
	if bestValue != base {
		diff := bestValue.FinalAccountValue.Sub(base.FinalAccountValue)
		recommendations = append(recommendations,
			"Highest Value: "+bestValue.ScenarioName+" ends with $"+diff.StringFixed(0)+
				" more account value than the base scenario")
	}

	// Longest in force, only interesting when the base lapses
	if base.Lapsed() {
		longest := base
		for i := range compSet.AlternativeResults {
			alt := &compSet.AlternativeResults[i]
			if alt.YearsInForce > longest.YearsInForce {
				longest = alt
			}
		}
		if longest != base {
			recommendations = append(recommendations,
				"Longest Cover: "+longest.ScenarioName+" keeps the policy in force "+
					fmt.Sprintf("%d years longer", longest.YearsInForce-base.YearsInForce))
		}
	}

	// Lowest charges
	lowest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TotalCharges.LessThan(lowest.TotalCharges) {
			lowest = alt
		}
	}
	if lowest != base {
		savings := base.TotalCharges.Sub(lowest.TotalCharges)
		recommendations = append(recommendations,
			"Lowest Charges: "+lowest.ScenarioName+" saves $"+savings.StringFixed(0)+
				" in deductions")
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.Lapsed() && !base.Lapsed() {
			recommendations = append(recommendations,
				fmt.Sprintf("Lapse Risk: %s lapses in policy year %d (age %d)", alt.ScenarioName, alt.LapseYear, alt.LapseAge))
		}
	}

	return recommendations
}
