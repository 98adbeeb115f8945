package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Illustrated Return %",
		"Years In Force",
		"Lapse Year",
		"Final Account Value",
		"Total Premiums",
		"Total Charges",
		"Peak NLG Debt",
		"Value Diff from Base",
		"Value % Change",
		"Years Diff",
		"Charges Diff from Base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		result.IllustratedReturnPct,
		strconv.Itoa(result.YearsInForce),
		strconv.Itoa(result.LapseYear),
		result.FinalAccountValue.StringFixed(2),
		result.TotalPremiums.StringFixed(2),
		result.TotalCharges.StringFixed(2),
		result.PeakNLGDebt.StringFixed(2),
		result.ValueDiffFromBase.StringFixed(2),
		result.ValuePctFromBase.StringFixed(2),
		strconv.Itoa(result.YearsDiffFromBase),
		result.ChargesDiffFromBase.StringFixed(2),
	}
}
