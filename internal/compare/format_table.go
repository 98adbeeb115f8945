package compare

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/ilpgo/internal/output"
	"github.com/shopspring/decimal"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)
var numberStyle = cellStyle.Align(lipgloss.Right)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing scenarios
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("ILP SCENARIO COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Base Scenario: %s\n", compSet.BaseScenarioName))
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString("\n")

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Scenario", "Return", "In Force", "Final Value", "Charges", "Peak NLG Debt").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			default:
				return numberStyle
			}
		})

	if compSet.BaseResult != nil {
		t.Row(tf.formatRow(compSet.BaseResult, true)...)
	}
	for i := range compSet.AlternativeResults {
		t.Row(tf.formatRow(&compSet.AlternativeResults[i], false)...)
	}
	sb.WriteString(t.String())
	sb.WriteString("\n")

	// Deltas from base
	if len(compSet.AlternativeResults) > 0 {
		sb.WriteString("\nCOMPARISON TO BASE\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")

		for _, alt := range compSet.AlternativeResults {
			sb.WriteString(fmt.Sprintf("\n%s:\n", alt.ScenarioName))
			if alt.Description != "" {
				sb.WriteString(fmt.Sprintf("  %s\n", alt.Description))
			}

			sb.WriteString(fmt.Sprintf("  Final Value:      %s$%s (%s%%)\n",
				tf.deltaSymbol(alt.ValueDiffFromBase),
				tf.formatDecimal(alt.ValueDiffFromBase.Abs()),
				alt.ValuePctFromBase.StringFixed(1)))

			if alt.YearsDiffFromBase != 0 {
				sign := "+"
				if alt.YearsDiffFromBase < 0 {
					sign = ""
				}
				sb.WriteString(fmt.Sprintf("  Years In Force:   %s%d years\n", sign, alt.YearsDiffFromBase))
			}

			if !alt.ChargesDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Charges:          %s$%s\n",
					tf.deltaSymbol(alt.ChargesDiffFromBase),
					tf.formatDecimal(alt.ChargesDiffFromBase.Abs())))
			}

			if !alt.DebtDiffFromBase.IsZero() {
				sb.WriteString(fmt.Sprintf("  Peak NLG Debt:    %s$%s\n",
					tf.deltaSymbol(alt.DebtDiffFromBase),
					tf.formatDecimal(alt.DebtDiffFromBase.Abs())))
			}
		}
		sb.WriteString("\n")
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool) []string {
	name := result.ScenarioName
	if isBase {
		name += " (base)"
	}

	inForce := strconv.Itoa(result.YearsInForce) + " years"
	if result.Lapsed() {
		inForce = fmt.Sprintf("lapses yr %d", result.LapseYear)
	}

	return []string{
		tf.truncate(name, 32),
		result.IllustratedReturnPct + "%",
		inForce,
		output.FormatCurrency(result.FinalAccountValue),
		output.FormatCurrency(result.TotalCharges),
		output.FormatCurrency(result.PeakNLGDebt),
	}
}

// formatDecimal formats a decimal for display (in thousands)
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}

func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return " "
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s | ", compSet.BaseScenarioName))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if alt.ValueDiffFromBase.IsPositive() {
			change = fmt.Sprintf("+$%s", tf.formatDecimal(alt.ValueDiffFromBase))
		} else if alt.ValueDiffFromBase.IsNegative() {
			change = fmt.Sprintf("-$%s", tf.formatDecimal(alt.ValueDiffFromBase.Abs()))
		}
		if alt.Lapsed() {
			change += " (lapses)"
		}

		sb.WriteString(fmt.Sprintf("%s: %s", alt.ScenarioName, change))
	}

	return sb.String()
}
