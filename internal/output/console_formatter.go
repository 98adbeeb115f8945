package output

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rgehrsitz/ilpgo/internal/domain"
)

// ConsoleFormatter renders the summary and the yearly ledger as a text
// table with money rounded to whole units.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string      { return "console" }
func (c ConsoleFormatter) Extension() string { return "txt" }

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	headerStyle = cellStyle.Bold(true)
)

func (c ConsoleFormatter) Format(p *domain.Projection) ([]byte, error) {
	var buf bytes.Buffer

	title := "ILP PROJECTION"
	if p.Name != "" {
		title += ": " + p.Name
	}
	fmt.Fprintln(&buf, title)
	fmt.Fprintf(&buf, "Start age: %d   Years projected: %d\n", p.StartAge, p.Summary.Years)
	writeSummary(&buf, p.Summary)

	if len(p.Warnings) > 0 {
		fmt.Fprintln(&buf, "\nWarnings:")
		for _, w := range p.Warnings {
			fmt.Fprintf(&buf, "  [%s] %s\n", w.Code, w.Message)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, LedgerTable(p.Records))
	return buf.Bytes(), nil
}

func writeSummary(buf *bytes.Buffer, s domain.ProjectionSummary) {
	fmt.Fprintf(buf, "  Total premiums:        %s\n", FormatCurrency(s.TotalPremiums))
	fmt.Fprintf(buf, "  Total premium charges: %s\n", FormatCurrency(s.TotalPremiumCharge))
	fmt.Fprintf(buf, "  Total charges:         %s\n", FormatCurrency(s.TotalCharges))
	fmt.Fprintf(buf, "  Total COI:             %s\n", FormatCurrency(s.TotalCOI))
	fmt.Fprintf(buf, "  Total reward:          %s\n", FormatCurrency(s.TotalReward))
	fmt.Fprintf(buf, "  Final account value:   %s\n", FormatCurrency(s.FinalAccountValue))
	if s.PeakNLGDebt.IsPositive() {
		fmt.Fprintf(buf, "  Peak NLG debt:         %s\n", FormatCurrency(s.PeakNLGDebt))
	}
	if s.Lapsed() {
		fmt.Fprintf(buf, "  LAPSED in policy year %d (age %d)\n", s.LapseYear, s.LapseAge)
	} else {
		fmt.Fprintln(buf, "  Policy in force at end of projection")
	}
}

// LedgerTable renders the records with the CSV column headers.
func LedgerTable(records []domain.YearRecord) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(LedgerColumns...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == len(LedgerColumns)-1:
				return cellStyle
			default:
				return numberStyle
			}
		})

	for _, r := range records {
		t.Row(LedgerRow(r)...)
	}
	return t.String()
}

// LedgerRow formats a record for display.
func LedgerRow(r domain.YearRecord) []string {
	row := []string{strconv.Itoa(r.PolicyYear), strconv.Itoa(r.Age)}
	for _, m := range ledgerMoney(r) {
		row = append(row, FormatWhole(m))
	}
	lapsed := ""
	if r.Lapsed {
		lapsed = "LAPSED"
	}
	return append(row, lapsed)
}
