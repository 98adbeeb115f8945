package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ilpgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// MetricCard shows one headline number from a projection.
type MetricCard struct {
	Label string
	Value string
	Note  string
	Delta *Delta
	Width int
}

// Delta is a change against a reference value. Lower is better for costs, so
// the caller decides which direction counts as good.
type Delta struct {
	Good bool
	Text string
}

// NewMetricCard creates a card with a preformatted value.
func NewMetricCard(label, value string) *MetricCard {
	return &MetricCard{Label: label, Value: value, Width: 26}
}

// NewMoneyCard formats amount as whole currency units.
func NewMoneyCard(label string, amount decimal.Decimal) *MetricCard {
	return NewMetricCard(label, tuistyles.FormatCurrency(amount))
}

// WithMoneyDelta attaches the signed difference amount-ref. higherIsBetter
// chooses the colour; a zero difference adds nothing.
func (m *MetricCard) WithMoneyDelta(amount, ref decimal.Decimal, higherIsBetter bool) *MetricCard {
	diff := amount.Sub(ref)
	if diff.IsZero() {
		return m
	}
	sign := "+"
	if diff.IsNegative() {
		sign = "-"
	}
	m.Delta = &Delta{
		Good: diff.IsPositive() == higherIsBetter,
		Text: sign + tuistyles.FormatCurrency(diff.Abs()),
	}
	return m
}

// WithNote adds a muted line under the value.
func (m *MetricCard) WithNote(note string) *MetricCard {
	m.Note = note
	return m
}

// WithWidth sets the card width.
func (m *MetricCard) WithWidth(width int) *MetricCard {
	m.Width = width
	return m
}

func (m *MetricCard) deltaText(sep string) string {
	if m.Delta == nil {
		return ""
	}
	style := tuistyles.MetricTrendStyle(m.Delta.Good)
	return sep + style.Render(fmt.Sprintf("%s %s", tuistyles.TrendIndicator(m.Delta.Good), m.Delta.Text))
}

// Render draws the bordered card.
func (m *MetricCard) Render() string {
	content := tuistyles.MetricLabelStyle.Render(m.Label) + "\n" +
		tuistyles.MetricValueStyle.Render(m.Value) +
		m.deltaText("\n")
	if m.Note != "" {
		content += "\n" + tuistyles.SubtitleStyle.Render(m.Note)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(tuistyles.ColorBorder).
		Padding(0, 1).
		Width(m.Width).
		Render(content)
}

// RenderCompact is the single-line form used in narrow terminals.
func (m *MetricCard) RenderCompact() string {
	return tuistyles.MetricLabelStyle.Render(m.Label+":") + " " +
		tuistyles.MetricValueStyle.Render(m.Value) +
		m.deltaText(" ")
}

// MetricGrid lays cards out left to right, wrapping after columns cards.
func MetricGrid(cards []*MetricCard, columns int) string {
	if len(cards) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows, current []string
	for i, card := range cards {
		current = append(current, card.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
