package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/tui/tuistyles"
)

// ScenarioCard summarises one scenario of a comparison.
type ScenarioCard struct {
	Name       string
	Subtitle   string
	Highlights []string
	Warning    string
	IsSelected bool
	Width      int
}

// NewScenarioCard creates an empty card.
func NewScenarioCard(name string) *ScenarioCard {
	return &ScenarioCard{Name: name, Width: 36}
}

// ResultCard builds a card from a comparison result. Alternatives show their
// difference from the base scenario.
func ResultCard(r compare.ComparisonResult, isBase bool) *ScenarioCard {
	card := NewScenarioCard(r.ScenarioName)
	if isBase {
		card.Subtitle = "base scenario"
	} else if r.Description != "" {
		card.Subtitle = r.Description
	}

	card.AddHighlight("Return " + r.IllustratedReturnPct + "%")
	if r.PremiumHolidayYear > 0 {
		card.AddHighlight(fmt.Sprintf("Premium holiday after year %d", r.PremiumHolidayYear))
	}
	card.AddHighlight("Final value " + tuistyles.FormatCurrency(r.FinalAccountValue))
	card.AddHighlight("Charges " + tuistyles.FormatCurrency(r.TotalCharges))
	if r.PeakNLGDebt.IsPositive() {
		card.AddHighlight("Peak NLG debt " + tuistyles.FormatCurrency(r.PeakNLGDebt))
	}
	if !isBase && !r.ValueDiffFromBase.IsZero() {
		sign := "+"
		if r.ValueDiffFromBase.IsNegative() {
			sign = "-"
		}
		card.AddHighlight(fmt.Sprintf("%s%s vs base", sign, tuistyles.FormatCurrency(r.ValueDiffFromBase.Abs())))
	}
	if r.Lapsed() {
		card.Warning = fmt.Sprintf("Lapses in year %d (age %d)", r.LapseYear, r.LapseAge)
	}
	return card
}

// AddHighlight appends a bullet line.
func (s *ScenarioCard) AddHighlight(h string) *ScenarioCard {
	s.Highlights = append(s.Highlights, h)
	return s
}

// SetSelected marks the card as selected.
func (s *ScenarioCard) SetSelected(selected bool) *ScenarioCard {
	s.IsSelected = selected
	return s
}

// WithWidth sets the card width.
func (s *ScenarioCard) WithWidth(width int) *ScenarioCard {
	s.Width = width
	return s
}

// Render draws the card with a highlighted border when selected.
func (s *ScenarioCard) Render() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(s.Name))
	if s.Subtitle != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Italic(true).Render(s.Subtitle))
	}
	if len(s.Highlights) > 0 {
		b.WriteString("\n")
		for _, h := range s.Highlights {
			b.WriteString("\n• " + h)
		}
	}
	if s.Warning != "" {
		b.WriteString("\n\n")
		b.WriteString(tuistyles.MetricNegativeStyle.Render("⚠ " + s.Warning))
	}

	border := tuistyles.ColorBorder
	if s.IsSelected {
		border = tuistyles.ColorPrimary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(s.Width).
		Render(b.String())
}

// ScenarioGrid renders cards side by side, wrapping after columns cards.
func ScenarioGrid(cards []*ScenarioCard, columns int) string {
	if len(cards) == 0 {
		return tuistyles.InfoStyle.Render("No scenarios to compare")
	}
	if columns < 1 {
		columns = 1
	}
	var rows, current []string
	for i, c := range cards {
		current = append(current, c.Render())
		if (i+1)%columns == 0 || i == len(cards)-1 {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, current...))
			current = nil
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
