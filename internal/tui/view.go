package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/tui/components"
)

var tabs = []Scene{SceneSummary, SceneLedger, SceneChart, SceneCompare}

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch {
	case m.err != nil:
		content = m.renderError()
	case m.loading:
		content = m.renderLoading()
	default:
		switch m.currentScene {
		case SceneSummary:
			content = m.renderSummary()
		case SceneLedger:
			content = m.ledger.View()
		case SceneChart:
			content = m.renderChart()
		case SceneCompare:
			content = m.renderCompare()
		case SceneHelp:
			content = m.renderHelp()
		default:
			content = "Unknown scene"
		}
	}

	return AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		"",
		content,
		"",
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	name := "ILP projection"
	if m.config != nil && m.config.Name != "" {
		name = m.config.Name
	}
	parts := []string{TitleStyle.Render(name)}
	for i, s := range tabs {
		label := fmt.Sprintf("%d %s", i+1, s)
		if s == m.currentScene {
			parts = append(parts, StatusKeyStyle.Render(label))
		} else {
			parts = append(parts, SubtitleStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderStatusBar() string {
	var left string
	if m.config != nil {
		left = fmt.Sprintf("%s · return %s%%", m.configPath, m.returnPct.String())
		if !m.returnPct.Equal(m.baseReturn) {
			left += fmt.Sprintf(" (file %s%%)", m.baseReturn.String())
		}
	}
	return StatusBarStyle.Render(left) + "  " + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) renderLoading() string {
	return m.spinner.View() + " " + m.loadingMessage
}

func (m Model) renderError() string {
	hint := "q to quit"
	if m.projection != nil {
		hint = "esc to dismiss · q to quit"
	}
	return ErrorStyle.Render("Error: "+m.err.Error()) + "\n" + SubtitleStyle.Render(hint)
}

func (m Model) renderSummary() string {
	if m.projection == nil {
		return InfoStyle.Render("No projection yet")
	}
	s := m.projection.Summary
	cards := []*components.MetricCard{
		components.NewMoneyCard("Final account value", s.FinalAccountValue),
		components.NewMoneyCard("Total premiums", s.TotalPremiums),
		components.NewMoneyCard("Total charges", s.TotalCharges).
			WithNote("COI " + FormatCurrency(s.TotalCOI)),
		components.NewMoneyCard("Premium charges", s.TotalPremiumCharge),
		components.NewMoneyCard("Loyalty reward", s.TotalReward),
		components.NewMoneyCard("Investment growth", s.TotalGrowth),
	}
	if s.PeakNLGDebt.IsPositive() {
		cards = append(cards, components.NewMoneyCard("Peak NLG debt", s.PeakNLGDebt))
	}

	status := components.NewMetricCard("Status", fmt.Sprintf("In force for %d years", s.Years))
	if s.Lapsed() {
		status = components.NewMetricCard("Status", fmt.Sprintf("Lapses in year %d", s.LapseYear)).
			WithNote(fmt.Sprintf("at age %d", s.LapseAge))
	}
	cards = append(cards, status)

	columns := max(1, min(4, m.width/28))
	body := components.MetricGrid(cards, columns)

	for _, w := range m.projection.Warnings {
		body += "\n" + WarningStyle.Render("⚠ "+w.Message)
	}
	return body
}

func (m Model) renderChart() string {
	return components.ProjectionChart(m.projection).
		WithSize(m.width-4, max(m.height-14, 8)).
		Render()
}

func (m Model) renderCompare() string {
	if m.comparison == nil {
		return InfoStyle.Render("No comparison yet")
	}
	cards := []*components.ScenarioCard{components.ResultCard(*m.comparison.BaseResult, true).SetSelected(true)}
	for _, alt := range m.comparison.AlternativeResults {
		cards = append(cards, components.ResultCard(alt, false))
	}

	columns := max(1, min(3, m.width/38))
	var b strings.Builder
	b.WriteString(components.ScenarioGrid(cards, columns))
	if len(m.comparison.Recommendations) > 0 {
		b.WriteString("\n\n")
		b.WriteString(TableHeaderStyle.Render("Recommendations"))
		for _, r := range m.comparison.Recommendations {
			b.WriteString("\n• " + r)
		}
	}
	b.WriteString("\n\n")
	b.WriteString(SubtitleStyle.Render((&compare.TableFormatter{}).FormatCompact(m.comparison)))
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(TableHeaderStyle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render(
		"Changing the return re-runs the projection against the loaded tables.\n" +
			"The scenario file itself is never modified."))
	return BorderStyle.Render(b.String())
}
