// Package tuistyles holds the colours and styles shared by the TUI and its
// components.
package tuistyles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/ilpgo/internal/output"
	"github.com/shopspring/decimal"
)

// Colors
var (
	ColorPrimary   = lipgloss.Color("#7D56F4")
	ColorSecondary = lipgloss.Color("#5A4FCF")
	ColorAccent    = lipgloss.Color("#F25D94")
	ColorSuccess   = lipgloss.Color("#04B575")
	ColorDanger    = lipgloss.Color("#FF4672")
	ColorInfo      = lipgloss.Color("#3C9EE7")

	ColorForeground = lipgloss.Color("#FAFAFA")
	ColorMuted      = lipgloss.Color("#888888")
	ColorBorder     = lipgloss.Color("#444444")

	ColorChartLine1 = lipgloss.Color("#04B575")
	ColorChartLine2 = lipgloss.Color("#FF4672")
)

// Base styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorForeground).
			Background(ColorPrimary).
			Padding(0, 1)

	SubtitleStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	StatusKeyStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	BorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	SelectedItemStyle   = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	UnselectedItemStyle = lipgloss.NewStyle().Foreground(ColorForeground)

	MetricLabelStyle    = lipgloss.NewStyle().Foreground(ColorMuted)
	MetricValueStyle    = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	MetricPositiveStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	MetricNegativeStyle = lipgloss.NewStyle().Foreground(ColorDanger)

	ParameterLabelStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	ParameterValueStyle = lipgloss.NewStyle().Foreground(ColorForeground).Bold(true)
	SliderTrackStyle    = lipgloss.NewStyle().Foreground(ColorBorder)
	SliderThumbStyle    = lipgloss.NewStyle().Foreground(ColorPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDanger).
			Padding(1, 2)
	WarningStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	InfoStyle    = lipgloss.NewStyle().Foreground(ColorInfo).Italic(true)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorBorder).
				BorderBottom(true)
	TableHighlightStyle = lipgloss.NewStyle().
				Foreground(ColorForeground).
				Background(ColorSecondary)
)

// MetricTrendStyle colours a change green or red.
func MetricTrendStyle(isPositive bool) lipgloss.Style {
	if isPositive {
		return MetricPositiveStyle
	}
	return MetricNegativeStyle
}

// TrendIndicator returns an arrow for the direction of a change.
func TrendIndicator(isPositive bool) string {
	if isPositive {
		return "↑"
	}
	return "↓"
}

// FormatCurrency renders whole currency units, e.g. $152,344.
func FormatCurrency(amount decimal.Decimal) string {
	return output.FormatCurrency(amount)
}
