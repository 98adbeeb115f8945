package tui

import "github.com/rgehrsitz/ilpgo/internal/tui/tuistyles"

// Re-export styles from tuistyles to avoid import cycles
var (
	ColorPrimary    = tuistyles.ColorPrimary
	ColorMuted      = tuistyles.ColorMuted
	ColorChartLine1 = tuistyles.ColorChartLine1
	ColorChartLine2 = tuistyles.ColorChartLine2

	AppStyle            = tuistyles.AppStyle
	TitleStyle          = tuistyles.TitleStyle
	SubtitleStyle       = tuistyles.SubtitleStyle
	StatusBarStyle      = tuistyles.StatusBarStyle
	StatusKeyStyle      = tuistyles.StatusKeyStyle
	BorderStyle         = tuistyles.BorderStyle
	ErrorStyle          = tuistyles.ErrorStyle
	WarningStyle        = tuistyles.WarningStyle
	InfoStyle           = tuistyles.InfoStyle
	TableHeaderStyle    = tuistyles.TableHeaderStyle
	TableHighlightStyle = tuistyles.TableHighlightStyle
)

// Re-export helper functions
var (
	FormatCurrency = tuistyles.FormatCurrency
)
