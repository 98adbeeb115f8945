package tui

import (
	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneSummary Scene = iota
	SceneLedger
	SceneChart
	SceneCompare
	SceneHelp
)

// String returns the tab title of a scene.
func (s Scene) String() string {
	switch s {
	case SceneSummary:
		return "Summary"
	case SceneLedger:
		return "Ledger"
	case SceneChart:
		return "Chart"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg carries the scenario file and its resolved tables.
type ConfigLoadedMsg struct {
	Config    *domain.Configuration
	Reference calculation.ReferenceData
}

// ProjectionCompleteMsg carries the result of a projection run.
type ProjectionCompleteMsg struct {
	Projection *domain.Projection
	Err        error
}

// ComparisonCompleteMsg carries the result of a template comparison.
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
