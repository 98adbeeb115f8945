package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case NavigateMsg:
		return m.navigate(msg.Scene)

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.reference = msg.Reference
		m.baseReturn = msg.Config.Policy.IllustratedReturnPct
		m.returnPct = m.baseReturn
		return m.rerun()

	case ProjectionCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.projection = msg.Projection
		m.setLedger(msg.Projection)
		return m, nil

	case ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.comparison = msg.Set
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		if m.err != nil && m.projection != nil {
			m.err = nil
			return m, nil
		}
		if m.currentScene != SceneSummary {
			return m.navigate(m.previousScene)
		}
		return m, nil
	}

	if m.loading || m.config == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Summary):
		return m.navigate(SceneSummary)
	case key.Matches(msg, m.keys.Ledger):
		return m.navigate(SceneLedger)
	case key.Matches(msg, m.keys.Chart):
		return m.navigate(SceneChart)
	case key.Matches(msg, m.keys.Compare):
		return m.navigate(SceneCompare)
	case key.Matches(msg, m.keys.Help):
		return m.navigate(SceneHelp)
	case key.Matches(msg, m.keys.ReturnUp):
		m.returnPct = m.returnPct.Add(returnStep)
		return m.rerun()
	case key.Matches(msg, m.keys.ReturnDown):
		next := m.returnPct.Sub(returnStep)
		if !next.GreaterThan(returnFloor) {
			return m, nil
		}
		m.returnPct = next
		return m.rerun()
	case key.Matches(msg, m.keys.Reset):
		if m.returnPct.Equal(m.baseReturn) {
			return m, nil
		}
		m.returnPct = m.baseReturn
		return m.rerun()
	}

	if m.currentScene == SceneLedger {
		var cmd tea.Cmd
		m.ledger, cmd = m.ledger.Update(msg)
		return m, cmd
	}
	return m, nil
}

// navigate switches scenes, starting the comparison the first time the
// compare scene is shown for the current return.
func (m Model) navigate(to Scene) (tea.Model, tea.Cmd) {
	if to == m.currentScene {
		return m, nil
	}
	m.previousScene = m.currentScene
	m.currentScene = to

	if to == SceneCompare && m.comparison == nil && m.config != nil {
		cfg, err := m.adjustedConfig()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.loading = true
		m.loadingMessage = "Comparing scenarios..."
		return m, tea.Batch(m.spinner.Tick, compareCmd(m.compareEngine, cfg, m.configPath))
	}
	return m, nil
}
