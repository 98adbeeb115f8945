package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/config"
)

func writeScenario(t *testing.T) string {
	t.Helper()
	data, err := config.MarshalYAML(config.ExampleConfiguration(2025))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func testEngine() *calculation.ProjectionEngine {
	engine := calculation.NewProjectionEngine()
	engine.Clock = func() time.Time { return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC) }
	return engine
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// update applies msg and asserts the model type.
func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

// loadedModel returns a model that has loaded the example scenario and
// finished its first projection.
func loadedModel(t *testing.T) Model {
	t.Helper()
	path := writeScenario(t)
	m := NewModel(path, testEngine(), nil)

	msg := loadConfigCmd(path, m.tables)()
	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok, "got %T", msg)

	m, cmd := update(t, m, loaded)
	require.NotNil(t, cmd)
	assert.True(t, m.loading)

	cfg, err := m.adjustedConfig()
	require.NoError(t, err)
	m, _ = update(t, m, projectCmd(m.engine, cfg, m.reference)())
	require.False(t, m.loading)
	require.NotNil(t, m.projection)
	return m
}

func TestNewModel_Defaults(t *testing.T) {
	m := NewModel("scenario.yaml", nil, nil)
	assert.Equal(t, SceneSummary, m.currentScene)
	assert.True(t, m.loading)
	assert.NotNil(t, m.engine)
	assert.NotNil(t, m.compareEngine)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading scenario.yaml")
}

func TestLoadConfigCmd(t *testing.T) {
	path := writeScenario(t)
	msg := loadConfigCmd(path, config.NewTableLoader(nil))()

	loaded, ok := msg.(ConfigLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, "GLA4 default", loaded.Config.Name)
	assert.NotNil(t, loaded.Reference.Base)
	assert.NotNil(t, loaded.Reference.CI)
	assert.NotNil(t, loaded.Reference.ECI)
	assert.NotNil(t, loaded.Reference.Schedule)
}

func TestLoadConfigCmd_MissingFile(t *testing.T) {
	msg := loadConfigCmd(filepath.Join(t.TempDir(), "nope.yaml"), config.NewTableLoader(nil))()
	_, ok := msg.(ErrorMsg)
	assert.True(t, ok)
}

func TestUpdate_ProjectionFillsSummaryAndLedger(t *testing.T) {
	m := loadedModel(t)

	assert.Len(t, m.projection.Records, 74)
	assert.Len(t, m.ledger.Rows(), 74)
	assert.Equal(t, "1", m.ledger.Rows()[0][0])
	assert.Equal(t, "GLA4 default", m.projection.Name)

	view := m.View()
	assert.Contains(t, view, "Final account value")
	assert.Contains(t, view, "In force for 74 years")
	assert.Contains(t, view, "return 4%")
}

func TestUpdate_ReturnKeysRerun(t *testing.T) {
	m := loadedModel(t)

	m, cmd := update(t, m, keyPress("+"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.True(t, m.returnPct.Equal(decimal.RequireFromString("4.5")))

	cfg, err := m.adjustedConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Policy.IllustratedReturnPct.Equal(decimal.RequireFromString("4.5")))
	assert.True(t, m.config.Policy.IllustratedReturnPct.Equal(decimal.NewFromInt(4)), "loaded scenario must not change")

	before := m.projection.Summary.FinalAccountValue
	m, _ = update(t, m, projectCmd(m.engine, cfg, m.reference)())
	assert.True(t, m.projection.Summary.FinalAccountValue.GreaterThan(before))
	assert.Contains(t, m.View(), "(file 4%)")

	m, cmd = update(t, m, keyPress("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.returnPct.Equal(decimal.NewFromInt(4)))
}

func TestUpdate_ReturnDownGoesNegative(t *testing.T) {
	m := loadedModel(t)
	m.returnPct = decimal.Zero

	m, cmd := update(t, m, keyPress("-"))
	require.NotNil(t, cmd)
	assert.True(t, m.loading)
	assert.True(t, m.returnPct.Equal(decimal.RequireFromString("-0.5")))

	cfg, err := m.adjustedConfig()
	require.NoError(t, err)
	assert.True(t, cfg.Policy.IllustratedReturnPct.Equal(decimal.RequireFromString("-0.5")))

	m, _ = update(t, m, projectCmd(m.engine, cfg, m.reference)())
	require.NotNil(t, m.projection)
	assert.False(t, m.loading)
	assert.Contains(t, m.View(), "return -0.5%")
}

func TestUpdate_ReturnDownStopsAboveMinusHundred(t *testing.T) {
	m := loadedModel(t)
	m.returnPct = decimal.RequireFromString("-99.5")

	m, cmd := update(t, m, keyPress("-"))
	assert.Nil(t, cmd)
	assert.False(t, m.loading)
	assert.True(t, m.returnPct.Equal(decimal.RequireFromString("-99.5")))
}

func TestUpdate_KeysIgnoredWhileLoading(t *testing.T) {
	m := NewModel("scenario.yaml", testEngine(), nil)

	m, cmd := update(t, m, keyPress("2"))
	assert.Nil(t, cmd)
	assert.Equal(t, SceneSummary, m.currentScene)
}

func TestUpdate_Navigation(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(t, m, keyPress("2"))
	assert.Equal(t, SceneLedger, m.currentScene)
	assert.Contains(t, m.View(), "Policy Year")

	m, _ = update(t, m, keyPress("3"))
	assert.Equal(t, SceneChart, m.currentScene)
	assert.Contains(t, m.View(), "Account value by age")

	m, _ = update(t, m, keyPress("?"))
	assert.Equal(t, SceneHelp, m.currentScene)
	assert.Contains(t, m.View(), "return +0.5%")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, SceneChart, m.currentScene)
}

func TestUpdate_CompareScene(t *testing.T) {
	m := loadedModel(t)

	m, cmd := update(t, m, keyPress("4"))
	require.NotNil(t, cmd)
	assert.Equal(t, SceneCompare, m.currentScene)
	assert.True(t, m.loading)

	cfg, err := m.adjustedConfig()
	require.NoError(t, err)
	msg := compareCmd(m.compareEngine, cfg, m.configPath)()
	done, ok := msg.(ComparisonCompleteMsg)
	require.True(t, ok)
	require.NoError(t, done.Err)
	assert.Len(t, done.Set.AlternativeResults, len(compareTemplates))

	m, _ = update(t, m, done)
	view := m.View()
	assert.Contains(t, view, "GLA4 default_return_high")
	assert.Contains(t, view, "base scenario")
	assert.Contains(t, view, "Base: GLA4 default")

	// a return change invalidates the comparison
	m, _ = update(t, m, keyPress("+"))
	assert.Nil(t, m.comparison)
}

func TestUpdate_ErrorAndDismiss(t *testing.T) {
	m := loadedModel(t)

	m, _ = update(t, m, ProjectionCompleteMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), assert.AnError.Error())
	assert.Contains(t, m.View(), "esc to dismiss")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.NoError(t, m.err)
	assert.Contains(t, m.View(), "Final account value")
}

func TestUpdate_Quit(t *testing.T) {
	m := NewModel("scenario.yaml", nil, nil)
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m := loadedModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	assert.Equal(t, 160, m.width)
	assert.Equal(t, 160, m.help.Width)
	assert.LessOrEqual(t, m.ledger.Height(), 42)
	assert.Greater(t, m.ledger.Height(), 30)
}

func TestSceneString(t *testing.T) {
	assert.Equal(t, "Ledger", SceneLedger.String())
	assert.Equal(t, "Unknown", Scene(99).String())
}
