package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/ilpgo/internal/calculation"
	"github.com/rgehrsitz/ilpgo/internal/compare"
	"github.com/rgehrsitz/ilpgo/internal/config"
	"github.com/rgehrsitz/ilpgo/internal/domain"
	"github.com/rgehrsitz/ilpgo/internal/output"
	"github.com/rgehrsitz/ilpgo/internal/transform"
)

// returnStep is the change applied by one press of + or -.
var returnStep = decimal.RequireFromString("0.5")

// returnFloor is exclusive: a -100% return would wipe out every balance.
var returnFloor = decimal.NewFromInt(-100)

// compareTemplates are the what-if variants shown on the compare scene.
var compareTemplates = []string{"return_low", "return_high", "holiday_after_10", "no_nlg"}

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Configuration and data
	configPath string
	config     *domain.Configuration
	reference  calculation.ReferenceData
	baseReturn decimal.Decimal
	returnPct  decimal.Decimal

	// Engines
	tables        *config.TableLoader
	engine        *calculation.ProjectionEngine
	compareEngine *compare.CompareEngine

	// Results
	projection *domain.Projection
	comparison *compare.ComparisonSet

	// Widgets
	ledger  table.Model
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	err            error
	loading        bool
	loadingMessage string
}

// NewModel creates the application model for one scenario file. A nil engine
// or loader gets the defaults.
func NewModel(configPath string, engine *calculation.ProjectionEngine, tables *config.TableLoader) Model {
	if engine == nil {
		engine = calculation.NewProjectionEngine()
	}
	if tables == nil {
		tables = config.NewTableLoader(nil)
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = InfoStyle

	return Model{
		currentScene:   SceneSummary,
		configPath:     configPath,
		tables:         tables,
		engine:         engine,
		compareEngine:  compare.NewCompareEngine(engine, tables),
		ledger:         newLedgerTable(),
		keys:           defaultKeyMap(),
		help:           help.New(),
		spinner:        sp,
		loading:        true,
		loadingMessage: "Loading " + configPath + "...",
		width:          100,
		height:         30,
	}
}

// Init loads the scenario file.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadConfigCmd(m.configPath, m.tables))
}

// loadConfigCmd parses the scenario and resolves its tables.
func loadConfigCmd(path string, tables *config.TableLoader) tea.Cmd {
	return func() tea.Msg {
		cfg, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		ref, err := tables.LoadReferenceData(context.Background(), cfg)
		if err != nil {
			return ErrorMsg{Err: fmt.Errorf("failed to load tables: %w", err)}
		}
		return ConfigLoadedMsg{Config: cfg, Reference: ref}
	}
}

// projectCmd runs one projection of cfg.
func projectCmd(engine *calculation.ProjectionEngine, cfg *domain.Configuration, ref calculation.ReferenceData) tea.Cmd {
	return func() tea.Msg {
		p, err := engine.WithHorizon(cfg.ProjectionYears).RunReference(cfg.Policy, ref)
		if err != nil {
			return ProjectionCompleteMsg{Err: err}
		}
		if p.Name == "" {
			p.Name = cfg.Name
		}
		return ProjectionCompleteMsg{Projection: p}
	}
}

// compareCmd runs cfg against the built-in what-if templates.
func compareCmd(ce *compare.CompareEngine, cfg *domain.Configuration, path string) tea.Cmd {
	return func() tea.Msg {
		set, err := ce.Compare(context.Background(), cfg, compare.CompareOptions{
			Templates:  compareTemplates,
			ConfigPath: path,
		})
		return ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// adjustedConfig returns the loaded configuration at the current return.
func (m Model) adjustedConfig() (*domain.Configuration, error) {
	delta := m.returnPct.Sub(m.baseReturn)
	if delta.IsZero() {
		return m.config, nil
	}
	return transform.ApplyTransforms(m.config, []transform.PolicyTransform{
		&transform.ShiftIllustratedReturn{Delta: delta},
	})
}

// rerun projects again at the current return. The comparison is dropped so
// it is recomputed on demand.
func (m Model) rerun() (Model, tea.Cmd) {
	cfg, err := m.adjustedConfig()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.comparison = nil
	m.loading = true
	m.loadingMessage = "Projecting at " + m.returnPct.String() + "%..."
	return m, tea.Batch(m.spinner.Tick, projectCmd(m.engine, cfg, m.reference))
}

func newLedgerTable() table.Model {
	cols := make([]table.Column, len(output.LedgerColumns))
	for i, title := range output.LedgerColumns {
		cols[i] = table.Column{Title: title, Width: max(len(title), 9)}
	}

	t := table.New(table.WithColumns(cols), table.WithFocused(true), table.WithHeight(15))
	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableHighlightStyle
	t.SetStyles(s)
	return t
}

// setLedger loads projection rows into the ledger table.
func (m *Model) setLedger(p *domain.Projection) {
	rows := make([]table.Row, 0, len(p.Records))
	for _, r := range p.Records {
		rows = append(rows, table.Row(output.LedgerRow(r)))
	}
	m.ledger.SetRows(rows)
	m.ledger.GotoTop()
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.ledger.SetWidth(max(width-4, 20))
	m.ledger.SetHeight(max(height-8, 5))
}
