package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Summary    key.Binding
	Ledger     key.Binding
	Chart      key.Binding
	Compare    key.Binding
	ReturnUp   key.Binding
	ReturnDown key.Binding
	Reset      key.Binding
	Help       key.Binding
	Back       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Summary:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "summary")),
		Ledger:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "ledger")),
		Chart:      key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "chart")),
		Compare:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "compare")),
		ReturnUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "return +0.5%")),
		ReturnDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "return -0.5%")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset return")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Summary, k.Ledger, k.Chart, k.Compare, k.ReturnUp, k.ReturnDown, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Summary, k.Ledger, k.Chart, k.Compare},
		{k.ReturnUp, k.ReturnDown, k.Reset},
		{k.Help, k.Back, k.Quit},
	}
}
