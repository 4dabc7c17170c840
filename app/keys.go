package app

import (
	"charm.land/bubbles/v2/key"

	"github.com/miosa/osa-grid/ui/grid"
	"github.com/miosa/osa-grid/ui/help"
)

// KeyMap defines all global keybindings.
type KeyMap struct {
	Quit   key.Binding
	Escape key.Binding
	Help   key.Binding
	Reload key.Binding
	Theme  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close help"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "f1"),
			key.WithHelp("?", "help"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "ctrl+r"),
			key.WithHelp("r", "reload source"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
	}
}

// helpSections groups the app and grid bindings for the help overlay.
func helpSections(app KeyMap, g grid.KeyMap) []help.Section {
	return []help.Section{
		{Title: "Rows", Bindings: []key.Binding{
			g.Up, g.Down, g.PageUp, g.PageDown, g.HalfPageUp, g.HalfPageDown, g.Top, g.Bottom,
		}},
		{Title: "Columns", Bindings: []key.Binding{g.PrevColumn, g.NextColumn, g.Sort, g.SortMulti}},
		{Title: "Details", Bindings: []key.Binding{g.Expand, g.CollapseAll}},
		{Title: "General", Bindings: []key.Binding{app.Reload, app.Theme, app.Help, app.Escape, app.Quit}},
	}
}
