package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Enter    key.Binding
	Pin      key.Binding
	Remove   key.Binding
	Complete key.Binding
	Restore  key.Binding
	Purge    key.Binding
	ClearAll key.Binding
	Export   key.Binding
	CycleUp  key.Binding
	CycleDn  key.Binding
	Tab1     key.Binding
	Tab2     key.Binding
	Tab3     key.Binding
	Tab4     key.Binding
	Tab5     key.Binding
	Tab6     key.Binding
	Tab      key.Binding
	Help     key.Binding
	Back     key.Binding
	Up       key.Binding
	Down     key.Binding
	Quit     key.Binding
}

// Action keys are ctrl-chords because the palette and todo views keep a text
// input focused; plain letters must reach the input.
var keys = keyMap{
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open/add"),
	),
	Pin: key.NewBinding(
		key.WithKeys("ctrl+p"),
		key.WithHelp("ctrl+p", "pin/unpin"),
	),
	Remove: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "delete"),
	),
	Complete: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "complete"),
	),
	Restore: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "restore"),
	),
	Purge: key.NewBinding(
		key.WithKeys("ctrl+g"),
		key.WithHelp("ctrl+g", "purge"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear all"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "export"),
	),
	CycleUp: key.NewBinding(
		key.WithKeys("alt+up"),
		key.WithHelp("alt+↑", "prev todo view"),
	),
	CycleDn: key.NewBinding(
		key.WithKeys("alt+down"),
		key.WithHelp("alt+↓", "next todo view"),
	),
	Tab1: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "palette"),
	),
	Tab2: key.NewBinding(
		key.WithKeys("f2"),
		key.WithHelp("f2", "todos"),
	),
	Tab3: key.NewBinding(
		key.WithKeys("f3"),
		key.WithHelp("f3", "completed"),
	),
	Tab4: key.NewBinding(
		key.WithKeys("f4"),
		key.WithHelp("f4", "deleted"),
	),
	Tab5: key.NewBinding(
		key.WithKeys("f5"),
		key.WithHelp("f5", "stats"),
	),
	Tab6: key.NewBinding(
		key.WithKeys("f6"),
		key.WithHelp("f6", "settings"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next view"),
	),
	Help: key.NewBinding(
		key.WithKeys("ctrl+h"),
		key.WithHelp("ctrl+h", "help"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Pin, k.Complete, k.Tab, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Enter, k.Pin, k.Remove},
		{k.Complete, k.Restore, k.Purge},
		{k.Export, k.ClearAll, k.CycleUp, k.CycleDn},
		{k.Tab1, k.Tab2, k.Tab3, k.Tab4, k.Tab5, k.Tab6},
		{k.Up, k.Down, k.Back, k.Quit},
	}
}
