package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings the app handles before the list sees a key.
type KeyMap struct {
	Toggle   key.Binding
	Delete   key.Binding
	Activate key.Binding // press twice to edit
	Edit     key.Binding
	Add      key.Binding
	Undo     key.Binding

	CycleFilter     key.Binding
	FilterAll       key.Binding
	FilterActive    key.Binding
	FilterCompleted key.Binding

	// While editing or adding.
	Confirm key.Binding
	Cancel  key.Binding

	Quit      key.Binding
	ForceQuit key.Binding // works in every mode
}

var DefaultKeyMap = KeyMap{
	Toggle:   key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Activate: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter×2", "edit")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Undo:     key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),

	CycleFilter:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
	FilterAll:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
	FilterActive:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
	FilterCompleted: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),

	Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
	Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.Activate, k.Add, k.Undo, k.CycleFilter}
}

func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Toggle, k.Delete, k.Activate, k.Edit, k.Add, k.Undo,
		k.CycleFilter, k.FilterAll, k.FilterActive, k.FilterCompleted,
	}
}
