package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/store"
)

// App is the interactive todo list. It owns no todos: intents from the
// selected item go to the store and the list is redrawn from the store's
// new snapshot.
type App struct {
	store *store.Store
	list  *ListView
	keys  KeyMap
	log   *log.Logger

	// Inline add
	adding bool
	input  textinput.Model

	status string // last error or hint, shown under the list
	width  int
	height int
}

type Option func(*App)

func WithLogger(l *log.Logger) Option { return func(a *App) { a.log = l } }

func NewApp(st *store.Store, opts ...Option) *App {
	a := &App{store: st, keys: DefaultKeyMap, width: 80, height: 24}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = log.New(io.Discard)
	}
	a.list = NewListView(a.handlers)
	a.input = textinput.New()
	a.input.Prompt = "> "
	a.input.Placeholder = "New item text..."
	a.input.CharLimit = 200
	a.resize()
	a.refresh()
	return a
}

// handlers wires one todo's intents to the store.
func (a *App) handlers(id string) ItemHandlers {
	return ItemHandlers{
		DeleteItem:     func() { a.apply("delete", a.store.Delete(id)) },
		ToggleComplete: func() { a.apply("toggle", a.store.Toggle(id)) },
		EditItem:       func() { a.apply("edit", a.store.StartEdit(id)) },
		CancelEditing:  func() { a.apply("cancel", a.store.CancelEdit(id)) },
		DoneEditing:    func() { a.apply("done", a.store.DoneEdit(id)) },
		EditingText:    func(s string) { a.apply("edit-text", a.store.SetTempText(id, s)) },
	}
}

func (a *App) apply(op string, err error) {
	if err != nil {
		a.status = op + ": " + err.Error()
		a.log.Warn("intent failed", "op", op, "err", err)
		return
	}
	a.status = ""
}

func (a *App) refresh() tea.Cmd { return a.list.SetRows(a.store.Rows()) }

func (a *App) Store() *store.Store { return a.store }
func (a *App) List() *ListView     { return a.list }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		a.width, a.height = ws.Width, ws.Height
		a.resize()
		return a, nil
	}

	if km, ok := msg.(tea.KeyMsg); ok && key.Matches(km, a.keys.ForceQuit) {
		return a, tea.Quit
	}

	if a.adding {
		return a, a.updateAdding(msg)
	}

	if k, it, ok := a.list.Selected(); ok && it.Editing() {
		return a, a.updateEditing(k, it, msg)
	}

	km, isKey := msg.(tea.KeyMsg)
	if !isKey || a.list.Searching() {
		return a, a.list.Update(msg)
	}

	switch {
	case key.Matches(km, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(km, a.keys.Add):
		a.adding = true
		a.input.SetValue("")
		a.resize()
		return a, a.input.Focus()
	case key.Matches(km, a.keys.Undo):
		k, err := a.store.Undo()
		a.apply("undo", err)
		cmd := a.refresh()
		if err == nil {
			a.list.Select(k)
		}
		return a, cmd
	case key.Matches(km, a.keys.CycleFilter):
		a.store.CycleFilter()
		return a, a.refresh()
	case key.Matches(km, a.keys.FilterAll):
		return a, a.setFilter(model.StatusAll)
	case key.Matches(km, a.keys.FilterActive):
		return a, a.setFilter(model.StatusActive)
	case key.Matches(km, a.keys.FilterCompleted):
		return a, a.setFilter(model.StatusCompleted)
	}

	k, it, ok := a.list.Selected()
	if !ok {
		return a, a.list.Update(msg)
	}
	switch {
	case key.Matches(km, a.keys.Toggle):
		it.Toggle()
	case key.Matches(km, a.keys.Delete):
		it.Delete()
	case key.Matches(km, a.keys.Activate):
		it.Activate()
		if it.Armed() {
			a.status = "press enter again to edit"
			return a, nil
		}
	case key.Matches(km, a.keys.Edit):
		a.apply("edit", a.store.StartEdit(k))
	default:
		return a, a.list.Update(msg)
	}
	cmd := a.refresh()
	a.list.Select(k)
	return a, cmd
}

func (a *App) updateEditing(k string, it *Item, msg tea.Msg) tea.Cmd {
	km, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return it.Update(msg)
	}
	switch {
	case key.Matches(km, a.keys.Confirm):
		if strings.TrimSpace(it.Buffer()) == "" {
			a.status = "text cannot be empty"
			return nil
		}
		it.Confirm()
	case key.Matches(km, a.keys.Cancel):
		it.Cancel()
	default:
		return it.Update(msg)
	}
	cmd := a.refresh()
	a.list.Select(k)
	return cmd
}

func (a *App) updateAdding(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, a.keys.Confirm):
			text := strings.TrimSpace(a.input.Value())
			if text == "" {
				a.status = "text cannot be empty"
				return nil
			}
			k, err := a.store.InsertAt(a.insertIndex(), text)
			a.apply("add", err)
			a.stopAdding()
			// A new todo is active; make sure it is visible.
			if a.store.Filter() == model.StatusCompleted || a.store.Filter() == model.FilterNone {
				a.store.SetFilter(model.StatusAll)
			}
			cmd := a.refresh()
			a.list.Select(k)
			return cmd
		case key.Matches(km, a.keys.Cancel):
			a.stopAdding()
			return nil
		}
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

// insertIndex places new todos right after the selected one in the full
// collection, like the list's cursor suggests.
func (a *App) insertIndex() int {
	k, _, ok := a.list.Selected()
	if !ok {
		return a.store.Todos().Len()
	}
	return a.store.Todos().IndexOf(k) + 1
}

func (a *App) stopAdding() {
	a.adding = false
	a.input.SetValue("")
	a.input.Blur()
	a.resize()
}

func (a *App) setFilter(f model.Filter) tea.Cmd {
	a.store.SetFilter(f)
	return a.refresh()
}

func (a *App) resize() {
	h := a.height - 6
	if a.adding {
		h -= 4
	}
	if h < 3 {
		h = 3
	}
	a.list.SetSize(a.width-4, h)
}

func (a *App) header() string {
	active, completed := model.Count(a.store.Todos())
	total := active + completed
	counts := fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Todos"),
		successStyle.Render("✔"), completed,
		pendingStyle.Render("•"), active,
		accentStyle.Render("Total"), total,
	)
	var tabs []string
	for _, f := range model.Filters {
		style := tabStyle
		if f == a.store.Filter() {
			style = activeTab
		}
		tabs = append(tabs, style.Render(string(f)))
	}
	bar := mutedStyle.Render(progressBar(completed, total, 20))
	return counts + "  " + bar + "\n" + strings.Join(tabs, " ")
}

func (a *App) View() string {
	content := a.header() + "\n\n"
	if a.list.Len() == 0 {
		content += mutedStyle.Render("no items") + "\n"
	} else {
		content += a.list.View()
	}
	if a.adding {
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render("Add new item\n"+a.input.View())
	}
	if a.status != "" {
		content += "\n" + errorStyle.Render(a.status)
	}
	return panelString(content)
}

// Run starts the interactive list in the alternate screen and flushes the
// store when it exits. It reports whether anything was saved.
func Run(ctx context.Context, st *store.Store, opts ...Option) (bool, error) {
	app := NewApp(st, opts...)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return flush(st, err)
}

// flush saves whatever the session changed, even when the program was
// killed, and joins a save failure with the program's error.
func flush(st *store.Store, runErr error) (bool, error) {
	saved := st.Dirty()
	if err := st.Flush(); err != nil {
		return false, errors.Join(runErr, err)
	}
	return saved, runErr
}
