package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DoubleActivationWindow is how close two activations of an item's text
// must be to count as a request to edit it.
const DoubleActivationWindow = 400 * time.Millisecond

// Markers an item exposes for its display state.
const (
	MarkerItem      = "todo-item"
	MarkerCompleted = "completed"
	MarkerEditing   = "editing"
)

// ItemProps are the display fields of one todo.
type ItemProps struct {
	Text        string
	TempText    string
	IsCompleted bool
	IsEditing   bool
}

// ItemHandlers receive the user's intents. Nil handlers are ignored.
type ItemHandlers struct {
	DeleteItem     func()
	ToggleComplete func()
	EditItem       func()
	CancelEditing  func()
	DoneEditing    func()
	EditingText    func(string)
}

// Item renders a single todo in view or edit mode and turns user input into
// calls on its handlers. It never changes the todo itself; the only state it
// keeps is the edit buffer.
type Item struct {
	props    ItemProps
	handlers ItemHandlers

	buffer        textinput.Model
	lastActivated time.Time
	now           func() time.Time
}

func NewItem(props ItemProps, handlers ItemHandlers) *Item {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 200
	it := &Item{handlers: handlers, buffer: ti, now: time.Now}
	it.SetProps(props)
	return it
}

// SetProps replaces the display fields. Entering edit mode seeds the buffer
// from TempText and focuses it.
func (it *Item) SetProps(p ItemProps) tea.Cmd {
	was := it.props.IsEditing
	it.props = p
	switch {
	case p.IsEditing && !was:
		it.buffer.Placeholder = p.Text
		it.buffer.SetValue(p.TempText)
		it.buffer.CursorEnd()
		return it.buffer.Focus()
	case !p.IsEditing && was:
		it.buffer.Blur()
		it.buffer.SetValue("")
	}
	return nil
}

func (it *Item) Props() ItemProps { return it.props }
func (it *Item) Editing() bool    { return it.props.IsEditing }
func (it *Item) Checked() bool    { return it.props.IsCompleted }
func (it *Item) Buffer() string   { return it.buffer.Value() }

func (it *Item) Markers() []string {
	m := []string{MarkerItem}
	if it.props.IsCompleted {
		m = append(m, MarkerCompleted)
	}
	if it.props.IsEditing {
		m = append(m, MarkerEditing)
	}
	return m
}

func (it *Item) HasMarker(name string) bool {
	for _, m := range it.Markers() {
		if m == name {
			return true
		}
	}
	return false
}

func (it *Item) Delete() {
	if it.props.IsEditing {
		return
	}
	call(it.handlers.DeleteItem)
}

func (it *Item) Toggle() {
	if it.props.IsEditing {
		return
	}
	call(it.handlers.ToggleComplete)
}

// Activate registers one activation of the text. The second activation
// inside DoubleActivationWindow asks to edit.
func (it *Item) Activate() {
	if it.props.IsEditing {
		return
	}
	now := it.now()
	if !it.lastActivated.IsZero() && now.Sub(it.lastActivated) <= DoubleActivationWindow {
		it.lastActivated = time.Time{}
		call(it.handlers.EditItem)
		return
	}
	it.lastActivated = now
}

// Armed reports whether one more activation would start editing.
func (it *Item) Armed() bool {
	return !it.lastActivated.IsZero() && it.now().Sub(it.lastActivated) <= DoubleActivationWindow
}

func (it *Item) Cancel() {
	if !it.props.IsEditing {
		return
	}
	call(it.handlers.CancelEditing)
}

// Confirm ends editing with the buffer's text. A blank buffer dispatches
// nothing and the item stays in edit mode.
func (it *Item) Confirm() {
	if !it.props.IsEditing {
		return
	}
	text := it.buffer.Value()
	if strings.TrimSpace(text) == "" {
		return
	}
	if it.handlers.EditingText != nil {
		it.handlers.EditingText(text)
	}
	call(it.handlers.DoneEditing)
}

// Update feeds input to the edit buffer and reports every change through
// EditingText. Outside edit mode it does nothing.
func (it *Item) Update(msg tea.Msg) tea.Cmd {
	if !it.props.IsEditing {
		return nil
	}
	before := it.buffer.Value()
	var cmd tea.Cmd
	it.buffer, cmd = it.buffer.Update(msg)
	if after := it.buffer.Value(); after != before && it.handlers.EditingText != nil {
		it.handlers.EditingText(after)
	}
	return cmd
}

func (it *Item) View() string {
	if it.props.IsEditing {
		return editingStyle.Render(pencil) + " " + it.buffer.View() + "  " +
			helpStyle.Render("enter done · esc cancel")
	}
	if it.props.IsCompleted {
		return successStyle.Render(boxChecked) + " " + doneStyle.Render(it.props.Text)
	}
	return mutedStyle.Render(boxUnchecked) + " " + it.props.Text
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}
