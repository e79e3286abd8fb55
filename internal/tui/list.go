package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada/internal/todolist"
)

// row adapts a visible todo to bubbles/list.Item.
type row struct {
	key  string
	text string
}

func (r row) FilterValue() string { return r.text }

// ListView shows the visible rows of a todo list. Each row is drawn by an
// Item kept per key, so an item's edit buffer survives re-renders as long as
// its key stays visible.
type ListView struct {
	list  list.Model
	items map[string]*Item
	bind  func(key string) ItemHandlers
}

// NewListView builds an empty list. bind returns the handlers wired to the
// todo with the given key.
func NewListView(bind func(key string) ItemHandlers) *ListView {
	v := &ListView{items: map[string]*Item{}, bind: bind}
	l := list.New(nil, itemDelegate{view: v}, 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = DefaultKeyMap.ShortHelp
	l.AdditionalFullHelpKeys = DefaultKeyMap.FullHelp
	// q and esc are the app's.
	l.KeyMap.Quit.SetEnabled(false)
	v.list = l
	return v
}

// SetRows replaces the rows. Items whose key is no longer visible are
// dropped; the others get fresh props.
func (v *ListView) SetRows(rows []todolist.Row) tea.Cmd {
	var cmds []tea.Cmd
	seen := make(map[string]struct{}, len(rows))
	li := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		seen[r.Key] = struct{}{}
		props := ItemProps{
			Text:        r.Todo.Text,
			TempText:    r.Todo.TempText,
			IsCompleted: r.Todo.Completed(),
			IsEditing:   r.Todo.Editing,
		}
		it, ok := v.items[r.Key]
		if !ok {
			it = NewItem(ItemProps{}, v.bind(r.Key))
			v.items[r.Key] = it
		}
		cmds = append(cmds, it.SetProps(props))
		li = append(li, row{key: r.Key, text: r.Todo.Text})
	}
	for k := range v.items {
		if _, ok := seen[k]; !ok {
			delete(v.items, k)
		}
	}
	cmds = append(cmds, v.list.SetItems(li))
	if n := len(v.list.VisibleItems()); n > 0 && v.list.Index() >= n {
		v.list.Select(n - 1)
	}
	return tea.Batch(cmds...)
}

// Selected returns the item under the cursor.
func (v *ListView) Selected() (string, *Item, bool) {
	r, ok := v.list.SelectedItem().(row)
	if !ok {
		return "", nil, false
	}
	it, ok := v.items[r.key]
	return r.key, it, ok
}

// Select moves the cursor to the row with key, if it is shown.
func (v *ListView) Select(key string) {
	for i, it := range v.list.VisibleItems() {
		if r, ok := it.(row); ok && r.key == key {
			v.list.Select(i)
			return
		}
	}
}

func (v *ListView) Item(key string) *Item { return v.items[key] }
func (v *ListView) Len() int              { return len(v.list.Items()) }

// Searching reports whether the fuzzy search input has focus.
func (v *ListView) Searching() bool { return v.list.FilterState() == list.Filtering }

func (v *ListView) SetSize(w, h int) { v.list.SetSize(w, h) }

func (v *ListView) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return cmd
}

func (v *ListView) View() string { return v.list.View() }

// itemDelegate draws each row on a single line through its Item.
type itemDelegate struct{ view *ListView }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}
	it, ok := d.view.items[r.key]
	if !ok {
		return
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	fmt.Fprint(w, prefix+it.View())
}
