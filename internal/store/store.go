// Package store owns the authoritative todo collection and the active
// filter. Views never change todos themselves; they report intents and the
// store applies them, producing a new immutable collection each time.
package store

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todolist"
)

var (
	ErrNotFound  = errors.New("todo not found")
	ErrEmptyText = errors.New("text cannot be empty")
	ErrNoUndo    = errors.New("nothing to undo")
)

// Saver persists a collection.
type Saver interface {
	Save(*model.Collection) error
}

type Option func(*Store)

func WithSaver(s Saver) Option { return func(st *Store) { st.saver = s } }

func WithLogger(l *log.Logger) Option { return func(st *Store) { st.log = l } }

// WithIDs replaces the id generator.
func WithIDs(next func() string) Option { return func(st *Store) { st.newID = next } }

type Store struct {
	todos  *model.Collection
	filter model.Filter
	dirty  bool

	// single-level undo of the last delete
	undo      *model.Todo
	undoIndex int

	saver Saver
	log   *log.Logger
	newID func() string
}

func New(todos *model.Collection, filter model.Filter, opts ...Option) *Store {
	if todos == nil {
		todos = model.NewCollection()
	}
	s := &Store{
		todos:  todos,
		filter: filter,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

func (s *Store) Todos() *model.Collection { return s.todos }
func (s *Store) Filter() model.Filter     { return s.filter }
func (s *Store) Dirty() bool              { return s.dirty }
func (s *Store) CanUndo() bool            { return s.undo != nil }

// Rows is the visible list for the current filter.
func (s *Store) Rows() []todolist.Row { return todolist.Rows(s.todos, s.filter) }

func (s *Store) SetFilter(f model.Filter) {
	s.filter = f
	s.log.Debug("filter", "value", f)
}

// CycleFilter advances all -> active -> completed -> all. An absent or
// unknown filter moves to all.
func (s *Store) CycleFilter() model.Filter {
	next := model.StatusAll
	for i, f := range model.Filters {
		if f == s.filter {
			next = model.Filters[(i+1)%len(model.Filters)]
			break
		}
	}
	s.SetFilter(next)
	return next
}

// Add appends a new active todo and returns its key.
func (s *Store) Add(text string) (string, error) {
	return s.InsertAt(s.todos.Len(), text)
}

// InsertAt adds a new active todo at index i (clamped).
func (s *Store) InsertAt(i int, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	t := model.Todo{ID: s.newID(), Text: text, Status: model.StatusActive}
	s.commit(s.todos.Insert(i, t))
	s.log.Debug("add", "key", t.Key(), "text", text)
	return t.Key(), nil
}

func (s *Store) Delete(key string) error {
	i, t, err := s.find(key)
	if err != nil {
		return err
	}
	s.undo, s.undoIndex = &t, i
	s.commit(s.todos.Remove(i))
	s.log.Debug("delete", "key", key)
	return nil
}

// Undo restores the last deleted todo at its old position.
func (s *Store) Undo() (string, error) {
	if s.undo == nil {
		return "", ErrNoUndo
	}
	t := *s.undo
	s.commit(s.todos.Insert(s.undoIndex, t))
	s.undo = nil
	s.log.Debug("undo", "key", t.Key())
	return t.Key(), nil
}

func (s *Store) Toggle(key string) error {
	return s.update(key, "toggle", func(t *model.Todo) {
		if t.Completed() {
			t.Status = model.StatusActive
		} else {
			t.Status = model.StatusCompleted
		}
	})
}

// StartEdit puts the todo in edit mode with its text in the buffer.
func (s *Store) StartEdit(key string) error {
	return s.update(key, "edit", func(t *model.Todo) {
		t.Editing = true
		t.TempText = t.Text
	})
}

func (s *Store) SetTempText(key, text string) error {
	return s.update(key, "edit-text", func(t *model.Todo) { t.TempText = text })
}

func (s *Store) CancelEdit(key string) error {
	return s.update(key, "cancel-edit", func(t *model.Todo) {
		t.Editing = false
		t.TempText = ""
	})
}

// DoneEdit commits the edit buffer into the todo's text. A blank buffer
// leaves the text unchanged but still ends editing.
func (s *Store) DoneEdit(key string) error {
	return s.update(key, "done-edit", func(t *model.Todo) {
		if txt := strings.TrimSpace(t.TempText); txt != "" {
			t.Text = txt
		}
		t.Editing = false
		t.TempText = ""
	})
}

// Rename sets the text directly, without going through edit mode.
func (s *Store) Rename(key, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	return s.update(key, "rename", func(t *model.Todo) { t.Text = text })
}

// Flush persists the collection when it changed since the last flush.
func (s *Store) Flush() error {
	if !s.dirty || s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.todos); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	s.dirty = false
	s.log.Info("saved", "todos", s.todos.Len())
	return nil
}

func (s *Store) find(key string) (int, model.Todo, error) {
	i := s.todos.IndexOf(key)
	if i < 0 {
		return -1, model.Todo{}, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return i, s.todos.At(i), nil
}

func (s *Store) update(key, op string, fn func(*model.Todo)) error {
	i, t, err := s.find(key)
	if err != nil {
		return err
	}
	fn(&t)
	next := s.todos.Replace(i, t)
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.commit(next)
	s.log.Debug(op, "key", key)
	return nil
}

func (s *Store) commit(c *model.Collection) {
	s.todos = c
	s.dirty = true
}
