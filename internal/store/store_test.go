package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

type memSaver struct {
	saved []*model.Collection
	err   error
}

func (m *memSaver) Save(c *model.Collection) error {
	if m.err != nil {
		return m.err
	}
	m.saved = append(m.saved, c)
	return nil
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newStore(opts ...Option) *Store {
	c := model.NewCollection(
		model.Todo{ID: "r", Text: "React", Status: model.StatusActive},
		model.Todo{ID: "x", Text: "Redux", Status: model.StatusCompleted},
	)
	return New(c, model.StatusAll, append([]Option{WithIDs(seqIDs())}, opts...)...)
}

func TestAddAppendsActiveTodo(t *testing.T) {
	s := newStore()
	key, err := s.Add("  Immutable ")
	require.NoError(t, err)
	assert.Equal(t, "id-1", key)

	last := s.Todos().At(2)
	assert.Equal(t, "Immutable", last.Text)
	assert.Equal(t, model.StatusActive, last.Status)
	assert.True(t, s.Dirty())
}

func TestAddRejectsBlank(t *testing.T) {
	s := newStore()
	_, err := s.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.False(t, s.Dirty())
}

func TestIntentsDoNotMutatePreviousSnapshot(t *testing.T) {
	s := newStore()
	before := s.Todos()

	require.NoError(t, s.Toggle("r"))
	assert.Equal(t, model.StatusActive, before.At(0).Status)
	assert.Equal(t, model.StatusCompleted, s.Todos().At(0).Status)

	require.NoError(t, s.Toggle("r"))
	assert.Equal(t, model.StatusActive, s.Todos().At(0).Status)
}

func TestEditLifecycle(t *testing.T) {
	s := newStore()

	require.NoError(t, s.StartEdit("r"))
	assert.True(t, s.Todos().At(0).Editing)
	assert.Equal(t, "React", s.Todos().At(0).TempText, "buffer starts from the text")

	require.NoError(t, s.SetTempText("r", "Preact"))
	require.NoError(t, s.DoneEdit("r"))
	got := s.Todos().At(0)
	assert.Equal(t, "Preact", got.Text)
	assert.False(t, got.Editing)
	assert.Empty(t, got.TempText)

	require.NoError(t, s.StartEdit("r"))
	require.NoError(t, s.SetTempText("r", "discarded"))
	require.NoError(t, s.CancelEdit("r"))
	got = s.Todos().At(0)
	assert.Equal(t, "Preact", got.Text)
	assert.False(t, got.Editing)
}

func TestDoneEditWithBlankBufferKeepsText(t *testing.T) {
	s := newStore()
	require.NoError(t, s.StartEdit("r"))
	require.NoError(t, s.SetTempText("r", "  "))
	require.NoError(t, s.DoneEdit("r"))
	assert.Equal(t, "React", s.Todos().At(0).Text)
}

func TestChangesThatDuplicateKeysAreRejected(t *testing.T) {
	saver := &memSaver{}
	c := model.NewCollection(
		model.Todo{Text: "a", Status: model.StatusActive},
		model.Todo{Text: "b", Status: model.StatusActive},
	)
	s := New(c, model.StatusAll, WithSaver(saver))

	assert.ErrorIs(t, s.Rename("a", "b"), model.ErrDuplicateKey)

	require.NoError(t, s.StartEdit("a"))
	require.NoError(t, s.SetTempText("a", "b"))
	assert.ErrorIs(t, s.DoneEdit("a"), model.ErrDuplicateKey)

	assert.Equal(t, "a", s.Todos().At(0).Text)
	require.NoError(t, s.Todos().Validate())
	require.NoError(t, s.Flush())
	require.Len(t, saver.saved, 1)
	assert.NoError(t, saver.saved[0].Validate())
}

func TestDeleteAndUndo(t *testing.T) {
	s := newStore()
	assert.False(t, s.CanUndo())

	require.NoError(t, s.Delete("r"))
	assert.Equal(t, 1, s.Todos().Len())
	assert.True(t, s.CanUndo())

	key, err := s.Undo()
	require.NoError(t, err)
	assert.Equal(t, "r", key)
	assert.Equal(t, "React", s.Todos().At(0).Text)

	_, err = s.Undo()
	assert.ErrorIs(t, err, ErrNoUndo)
}

func TestUnknownKey(t *testing.T) {
	s := newStore()
	assert.ErrorIs(t, s.Toggle("nope"), ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)
	assert.ErrorIs(t, s.StartEdit("nope"), ErrNotFound)
}

func TestRowsFollowFilter(t *testing.T) {
	s := newStore()
	assert.Len(t, s.Rows(), 2)

	s.SetFilter(model.StatusCompleted)
	rows := s.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].Key)

	s.SetFilter(model.FilterNone)
	assert.Empty(t, s.Rows())
}

func TestCycleFilter(t *testing.T) {
	s := newStore()
	assert.Equal(t, model.StatusActive, s.CycleFilter())
	assert.Equal(t, model.StatusCompleted, s.CycleFilter())
	assert.Equal(t, model.StatusAll, s.CycleFilter())

	s.SetFilter(model.FilterNone)
	assert.Equal(t, model.StatusAll, s.CycleFilter())
}

func TestFlush(t *testing.T) {
	saver := &memSaver{}
	s := newStore(WithSaver(saver))

	require.NoError(t, s.Flush())
	assert.Empty(t, saver.saved, "clean store should not save")

	require.NoError(t, s.Toggle("x"))
	require.NoError(t, s.Flush())
	require.Len(t, saver.saved, 1)
	assert.False(t, s.Dirty())

	saver.err = errors.New("disk full")
	require.NoError(t, s.Toggle("x"))
	assert.ErrorContains(t, s.Flush(), "disk full")
	assert.True(t, s.Dirty())
}
