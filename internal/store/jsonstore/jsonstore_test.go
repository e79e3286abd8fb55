package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
)

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := New(filepath.Join(t.TempDir(), "todos.json"))
	require.NoError(t, err)

	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestSaveLoadDropsTransientFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "todos.json")
	s, err := New(path)
	require.NoError(t, err)

	in := model.NewCollection(
		model.Todo{ID: "1", Text: "React", Status: model.StatusActive, Editing: true, TempText: "Re"},
		model.Todo{ID: "2", Text: "Redux", Status: model.StatusCompleted},
	)
	require.NoError(t, s.Save(in))

	out, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())
	assert.Equal(t, model.Todo{ID: "1", Text: "React", Status: model.StatusActive}, out.At(0))
	assert.Equal(t, model.StatusCompleted, out.At(1).Status)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "TempText")
	assert.NotContains(t, string(b), "Re\"")
}

func TestLoadRejectsDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	data := `[{"id":"1","text":"a","status":"active"},{"id":"1","text":"b","status":"active"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Load()
	assert.ErrorIs(t, err, model.ErrDuplicateKey)
}

func TestLoadAssignsMissingIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	data := `[{"text":"a","status":"active"},{"text":"a","status":"completed"}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := New(path)
	require.NoError(t, err)
	c, err := s.Load()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.NotEmpty(t, c.At(0).ID)
	assert.NotEqual(t, c.At(0).Key(), c.At(1).Key())

	require.NoError(t, s.Save(c))
	again, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, c.At(0).ID, again.At(0).ID)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))

	s, err := New(path)
	require.NoError(t, err)
	_, err = s.Load()
	assert.ErrorContains(t, err, "json unmarshal")
}

func TestNewDefaultsToWorkingDirectory(t *testing.T) {
	s, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultFileName, filepath.Base(s.Path()))
}
