package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/tada/internal/model"
	"github.com/Makepad-fr/tada/internal/todolist"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var out, errOut bytes.Buffer
	oldOut, oldErr := Stdout, Stderr
	Stdout, Stderr = &out, &errOut
	t.Cleanup(func() {
		Stdout, Stderr = oldOut, oldErr
		SetColorForcing(false, false)
		SetTheme("classic")
	})
	return &out, &errOut
}

func rows() []todolist.Row {
	c := model.NewCollection(
		model.Todo{ID: "1", Text: "React", Status: model.StatusActive},
		model.Todo{ID: "2", Text: "Redux", Status: model.StatusCompleted},
		model.Todo{ID: "3", Text: "Immutable", Status: model.StatusActive, Editing: true},
	)
	return todolist.Rows(c, model.StatusAll)
}

func TestTodoLinesMono(t *testing.T) {
	capture(t)
	SetTheme("mono")

	lines := TodoLines(rows())
	require.Len(t, lines, 3)
	assert.Equal(t, " 1. [ ] React", lines[0])
	assert.Equal(t, " 2. [x] Redux", lines[1])
	assert.Equal(t, " 3. [ ] Immutable *", lines[2])
}

func TestTodoLinesStrikesCompletedWhenColored(t *testing.T) {
	capture(t)
	SetTheme("classic")
	SetColorForcing(true, false)

	lines := TodoLines(rows())
	assert.Contains(t, lines[1], strike+"Redux")
	assert.NotContains(t, lines[0], strike)
}

func TestTodoLinesEmpty(t *testing.T) {
	capture(t)
	SetTheme("mono")
	assert.Equal(t, []string{"no items"}, TodoLines(nil))
}

func TestGroupLines(t *testing.T) {
	capture(t)
	SetTheme("mono")

	lines := GroupLines(rows())
	assert.Equal(t, []string{
		"Active",
		" 1. [ ] React",
		" 3. [ ] Immutable *",
		"",
		"Completed",
		" 2. [x] Redux",
	}, lines)
}

func TestPanelPadsToWidestLine(t *testing.T) {
	out, _ := capture(t)
	SetTheme("mono")

	Panel([]string{"ab", "☑ wide"})
	got := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, got, 4)
	assert.Equal(t, "+--------+", got[0])
	assert.Equal(t, "| ab     |", got[1])
	assert.Equal(t, "| ☑ wide |", got[2])
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "█████ 100%", ProgressBar(1, 1, 5))
	assert.Equal(t, "░░░░░   0%", ProgressBar(0, 0, 1))
}

func TestOKAndFail(t *testing.T) {
	out, errOut := capture(t)
	SetTheme("mono")
	OK("added")
	Fail("boom")
	assert.Equal(t, "✔ added\n", out.String())
	assert.Equal(t, "✖ boom\n", errOut.String())
}
