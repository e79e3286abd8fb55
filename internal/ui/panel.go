package ui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/Makepad-fr/tada/internal/todolist"
)

var ansiRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string { return ansiRegexp.ReplaceAllString(s, "") }

func visibleWidth(s string) int { return runewidth.StringWidth(stripANSI(s)) }

// ProgressBar renders a Unicode progress bar with percentage.
func ProgressBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	if width < 5 {
		width = 5
	}
	filled := int(float64(done) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	pct := int(float64(done) / float64(total) * 100)
	return fmt.Sprintf("%s %3d%%", bar, pct)
}

// Panel draws a framed box using the current theme.
func Panel(lines []string) {
	t := Current()
	maxw := 0
	for _, ln := range lines {
		if w := visibleWidth(ln); w > maxw {
			maxw = w
		}
	}
	pad := func(s string) string {
		if vis := visibleWidth(s); vis < maxw {
			s += strings.Repeat(" ", maxw-vis)
		}
		return s
	}
	fmt.Fprintln(Stdout, t.CornerTL+strings.Repeat(t.H, maxw+2)+t.CornerTR)
	for _, ln := range lines {
		fmt.Fprintln(Stdout, t.V+" "+pad(ln)+" "+t.V)
	}
	fmt.Fprintln(Stdout, t.CornerBL+strings.Repeat(t.H, maxw+2)+t.CornerBR)
}

const maxTextWidth = 80

// numbered is a row with the 1-based index `done` and `rm` accept for it.
type numbered struct {
	n   int
	row todolist.Row
}

// TodoLines renders visible rows with 1-based indexes, a checkbox, and
// struck-through text for completed todos. Editing todos get a marker.
func TodoLines(rows []todolist.Row) []string {
	nr := make([]numbered, len(rows))
	for i, r := range rows {
		nr[i] = numbered{n: i + 1, row: r}
	}
	return todoLines(nr)
}

func todoLines(rows []numbered) []string {
	t := Current()
	if len(rows) == 0 {
		return []string{C(t.Muted, "no items")}
	}
	out := make([]string, 0, len(rows))
	for _, nr := range rows {
		r := nr.row
		idx := fmt.Sprintf("%2d.", nr.n)
		box, color, textColor := t.BoxUnchecked, t.Muted, ""
		if r.Todo.Completed() {
			box, color, textColor = t.BoxChecked, t.Success, t.Done
		}
		text := runewidth.Truncate(r.Todo.Text, maxTextWidth, "...")
		line := fmt.Sprintf("%s %s %s", C(dim, idx), C(color, box), C(textColor, text))
		if r.Todo.Editing {
			line += " " + C(t.Accent, t.SymEditing)
		}
		out = append(out, line)
	}
	return out
}

// GroupLines renders active rows, then completed rows, under headings.
// Each row keeps its index in the ungrouped list.
func GroupLines(rows []todolist.Row) []string {
	t := Current()
	var active, completed []numbered
	for i, r := range rows {
		nr := numbered{n: i + 1, row: r}
		if r.Todo.Completed() {
			completed = append(completed, nr)
		} else {
			active = append(active, nr)
		}
	}
	section := func(title string, rows []numbered) []string {
		lines := []string{C(t.Accent, title)}
		if len(rows) == 0 {
			return append(lines, C(t.Muted, "(none)"))
		}
		return append(lines, todoLines(rows)...)
	}
	lines := section("Active", active)
	lines = append(lines, "")
	return append(lines, section("Completed", completed)...)
}
