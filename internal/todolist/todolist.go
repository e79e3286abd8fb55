// Package todolist derives the rows a todo list shows for a given filter.
package todolist

import "github.com/Makepad-fr/tada/internal/model"

// Row is a visible todo together with the key its rendered row is
// identified by across renders.
type Row struct {
	Key  string
	Todo model.Todo
}

// Visible returns the todos selected by filter, in collection order.
// A todo is visible when the filter is "all" or equals its status, so an
// absent filter selects nothing.
func Visible(todos *model.Collection, filter model.Filter) []model.Todo {
	out := []model.Todo{}
	if todos.Len() == 0 || filter == model.FilterNone {
		return out
	}
	for _, t := range todos.Todos() {
		if filter == model.StatusAll || t.Status == filter {
			out = append(out, t)
		}
	}
	return out
}

func Rows(todos *model.Collection, filter model.Filter) []Row {
	visible := Visible(todos, filter)
	rows := make([]Row, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, Row{Key: t.Key(), Todo: t})
	}
	return rows
}
