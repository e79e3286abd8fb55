package todolist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Makepad-fr/tada/internal/model"
)

func todos() *model.Collection {
	return model.NewCollection(
		model.Todo{ID: "1", Text: "React", Status: model.StatusActive},
		model.Todo{ID: "2", Text: "Redux", Status: model.StatusCompleted},
		model.Todo{ID: "3", Text: "Immutable", Status: model.StatusActive},
		model.Todo{ID: "4", Text: "Mocha", Status: model.StatusCompleted},
	)
}

func keys(ts []model.Todo) []string {
	out := []string{}
	for _, t := range ts {
		out = append(out, t.Key())
	}
	return out
}

func TestVisibleByFilter(t *testing.T) {
	tests := []struct {
		filter model.Filter
		want   []string
	}{
		{model.StatusAll, []string{"1", "2", "3", "4"}},
		{model.StatusActive, []string{"1", "3"}},
		{model.StatusCompleted, []string{"2", "4"}},
		{model.FilterNone, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			assert.Equal(t, tt.want, keys(Visible(todos(), tt.filter)))
		})
	}
}

func TestVisibleMembershipAndOrder(t *testing.T) {
	c := todos()
	for _, f := range append(model.Filters, model.FilterNone) {
		got := Visible(c, f)

		// Subset of the input, in input order.
		next := 0
		all := c.Todos()
		for _, v := range got {
			for next < len(all) && all[next].Key() != v.Key() {
				next++
			}
			if assert.Less(t, next, len(all), "filter %q produced %q out of order", f, v.Key()) {
				next++
			}
		}

		// Membership rule.
		for _, todo := range all {
			want := f != model.FilterNone && (f == model.StatusAll || todo.Status == f)
			assert.Equal(t, want, contains(got, todo.Key()), "filter %q todo %q", f, todo.Key())
		}
	}
}

func TestVisibleEmptyCollection(t *testing.T) {
	for _, f := range append(model.Filters, model.FilterNone) {
		assert.Empty(t, Visible(nil, f))
		assert.Empty(t, Visible(model.NewCollection(), f))
	}
}

func TestVisibleUnknownFilterMatchesNothing(t *testing.T) {
	assert.Empty(t, Visible(todos(), model.Status("someday")))
}

func TestRowsAreKeyed(t *testing.T) {
	c := model.NewCollection(
		model.Todo{ID: "a", Text: "first", Status: model.StatusActive},
		model.Todo{Text: "no id", Status: model.StatusActive},
	)
	rows := Rows(c, model.StatusAll)
	if assert.Len(t, rows, 2) {
		assert.Equal(t, "a", rows[0].Key)
		assert.Equal(t, "no id", rows[1].Key)
		assert.Equal(t, "first", rows[0].Todo.Text)
	}
}

func contains(ts []model.Todo, key string) bool {
	for _, t := range ts {
		if t.Key() == key {
			return true
		}
	}
	return false
}
