package model

import (
	"errors"
	"fmt"
	"strings"
)

// Status is both the state of a todo and the value used to filter a list.
type Status string

const (
	StatusAll       Status = "all"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Filter selects which todos a list shows. The zero value means no filter
// was given, which shows nothing.
type Filter = Status

const FilterNone Filter = ""

// Filters lists the selectable filters in tab order.
var Filters = []Filter{StatusAll, StatusActive, StatusCompleted}

var (
	ErrUnknownStatus = errors.New("unknown status")
	ErrInvalidStatus = errors.New("invalid todo status")
	ErrDuplicateKey  = errors.New("duplicate todo key")
)

// ParseFilter accepts all, active, completed (any case) and the empty string.
func ParseFilter(s string) (Filter, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case FilterNone:
		return FilterNone, nil
	case StatusAll:
		return StatusAll, nil
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Todo is a single entry. Editing and TempText are transient and only
// meaningful while the entry is being edited.
type Todo struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Status   Status `json:"status"`
	Editing  bool   `json:"-"`
	TempText string `json:"-"`
}

// Key identifies the todo inside a collection and keys its rendered row.
func (t Todo) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Text
}

func (t Todo) Completed() bool { return t.Status == StatusCompleted }

func (t Todo) validate() error {
	switch t.Status {
	case StatusActive, StatusCompleted:
		return nil
	}
	return fmt.Errorf("%w: %q on %q", ErrInvalidStatus, t.Status, t.Key())
}
