package model

import (
	"fmt"

	"github.com/benbjohnson/immutable"
)

// Collection is an ordered, immutable sequence of todos. Insertion order is
// display order. Methods that change the sequence return a new Collection
// and leave the receiver untouched. A nil *Collection is empty.
type Collection struct {
	list *immutable.List[Todo]
}

func NewCollection(todos ...Todo) *Collection {
	return &Collection{list: immutable.NewList(todos...)}
}

func (c *Collection) Len() int {
	if c == nil || c.list == nil {
		return 0
	}
	return c.list.Len()
}

// At panics when i is out of range, like a slice index.
func (c *Collection) At(i int) Todo {
	return c.list.Get(i)
}

// IndexOf returns the position of the todo with the given key, or -1.
func (c *Collection) IndexOf(key string) int {
	if c.Len() == 0 {
		return -1
	}
	itr := c.list.Iterator()
	for !itr.Done() {
		i, t := itr.Next()
		if t.Key() == key {
			return i
		}
	}
	return -1
}

func (c *Collection) Append(t Todo) *Collection {
	if c.Len() == 0 {
		return NewCollection(t)
	}
	return &Collection{list: c.list.Append(t)}
}

func (c *Collection) Replace(i int, t Todo) *Collection {
	return &Collection{list: c.list.Set(i, t)}
}

// Insert places t at index i, clamping i to [0, Len].
func (c *Collection) Insert(i int, t Todo) *Collection {
	n := c.Len()
	if i < 0 {
		i = 0
	}
	if i > n {
		i = n
	}
	if n == 0 {
		return NewCollection(t)
	}
	if i == 0 {
		return &Collection{list: c.list.Prepend(t)}
	}
	head := c.list.Slice(0, i).Append(t)
	itr := c.list.Slice(i, n).Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		head = head.Append(v)
	}
	return &Collection{list: head}
}

func (c *Collection) Remove(i int) *Collection {
	n := c.Len()
	if i < 0 || i >= n {
		return c
	}
	out := c.list.Slice(0, i)
	itr := c.list.Slice(i+1, n).Iterator()
	for !itr.Done() {
		_, v := itr.Next()
		out = out.Append(v)
	}
	return &Collection{list: out}
}

// Todos copies the collection into a fresh slice.
func (c *Collection) Todos() []Todo {
	out := make([]Todo, 0, c.Len())
	if c.Len() == 0 {
		return out
	}
	itr := c.list.Iterator()
	for !itr.Done() {
		_, t := itr.Next()
		out = append(out, t)
	}
	return out
}

// Validate checks that keys are unique and every todo carries a concrete
// status.
func (c *Collection) Validate() error {
	seen := make(map[string]struct{}, c.Len())
	for _, t := range c.Todos() {
		if err := t.validate(); err != nil {
			return err
		}
		if _, dup := seen[t.Key()]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateKey, t.Key())
		}
		seen[t.Key()] = struct{}{}
	}
	return nil
}

// Count returns how many todos are active and how many are completed.
func Count(c *Collection) (active, completed int) {
	for _, t := range c.Todos() {
		if t.Completed() {
			completed++
		} else {
			active++
		}
	}
	return
}
