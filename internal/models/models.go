// Package models defines the core domain types for todo.
package models

import (
	"errors"
	"fmt"
	"time"
)

// Task is a single to-do item.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter selects which tasks are visible.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ErrInvalidFilter is returned by ParseFilter for values outside all/active/completed.
var ErrInvalidFilter = errors.New("invalid filter")

// Filters returns the valid filters in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// ParseFilter converts a user supplied string into a Filter.
func ParseFilter(s string) (Filter, error) {
	f := Filter(s)
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q (want all, active or completed)", ErrInvalidFilter, s)
	}
	return f, nil
}

// Valid reports whether f is one of the known filters.
func (f Filter) Valid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	}
	return false
}

// Matches reports whether t is visible under f.
// Unknown filters match everything.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next returns the filter after f, wrapping back to all.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

// Label is the capitalised name shown in the UI.
func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
