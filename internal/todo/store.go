// Package todo owns the task collection, the active filter and the edit
// session, and writes the collection back to storage after every change.
//
// A Store is meant to be driven by a single caller, one intent at a time.
// None of its operations return errors: blank text and unknown ids are
// ignored and persistence failures are logged.
package todo

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fentz26/todo/internal/models"
	"github.com/google/uuid"
)

// Store is the in-memory task collection plus its persistence round-trip.
type Store struct {
	tasks  []models.Task // newest first
	filter models.Filter
	edit   editState

	persister *Persister
	logger    *log.Logger
	now       func() time.Time
	newID     func() string

	subs   []subscriber
	nextID int
}

// Option customises a Store.
type Option func(*Store)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the UUID generator used for new tasks.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithLogger sets where persistence failures are reported.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// New creates a Store and loads the persisted collection.
func New(p *Persister, opts ...Option) *Store {
	s := &Store{
		filter:    models.FilterAll,
		persister: p,
		logger:    log.Default(),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tasks = p.Load()
	return s
}

// --- Mutations ---

// Create prepends a new task. Blank text is dropped and reported as false.
func (s *Store) Create(text string) (models.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, false
	}

	task := models.Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}
	s.tasks = append([]models.Task{task}, s.tasks...)

	s.save()
	s.publish(Event{Kind: EventCreated, Task: task})
	return task, true
}

// ToggleCompleted flips the completion flag of the task with id.
func (s *Store) ToggleCompleted(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed

	s.save()
	s.publish(Event{Kind: EventToggled, Task: s.tasks[i]})
	return true
}

// Update replaces the text of the task with id. Blank text is dropped.
func (s *Store) Update(id, text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Text = text

	s.save()
	s.publish(Event{Kind: EventUpdated, Task: s.tasks[i]})
	return true
}

// Delete removes the task with id. Callers are expected to have confirmed
// the deletion with the user already.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	removed := s.tasks[i]
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)

	if s.edit.open && s.edit.taskID == id {
		s.edit = editState{}
	}

	s.save()
	s.publish(Event{Kind: EventDeleted, Task: removed})
	return true
}

// --- Filtering ---

// SetFilter changes the active filter. Unknown values are ignored.
func (s *Store) SetFilter(f models.Filter) bool {
	if !f.Valid() {
		return false
	}
	if f == s.filter {
		return true
	}
	s.filter = f
	s.publish(Event{Kind: EventFilter})
	return true
}

// Filter returns the active filter.
func (s *Store) Filter() models.Filter {
	return s.filter
}

// Filtered returns a copy of the tasks visible under f, newest first.
// It does not touch the active filter.
func (s *Store) Filtered(f models.Filter) []models.Task {
	out := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if f.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

// Visible is Filtered under the active filter.
func (s *Store) Visible() []models.Task {
	return s.Filtered(s.filter)
}

// --- Queries ---

// Tasks returns a copy of the whole collection, newest first.
func (s *Store) Tasks() []models.Task {
	out := make([]models.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Get looks up a task by id.
func (s *Store) Get(id string) (models.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

// Len is the number of tasks in the collection.
func (s *Store) Len() int {
	return len(s.tasks)
}

// ActiveCount is the number of tasks not yet completed.
func (s *Store) ActiveCount() int {
	n := 0
	for _, t := range s.tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// RemainingLabel renders ActiveCount as "1 task remaining" or "N tasks remaining".
func (s *Store) RemainingLabel() string {
	n := s.ActiveCount()
	if n == 1 {
		return "1 task remaining"
	}
	return fmt.Sprintf("%d tasks remaining", n)
}

func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// save writes the collection. A failed write keeps the in-memory state.
func (s *Store) save() {
	if err := s.persister.Save(s.tasks); err != nil {
		s.logger.Printf("save tasks: %v", err)
	}
}
