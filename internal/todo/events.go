package todo

import "github.com/fentz26/todo/internal/models"

// EventKind names the change a subscriber is told about.
type EventKind string

const (
	EventCreated EventKind = "created"
	EventToggled EventKind = "toggled"
	EventUpdated EventKind = "updated"
	EventDeleted EventKind = "deleted"
	EventFilter  EventKind = "filter"
)

// Event describes one effective change. Task is the task after the change
// (before it, for deletions) and is zero for filter changes.
type Event struct {
	Kind EventKind
	Task models.Task
}

type subscriber struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to be called after every effective change, in
// registration order. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) publish(ev Event) {
	for _, sub := range s.subs {
		sub.fn(ev)
	}
}
