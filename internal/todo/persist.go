package todo

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/fentz26/todo/internal/models"
	"github.com/fentz26/todo/internal/store"
)

// DefaultKey is the slot name the task collection is stored under.
const DefaultKey = "modernTodos"

// Persister serializes the task collection to one slot.
type Persister struct {
	slot   store.Slot
	key    string
	logger *log.Logger
}

// NewPersister creates a Persister. An empty key selects DefaultKey and a
// nil logger selects log.Default().
func NewPersister(slot store.Slot, key string, logger *log.Logger) *Persister {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Persister{slot: slot, key: key, logger: logger}
}

// Key returns the slot name in use.
func (p *Persister) Key() string {
	return p.key
}

// Save writes the full collection, replacing whatever the slot held.
func (p *Persister) Save(tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := p.slot.Set(p.key, string(data)); err != nil {
		return fmt.Errorf("write slot %s: %w", p.key, err)
	}
	return nil
}

// Load reads the collection. It never fails: an absent slot yields an empty
// collection and unreadable or malformed data is logged and treated the same.
func (p *Persister) Load() []models.Task {
	raw, ok, err := p.slot.Get(p.key)
	if err != nil {
		p.logger.Printf("load tasks: read slot %s: %v", p.key, err)
		return []models.Task{}
	}
	if !ok {
		return []models.Task{}
	}

	var tasks []models.Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		p.logger.Printf("load tasks: decode slot %s: %v", p.key, err)
		return []models.Task{}
	}
	return p.clean(tasks)
}

// clean drops records that would break the collection's invariants:
// missing ids, blank text and repeated ids (the first occurrence wins).
func (p *Persister) clean(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	seen := make(map[string]bool, len(tasks))
	for i, t := range tasks {
		switch {
		case t.ID == "":
			p.logger.Printf("load tasks: dropping record %d without id", i)
			continue
		case strings.TrimSpace(t.Text) == "":
			p.logger.Printf("load tasks: dropping task %s with empty text", t.ID)
			continue
		case seen[t.ID]:
			p.logger.Printf("load tasks: dropping duplicate task %s", t.ID)
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
