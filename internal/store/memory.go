package store

import "sync"

// Memory is an in-process Backend. Nothing survives Close.
type Memory struct {
	mu       sync.Mutex
	slots    map[string]string
	writeErr error
	writes   int
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{slots: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.slots[key]
	return v, ok, nil
}

// Set stores value under key, or returns the error configured by FailWrites.
func (m *Memory) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	m.slots[key] = value
	m.writes++
	return nil
}

// FailWrites makes every subsequent Set return err. A nil err restores writes.
func (m *Memory) FailWrites(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeErr = err
}

// Writes counts successful Set calls.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Close drops all slots.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots = make(map[string]string)
	return nil
}
