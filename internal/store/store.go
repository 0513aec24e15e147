// Package store provides durable local key/value slots for todo.
//
// A slot holds one serialized value under a name. Three backends exist:
// SQLite (the default), a directory of JSON files and an in-process map.
package store

import (
	"errors"
	"fmt"
	"strings"
)

// Slot is a named value in durable local storage.
type Slot interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set overwrites the value stored under key.
	Set(key, value string) error
}

// Backend is a Slot with a lifecycle.
type Backend interface {
	Slot
	Close() error
}

// Backend names accepted by Open.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

var (
	// ErrUnknownBackend indicates Open was asked for a backend it does not know.
	ErrUnknownBackend = errors.New("unknown storage backend")

	// ErrInvalidKey indicates a slot key that is empty or not usable as a name.
	ErrInvalidKey = errors.New("invalid slot key")
)

// Open creates the backend named by kind. path is the database file for
// sqlite and the slot directory for file; memory ignores it.
func Open(kind, path string) (Backend, error) {
	switch kind {
	case BackendSQLite:
		return NewSQLite(path)
	case BackendFile:
		return NewFile(path)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, kind)
	}
}

// ValidateKey rejects keys that cannot be stored safely by every backend.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
