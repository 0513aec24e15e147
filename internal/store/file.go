package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// File stores each slot as <dir>/<key>.json. Writes go to a temp file that
// is renamed into place while holding an exclusive lock on <key>.json.lock.
type File struct {
	dir string
}

// NewFile creates the slot directory if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create slot directory %s: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

// Close releases nothing; locks are held only for the duration of a call.
func (f *File) Close() error {
	return nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get reads the slot under a shared lock.
func (f *File) Get(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}

	path := f.path(key)
	lk := flock.New(path + ".lock")
	if err := lk.RLock(); err != nil {
		return "", false, fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lk.Unlock() }()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", path, err)
	}
	return string(data), true, nil
}

// Set replaces the slot atomically under an exclusive lock.
func (f *File) Set(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	path := f.path(key)
	lk := flock.New(path + ".lock")
	if err := lk.Lock(); err != nil {
		return fmt.Errorf("lock %s: %w", path, err)
	}
	defer func() { _ = lk.Unlock() }()

	tmp := path + ".tmp"
	defer func() { _ = os.Remove(tmp) }()

	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("write temporary slot %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	return nil
}
