package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestNewSQLite(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Verify file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSQLiteSlots(t *testing.T) {
	s := newTestSQLite(t)
	defer s.Close()

	testSlotContract(t, s)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := s.Set("modernTodos", `[{"id":"1"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	s.Close()

	s, err = NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get("modernTodos")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: ok=%v err=%v", ok, err)
	}
	if got != `[{"id":"1"}]` {
		t.Errorf("Unexpected value after reopen: %s", got)
	}
}

func TestFileSlots(t *testing.T) {
	f, err := NewFile(filepath.Join(t.TempDir(), "slots"))
	if err != nil {
		t.Fatalf("NewFile failed: %v", err)
	}
	defer f.Close()

	testSlotContract(t, f)

	if _, err := os.Stat(filepath.Join(f.dir, "modernTodos.json")); err != nil {
		t.Errorf("Expected slot file to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(f.dir, "modernTodos.json.tmp")); !os.IsNotExist(err) {
		t.Error("Temporary file should be gone after Set")
	}
}

func TestMemorySlots(t *testing.T) {
	m := NewMemory()
	testSlotContract(t, m)

	if m.Writes() != 2 {
		t.Errorf("Expected 2 writes, got %d", m.Writes())
	}
}

func TestMemoryFailWrites(t *testing.T) {
	m := NewMemory()
	if err := m.Set("k", "before"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	diskFull := errors.New("disk full")
	m.FailWrites(diskFull)
	if err := m.Set("k", "after"); !errors.Is(err, diskFull) {
		t.Errorf("Expected disk full error, got %v", err)
	}

	got, _, _ := m.Get("k")
	if got != "before" {
		t.Errorf("Failed write must not change the slot, got %s", got)
	}

	m.FailWrites(nil)
	if err := m.Set("k", "after"); err != nil {
		t.Errorf("Set after recovery failed: %v", err)
	}
}

func TestInvalidKeys(t *testing.T) {
	m := NewMemory()
	for _, key := range []string{"", "  ", "a/b", `a\b`, "..", "."} {
		if err := m.Set(key, "v"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Set(%q): expected ErrInvalidKey, got %v", key, err)
		}
		if _, _, err := m.Get(key); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("Get(%q): expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestOpen(t *testing.T) {
	tmpDir := t.TempDir()

	for _, kind := range []string{BackendSQLite, BackendFile, BackendMemory} {
		b, err := Open(kind, filepath.Join(tmpDir, kind))
		if err != nil {
			t.Fatalf("Open(%s) failed: %v", kind, err)
		}
		if err := b.Set("k", "v"); err != nil {
			t.Errorf("%s: Set failed: %v", kind, err)
		}
		b.Close()
	}

	if _, err := Open("redis", ""); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Expected ErrUnknownBackend, got %v", err)
	}
}

// testSlotContract checks the behaviour every backend shares.
func testSlotContract(t *testing.T, s Slot) {
	t.Helper()

	// Missing key
	_, ok, err := s.Get("modernTodos")
	if err != nil {
		t.Fatalf("Get missing failed: %v", err)
	}
	if ok {
		t.Error("Expected missing key to report ok=false")
	}

	// Set then get
	if err := s.Set("modernTodos", "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, ok, err := s.Get("modernTodos")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got != "[]" {
		t.Errorf("Expected '[]', got %s", got)
	}

	// Overwrite
	if err := s.Set("modernTodos", `[{"id":"a"}]`); err != nil {
		t.Fatalf("Overwrite failed: %v", err)
	}
	got, _, _ = s.Get("modernTodos")
	if got != `[{"id":"a"}]` {
		t.Errorf("Expected overwritten value, got %s", got)
	}

	// Other keys stay independent
	if _, ok, _ := s.Get("other"); ok {
		t.Error("Unrelated key should be absent")
	}
}

func newTestSQLite(t *testing.T) *SQLite {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	s, err := NewSQLite(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return s
}
