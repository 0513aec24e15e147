package tui

import (
	"bytes"
	"log"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/todo/internal/models"
	"github.com/fentz26/todo/internal/store"
	"github.com/fentz26/todo/internal/todo"
)

func TestAddTask(t *testing.T) {
	a, s := newTestApp(t, Options{ConfirmDelete: true})

	if a.mode != modeAdd {
		t.Fatalf("Expected to start in add mode, got %s", a.mode)
	}

	pressRunes(a, "Buy milk")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	if s.Len() != 1 {
		t.Fatalf("Expected 1 task, got %d", s.Len())
	}
	if s.Tasks()[0].Text != "Buy milk" {
		t.Errorf("Unexpected task text: %q", s.Tasks()[0].Text)
	}
	if a.input.Value() != "" {
		t.Errorf("Input should be cleared after add, got %q", a.input.Value())
	}
	if !strings.Contains(a.message, "Added") {
		t.Errorf("Expected status message for add, got %q", a.message)
	}
	if !strings.Contains(a.View(), "1 task remaining") {
		t.Error("View should show the remaining counter")
	}
}

func TestAddBlankIsIgnored(t *testing.T) {
	a, s := newTestApp(t, Options{})

	pressRunes(a, "   ")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	if s.Len() != 0 {
		t.Errorf("Blank input should not add a task, got %d", s.Len())
	}
	if !strings.Contains(a.View(), "No tasks yet") {
		t.Error("Expected empty state in view")
	}
}

func TestToggleAndFilter(t *testing.T) {
	a, s := newTestApp(t, Options{})
	task, _ := s.Create("Buy milk")

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	if a.mode != modeList {
		t.Fatalf("Expected list mode after esc, got %s", a.mode)
	}

	pressRunes(a, "x")
	got, _ := s.Get(task.ID)
	if !got.Completed {
		t.Fatal("Expected task to be completed after toggle")
	}

	pressRunes(a, "2")
	if s.Filter() != models.FilterActive {
		t.Errorf("Expected active filter, got %s", s.Filter())
	}
	if !strings.Contains(a.View(), "No active tasks") {
		t.Error("Expected active empty state")
	}

	pressRunes(a, "3")
	if len(s.Visible()) != 1 {
		t.Errorf("Expected completed task visible, got %d", len(s.Visible()))
	}

	press(a, tea.KeyMsg{Type: tea.KeyTab})
	if s.Filter() != models.FilterAll {
		t.Errorf("Expected tab to cycle back to all, got %s", s.Filter())
	}
}

func TestNavigation(t *testing.T) {
	a, s := newTestApp(t, Options{})
	s.Create("A")
	s.Create("B")
	s.Create("C")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "j")
	pressRunes(a, "j")
	pressRunes(a, "j") // clamps at the last row
	if a.selectedIdx != 2 {
		t.Errorf("Expected selection 2, got %d", a.selectedIdx)
	}
	sel, _ := a.selected()
	if sel.Text != "A" {
		t.Errorf("Expected oldest task at the bottom, got %s", sel.Text)
	}

	pressRunes(a, "k")
	press(a, tea.KeyMsg{Type: tea.KeyUp})
	press(a, tea.KeyMsg{Type: tea.KeyUp})
	if a.selectedIdx != 0 {
		t.Errorf("Expected selection 0, got %d", a.selectedIdx)
	}
}

func TestEditTask(t *testing.T) {
	a, s := newTestApp(t, Options{})
	task, _ := s.Create("Buy milk")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "e")
	if a.mode != modeEdit {
		t.Fatalf("Expected edit mode, got %s", a.mode)
	}
	if a.editInput.Value() != "Buy milk" {
		t.Errorf("Edit input should hold current text, got %q", a.editInput.Value())
	}
	if !strings.Contains(a.View(), "Edit task") {
		t.Error("Expected edit modal in view")
	}

	// Blank save keeps the modal open
	a.editInput.SetValue("  ")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.mode != modeEdit {
		t.Error("Blank save should keep the edit modal open")
	}

	a.editInput.SetValue("Buy oat milk")
	press(a, tea.KeyMsg{Type: tea.KeyEnter})
	if a.mode != modeList {
		t.Errorf("Expected list mode after save, got %s", a.mode)
	}
	got, _ := s.Get(task.ID)
	if got.Text != "Buy oat milk" {
		t.Errorf("Expected updated text, got %q", got.Text)
	}
	if _, open := s.EditSession(); open {
		t.Error("Edit session should be closed")
	}
}

func TestEditKeepsLongText(t *testing.T) {
	a, s := newTestApp(t, Options{})
	long := strings.Repeat("x", 300)
	task, _ := s.Create(long)
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "e")
	if got := len([]rune(a.editInput.Value())); got != 300 {
		t.Fatalf("Edit input holds %d runes, want 300", got)
	}
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	got, _ := s.Get(task.ID)
	if got.Text != long {
		t.Errorf("Saving an unchanged edit changed the text: %d -> %d runes", 300, len([]rune(got.Text)))
	}
}

func TestAddLongText(t *testing.T) {
	a, s := newTestApp(t, Options{})
	long := strings.Repeat("y", 400)

	pressRunes(a, long)
	press(a, tea.KeyMsg{Type: tea.KeyEnter})

	if s.Len() != 1 {
		t.Fatalf("Expected 1 task, got %d", s.Len())
	}
	if s.Tasks()[0].Text != long {
		t.Errorf("Added text was cut to %d runes", len([]rune(s.Tasks()[0].Text)))
	}
}

func TestArrowsInAddModeLeaveSelection(t *testing.T) {
	a, s := newTestApp(t, Options{})
	s.Create("A")
	s.Create("B")

	press(a, tea.KeyMsg{Type: tea.KeyDown})
	if a.selectedIdx != 0 {
		t.Errorf("Down in add mode moved the hidden selection to %d", a.selectedIdx)
	}
	if a.mode != modeAdd {
		t.Errorf("Expected to stay in add mode, got %s", a.mode)
	}

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	press(a, tea.KeyMsg{Type: tea.KeyDown})
	if a.selectedIdx != 1 {
		t.Errorf("Down in list mode should move the selection, got %d", a.selectedIdx)
	}
}

func TestEditCancel(t *testing.T) {
	a, s := newTestApp(t, Options{})
	task, _ := s.Create("Buy milk")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "e")
	pressRunes(a, " and bread")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	if a.mode != modeList {
		t.Errorf("Expected list mode after cancel, got %s", a.mode)
	}
	got, _ := s.Get(task.ID)
	if got.Text != "Buy milk" {
		t.Errorf("Cancelled edit changed text to %q", got.Text)
	}
	if _, open := s.EditSession(); open {
		t.Error("Edit session should be closed after cancel")
	}
}

func TestDeleteWithConfirmation(t *testing.T) {
	a, s := newTestApp(t, Options{ConfirmDelete: true})
	s.Create("Buy milk")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "d")
	if a.mode != modeConfirm {
		t.Fatalf("Expected confirm mode, got %s", a.mode)
	}
	if !strings.Contains(a.View(), "Are you sure") {
		t.Error("Expected confirmation prompt in view")
	}

	pressRunes(a, "n")
	if s.Len() != 1 {
		t.Fatal("Answering no must keep the task")
	}
	if a.mode != modeList {
		t.Errorf("Expected list mode after no, got %s", a.mode)
	}

	pressRunes(a, "d")
	pressRunes(a, "y")
	if s.Len() != 0 {
		t.Errorf("Answering yes should delete the task, got %d", s.Len())
	}
}

func TestDeleteWithoutConfirmation(t *testing.T) {
	a, s := newTestApp(t, Options{ConfirmDelete: false})
	s.Create("A")
	s.Create("B")
	press(a, tea.KeyMsg{Type: tea.KeyEsc})

	pressRunes(a, "j")
	pressRunes(a, "d")
	if s.Len() != 1 {
		t.Fatalf("Expected immediate delete, got %d tasks", s.Len())
	}
	if s.Tasks()[0].Text != "B" {
		t.Errorf("Expected B to remain, got %s", s.Tasks()[0].Text)
	}
	if a.selectedIdx != 0 {
		t.Errorf("Selection should clamp to remaining task, got %d", a.selectedIdx)
	}
}

func TestQuit(t *testing.T) {
	a, _ := newTestApp(t, Options{})

	// q types into the add input
	pressRunes(a, "q")
	if a.input.Value() != "q" {
		t.Errorf("Expected q in input, got %q", a.input.Value())
	}

	press(a, tea.KeyMsg{Type: tea.KeyEsc})
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg from q in list mode")
	}
}

func TestViewSanitizesText(t *testing.T) {
	a, s := newTestApp(t, Options{})
	s.Create("evil\x1b[2Jtext")

	view := a.View()
	if strings.Contains(view, "\x1b[2J") {
		t.Error("Escape sequence from task text reached the view")
	}
	if !strings.Contains(view, "evil") {
		t.Error("Expected sanitized task text in view")
	}
}

func TestSanitizeText(t *testing.T) {
	cases := map[string]string{
		"plain":          "plain",
		"line\nbreak":    "line break",
		"tab\there":      "tab here",
		"bell\a":         "bell�",
		"\x1b[31mred":    "�[31mred",
		"unicode ✓ fine": "unicode ✓ fine",
	}
	for in, want := range cases {
		if got := SanitizeText(in); got != want {
			t.Errorf("SanitizeText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Unexpected truncate: %s", got)
	}
	if got := Truncate("ünïcödé text", 8); got != "ünïcö..." {
		t.Errorf("Unexpected truncate: %s", got)
	}
	if got := Truncate("abcdef", 2); got != "ab" {
		t.Errorf("Unexpected truncate: %s", got)
	}
	if got := Truncate("abcdef", 0); got != "" {
		t.Errorf("Unexpected truncate: %s", got)
	}
}

func newTestApp(t *testing.T, opts Options) (*App, *todo.Store) {
	t.Helper()
	logger := log.New(&bytes.Buffer{}, "", 0)
	s := todo.New(todo.NewPersister(store.NewMemory(), "", logger), todo.WithLogger(logger))
	a := New(s, opts)
	t.Cleanup(a.unsubscribe)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return a, s
}

func press(a *App, msg tea.KeyMsg) {
	a.Update(msg)
}

func pressRunes(a *App, s string) {
	a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}
