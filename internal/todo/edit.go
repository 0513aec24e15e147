package todo

import "strings"

// EditSession is an in-progress edit of one task.
type EditSession struct {
	TaskID string
	// Text is the task text when the session was opened.
	Text string
}

type editState struct {
	open   bool
	taskID string
	text   string
}

// OpenEdit starts editing the task with id. Opening while another edit is in
// progress replaces it; the abandoned draft is never written. Unknown ids
// leave the current session untouched.
func (s *Store) OpenEdit(id string) bool {
	t, ok := s.Get(id)
	if !ok {
		return false
	}
	s.edit = editState{open: true, taskID: t.ID, text: t.Text}
	return true
}

// EditSession reports the open edit, if any.
func (s *Store) EditSession() (EditSession, bool) {
	if !s.edit.open {
		return EditSession{}, false
	}
	return EditSession{TaskID: s.edit.taskID, Text: s.edit.text}, true
}

// SaveEdit applies text to the task under edit and closes the session.
// Blank text is ignored and keeps the session open. If the task has gone
// away the session closes without writing anything.
func (s *Store) SaveEdit(text string) bool {
	if !s.edit.open {
		return false
	}
	if strings.TrimSpace(text) == "" {
		return false
	}
	id := s.edit.taskID
	s.edit = editState{}
	return s.Update(id, text)
}

// CancelEdit closes the session without saving.
func (s *Store) CancelEdit() {
	s.edit = editState{}
}
