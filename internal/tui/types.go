package tui

// mode is the screen state of the App.
type mode int

const (
	// modeAdd focuses the new task input. The App starts here.
	modeAdd mode = iota
	// modeList navigates the visible tasks.
	modeList
	// modeEdit shows the edit modal for the store's edit session.
	modeEdit
	// modeConfirm asks whether pendingDelete should really be removed.
	modeConfirm
)

func (m mode) String() string {
	switch m {
	case modeAdd:
		return "add"
	case modeList:
		return "list"
	case modeEdit:
		return "edit"
	case modeConfirm:
		return "confirm"
	default:
		return "unknown"
	}
}

// Options tunes the App.
type Options struct {
	// ConfirmDelete asks y/n before a task is deleted.
	ConfirmDelete bool
	// AltScreen runs the program in the alternate screen buffer.
	AltScreen bool
}
