package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Add        key.Binding
	NextFilter key.Binding
	ShowAll    key.Binding
	ShowActive key.Binding
	ShowDone   key.Binding
	Submit     key.Binding
	Cancel     key.Binding
	Yes        key.Binding
	No         key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Edit:       key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Add:        key.NewBinding(key.WithKeys("a", "i", "n"), key.WithHelp("a", "add")),
		NextFilter: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		ShowAll:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		ShowActive: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "active")),
		ShowDone:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Yes:        key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "delete")),
		No:         key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "keep")),
		Quit:       key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// helpFor lists the bindings worth showing in the given mode.
func (k keyMap) helpFor(m mode) []key.Binding {
	switch m {
	case modeAdd:
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "browse")),
			k.NextFilter,
		}
	case modeEdit:
		return []key.Binding{k.Submit, k.Cancel}
	case modeConfirm:
		return []key.Binding{k.Yes, k.No}
	default:
		return []key.Binding{k.Up, k.Down, k.Toggle, k.Edit, k.Delete, k.Add, k.NextFilter, k.Quit}
	}
}
