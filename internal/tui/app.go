// Package tui provides the interactive terminal UI for todo.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/todo/internal/models"
	"github.com/fentz26/todo/internal/todo"
)

var (
	// Colors
	primaryColor = lipgloss.Color("#7C3AED")
	successColor = lipgloss.Color("#10B981")
	warningColor = lipgloss.Color("#F59E0B")
	errorColor   = lipgloss.Color("#EF4444")
	mutedColor   = lipgloss.Color("#6B7280")
	fgColor      = lipgloss.Color("#F9FAFB")

	// Styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#374151")).
			Foreground(fgColor).
			Padding(0, 1)

	inputBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	taskItemStyle = lipgloss.NewStyle().
			Padding(0, 2)

	selectedStyle = lipgloss.NewStyle().
			Background(primaryColor).
			Foreground(fgColor).
			Bold(true).
			Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(0, 1)
)

// App is the main TUI application model.
type App struct {
	store       *todo.Store
	opts        Options
	keys        keyMap
	help        help.Model
	input       textinput.Model
	editInput   textinput.Model
	mode        mode
	selectedIdx int
	// pendingDelete is the task id waiting for a yes/no answer.
	pendingDelete string
	message       string
	width         int
	height        int
	unsubscribe   func()
}

// New creates a TUI over s. The App subscribes to s for status messages;
// Run drops the subscription when the program ends.
func New(s *todo.Store, opts Options) *App {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Focus()
	ti.CharLimit = 0
	ti.Width = 60

	ei := textinput.New()
	ei.Placeholder = "Task text"
	ei.CharLimit = 0
	ei.Width = 60

	a := &App{
		store:     s,
		opts:      opts,
		keys:      defaultKeyMap(),
		help:      help.New(),
		input:     ti,
		editInput: ei,
		mode:      modeAdd,
	}
	a.unsubscribe = s.Subscribe(a.onEvent)
	return a
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.unsubscribe()

	var opts []tea.ProgramOption
	if a.opts.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	p := tea.NewProgram(a, opts...)
	_, err := p.Run()
	return err
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 8
		a.editInput.Width = msg.Width - 12
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		switch a.mode {
		case modeConfirm:
			return a.updateConfirm(msg)
		case modeEdit:
			return a.updateEdit(msg)
		case modeAdd:
			return a.updateAdd(msg)
		default:
			return a.updateList(msg)
		}
	}

	// Cursor blink and friends go to whichever input is focused
	var cmd tea.Cmd
	switch a.mode {
	case modeAdd:
		a.input, cmd = a.input.Update(msg)
	case modeEdit:
		a.editInput, cmd = a.editInput.Update(msg)
	}
	return a, cmd
}

func (a *App) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		if _, ok := a.store.Create(a.input.Value()); ok {
			a.input.SetValue("")
			a.selectedIdx = 0
		}
		return a, nil
	case tea.KeyEsc:
		a.input.Blur()
		a.mode = modeList
		a.clampSelection()
		return a, nil
	case tea.KeyTab:
		a.setFilter(a.store.Filter().Next())
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Up):
		a.move(-1)

	case key.Matches(msg, a.keys.Down):
		a.move(1)

	case key.Matches(msg, a.keys.Toggle):
		if t, ok := a.selected(); ok {
			a.store.ToggleCompleted(t.ID)
			a.clampSelection()
		}

	case key.Matches(msg, a.keys.Edit):
		if t, ok := a.selected(); ok {
			return a, a.openEdit(t.ID)
		}

	case key.Matches(msg, a.keys.Delete):
		if t, ok := a.selected(); ok {
			if a.opts.ConfirmDelete {
				a.pendingDelete = t.ID
				a.mode = modeConfirm
				return a, nil
			}
			a.store.Delete(t.ID)
			a.clampSelection()
		}

	case key.Matches(msg, a.keys.Add):
		a.mode = modeAdd
		return a, a.input.Focus()

	case key.Matches(msg, a.keys.NextFilter):
		a.setFilter(a.store.Filter().Next())

	case key.Matches(msg, a.keys.ShowAll):
		a.setFilter(models.FilterAll)

	case key.Matches(msg, a.keys.ShowActive):
		a.setFilter(models.FilterActive)

	case key.Matches(msg, a.keys.ShowDone):
		a.setFilter(models.FilterCompleted)
	}
	return a, nil
}

func (a *App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Yes):
		a.store.Delete(a.pendingDelete)
		a.pendingDelete = ""
		a.mode = modeList
		a.clampSelection()
	case key.Matches(msg, a.keys.No):
		a.pendingDelete = ""
		a.mode = modeList
		a.message = "Kept task"
	}
	return a, nil
}

func (a *App) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.store.SaveEdit(a.editInput.Value())
		// Blank text keeps the session, and the modal, open
		if _, open := a.store.EditSession(); !open {
			a.closeEdit()
		}
		return a, nil
	case tea.KeyEsc:
		a.store.CancelEdit()
		a.closeEdit()
		return a, nil
	}

	var cmd tea.Cmd
	a.editInput, cmd = a.editInput.Update(msg)
	return a, cmd
}

func (a *App) openEdit(id string) tea.Cmd {
	if !a.store.OpenEdit(id) {
		return nil
	}
	sess, _ := a.store.EditSession()
	a.editInput.SetValue(sess.Text)
	a.editInput.CursorEnd()
	a.mode = modeEdit
	return a.editInput.Focus()
}

func (a *App) closeEdit() {
	a.editInput.Blur()
	a.editInput.SetValue("")
	a.mode = modeList
	a.clampSelection()
}

func (a *App) setFilter(f models.Filter) {
	if a.store.SetFilter(f) {
		a.selectedIdx = 0
	}
}

func (a *App) selected() (models.Task, bool) {
	tasks := a.store.Visible()
	if a.selectedIdx < 0 || a.selectedIdx >= len(tasks) {
		return models.Task{}, false
	}
	return tasks[a.selectedIdx], true
}

func (a *App) move(delta int) {
	a.selectedIdx += delta
	a.clampSelection()
}

func (a *App) clampSelection() {
	n := len(a.store.Visible())
	if a.selectedIdx >= n {
		a.selectedIdx = n - 1
	}
	if a.selectedIdx < 0 {
		a.selectedIdx = 0
	}
}

// onEvent turns store changes into the status line.
func (a *App) onEvent(ev todo.Event) {
	text := Truncate(SanitizeText(ev.Task.Text), 40)
	switch ev.Kind {
	case todo.EventCreated:
		a.message = "✓ Added: " + text
	case todo.EventToggled:
		if ev.Task.Completed {
			a.message = "✓ Completed: " + text
		} else {
			a.message = "○ Reopened: " + text
		}
	case todo.EventUpdated:
		a.message = "✓ Updated: " + text
	case todo.EventDeleted:
		a.message = "✗ Deleted: " + text
	case todo.EventFilter:
		a.message = "Showing " + strings.ToLower(a.store.Filter().Label()) + " tasks"
	}
}

// View implements tea.Model
func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("✔ TODO") + "\n")
	if a.width > 0 {
		b.WriteString(strings.Repeat("─", a.width) + "\n")
	}

	b.WriteString(a.renderFilterTabs() + "\n\n")

	// Main content area
	contentHeight := a.height - 12
	if contentHeight < 5 {
		contentHeight = 5
	}
	b.WriteString(a.renderTaskList(contentHeight) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(" "+a.store.RemainingLabel()) + "\n")

	// Message bar
	if a.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(successColor)
		if strings.HasPrefix(a.message, "✗") {
			msgStyle = lipgloss.NewStyle().Foreground(errorColor)
		}
		b.WriteString(" " + msgStyle.Render(a.message))
	}
	b.WriteString("\n")

	switch a.mode {
	case modeEdit:
		b.WriteString(a.renderEditModal())
	case modeConfirm:
		b.WriteString(a.renderConfirm())
	default:
		b.WriteString(inputBoxStyle.Render(a.input.View()))
	}
	b.WriteString("\n")

	b.WriteString(statusBarStyle.Width(max(a.width, 1)).Render(a.help.ShortHelpView(a.keys.helpFor(a.mode))))

	return b.String()
}

func (a *App) renderEditModal() string {
	title := lipgloss.NewStyle().Bold(true).Render("Edit task")
	return panelStyle.Render(title + "\n" + a.editInput.View())
}

func (a *App) renderConfirm() string {
	text := ""
	if t, ok := a.store.Get(a.pendingDelete); ok {
		text = Truncate(SanitizeText(t.Text), 50)
	}
	question := lipgloss.NewStyle().Foreground(errorColor).Bold(true).
		Render("Are you sure you want to delete this task?")
	return panelStyle.Render(fmt.Sprintf("%s\n%s\n%s", question, text, helpStyle.Render("y: delete • n: keep")))
}
