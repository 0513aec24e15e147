package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fentz26/todo/internal/models"
)

var (
	tabStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(fgColor).
			Background(primaryColor).
			Bold(true).
			Padding(0, 1)

	doneTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Strikethrough(true)

	checkOpen = lipgloss.NewStyle().Foreground(warningColor).Render("[ ]")
	checkDone = lipgloss.NewStyle().Foreground(successColor).Render("[x]")
)

func (a *App) renderFilterTabs() string {
	var tabs []string
	for _, f := range models.Filters() {
		style := tabStyle
		if f == a.store.Filter() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(f.Label()))
	}
	return " " + strings.Join(tabs, " ")
}

func (a *App) renderTaskList(height int) string {
	tasks := a.store.Visible()
	if len(tasks) == 0 {
		return "\n  " + helpStyle.Render(emptyText(a.store.Filter())) + "\n"
	}

	width := a.width - 10
	if width < 20 {
		width = 60
	}

	var lines []string
	for i, task := range tasks {
		text := Truncate(SanitizeText(task.Text), width)

		if i == a.selectedIdx && a.mode != modeAdd {
			mark := "[ ]"
			if task.Completed {
				mark = "[x]"
			}
			lines = append(lines, selectedStyle.Render(fmt.Sprintf("▶ %s %s", mark, text)))
			continue
		}

		check := checkOpen
		if task.Completed {
			check = checkDone
			text = doneTextStyle.Render(text)
		}
		lines = append(lines, taskItemStyle.Render(fmt.Sprintf("  %s %s", check, text)))
	}

	// Limit visible lines
	if height > 0 && len(lines) > height {
		start := a.selectedIdx - height/2
		if start < 0 {
			start = 0
		}
		end := start + height
		if end > len(lines) {
			end = len(lines)
			start = max(0, end-height)
		}
		lines = lines[start:end]
	}

	return strings.Join(lines, "\n")
}

func emptyText(f models.Filter) string {
	switch f {
	case models.FilterActive:
		return "No active tasks."
	case models.FilterCompleted:
		return "No completed tasks."
	default:
		return "No tasks yet. Type one below and press enter."
	}
}
