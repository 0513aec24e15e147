package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fentz26/todo/internal/config"
	"github.com/fentz26/todo/internal/tui"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive TUI",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	// The TUI owns the terminal, so logs go to a file
	if appCfg.LogFile != "" {
		logPath := config.ExpandHome(appCfg.LogFile)
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
		f, err := tea.LogToFile(logPath, "todo")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
	}

	app := tui.New(tasks, tui.Options{
		ConfirmDelete: appCfg.UI.ConfirmDelete,
		AltScreen:     appCfg.UI.AltScreen,
	})
	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
