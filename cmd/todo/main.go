package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fentz26/todo/internal/config"
	"github.com/fentz26/todo/internal/store"
	"github.com/fentz26/todo/internal/todo"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a small task list for the terminal",
	Long:  `todo keeps a single list of tasks, persisted locally, with a command line and an interactive TUI.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(config.ExpandHome(configPath))
		if err != nil {
			return err
		}
		if backendKind != "" {
			cfg.Storage.Backend = backendKind
		}
		if dbPath != "" {
			cfg.Storage.Path = dbPath
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		appCfg = cfg

		// Skip opening storage for commands that never touch tasks
		skipCommands := map[string]bool{
			"init": true,
			"path": true,
			"help": true,
		}
		if skipCommands[cmd.Name()] {
			return nil
		}

		b, err := store.Open(cfg.Storage.Backend, cfg.StoragePath())
		if err != nil {
			return fmt.Errorf("failed to open %s storage: %w", cfg.Storage.Backend, err)
		}
		backend = b
		tasks = todo.New(todo.NewPersister(backend, cfg.Storage.Key, log.Default()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		closeStore()
	},
	SilenceUsage: true,
	// No RunE - defaults to showing help when no subcommand is provided
}

var (
	configPath  string
	dbPath      string
	backendKind string

	appCfg  *config.Config
	backend store.Backend
	tasks   *todo.Store
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Storage path (database file or slot directory)")
	rootCmd.PersistentFlags().StringVar(&backendKind, "backend", "", "Storage backend (sqlite, file, memory)")

	// Add subcommands
	rootCmd.AddCommand(addCmd, listCmd, toggleCmd, editCmd, rmCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(configCmd)
}

// runRoot executes the command tree. Cobra skips PersistentPostRun when a
// command fails, so storage is closed here as well.
func runRoot() error {
	defer closeStore()
	return rootCmd.Execute()
}

func closeStore() {
	if backend == nil {
		return
	}
	if err := backend.Close(); err != nil {
		log.Printf("close storage: %v", err)
	}
	backend = nil
	tasks = nil
}

func main() {
	if err := runRoot(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
