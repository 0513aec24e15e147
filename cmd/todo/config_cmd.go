package main

import (
	"fmt"
	"os"

	"github.com/fentz26/todo/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.ExpandHome(configPath))
	},
}

var configForce bool

func init() {
	configCmd.AddCommand(configInitCmd, configPathCmd)
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ExpandHome(configPath)
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("config file %s already exists (use --force to overwrite)", path)
	}
	if err := config.SaveConfig(path, appCfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
