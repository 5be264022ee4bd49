package main

import (
	"fmt"
	"path/filepath"

	"github.com/bensonlsp/reiki-timer/internal/config"
	"github.com/bensonlsp/reiki-timer/internal/editor"
	"github.com/bensonlsp/reiki-timer/internal/paths"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the config file in $EDITOR",
	Long: `Open ./reiki.toml (or the global file with --global) in $EDITOR.

A missing file is created from the built-in defaults first. The edited
configuration is validated when the editor exits.`,
	Args: cobra.NoArgs,
	RunE: runConfigEdit,
}

var configEditGlobal bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configEditCmd)

	configEditCmd.Flags().BoolVar(&configEditGlobal, "global", false, "Edit the per-user config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	return cfg.Write(cmd.OutOrStdout())
}

func loadConfig() (*config.Config, error) {
	cwd, err := paths.WorkingDir()
	if err != nil {
		return nil, err
	}
	return config.Load(cwd)
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	path, err := configEditPath()
	if err != nil {
		return err
	}

	defaults := config.Default()
	created, err := editor.EnsureConfigFile(path, editor.ConfigData{
		Sequence:     defaults.Session.Sequence,
		Minutes:      defaults.Session.Minutes,
		Seconds:      defaults.Session.Seconds,
		BellEnabled:  defaults.Bell.Enabled,
		BellVolume:   defaults.Bell.Volume,
		MusicEnabled: defaults.Music.Enabled,
		MusicVolume:  defaults.Music.Volume,
	})
	if err != nil {
		return err
	}
	if created {
		fmt.Fprintf(cmd.ErrOrStderr(), "Created %s\n", path)
	}

	if err := editor.Edit(path); err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func configEditPath() (string, error) {
	if configEditGlobal {
		return paths.GlobalConfigPath()
	}
	cwd, err := paths.WorkingDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, config.ProjectFile), nil
}
