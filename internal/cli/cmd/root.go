// Package cmd provides Cobra CLI commands for atelo.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli"
	"github.com/atelo/atelo/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "atelo",
		Short: "Records and dashboard tool for architecture studios",
		Long: `Atelo keeps an architecture studio's records in one place and puts
them on a tiling grid dashboard in the terminal.

Features:
  - Offices, projects and building regulations in a local SQLite store
  - A keyboard-driven grid dashboard per office, with movable and
    resizable windows whose layout persists across sessions
  - Free-text ingestion that classifies notes into records
  - TOML configuration with live reload and environment overrides

Use 'atelo dashboard' to open the grid, or explore the subcommands for
record management and ingestion.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
