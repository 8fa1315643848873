package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/infrastructure/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  runConfigPath,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	app := GetApp()
	t := app.Theme
	cfg := app.Config

	fmt.Println(t.Title.Render(fmt.Sprintf("%s Configuration", styles.IconConfig)))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("database.path"), t.Normal.Render(cfg.Database.Path))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("logging.level"), t.Normal.Render(cfg.Logging.Level))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("logging.format"), t.Normal.Render(cfg.Logging.Format))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("dashboard.grid"),
		t.Normal.Render(fmt.Sprintf("%dx%d", cfg.Dashboard.Cols, cfg.Dashboard.Rows)))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("dashboard.cell"),
		t.Normal.Render(fmt.Sprintf("%dx%d", cfg.Dashboard.CellWidth, cfg.Dashboard.CellHeight)))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("ingest.min_confidence"),
		t.Normal.Render(fmt.Sprintf("%.2f", cfg.Ingest.MinConfidence)))
	fmt.Printf("  %s %s\n", t.Subtitle.Render("ingest.concurrency"),
		t.Normal.Render(fmt.Sprintf("%d", cfg.Ingest.Concurrency)))
	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	app := GetApp()
	t := app.Theme

	path, err := config.ConfigFile()
	if err != nil {
		return fmt.Errorf("determine config path: %w", err)
	}

	fmt.Println(t.Normal.Render(path))
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Println(t.Subtle.Render("(file does not exist yet, defaults apply)"))
	}
	return nil
}
