package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli/model"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/ui/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [office-id]",
	Short: "Open the grid dashboard",
	Long: `Open the tiling grid dashboard for an office.

Without an argument the first office on file is used. The window layout is
saved per office and restored on the next open.

Examples:
  atelo dashboard                # dashboard of the first office
  atelo dashboard 5f0e...        # dashboard of a specific office`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(_ *cobra.Command, args []string) error {
	app := GetApp()
	ctx := app.Ctx()

	officeID, err := resolveOfficeID(args)
	if err != nil {
		return err
	}

	office, err := app.RecordsUC.GetOffice(ctx, officeID)
	if err != nil {
		return fmt.Errorf("load office: %w", err)
	}
	if office == nil {
		return fmt.Errorf("office %s not found", officeID)
	}

	session, err := app.DashboardUC.Open(ctx, office.WorkspaceKey())
	if err != nil {
		return fmt.Errorf("open dashboard session: %w", err)
	}

	registry := dashboard.NewRegistry(ctx, office.ID, app.Offices, app.Projects, app.Regulations)
	defer registry.Close()

	m := model.NewDashboardModel(app.Theme, model.DashboardModelConfig{
		Session:    session,
		Registry:   registry,
		CellWidth:  app.Config.Dashboard.CellWidth,
		CellHeight: app.Config.Dashboard.CellHeight,
	})

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		session.Discard()
		return fmt.Errorf("run dashboard: %w", err)
	}

	return session.Close(ctx)
}

// resolveOfficeID picks the explicit argument or falls back to the first
// office on file.
func resolveOfficeID(args []string) (entity.OfficeID, error) {
	app := GetApp()

	if len(args) == 1 {
		return entity.OfficeID(args[0]), nil
	}

	offices, err := app.RecordsUC.ListOffices(app.Ctx())
	if err != nil {
		return "", fmt.Errorf("list offices: %w", err)
	}
	if len(offices) == 0 {
		return "", fmt.Errorf("no offices on file, add one with 'atelo offices add'")
	}
	return offices[0].ID, nil
}
