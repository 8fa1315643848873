package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/domain/entity"
)

var projectAddFlags struct {
	office string
	client string
	stage  string
	budget int64
	site   string
	notes  string
}

var projectListFlags struct {
	office string
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage project records",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectsList,
}

var projectsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsAdd,
}

var projectsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsRm,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd)
	projectsCmd.AddCommand(projectsAddCmd)
	projectsCmd.AddCommand(projectsRmCmd)

	projectsListCmd.Flags().StringVar(&projectListFlags.office, "office", "", "filter by office id")

	projectsAddCmd.Flags().StringVar(&projectAddFlags.office, "office", "", "owning office id")
	projectsAddCmd.Flags().StringVar(&projectAddFlags.client, "client", "", "client name")
	projectsAddCmd.Flags().StringVar(&projectAddFlags.stage, "stage", string(entity.StageBrief), "delivery stage")
	projectsAddCmd.Flags().Int64Var(&projectAddFlags.budget, "budget", 0, "budget in euro")
	projectsAddCmd.Flags().StringVar(&projectAddFlags.site, "site", "", "site address")
	projectsAddCmd.Flags().StringVar(&projectAddFlags.notes, "notes", "", "free-form notes")
	_ = projectsAddCmd.MarkFlagRequired("office")
}

func runProjectsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	t := app.Theme

	projects, err := app.RecordsUC.ListProjects(app.Ctx(), entity.OfficeID(projectListFlags.office))
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	if len(projects) == 0 {
		fmt.Println(t.Subtle.Render("No projects on file."))
		return nil
	}

	fmt.Println(t.Title.Render(fmt.Sprintf("%s Projects", styles.IconProject)))
	for _, p := range projects {
		fmt.Printf("  %s %s  %s  %s\n",
			t.Highlight.Render(p.Name),
			t.Badge.Render(string(p.Stage)),
			t.Subtle.Render(p.Client),
			t.Subtle.Render(string(p.ID)),
		)
	}
	return nil
}

func runProjectsAdd(_ *cobra.Command, args []string) error {
	app := GetApp()

	project, err := app.RecordsUC.CreateProject(app.Ctx(), entity.Project{
		OfficeID:  entity.OfficeID(projectAddFlags.office),
		Name:      args[0],
		Client:    projectAddFlags.client,
		Stage:     entity.ProjectStage(projectAddFlags.stage),
		BudgetEUR: projectAddFlags.budget,
		Site:      projectAddFlags.site,
		Notes:     projectAddFlags.notes,
	})
	if err != nil {
		return fmt.Errorf("add project: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render(fmt.Sprintf("project %s added (%s)", project.Name, project.ID)),
	)
	return nil
}

func runProjectsRm(_ *cobra.Command, args []string) error {
	app := GetApp()

	if err := app.RecordsUC.DeleteProject(app.Ctx(), entity.ProjectID(args[0])); err != nil {
		return fmt.Errorf("remove project: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render("project removed"),
	)
	return nil
}
