package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/domain/entity"
)

var regulationAddFlags struct {
	title        string
	jurisdiction string
	topic        string
	summary      string
	effective    string
}

var regulationsCmd = &cobra.Command{
	Use:   "regulations",
	Short: "Manage regulation records",
}

var regulationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List regulations",
	RunE:  runRegulationsList,
}

var regulationsAddCmd = &cobra.Command{
	Use:   "add <code>",
	Short: "Add a regulation",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegulationsAdd,
}

var regulationsRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove a regulation",
	Args:  cobra.ExactArgs(1),
	RunE:  runRegulationsRm,
}

func init() {
	rootCmd.AddCommand(regulationsCmd)
	regulationsCmd.AddCommand(regulationsListCmd)
	regulationsCmd.AddCommand(regulationsAddCmd)
	regulationsCmd.AddCommand(regulationsRmCmd)

	regulationsAddCmd.Flags().StringVar(&regulationAddFlags.title, "title", "", "regulation title")
	regulationsAddCmd.Flags().StringVar(&regulationAddFlags.jurisdiction, "jurisdiction", "", "jurisdiction")
	regulationsAddCmd.Flags().StringVar(&regulationAddFlags.topic, "topic", string(entity.TopicZoning), "topic")
	regulationsAddCmd.Flags().StringVar(&regulationAddFlags.summary, "summary", "", "short summary")
	regulationsAddCmd.Flags().StringVar(&regulationAddFlags.effective, "effective", "", "effective date (YYYY-MM-DD)")
	_ = regulationsAddCmd.MarkFlagRequired("title")
}

func runRegulationsList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	t := app.Theme

	regulations, err := app.RecordsUC.ListRegulations(app.Ctx())
	if err != nil {
		return fmt.Errorf("list regulations: %w", err)
	}

	if len(regulations) == 0 {
		fmt.Println(t.Subtle.Render("No regulations on file."))
		return nil
	}

	fmt.Println(t.Title.Render(fmt.Sprintf("%s Regulations", styles.IconRegulation)))
	for _, r := range regulations {
		effective := "in force"
		if r.EffectiveFrom.After(time.Now()) {
			effective = "from " + r.EffectiveFrom.Format("2006-01-02")
		}
		fmt.Printf("  %s %s  %s  %s  %s\n",
			t.Highlight.Render(r.Code),
			t.Badge.Render(string(r.Topic)),
			t.Normal.Render(r.Title),
			t.Subtle.Render(effective),
			t.Subtle.Render(string(r.ID)),
		)
	}
	return nil
}

func runRegulationsAdd(_ *cobra.Command, args []string) error {
	app := GetApp()

	regulation := entity.Regulation{
		Code:         args[0],
		Title:        regulationAddFlags.title,
		Jurisdiction: regulationAddFlags.jurisdiction,
		Topic:        entity.RegulationTopic(regulationAddFlags.topic),
		Summary:      regulationAddFlags.summary,
	}
	if regulationAddFlags.effective != "" {
		effective, err := time.Parse("2006-01-02", regulationAddFlags.effective)
		if err != nil {
			return fmt.Errorf("parse effective date: %w", err)
		}
		regulation.EffectiveFrom = effective
	}

	stored, err := app.RecordsUC.CreateRegulation(app.Ctx(), regulation)
	if err != nil {
		return fmt.Errorf("add regulation: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render(fmt.Sprintf("regulation %s added (%s)", stored.Code, stored.ID)),
	)
	return nil
}

func runRegulationsRm(_ *cobra.Command, args []string) error {
	app := GetApp()

	if err := app.RecordsUC.DeleteRegulation(app.Ctx(), entity.RegulationID(args[0])); err != nil {
		return fmt.Errorf("remove regulation: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render("regulation removed"),
	)
	return nil
}
