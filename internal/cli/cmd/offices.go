package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/domain/entity"
)

var officeAddFlags struct {
	city      string
	country   string
	headcount int
	founded   int
	notes     string
}

var officesCmd = &cobra.Command{
	Use:   "offices",
	Short: "Manage office records",
}

var officesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List offices",
	RunE:  runOfficesList,
}

var officesAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an office",
	Args:  cobra.ExactArgs(1),
	RunE:  runOfficesAdd,
}

var officesRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Remove an office",
	Args:  cobra.ExactArgs(1),
	RunE:  runOfficesRm,
}

func init() {
	rootCmd.AddCommand(officesCmd)
	officesCmd.AddCommand(officesListCmd)
	officesCmd.AddCommand(officesAddCmd)
	officesCmd.AddCommand(officesRmCmd)

	officesAddCmd.Flags().StringVar(&officeAddFlags.city, "city", "", "city")
	officesAddCmd.Flags().StringVar(&officeAddFlags.country, "country", "", "country")
	officesAddCmd.Flags().IntVar(&officeAddFlags.headcount, "headcount", 0, "number of staff")
	officesAddCmd.Flags().IntVar(&officeAddFlags.founded, "founded", 0, "founding year")
	officesAddCmd.Flags().StringVar(&officeAddFlags.notes, "notes", "", "free-form notes")
}

func runOfficesList(_ *cobra.Command, _ []string) error {
	app := GetApp()
	t := app.Theme

	offices, err := app.RecordsUC.ListOffices(app.Ctx())
	if err != nil {
		return fmt.Errorf("list offices: %w", err)
	}

	if len(offices) == 0 {
		fmt.Println(t.Subtle.Render("No offices on file."))
		return nil
	}

	fmt.Println(t.Title.Render(fmt.Sprintf("%s Offices", styles.IconOffice)))
	for _, o := range offices {
		place := o.City
		if o.Country != "" {
			place += ", " + o.Country
		}
		fmt.Printf("  %s %s  %s  %s\n",
			t.Highlight.Render(o.Name),
			t.BadgeMuted.Render(strconv.Itoa(o.Headcount)+" staff"),
			t.Subtle.Render(place),
			t.Subtle.Render(string(o.ID)),
		)
	}
	return nil
}

func runOfficesAdd(_ *cobra.Command, args []string) error {
	app := GetApp()

	office, err := app.RecordsUC.CreateOffice(app.Ctx(), entity.Office{
		Name:        args[0],
		City:        officeAddFlags.city,
		Country:     officeAddFlags.country,
		Headcount:   officeAddFlags.headcount,
		FoundedYear: officeAddFlags.founded,
		Notes:       officeAddFlags.notes,
	})
	if err != nil {
		return fmt.Errorf("add office: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render(fmt.Sprintf("office %s added (%s)", office.Name, office.ID)),
	)
	return nil
}

func runOfficesRm(_ *cobra.Command, args []string) error {
	app := GetApp()

	if err := app.RecordsUC.DeleteOffice(app.Ctx(), entity.OfficeID(args[0])); err != nil {
		return fmt.Errorf("remove office: %w", err)
	}

	fmt.Printf("%s %s\n",
		app.Theme.SuccessStyle.Render(styles.IconCheck),
		app.Theme.Normal.Render("office removed"),
	)
	return nil
}
