package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cognicore/corpus/pkg/corpus/dateparse"
	"github.com/cognicore/corpus/pkg/corpus/justice"
)

var (
	rosterOn     string
	rosterChiefs bool
)

func init() {
	rosterCmd.Flags().StringVar(&rosterOn, "on", "", "only justices sitting on this date")
	rosterCmd.Flags().BoolVar(&rosterChiefs, "chiefs", false, "only chief justices, by appointment")
	rosterCmd.MarkFlagsMutuallyExclusive("on", "chiefs")
}

var rosterCmd = &cobra.Command{
	Use:   "roster",
	Short: "List the justice roster",
	Long: `List the justice roster with derived term dates.

Examples:
  corpus roster --on "May 1, 2008"
  corpus roster --chiefs`,
	Args: cobra.NoArgs,
	RunE: runRoster,
}

func runRoster(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	comp, err := loadComponents(cfg)
	if err != nil {
		return err
	}

	var list []justice.Justice
	switch {
	case rosterChiefs:
		list = comp.Roster.Chiefs()
	case rosterOn != "":
		date, err := dateparse.Parse(rosterOn)
		if err != nil {
			return err
		}
		list = comp.Roster.ActiveOn(date)
	default:
		list = comp.Roster.All()
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tALIAS\tSTART\tINACTIVE\tCHIEF")
	for _, j := range list {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			j.ID, j.FullName, j.Alias, day(j.StartTerm), day(j.InactiveDate), day(j.ChiefDate))
	}
	return w.Flush()
}

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return dateparse.Format(t)
}
