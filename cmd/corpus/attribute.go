package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/corpus/pkg/corpus/dateparse"
	"github.com/cognicore/corpus/pkg/corpus/justice"
	"github.com/cognicore/corpus/pkg/corpus/ponente"
)

var attributeCmd = &cobra.Command{
	Use:   "attribute <ponente> <date>",
	Short: "Resolve a ponente name on a promulgation date",
	Long: `Resolve a raw ponente name against the roster as of a date.

Examples:
  corpus attribute "CORONA, C.J.:" "January 5, 2011"
  corpus attribute "Reyes, J." 2008-01-15 --roster justices.yaml`,
	Args: cobra.ExactArgs(2),
	RunE: runAttribute,
}

func runAttribute(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	comp, err := loadComponents(cfg)
	if err != nil {
		return err
	}
	date, err := dateparse.Parse(args[1])
	if err != nil {
		return err
	}

	att, err := justice.Attribute(comp.Roster, ponente.Extract(args[0]), date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case att.PerCuriam:
		fmt.Fprintln(out, "per curiam")
	case att.Attributed():
		j, _ := comp.Roster.Get(att.JusticeID)
		fmt.Fprintf(out, "%d\t%s, %s\n", j.ID, j.FullName, att.Designation)
	default:
		fmt.Fprintln(out, "no ponente")
	}
	return nil
}
