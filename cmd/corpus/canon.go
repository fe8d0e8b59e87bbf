package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cognicore/corpus/pkg/corpus/ponente"
)

var canonCmd = &cobra.Command{
	Use:   "canon [name...]",
	Short: "Print the canonical key of ponente names",
	Long: `Print the canonical key of each ponente name, one per line, as
"<input>\t<key>". Names are read from stdin when none are given.
Unusable names print an empty key; per curiam prints "per curiam".

Examples:
  corpus canon "MELENCIO-HERRERA, J.:" "Per Curiam"`,
	RunE: runCanon,
}

func runCanon(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	emit := func(name string) {
		key := ""
		if raw := ponente.Extract(name); raw != nil {
			key = raw.Writer
			if raw.PerCuriam {
				key = "per curiam"
			}
		}
		fmt.Fprintf(out, "%s\t%s\n", name, key)
	}

	if len(args) > 0 {
		for _, a := range args {
			emit(a)
		}
		return nil
	}

	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			emit(line)
		}
	}
	return sc.Err()
}
