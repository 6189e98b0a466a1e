package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlrender/pkg/dialect"
)

var dialectsCmd = &cobra.Command{
	Use:   "dialects",
	Short: "List supported dialects",
	Long:  `List the supported dialects with the features their newest known server supports.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDialects(cmd.OutOrStdout())
	},
}

func writeDialects(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-10s %-4s %-10s %-11s %s\n", "DIALECT", "CTE", "FOR UPDATE", "SKIP LOCKED", "VERSIONED"); err != nil {
		return err
	}
	for _, name := range dialect.Names() {
		r, err := dialect.Resolve(name, "")
		if err != nil {
			return err
		}
		caps := r.Capabilities()
		_, forUpdate := caps.ForUpdateSuffix()
		_, skipLocked := caps.SkipLockedSuffix()
		if _, err := fmt.Fprintf(w, "%-10s %-4s %-10s %-11s %s\n",
			name,
			yesNo(caps.SupportsCommonTableExpressions()),
			yesNo(forUpdate),
			yesNo(skipLocked),
			yesNo(dialect.Versioned(name)),
		); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
