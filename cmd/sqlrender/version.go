package main

import (
	"fmt"
	"io"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlrender/internal/cli"
	"github.com/zoobzio/sqlrender/pkg/dialect"
)

// Set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// buildInfo identifies the running binary.
type buildInfo struct {
	Version string
	Commit  string
	Date    string
}

// resolveBuildInfo starts from the ldflags values and, for a dev build,
// fills the gaps from module and VCS metadata such as go install records.
func resolveBuildInfo(info *debug.BuildInfo) buildInfo {
	b := buildInfo{Version: version, Commit: commit, Date: date}
	if b.Version != "dev" || info == nil {
		return b
	}

	if v := info.Main.Version; v != "" && v != "(devel)" {
		b.Version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.Commit = s.Value
			if len(b.Commit) > 7 {
				b.Commit = b.Commit[:7]
			}
		case "vcs.time":
			b.Date = s.Value
		}
	}
	return b
}

func writeVersion(w io.Writer, b buildInfo) error {
	_, err := fmt.Fprintf(w, "sqlrender %s (commit: %s, built: %s)\ndialects: %s\n",
		b.Version, b.Commit, b.Date, strings.Join(dialect.Names(), ", "))
	return err
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and supported dialects",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, _ := debug.ReadBuildInfo()
		if err := writeVersion(cmd.OutOrStdout(), resolveBuildInfo(info)); err != nil {
			return cli.GeneralError("writing output", err)
		}
		return nil
	},
}
