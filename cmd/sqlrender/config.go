package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/zoobzio/sqlrender/internal/cli"
	"github.com/zoobzio/sqlrender/pkg/dialect"
)

var configShowSource bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the render configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration render would use, after merging defaults, the
config file and SQLRENDER_* environment variables.

With --source, YAML comments name the config file, the renderer the
configured dialect and version resolve to, and the log level after -v/-q.
A dialect or version that does not resolve is a configuration error.`,
	Example: `  # Print the merged configuration
  sqlrender config show

  # Check which renderer and log level a config file selects
  sqlrender config show --source -v --config ci/sqlrender.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var header []string
		if configShowSource {
			var err error
			header, err = configSource(cfg, configPath, logLevel)
			if err != nil {
				return err
			}
		}
		if err := showConfig(cmd.OutOrStdout(), cfg, header); err != nil {
			return cli.GeneralError("writing output", err)
		}
		return nil
	},
}

func init() {
	configShowCmd.Flags().BoolVar(&configShowSource, "source", false, "annotate with config file, resolved renderer and log level")
	configCmd.AddCommand(configShowCmd)
}

// configSource describes where the effective settings come from and what
// they resolve to.
func configSource(c *cli.Config, path string, level slog.Level) ([]string, error) {
	file := path
	if file == "" {
		file = "(none, using defaults)"
	}

	r, err := dialect.Resolve(c.Dialect, c.Version)
	if err != nil {
		return nil, cli.ConfigError("resolving configured dialect", err)
	}
	server := c.Version
	if server == "" {
		server = "latest"
	}

	return []string{
		"config file: " + file,
		"renderer: " + r.Capabilities().Dialect + " " + server,
		"log level: " + strings.ToLower(level.String()),
	}, nil
}

// showConfig writes c as YAML, preceded by header lines as YAML comments so
// the output stays loadable with --config.
func showConfig(w io.Writer, c *cli.Config, header []string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	var b strings.Builder
	for _, line := range header {
		b.WriteString("# " + line + "\n")
	}
	b.Write(data)

	_, err = io.WriteString(w, b.String())
	return err
}
