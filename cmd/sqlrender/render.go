package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlrender"
	"github.com/zoobzio/sqlrender/internal/cli"
	"github.com/zoobzio/sqlrender/internal/document"
	"github.com/zoobzio/sqlrender/pkg/dialect"
)

var (
	renderDialect       string
	renderServerVersion string
	renderOrderCTEs     bool
)

var renderCmd = &cobra.Command{
	Use:   "render [FILE|-]",
	Short: "Render a query document to SQL",
	Long: `Render a YAML or JSON query document to SQL for one dialect.

The document is read from FILE, or from standard input when FILE is "-" or
omitted. The SQL is written to standard output.`,
	Example: `  # Render for the configured dialect
  sqlrender render query.yaml

  # Render for an older MySQL server
  sqlrender render --dialect mysql --server-version 5.7.44 query.yaml

  # Sort CTEs by depends_on before rendering
  cat query.yaml | sqlrender render --order-ctes -`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		data, err := readInput(cmd.InOrStdin(), path)
		if err != nil {
			return cli.InputError("reading document", err)
		}

		sql, err := renderDocument(data, resolveRenderOptions(), logger)
		if err != nil {
			return err
		}

		return writeSQL(cmd.OutOrStdout(), sql)
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderDialect, "dialect", "", "target dialect (default from config)")
	renderCmd.Flags().StringVar(&renderServerVersion, "server-version", "", "target server version, e.g. 5.7.44")
	renderCmd.Flags().BoolVar(&renderOrderCTEs, "order-ctes", false, "sort CTEs by depends_on before rendering")
}

// renderOptions selects the target and preprocessing for one render.
type renderOptions struct {
	Dialect   string
	Version   string
	OrderCTEs bool
}

// resolveRenderOptions merges flags over config. A --dialect flag discards
// the configured version, which belongs to the configured dialect.
func resolveRenderOptions() renderOptions {
	opts := renderOptions{
		Dialect:   resolveString(renderDialect, cfg.Dialect),
		OrderCTEs: resolveBool(renderOrderCTEs, cfg.Render.OrderCTEs),
	}
	if renderDialect != "" {
		opts.Version = renderServerVersion
	} else {
		opts.Version = resolveString(renderServerVersion, cfg.Version)
	}
	return opts
}

// writeSQL writes the rendered statement on its own line.
func writeSQL(w io.Writer, sql string) error {
	if _, err := fmt.Fprintln(w, sql); err != nil {
		return cli.GeneralError("writing output", err)
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// renderDocument decodes a query document and renders it. Errors carry the
// exit code for their cause: a bad document or query model is an input
// error, a feature the dialect lacks is a render error.
func renderDocument(data []byte, opts renderOptions, logger *slog.Logger) (string, error) {
	doc, err := document.Parse(data)
	if err != nil {
		return "", cli.InputError("parsing document", err)
	}

	r, err := dialect.Resolve(opts.Dialect, opts.Version)
	if err != nil {
		return "", cli.ConfigError("selecting dialect", err)
	}

	caps := r.Capabilities()
	logger.Debug("rendering",
		"dialect", caps.Dialect,
		"server_version", opts.Version,
		"union", doc.IsUnion(),
		"cte", caps.CommonTableExpressions,
		"for_update", caps.ForUpdate,
		"skip_locked", caps.SkipLocked,
	)

	var sql string
	if doc.IsUnion() {
		q, err := doc.Union.Query()
		if err != nil {
			return "", cli.InputError("parsing document", err)
		}
		sql, err = r.RenderUnion(q)
		if err != nil {
			return "", renderFailure(err)
		}
	} else {
		q, err := doc.Select.Query()
		if err != nil {
			return "", cli.InputError("parsing document", err)
		}
		if opts.OrderCTEs && len(q.With) > 1 {
			if q.With, err = sqlrender.OrderCTEs(q.With); err != nil {
				return "", renderFailure(err)
			}
			logger.Debug("ordered CTEs", "count", len(q.With))
		}
		sql, err = r.Render(q)
		if err != nil {
			return "", renderFailure(err)
		}
	}

	logger.Info("rendered query", "dialect", caps.Dialect, "bytes", len(sql))
	return sql, nil
}

func renderFailure(err error) error {
	if sqlrender.IsInvalid(err) {
		return cli.InputError("checking query", err)
	}
	return cli.RenderError("rendering query", err)
}
