package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zoobzio/sqlrender/internal/cli"
)

var (
	// Global state set during PersistentPreRunE
	cfg        *cli.Config
	configPath string
	logLevel   slog.Level

	// Persistent flags
	cfgFile string
	verbose int
	quiet   bool
)

// logger is replaced in PersistentPreRunE once the level is known.
var logger = slog.New(slog.DiscardHandler)

var rootCmd = &cobra.Command{
	Use:   "sqlrender",
	Short: "Dialect-aware SQL SELECT rendering",
	Long: `sqlrender - Dialect-aware SQL SELECT rendering

sqlrender turns structured query documents into SELECT and UNION statements
for PostgreSQL, MySQL, MariaDB, SQLite, SQL Server, Oracle and DB2. Features a
dialect cannot express are reported as errors instead of emitted.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for help/completion/version commands
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, configPath, err = cli.LoadConfig(cfgFile)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}

		level, err := cli.ParseLevel(cfg.Log.Level)
		if err != nil {
			return cli.ConfigError("loading configuration", err)
		}
		logLevel = cli.ResolveLevel(level, verbose, quiet)
		logger = cli.NewLogger(cmd.ErrOrStderr(), logLevel)
		logger.Debug("configuration loaded", "path", configPath, "dialect", cfg.Dialect)

		return nil
	},
	SilenceUsage:  true, // Don't show usage on errors
	SilenceErrors: true, // We handle errors ourselves
}

// Command group IDs
const (
	groupRender  = "render"
	groupUtility = "utility"
)

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: auto-discover sqlrender.yaml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (can be repeated)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupRender, Title: "Rendering:"},
		&cobra.Group{ID: groupUtility, Title: "Utility:"},
	)

	renderCmd.GroupID = groupRender
	dialectsCmd.GroupID = groupRender
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(dialectsCmd)

	configCmd.GroupID = groupUtility
	versionCmd.GroupID = groupUtility
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}

// resolveString returns the first non-empty string from the provided values.
// Used to implement precedence: flag > config > default.
func resolveString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolveBool returns true if any of the provided values is true.
func resolveBool(values ...bool) bool {
	for _, v := range values {
		if v {
			return true
		}
	}
	return false
}
