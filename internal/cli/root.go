package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sketchdoc/sketchdoc/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "sketchdoc"

// Execute runs the sketchdoc CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, loads the configuration file, and
// executes the command tree. Both the logger and the config travel on the
// command context, accessible via loggerFromContext and configFromContext.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          appName,
		Short:        "SketchDoc edits and renders diagram documents",
		Long:         `SketchDoc is a CLI tool for creating, editing, and rendering diagram documents. It reads and writes the mxGraph XML interchange format, exports pages as SVG, PNG, and connectivity graphs, and keeps named snapshots of document revisions.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			bridgeHooks(logger)

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			ctx := withLogger(cmd.Context(), logger)
			ctx = withConfig(ctx, cfg)
			cmd.SetContext(ctx)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: sketchdoc.toml, then ~/.config/sketchdoc/config.toml)")

	root.AddCommand(newNewCmd())
	root.AddCommand(newInfoCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newExportCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newBrowseCmd())
	root.AddCommand(newSnapshotsCmd())
	root.AddCommand(newCompletionCmd())

	return root
}
