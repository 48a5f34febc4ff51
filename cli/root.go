package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/pkg/config"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// RootCmd builds the pipefacts command tree. Configuration and the logger
// are resolved once here and travel to subcommands through the context.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pipefacts",
		Short: "Provenance reporting for scientific pipelines",
		Long: "pipefacts collects the software versions and tool citations that pipeline\n" +
			"steps emit at run time, normalizes them and reduces them into deterministic\n" +
			"reports: a canonical version YAML, a citation sentence, an HTML bibliography\n" +
			"and a templated methods description.",
		SilenceUsage:      true,
		PersistentPreRunE: setupContext,
	}
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error, disabled)")
	root.PersistentFlags().Bool("log-json", false, "Log in JSON format")
	root.PersistentFlags().Bool("log-source", false, "Add source locations to log entries")

	root.AddCommand(
		VersionsCmd(),
		CitationsCmd(),
		ReportCmd(),
		VersionCmd(),
	)
	return root
}

// setupContext loads configuration, applies the shared logging flags and
// attaches both the config and the logger to the command context.
func setupContext(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewLoader().Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	flags, err := logger.ReadFlags(cmd)
	if err != nil {
		return err
	}
	if flags.Level != "" {
		cfg.Log.Level = flags.Level
	}
	if flags.JSONSet {
		cfg.Log.JSON = flags.JSON
	}
	if flags.SourceSet {
		cfg.Log.Source = flags.Source
	}
	log := logger.NewFromSettings(cfg.Log.Level, cfg.Log.JSON, cfg.Log.Source)
	ctx := logger.ContextWithLogger(cmd.Context(), log)
	ctx = config.ContextWithConfig(ctx, cfg)
	cmd.SetContext(ctx)
	return nil
}
