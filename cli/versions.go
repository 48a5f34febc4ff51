package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/engine/report"
	"github.com/pipefacts/pipefacts/pkg/config"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// VersionsCmd aggregates tool version documents into the canonical YAML
// report, with an optional MultiQC custom-content rendering.
func VersionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "versions [paths...]",
		Short: "Aggregate tool versions into a YAML report",
		Long: `Collects the version documents emitted by pipeline steps, normalizes them
into scope/tool/version records and serializes the aggregated table. Paths
may be passed directly; without arguments the configured globs are expanded
under --results-dir.`,
		RunE: runVersions,
	}
	registerDiscoveryFlags(cmd)
	registerManifestFlags(cmd)
	cmd.Flags().StringSlice("glob", nil, "Glob patterns for version documents (default from config)")
	cmd.Flags().StringP("output", "o", "", "Write the YAML report to this file instead of stdout")
	cmd.Flags().String("multiqc", "", "Also write a MultiQC custom-content document to this file")
	return cmd
}

func runVersions(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)

	globs, err := cmd.Flags().GetStringSlice("glob")
	if err != nil {
		return fmt.Errorf("failed to get glob flag: %w", err)
	}
	if len(globs) == 0 {
		globs = cfg.Engine.VersionGlobs
	}
	sources, err := collectSources(cmd, args, globs)
	if err != nil {
		return err
	}
	provider, runtimeOverride, err := manifestProvider(cmd, cfg)
	if err != nil {
		return err
	}

	rep, err := report.NewGenerator(nil, cfg.Engine.DefaultScope).Generate(ctx, &report.Inputs{
		VersionSources:  sources,
		Provider:        provider,
		RuntimeOverride: runtimeOverride,
	})
	if err != nil {
		return fmt.Errorf("failed to generate version report: %w", err)
	}
	for _, drop := range rep.Drops {
		log.Warn("skipped version input", "kind", drop.Kind, "reason", drop.Reason)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	fs := afero.NewOsFs()
	if err := writeArtifact(fs, output, rep.VersionsYAML); err != nil {
		return err
	}
	multiqc, err := cmd.Flags().GetString("multiqc")
	if err != nil {
		return fmt.Errorf("failed to get multiqc flag: %w", err)
	}
	if multiqc != "" {
		return writeArtifact(fs, multiqc, rep.VersionsMultiQC)
	}
	return nil
}
