package cli

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/engine/report"
	"github.com/pipefacts/pipefacts/pkg/config"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// CitationsCmd aggregates module metadata documents into the citation
// sentence and an optional HTML bibliography.
func CitationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "citations [paths...]",
		Short: "Aggregate tool citations from module metadata",
		Long: `Collects module metadata documents, extracts one citation record per tool
and writes the citation sentence. Paths may be passed directly; without
arguments the configured globs are expanded under --results-dir.`,
		RunE: runCitations,
	}
	registerDiscoveryFlags(cmd)
	cmd.Flags().StringSlice("glob", nil, "Glob patterns for metadata documents (default from config)")
	cmd.Flags().StringP("output", "o", "", "Write the citation text to this file instead of stdout")
	cmd.Flags().String("bibliography", "", "Also write the HTML bibliography to this file")
	return cmd
}

func runCitations(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)

	globs, err := cmd.Flags().GetStringSlice("glob")
	if err != nil {
		return fmt.Errorf("failed to get glob flag: %w", err)
	}
	if len(globs) == 0 {
		globs = cfg.Engine.CitationGlobs
	}
	sources, err := collectSources(cmd, args, globs)
	if err != nil {
		return err
	}

	rep, err := report.NewGenerator(nil, cfg.Engine.DefaultScope).Generate(ctx, &report.Inputs{
		CitationSources: sources,
	})
	if err != nil {
		return fmt.Errorf("failed to generate citation report: %w", err)
	}
	for _, drop := range rep.Drops {
		log.Warn("skipped citation input", "kind", drop.Kind, "reason", drop.Reason)
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return fmt.Errorf("failed to get output flag: %w", err)
	}
	fs := afero.NewOsFs()
	if err := writeArtifact(fs, output, rep.CitationText+"\n"); err != nil {
		return err
	}
	bibliography, err := cmd.Flags().GetString("bibliography")
	if err != nil {
		return fmt.Errorf("failed to get bibliography flag: %w", err)
	}
	if bibliography != "" {
		return writeArtifact(fs, bibliography, rep.BibliographyHTML+"\n")
	}
	return nil
}
