package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/engine/manifest"
	"github.com/pipefacts/pipefacts/engine/source"
	"github.com/pipefacts/pipefacts/pkg/config"
)

// registerManifestFlags adds the workflow metadata flags shared by commands
// that stamp pipeline identity into their artifacts.
func registerManifestFlags(cmd *cobra.Command) {
	cmd.Flags().String("pipeline-name", "", "Pipeline name recorded in the workflow scope (e.g. nf-core/rnaseq)")
	cmd.Flags().String("pipeline-version", "", "Pipeline version recorded in the workflow scope")
	cmd.Flags().String("pipeline-doi", "", "Pipeline DOI substituted into methods descriptions")
	cmd.Flags().String("nextflow-version", "", "Runtime version override, ahead of config and NXF_VER")
}

// registerDiscoveryFlags adds the flags that control glob discovery for
// commands that accept zero positional paths.
func registerDiscoveryFlags(cmd *cobra.Command) {
	cmd.Flags().String("results-dir", ".", "Root directory searched for provenance documents")
	cmd.Flags().StringSlice("exclude", nil, "Glob patterns removed from discovery results")
}

// manifestProvider builds a static metadata provider from flags, falling back
// to configured values. It returns nil when no pipeline name is known, which
// skips the workflow scope entirely. The second result is the runtime
// version override.
func manifestProvider(cmd *cobra.Command, cfg *config.Config) (manifest.Provider, string, error) {
	name, err := cmd.Flags().GetString("pipeline-name")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get pipeline-name flag: %w", err)
	}
	pipeVersion, err := cmd.Flags().GetString("pipeline-version")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get pipeline-version flag: %w", err)
	}
	doi, err := cmd.Flags().GetString("pipeline-doi")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get pipeline-doi flag: %w", err)
	}
	runtime, err := cmd.Flags().GetString("nextflow-version")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get nextflow-version flag: %w", err)
	}
	if name == "" {
		name = cfg.Manifest.Name
	}
	if pipeVersion == "" {
		pipeVersion = cfg.Manifest.Version
	}
	if doi == "" {
		doi = cfg.Manifest.DOI
	}
	if name == "" {
		return nil, runtime, nil
	}
	return manifest.StaticProvider{
		Name:           name,
		Version:        pipeVersion,
		DOI:            doi,
		RuntimeVersion: cfg.Manifest.RuntimeVersion,
	}, runtime, nil
}

// collectSources resolves the input documents for a command: explicit
// positional paths win; otherwise the given globs are expanded under
// --results-dir. Every path is wrapped as a file source.
func collectSources(cmd *cobra.Command, args, globs []string) ([]any, error) {
	paths := args
	if len(paths) == 0 {
		root, err := cmd.Flags().GetString("results-dir")
		if err != nil {
			return nil, fmt.Errorf("failed to get results-dir flag: %w", err)
		}
		excludes, err := cmd.Flags().GetStringSlice("exclude")
		if err != nil {
			return nil, fmt.Errorf("failed to get exclude flag: %w", err)
		}
		paths, err = newDocScanner(root).Scan(globs, excludes)
		if err != nil {
			return nil, fmt.Errorf("failed to discover documents: %w", err)
		}
	}
	sources := make([]any, 0, len(paths))
	for _, path := range paths {
		sources = append(sources, source.File(path))
	}
	return sources, nil
}
