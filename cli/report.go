package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/engine/manifest"
	"github.com/pipefacts/pipefacts/engine/report"
	"github.com/pipefacts/pipefacts/pkg/config"
	"github.com/pipefacts/pipefacts/pkg/logger"
	"github.com/pipefacts/pipefacts/pkg/tplengine"
)

// summaryTemplate stitches the individual artifacts into one Markdown
// document. Artifact bodies are inserted verbatim.
const summaryTemplate = `# Provenance Report{{ if .pipeline_name }}: {{ .pipeline_name }}{{ end }}

{{ if .pipeline_version }}- Pipeline version: {{ .pipeline_version }}
{{ end }}{{ if .pipeline_doi }}- Pipeline DOI: {{ .pipeline_doi }}
{{ end }}{{ if .nextflow_version }}- Runtime version: {{ .nextflow_version }}
{{ end }}
## Software versions

` + "```yaml\n{{ .versions }}```" + `

## Citations

{{ .citations }}

## Bibliography

<ul>
  {{ .bibliography }}
</ul>
`

// ReportCmd generates every provenance artifact in one pass and writes them
// into the output directory.
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the full provenance report",
		Long: `Discovers version and metadata documents under --results-dir, runs the full
normalization pass and writes the version YAML, the MultiQC document, the
citation text, the bibliography, the rendered methods description and a
Markdown summary into the output directory.`,
		RunE: runReport,
	}
	registerDiscoveryFlags(cmd)
	registerManifestFlags(cmd)
	cmd.Flags().StringSlice("version-glob", nil, "Glob patterns for version documents (default from config)")
	cmd.Flags().StringSlice("citation-glob", nil, "Glob patterns for metadata documents (default from config)")
	cmd.Flags().String("methods-template", "", "Methods description template file with ${...} placeholders")
	cmd.Flags().String("output-dir", "", "Directory for generated artifacts (default from config)")
	return cmd
}

func runReport(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	log := logger.FromContext(ctx)
	fs := afero.NewOsFs()

	in, err := buildReportInputs(cmd, cfg, fs)
	if err != nil {
		return err
	}
	rep, err := report.NewGenerator(fs, cfg.Engine.DefaultScope).Generate(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	for _, drop := range rep.Drops {
		log.Warn("skipped input", "kind", drop.Kind, "reason", drop.Reason)
	}

	outDir, err := cmd.Flags().GetString("output-dir")
	if err != nil {
		return fmt.Errorf("failed to get output-dir flag: %w", err)
	}
	if outDir == "" {
		outDir = cfg.Output.Dir
	}
	written, err := writeReportArtifacts(fs, outDir, cfg, in, rep)
	if err != nil {
		return err
	}
	log.Info("wrote provenance artifacts", "dir", outDir, "files", written)
	return nil
}

func buildReportInputs(cmd *cobra.Command, cfg *config.Config, fs afero.Fs) (*report.Inputs, error) {
	versionGlobs, err := cmd.Flags().GetStringSlice("version-glob")
	if err != nil {
		return nil, fmt.Errorf("failed to get version-glob flag: %w", err)
	}
	if len(versionGlobs) == 0 {
		versionGlobs = cfg.Engine.VersionGlobs
	}
	citationGlobs, err := cmd.Flags().GetStringSlice("citation-glob")
	if err != nil {
		return nil, fmt.Errorf("failed to get citation-glob flag: %w", err)
	}
	if len(citationGlobs) == 0 {
		citationGlobs = cfg.Engine.CitationGlobs
	}
	versionSources, err := collectSources(cmd, nil, versionGlobs)
	if err != nil {
		return nil, err
	}
	citationSources, err := collectSources(cmd, nil, citationGlobs)
	if err != nil {
		return nil, err
	}
	provider, runtimeOverride, err := manifestProvider(cmd, cfg)
	if err != nil {
		return nil, err
	}
	methodsTemplate, err := readMethodsTemplate(cmd, fs)
	if err != nil {
		return nil, err
	}
	return &report.Inputs{
		VersionSources:  versionSources,
		CitationSources: citationSources,
		MethodsTemplate: methodsTemplate,
		Provider:        provider,
		RuntimeOverride: runtimeOverride,
	}, nil
}

func readMethodsTemplate(cmd *cobra.Command, fs afero.Fs) (string, error) {
	path, err := cmd.Flags().GetString("methods-template")
	if err != nil {
		return "", fmt.Errorf("failed to get methods-template flag: %w", err)
	}
	if path == "" {
		return "", nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read methods template %s: %w", path, err)
	}
	return string(data), nil
}

// writeReportArtifacts writes each configured artifact and returns how many
// files it produced. Artifacts without a configured filename or without
// content are skipped.
func writeReportArtifacts(
	fs afero.Fs,
	outDir string,
	cfg *config.Config,
	in *report.Inputs,
	rep *report.Report,
) (int, error) {
	summary, err := renderSummary(in, rep)
	if err != nil {
		return 0, err
	}
	artifacts := []struct {
		file    string
		content string
	}{
		{cfg.Output.VersionsFile, rep.VersionsYAML},
		{cfg.Output.MultiQCFile, rep.VersionsMultiQC},
		{cfg.Output.CitationsFile, rep.CitationText + "\n"},
		{cfg.Output.BibliographyFile, rep.BibliographyHTML + "\n"},
		{cfg.Output.MethodsFile, rep.MethodsHTML},
		{cfg.Output.ReportFile, summary},
	}
	written := 0
	for _, artifact := range artifacts {
		if artifact.file == "" || artifact.content == "" || artifact.content == "\n" {
			continue
		}
		if err := writeArtifact(fs, filepath.Join(outDir, artifact.file), artifact.content); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func renderSummary(in *report.Inputs, rep *report.Report) (string, error) {
	var info manifest.Info
	if in.Provider != nil {
		info = manifest.Resolve(in.Provider, in.RuntimeOverride)
	}
	summary, err := tplengine.NewEngine().RenderString(summaryTemplate, map[string]any{
		"pipeline_name":    info.PipelineName,
		"pipeline_version": info.PipelineVersion,
		"pipeline_doi":     info.PipelineDOI,
		"nextflow_version": info.RuntimeVersion,
		"versions":         rep.VersionsYAML,
		"citations":        rep.CitationText,
		"bibliography":     rep.BibliographyHTML,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render report summary: %w", err)
	}
	return summary, nil
}
