package report

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/pipefacts/pipefacts/engine/citation"
	"github.com/pipefacts/pipefacts/engine/manifest"
	"github.com/pipefacts/pipefacts/engine/source"
	"github.com/pipefacts/pipefacts/engine/version"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// Inputs carries everything one report generation consumes. Version and
// citation sources are already-materialized lists; their order decides
// duplicate resolution and is owned by the caller.
type Inputs struct {
	// VersionSources holds version items in any supported shape.
	VersionSources []any
	// CitationSources holds metadata documents and citation tuples.
	CitationSources []any
	// MethodsTemplate is the methods-description template text. Empty means
	// no methods output.
	MethodsTemplate string
	// Provider optionally supplies workflow metadata. Nil skips the
	// workflow scope and leaves metadata placeholders empty.
	Provider manifest.Provider
	// RuntimeOverride forces the runtime version ahead of the provider and
	// environment.
	RuntimeOverride string
}

// Report is the composite result: independent text artifacts, each ready to
// be written to a file by the caller. The engine itself writes nothing.
type Report struct {
	VersionsYAML     string
	VersionsMultiQC  string
	CitationText     string
	BibliographyHTML string
	MethodsHTML      string
	// Drops lists every rejected input item. A non-empty list is not an
	// error; it is the per-item account of what the report does not cover.
	Drops []source.Drop
}

// Generator runs the full normalization, aggregation and serialization
// pipeline. Identical inputs and an identical metadata snapshot produce a
// byte-identical Report.
type Generator struct {
	fs           afero.Fs
	defaultScope string
}

// NewGenerator builds a generator reading file sources from fs. A nil fs
// falls back to the OS filesystem; an empty scope falls back to the
// version-side default.
func NewGenerator(fs afero.Fs, defaultScope string) *Generator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Generator{fs: fs, defaultScope: defaultScope}
}

// Generate produces the composite report. Malformed items degrade to Drops
// and missing collaborators degrade to the documented fallback strings; the
// only error paths are caller misuse and serializer failure.
func (g *Generator) Generate(ctx context.Context, in *Inputs) (*Report, error) {
	if in == nil {
		return nil, fmt.Errorf("report inputs are required")
	}
	log := logger.FromContext(ctx)

	var info manifest.Info
	if in.Provider != nil {
		info = manifest.Resolve(in.Provider, in.RuntimeOverride)
	}

	versions, drops, err := g.versionArtifacts(ctx, in, info)
	if err != nil {
		return nil, err
	}
	citations, citDrops := g.citationTable(ctx, in)
	drops = append(drops, citDrops...)

	rep := &Report{
		VersionsYAML:     versions.yaml,
		VersionsMultiQC:  versions.multiqc,
		CitationText:     citations.CitationText(),
		BibliographyHTML: citations.BibliographyText(),
		Drops:            drops,
	}
	if in.MethodsTemplate != "" {
		rep.MethodsHTML = citation.MethodsText(in.MethodsTemplate, citation.MethodsData{
			ToolCitations:    rep.CitationText,
			ToolBibliography: rep.BibliographyHTML,
			PipelineName:     info.PipelineName,
			PipelineVersion:  info.PipelineVersion,
			PipelineDOI:      info.PipelineDOI,
		})
	}
	log.Info("generated provenance report",
		"version_records", versions.records,
		"citation_tools", citations.Len(),
		"dropped", len(drops))
	return rep, nil
}

type versionArtifacts struct {
	yaml    string
	multiqc string
	records int
}

func (g *Generator) versionArtifacts(ctx context.Context, in *Inputs, info manifest.Info) (versionArtifacts, []source.Drop, error) {
	normalizer := version.NewNormalizer(g.fs, g.defaultScope)
	records, drops := normalizer.NormalizeAll(ctx, in.VersionSources)
	table := version.NewTable()
	table.AddAll(records)
	if in.Provider != nil {
		table.InjectManifest(info)
	}
	rendered, err := table.ToYAML()
	if err != nil {
		return versionArtifacts{}, drops, fmt.Errorf("render version report: %w", err)
	}
	multiqc, err := MultiQCVersions(table, info)
	if err != nil {
		return versionArtifacts{}, drops, fmt.Errorf("render multiqc versions: %w", err)
	}
	return versionArtifacts{yaml: rendered, multiqc: multiqc, records: table.Len()}, drops, nil
}

func (g *Generator) citationTable(ctx context.Context, in *Inputs) (*citation.Table, []source.Drop) {
	normalizer := citation.NewNormalizer(g.fs)
	records, drops := normalizer.NormalizeAll(ctx, in.CitationSources)
	table := citation.NewTable()
	table.AddAll(records)
	return table, drops
}
