package version

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipefacts/pipefacts/engine/manifest"
)

func TestTable_ToYAML_Ordering(t *testing.T) {
	t.Run("Should sort scopes and tools lexicographically", func(t *testing.T) {
		table := NewTable()
		table.AddAll([]Record{
			{Scope: "Software", Tool: "multiqc", Version: "1.15"},
			{Scope: "FASTQC", Tool: "fastqc", Version: "0.12.1"},
			{Scope: "SAMTOOLS_SORT", Tool: "samtools", Version: "1.17"},
			{Scope: "SAMTOOLS_SORT", Tool: "htslib", Version: "1.17"},
		})
		got, err := table.ToYAML()
		require.NoError(t, err)
		want := "FASTQC:\n" +
			"  fastqc: 0.12.1\n" +
			"SAMTOOLS_SORT:\n" +
			"  htslib: \"1.17\"\n" +
			"  samtools: \"1.17\"\n" +
			"Software:\n" +
			"  multiqc: \"1.15\"\n"
		assert.Equal(t, want, got)
	})
	t.Run("Should render identically regardless of insertion order", func(t *testing.T) {
		first := NewTable()
		first.AddAll([]Record{
			{Scope: "B", Tool: "b", Version: "2"},
			{Scope: "A", Tool: "a", Version: "1"},
		})
		second := NewTable()
		second.AddAll([]Record{
			{Scope: "A", Tool: "a", Version: "1"},
			{Scope: "B", Tool: "b", Version: "2"},
		})
		y1, err := first.ToYAML()
		require.NoError(t, err)
		y2, err := second.ToYAML()
		require.NoError(t, err)
		assert.Equal(t, y1, y2)
	})
	t.Run("Should render an empty table as an empty string", func(t *testing.T) {
		got, err := NewTable().ToYAML()
		require.NoError(t, err)
		assert.Equal(t, "", got)
	})
}

func TestTable_ToYAML_Quoting(t *testing.T) {
	// Versions that re-parse as other YAML types must be quoted; plain
	// strings stay bare. Validated against fixed examples, not a general
	// rule.
	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"Should quote float-like versions", "1.15", "tool: \"1.15\"\n"},
		{"Should quote integer-like versions", "2", "tool: \"2\"\n"},
		{"Should quote boolean-like versions", "true", "tool: \"true\"\n"},
		{"Should keep dotted triplets bare", "0.12.1", "tool: 0.12.1\n"},
		{"Should keep prefixed versions bare", "v3.14.0", "tool: v3.14.0\n"},
		{"Should keep wordy versions bare", "unknown", "tool: unknown\n"},
		{"Should keep build-suffixed versions bare", "1.7.0a1", "tool: 1.7.0a1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable()
			table.Add(Record{Scope: "S", Tool: "tool", Version: tt.version})
			got, err := table.ToYAML()
			require.NoError(t, err)
			assert.Equal(t, "S:\n  "+tt.want, got)
		})
	}
}

func TestTable_ToYAML_RoundTrip(t *testing.T) {
	t.Run("Should reproduce the same pairs after a serialize and parse cycle", func(t *testing.T) {
		ctx := context.Background()
		n := NewNormalizer(afero.NewMemMapFs(), "")
		recs, drops := n.Normalize(ctx, "samtools: 1.17\nfastqc: 0.12.1\nstar: 1.10\n")
		require.Empty(t, drops)
		table := NewTable()
		table.AddAll(recs)
		rendered, err := table.ToYAML()
		require.NoError(t, err)

		again, drops := n.Normalize(ctx, rendered)
		require.Empty(t, drops)
		back := NewTable()
		back.AddAll(again)
		assert.Equal(t, table.ToMap(), back.ToMap())
	})
}

func TestTable_ToYAML_MixedSources(t *testing.T) {
	t.Run("Should merge text, tuple and mapping sources into one report", func(t *testing.T) {
		ctx := context.Background()
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "results/fastqc/versions.yml", []byte("FASTQC:\n  fastqc: 0.12.1\n"), 0o644))
		n := NewNormalizer(fs, "")
		recs, drops := n.NormalizeAll(ctx, []any{
			"results/fastqc/versions.yml",
			[]any{"NFCORE_RNASEQ:RNASEQ:SAMTOOLS_SORT", "samtools", "1.17"},
			map[string]string{"multiqc": "1.15"},
		})
		require.Empty(t, drops)
		table := NewTable()
		table.AddAll(recs)
		got, err := table.ToYAML()
		require.NoError(t, err)
		want := "FASTQC:\n" +
			"  fastqc: 0.12.1\n" +
			"SAMTOOLS_SORT:\n" +
			"  samtools: \"1.17\"\n" +
			"Software:\n" +
			"  multiqc: \"1.15\"\n"
		assert.Equal(t, want, got)
		assert.NotContains(t, got, "NFCORE_RNASEQ", "qualified step paths must not leak into the report")
	})
}

func TestTable_ToYAML_WithManifest(t *testing.T) {
	t.Run("Should render a workflow-only report for empty inputs with a provider", func(t *testing.T) {
		table := NewTable()
		table.InjectManifest(manifest.Info{
			PipelineName:    "nf-core/rnaseq",
			PipelineVersion: "3.14.0",
			RuntimeVersion:  "23.10.1",
		})
		got, err := table.ToYAML()
		require.NoError(t, err)
		want := "Workflow:\n" +
			"  Nextflow: 23.10.1\n" +
			"  nf-core/rnaseq: v3.14.0\n"
		assert.Equal(t, want, got)
	})
	t.Run("Should sort the workflow scope with the others", func(t *testing.T) {
		table := NewTable()
		table.Add(Record{Scope: "Software", Tool: "multiqc", Version: "1.15"})
		table.InjectManifest(manifest.Info{PipelineName: "demo", PipelineVersion: "1.0", RuntimeVersion: "unknown"})
		got, err := table.ToYAML()
		require.NoError(t, err)
		assert.Less(t, strings.Index(got, "Software:"), strings.Index(got, "Workflow:"))
	})
}
