package citation

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pipefacts/pipefacts/engine/source"
)

const fastqcMetaDoc = `name: fastqc
description: Run FastQC on sequenced reads
tools:
  - fastqc:
      description: FastQC is a quality control tool for high throughput sequence data.
      homepage: https://www.bioinformatics.babraham.ac.uk/projects/fastqc/
      doi: 10.5281/zenodo.1404988
      licence: ["GPL-2.0-only"]
`

func TestCitationNormalizer_Documents(t *testing.T) {
	ctx := context.Background()

	t.Run("Should extract tool records from a metadata document", func(t *testing.T) {
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, fastqcMetaDoc)
		require.Empty(t, drops)
		require.Len(t, recs, 1)
		assert.Equal(t, "fastqc", recs[0].Tool)
		assert.Equal(t, "fastqc (DOI: 10.5281/zenodo.1404988)", recs[0].CitationText)
		assert.Contains(t, recs[0].BibliographyEntry, "<a href='https://www.bioinformatics.babraham.ac.uk/projects/fastqc/'>")
	})
	t.Run("Should read metadata documents from disk", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "modules/fastqc/meta.yml", []byte(fastqcMetaDoc), 0o644))
		n := NewNormalizer(fs)
		recs, drops := n.Normalize(ctx, "modules/fastqc/meta.yml")
		require.Empty(t, drops)
		require.Len(t, recs, 1)
	})
	t.Run("Should handle documents with several tools", func(t *testing.T) {
		doc := "tools:\n" +
			"  - samtools:\n" +
			"      doi: 10.1093/gigascience/giab008\n" +
			"  - htslib:\n" +
			"      description: C library for high-throughput sequencing data formats\n"
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, doc)
		require.Empty(t, drops)
		require.Len(t, recs, 2)
		assert.Equal(t, "samtools", recs[0].Tool)
		assert.Equal(t, "htslib", recs[1].Tool)
	})
	t.Run("Should drop documents without a tools entry", func(t *testing.T) {
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, "name: fastqc\ndescription: no tools here\n")
		assert.Empty(t, recs)
		require.Len(t, drops, 1)
		assert.Contains(t, drops[0].Reason, "no tools entry")
	})
	t.Run("Should drop missing files without failing", func(t *testing.T) {
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, "modules/gone/meta.yml")
		assert.Empty(t, recs)
		require.Len(t, drops, 1)
		assert.Equal(t, source.KindFile, drops[0].Kind)
	})
	t.Run("Should keep good tools when a sibling entry is broken", func(t *testing.T) {
		doc := "tools:\n" +
			"  - fine:\n" +
			"      description: works\n" +
			"  - broken: not-a-mapping\n"
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, doc)
		require.Len(t, recs, 1)
		assert.Equal(t, "fine", recs[0].Tool)
		require.Len(t, drops, 1)
		assert.Contains(t, drops[0].Reason, "broken")
	})
	t.Run("Should treat a null tool body as empty metadata", func(t *testing.T) {
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.Normalize(ctx, "tools:\n  - undocumented:\n")
		require.Empty(t, drops)
		require.Len(t, recs, 1)
		assert.Equal(t, "undocumented (no citation available)", recs[0].CitationText)
	})
}

func TestCitationNormalizer_Tuples(t *testing.T) {
	ctx := context.Background()
	n := NewNormalizer(afero.NewMemMapFs())

	t.Run("Should treat the tuple value as one tool's metadata", func(t *testing.T) {
		recs, drops := n.Normalize(ctx, []any{"FASTQC", "fastqc", map[string]any{
			"doi": "10.5281/zenodo.1404988",
		}})
		require.Empty(t, drops)
		require.Len(t, recs, 1)
		assert.Equal(t, "fastqc", recs[0].Tool)
		assert.Equal(t, "fastqc (DOI: 10.5281/zenodo.1404988)", recs[0].CitationText)
	})
	t.Run("Should drop tuples whose value is a scalar", func(t *testing.T) {
		recs, drops := n.Normalize(ctx, []any{"FASTQC", "fastqc", "0.12.1"})
		assert.Empty(t, recs)
		require.Len(t, drops, 1)
		assert.Contains(t, drops[0].Reason, "not a metadata mapping")
	})
	t.Run("Should flatten collected tuples one level deep", func(t *testing.T) {
		recs, drops := n.Normalize(ctx, []any{
			[]any{"FASTQC", "fastqc", map[string]any{"description": "QC"}},
			[]any{"MULTIQC", "multiqc", map[string]any{"description": "aggregate"}},
		})
		require.Empty(t, drops)
		require.Len(t, recs, 2)
	})
}

func TestCitationNormalizer_MalformedTolerance(t *testing.T) {
	t.Run("Should keep processing around malformed neighbors", func(t *testing.T) {
		n := NewNormalizer(afero.NewMemMapFs())
		recs, drops := n.NormalizeAll(context.Background(), []any{
			nil,
			"",
			[]any{"lonely"},
			"{{ not yaml",
			fastqcMetaDoc,
		})
		require.Len(t, recs, 1)
		assert.Equal(t, "fastqc", recs[0].Tool)
		assert.Len(t, drops, 2)
	})
}
