package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Ordering(t *testing.T) {
	t.Run("Should keep first-insertion order across overwrites", func(t *testing.T) {
		table := NewTable()
		table.Add(NewRecord("fastqc", Meta{Description: "first"}))
		table.Add(NewRecord("samtools", Meta{Description: "second"}))
		table.Add(NewRecord("fastqc", Meta{Description: "updated"}))
		recs := table.Records()
		require.Len(t, recs, 2)
		assert.Equal(t, "fastqc", recs[0].Tool)
		assert.Equal(t, "fastqc (updated)", recs[0].CitationText)
		assert.Equal(t, "samtools", recs[1].Tool)
		assert.Equal(t, 2, table.Len())
	})
}

func TestTable_CitationText(t *testing.T) {
	t.Run("Should join fragments into one sentence", func(t *testing.T) {
		table := NewTable()
		table.AddAll([]Record{
			NewRecord("fastqc", Meta{DOI: "10.5281/zenodo.1404988"}),
			NewRecord("samtools", Meta{DOI: "10.1093/gigascience/giab008"}),
			NewRecord("myscript", Meta{Description: "Local helper script"}),
		})
		want := "Tools used in the workflow included: " +
			"fastqc (DOI: 10.5281/zenodo.1404988), " +
			"samtools (DOI: 10.1093/gigascience/giab008), " +
			"myscript (Local helper script)."
		assert.Equal(t, want, table.CitationText())
	})
	t.Run("Should render the empty-table literal", func(t *testing.T) {
		assert.Equal(t, "No tools used in the workflow.", NewTable().CitationText())
	})
}

func TestTable_BibliographyText(t *testing.T) {
	t.Run("Should join entries with single spaces", func(t *testing.T) {
		table := NewTable()
		table.AddAll([]Record{
			NewRecord("fastqc", Meta{Homepage: "https://example.org/fastqc"}),
			NewRecord("samtools", Meta{Author: "Danecek et al.", Year: "2021"}),
		})
		want := "<li><a href='https://example.org/fastqc'>https://example.org/fastqc</a></li> " +
			"<li>Danecek et al.. 2021.</li>"
		assert.Equal(t, want, table.BibliographyText())
	})
	t.Run("Should skip blank entries", func(t *testing.T) {
		table := NewTable()
		table.Add(Record{Tool: "ghost", CitationText: "ghost (x)", BibliographyEntry: "   "})
		table.Add(NewRecord("fastqc", Meta{Homepage: "https://example.org"}))
		assert.Equal(t, "<li><a href='https://example.org'>https://example.org</a></li>", table.BibliographyText())
	})
	t.Run("Should render the empty-table literal", func(t *testing.T) {
		assert.Equal(t, "No bibliography entries found.", NewTable().BibliographyText())
	})
	t.Run("Should render the literal when every entry is blank", func(t *testing.T) {
		table := NewTable()
		table.Add(Record{Tool: "ghost", BibliographyEntry: ""})
		assert.Equal(t, NoBibliography, table.BibliographyText())
	})
}

func TestMethodsText(t *testing.T) {
	t.Run("Should substitute every recognized placeholder", func(t *testing.T) {
		tpl := "<p>${pipeline_name} ${pipeline_version} (doi: ${pipeline_doi})</p>" +
			"<p>${tool_citations}</p><ul>${tool_bibliography}</ul>"
		got := MethodsText(tpl, MethodsData{
			ToolCitations:    "fastqc (DOI: x)",
			ToolBibliography: "<li>fastqc</li>",
			PipelineName:     "nf-core/rnaseq",
			PipelineVersion:  "3.14.0",
			PipelineDOI:      "10.5281/zenodo.1400710",
		})
		want := "<p>nf-core/rnaseq 3.14.0 (doi: 10.5281/zenodo.1400710)</p>" +
			"<p>fastqc (DOI: x)</p><ul><li>fastqc</li></ul>"
		assert.Equal(t, want, got)
	})
	t.Run("Should leave unknown placeholders untouched", func(t *testing.T) {
		got := MethodsText("${tool_citations} ${meta_custom}", MethodsData{ToolCitations: "x"})
		assert.Equal(t, "x ${meta_custom}", got)
	})
	t.Run("Should substitute empty strings without a provider", func(t *testing.T) {
		got := MethodsText("name=${pipeline_name} doi=${pipeline_doi}", MethodsData{})
		assert.Equal(t, "name= doi=", got)
	})
}
