package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runReportCmd(t *testing.T, resultsDir, outDir string, extra ...string) {
	t.Helper()
	args := append([]string{
		"report",
		"--results-dir", resultsDir,
		"--output-dir", outDir,
	}, extra...)
	root := RootCmd()
	root.SetArgs(args)
	require.NoError(t, root.Execute())
}

func TestReportCmd(t *testing.T) {
	t.Run("Should write every artifact into the output directory", func(t *testing.T) {
		resultsDir := t.TempDir()
		writeDoc(t, resultsDir, "results/fastqc/versions.yml", "FASTQC:\n  fastqc: 0.12.1\n")
		writeDoc(t, resultsDir, "modules/fastqc/meta.yml", fastqcMeta)
		tpl := writeDoc(t, resultsDir, "assets/methods.html",
			"<p>Data was processed using ${pipeline_name} v${pipeline_version} (doi: ${pipeline_doi}).</p>"+
				"<p>${tool_citations}</p>")
		outDir := t.TempDir()

		runReportCmd(t, resultsDir, outDir,
			"--methods-template", tpl,
			"--pipeline-name", "nf-core/rnaseq",
			"--pipeline-version", "3.14.0",
			"--pipeline-doi", "10.5281/zenodo.1400710",
			"--nextflow-version", "23.10.1",
		)

		versions, err := os.ReadFile(filepath.Join(outDir, "software_versions.yml"))
		require.NoError(t, err)
		assert.Equal(t, "FASTQC:\n"+
			"  fastqc: 0.12.1\n"+
			"Workflow:\n"+
			"  Nextflow: 23.10.1\n"+
			"  nf-core/rnaseq: v3.14.0\n", string(versions))

		multiqc, err := os.ReadFile(filepath.Join(outDir, "software_versions_mqc.yml"))
		require.NoError(t, err)
		assert.Contains(t, string(multiqc), "id: software_versions")
		assert.Contains(t, string(multiqc), "nf-core/rnaseq Software Versions")

		citations, err := os.ReadFile(filepath.Join(outDir, "citations.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Tools used in the workflow included: fastqc (DOI: 10.5281/zenodo.123).\n", string(citations))

		bibliography, err := os.ReadFile(filepath.Join(outDir, "bibliography.html"))
		require.NoError(t, err)
		assert.Contains(t, string(bibliography), "<li>doi: 10.5281/zenodo.123.")

		methods, err := os.ReadFile(filepath.Join(outDir, "methods_description.html"))
		require.NoError(t, err)
		assert.Equal(t,
			"<p>Data was processed using nf-core/rnaseq v3.14.0 (doi: 10.5281/zenodo.1400710).</p>"+
				"<p>Tools used in the workflow included: fastqc (DOI: 10.5281/zenodo.123).</p>",
			string(methods))
	})

	t.Run("Should render the Markdown summary document", func(t *testing.T) {
		resultsDir := t.TempDir()
		writeDoc(t, resultsDir, "results/fastqc/versions.yml", "FASTQC:\n  fastqc: 0.12.1\n")
		writeDoc(t, resultsDir, "modules/fastqc/meta.yml", fastqcMeta)
		outDir := t.TempDir()

		runReportCmd(t, resultsDir, outDir,
			"--pipeline-name", "nf-core/rnaseq",
			"--pipeline-version", "3.14.0",
			"--nextflow-version", "23.10.1",
		)

		summary, err := os.ReadFile(filepath.Join(outDir, "provenance_report.md"))
		require.NoError(t, err)
		text := string(summary)
		assert.Contains(t, text, "# Provenance Report: nf-core/rnaseq")
		assert.Contains(t, text, "- Pipeline version: 3.14.0")
		assert.Contains(t, text, "- Runtime version: 23.10.1")
		assert.Contains(t, text, "```yaml\nFASTQC:\n  fastqc: 0.12.1\n")
		assert.Contains(t, text, "Tools used in the workflow included: fastqc (DOI: 10.5281/zenodo.123).")
		assert.Contains(t, text, "<li>doi: 10.5281/zenodo.123.")
	})

	t.Run("Should skip the methods artifact without a template", func(t *testing.T) {
		resultsDir := t.TempDir()
		writeDoc(t, resultsDir, "results/fastqc/versions.yml", "FASTQC:\n  fastqc: 0.12.1\n")
		outDir := t.TempDir()

		runReportCmd(t, resultsDir, outDir)

		_, err := os.Stat(filepath.Join(outDir, "methods_description.html"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(outDir, "software_versions.yml"))
		assert.NoError(t, err)
	})

	t.Run("Should fail when the methods template is missing", func(t *testing.T) {
		resultsDir := t.TempDir()
		outDir := t.TempDir()

		root := RootCmd()
		root.SetArgs([]string{
			"report",
			"--results-dir", resultsDir,
			"--output-dir", outDir,
			"--methods-template", filepath.Join(resultsDir, "missing.html"),
		})
		err := root.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read methods template")
	})
}
