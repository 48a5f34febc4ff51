package citation

import (
	"fmt"
	"strings"
)

// NoCitationFallback fills the citation parenthetical when a tool's metadata
// has neither a DOI nor a description.
const NoCitationFallback = "no citation available"

// Record is one normalized tool-citation fact: the prose fragment for the
// citation sentence and the HTML fragment for the bibliography list.
type Record struct {
	Tool              string
	CitationText      string
	BibliographyEntry string
}

// NewRecord renders both text artifacts for a tool from its metadata.
func NewRecord(tool string, meta Meta) Record {
	return Record{
		Tool:              tool,
		CitationText:      citationText(tool, meta),
		BibliographyEntry: bibliographyEntry(tool, meta),
	}
}

// citationText prefers the DOI, falls back to the description, and finally
// to the fallback literal, always as "<tool> (<detail>)".
func citationText(tool string, meta Meta) string {
	switch {
	case meta.DOI != "":
		return fmt.Sprintf("%s (DOI: %s)", tool, meta.DOI)
	case meta.Description != "":
		return fmt.Sprintf("%s (%s)", tool, meta.Description)
	default:
		return fmt.Sprintf("%s (%s)", tool, NoCitationFallback)
	}
}

// bibliographyEntry renders the list item
// "<li><author>. <year>. <title>. <journal>. doi: <doi>. <a href='<homepage>'><homepage></a></li>"
// omitting clauses whose field is absent while keeping the punctuation of
// present clauses intact. A tool with no bibliographic fields at all gets a
// bare "<li><tool></li>".
func bibliographyEntry(tool string, meta Meta) string {
	if !meta.hasBibliography() {
		return fmt.Sprintf("<li>%s</li>", tool)
	}
	clauses := make([]string, 0, 6)
	if meta.Author != "" {
		clauses = append(clauses, meta.Author+".")
	}
	if meta.Year != "" {
		clauses = append(clauses, meta.Year+".")
	}
	if meta.Title != "" {
		clauses = append(clauses, meta.Title+".")
	}
	if meta.Journal != "" {
		clauses = append(clauses, meta.Journal+".")
	}
	if meta.DOI != "" {
		clauses = append(clauses, "doi: "+meta.DOI+".")
	}
	if meta.Homepage != "" {
		clauses = append(clauses, fmt.Sprintf("<a href='%s'>%s</a>", meta.Homepage, meta.Homepage))
	}
	return "<li>" + strings.Join(clauses, " ") + "</li>"
}
