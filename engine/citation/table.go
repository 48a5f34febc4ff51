package citation

import "strings"

const (
	// NoCitations is the citation sentence for an empty table.
	NoCitations = "No tools used in the workflow."
	// NoBibliography is the bibliography text when no entry has content.
	NoBibliography = "No bibliography entries found."
)

// Table aggregates citation records keyed by tool. Later entries for a tool
// overwrite earlier ones but keep the first-insertion position, so the
// rendered sentence order follows first appearance and stays deterministic
// for a given input order.
type Table struct {
	order   []string
	records map[string]Record
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{records: make(map[string]Record)}
}

// Add writes one record, overwriting in place.
func (t *Table) Add(rec Record) {
	if _, ok := t.records[rec.Tool]; !ok {
		t.order = append(t.order, rec.Tool)
	}
	t.records[rec.Tool] = rec
}

// AddAll writes records in order.
func (t *Table) AddAll(recs []Record) {
	for _, rec := range recs {
		t.Add(rec)
	}
}

// Records returns the records in first-insertion order.
func (t *Table) Records() []Record {
	out := make([]Record, 0, len(t.order))
	for _, tool := range t.order {
		out = append(out, t.records[tool])
	}
	return out
}

// Len counts the distinct tools in the table.
func (t *Table) Len() int {
	return len(t.order)
}

// IsEmpty reports whether the table holds no records.
func (t *Table) IsEmpty() bool {
	return len(t.order) == 0
}

// CitationText renders the single-sentence citation summary. Fragments join
// in table order; an empty table renders the NoCitations literal.
func (t *Table) CitationText() string {
	if t.IsEmpty() {
		return NoCitations
	}
	parts := make([]string, 0, len(t.order))
	for _, rec := range t.Records() {
		parts = append(parts, rec.CitationText)
	}
	return "Tools used in the workflow included: " + strings.Join(parts, ", ") + "."
}

// BibliographyText renders the HTML bibliography fragment: non-blank entries
// joined with a single space, or the NoBibliography literal when nothing
// qualifies.
func (t *Table) BibliographyText() string {
	var parts []string
	for _, rec := range t.Records() {
		if strings.TrimSpace(rec.BibliographyEntry) == "" {
			continue
		}
		parts = append(parts, rec.BibliographyEntry)
	}
	if len(parts) == 0 {
		return NoBibliography
	}
	return strings.Join(parts, " ")
}
