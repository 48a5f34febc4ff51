package citation

import (
	"fmt"

	"github.com/pipefacts/pipefacts/engine/core"
)

// Meta is the per-tool slice of a module metadata document. One struct
// covers both documentation styles: fully referenced tools fill the
// bibliographic fields, minimally documented ones only carry Description.
// Unknown document fields (licence lists, argument docs) are ignored.
type Meta struct {
	Description string `mapstructure:"description"`
	Homepage    string `mapstructure:"homepage"`
	DOI         string `mapstructure:"doi"`
	Author      string `mapstructure:"author"`
	Year        string `mapstructure:"year"`
	Title       string `mapstructure:"title"`
	Journal     string `mapstructure:"journal"`
}

// DecodeMeta converts one tool's raw metadata mapping into Meta. Decoding is
// weakly typed so numeric years and versions land in the string fields.
func DecodeMeta(data any) (Meta, error) {
	meta, err := core.FromMapDefault[Meta](data)
	if err != nil {
		return Meta{}, fmt.Errorf("decode tool metadata: %w", err)
	}
	return meta, nil
}

// IsZero reports whether no known metadata field was present.
func (m Meta) IsZero() bool {
	return m == Meta{}
}

// hasBibliography reports whether any clause of the bibliography template has
// a source field.
func (m Meta) hasBibliography() bool {
	return m.Author != "" || m.Year != "" || m.Title != "" || m.Journal != "" || m.DOI != "" || m.Homepage != ""
}
