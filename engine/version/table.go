package version

import (
	"fmt"

	"dario.cat/mergo"

	"github.com/pipefacts/pipefacts/engine/core"
	"github.com/pipefacts/pipefacts/engine/manifest"
)

// Table aggregates version records into scope → tool → version. Writing a
// pair that already exists overwrites it, so input order decides duplicate
// resolution and the caller owns that order.
type Table struct {
	scopes map[string]map[string]string
}

// NewTable builds an empty table.
func NewTable() *Table {
	return &Table{scopes: make(map[string]map[string]string)}
}

// Add writes one record, last write wins.
func (t *Table) Add(rec Record) {
	tools, ok := t.scopes[rec.Scope]
	if !ok {
		tools = make(map[string]string)
		t.scopes[rec.Scope] = tools
	}
	tools[rec.Tool] = rec.Version
}

// AddAll writes records in order.
func (t *Table) AddAll(recs []Record) {
	for _, rec := range recs {
		t.Add(rec)
	}
}

// Merge folds another table into this one. Entries from other win on
// conflict, matching the last-write rule of Add.
func (t *Table) Merge(other *Table) error {
	if other == nil {
		return nil
	}
	if err := mergo.Merge(&t.scopes, other.scopes, mergo.WithOverride); err != nil {
		return fmt.Errorf("merge version tables: %w", err)
	}
	return nil
}

// InjectManifest writes the reserved workflow scope from a resolved metadata
// snapshot: the pipeline name mapped to its display version and the runtime
// tool mapped to the resolved runtime version. It runs after all inputs so
// the manifest always wins inside its scope.
func (t *Table) InjectManifest(info manifest.Info) {
	if info.PipelineName != "" {
		t.Add(Record{Scope: WorkflowScope, Tool: info.PipelineName, Version: manifest.VersionString(info.PipelineVersion)})
	}
	if info.RuntimeVersion != "" {
		t.Add(Record{Scope: WorkflowScope, Tool: RuntimeTool, Version: info.RuntimeVersion})
	}
}

// IsEmpty reports whether the table holds no records.
func (t *Table) IsEmpty() bool {
	return len(t.scopes) == 0
}

// Len counts records across all scopes.
func (t *Table) Len() int {
	n := 0
	for _, tools := range t.scopes {
		n += len(tools)
	}
	return n
}

// Scopes returns the scope names in lexicographic order.
func (t *Table) Scopes() []string {
	return core.SortedKeys(t.scopes)
}

// Tools returns a copy of one scope's tool/version pairs, nil for an unknown
// scope.
func (t *Table) Tools(scope string) map[string]string {
	return core.CloneStringMap(t.scopes[scope])
}

// ToMap returns a deep copy of the whole table.
func (t *Table) ToMap() map[string]map[string]string {
	out := make(map[string]map[string]string, len(t.scopes))
	for scope, tools := range t.scopes {
		out[scope] = core.CloneStringMap(tools)
	}
	return out
}
