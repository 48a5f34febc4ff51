package citation

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pipefacts/pipefacts/engine/core"
	"github.com/pipefacts/pipefacts/engine/source"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// toolsKey is the top-level entry of a module metadata document holding the
// per-tool metadata sequence.
const toolsKey = "tools"

// Normalizer converts classified citation sources into canonical records.
// Citation inputs are module metadata documents (as paths, text or parsed
// mappings) and (scope, tool, metadata) tuples; everything else drops.
type Normalizer struct {
	fs afero.Fs
}

// NewNormalizer builds a normalizer reading metadata documents from fs. A
// nil fs falls back to the OS filesystem.
func NewNormalizer(fs afero.Fs) *Normalizer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Normalizer{fs: fs}
}

// NormalizeAll flattens a whole input list into records, preserving input
// order. Drops are collected alongside and logged at debug level.
func (n *Normalizer) NormalizeAll(ctx context.Context, items []any) ([]Record, []source.Drop) {
	var records []Record
	var drops []source.Drop
	for _, item := range items {
		recs, ds := n.Normalize(ctx, item)
		records = append(records, recs...)
		drops = append(drops, ds...)
	}
	log := logger.FromContext(ctx)
	for _, d := range drops {
		log.Debug("dropped citation source", "kind", d.Kind.String(), "reason", d.Reason)
	}
	log.Debug("normalized citation sources", "items", len(items), "records", len(records), "dropped", len(drops))
	return records, drops
}

// Normalize converts one input item into zero or more records.
func (n *Normalizer) Normalize(ctx context.Context, item any) ([]Record, []source.Drop) {
	return n.normalize(ctx, source.Classify(item), 0)
}

func (n *Normalizer) normalize(ctx context.Context, src source.Source, depth int) ([]Record, []source.Drop) {
	switch src.Kind {
	case source.KindEmpty:
		return nil, nil
	case source.KindMalformed:
		return nil, []source.Drop{source.DropOf(src, "malformed item")}
	case source.KindTuple:
		return n.fromTuple(src)
	case source.KindMapping:
		return n.fromDocument(src.Mapping, "inline mapping")
	case source.KindText:
		return n.fromText(src.Text, "inline text")
	case source.KindFile:
		return n.fromFile(src.Path)
	case source.KindNested:
		if depth > 0 {
			return nil, []source.Drop{source.DropOf(src, "nested sequences beyond one level")}
		}
		var records []Record
		var drops []source.Drop
		for _, inner := range src.Items {
			recs, ds := n.normalize(ctx, inner, depth+1)
			records = append(records, recs...)
			drops = append(drops, ds...)
		}
		return records, drops
	}
	return nil, []source.Drop{source.DropOf(src, "unhandled source kind %s", src.Kind)}
}

// fromTuple treats the tuple value as a single tool's metadata mapping. The
// scope is informational only and never part of the citation key.
func (n *Normalizer) fromTuple(src source.Source) ([]Record, []source.Drop) {
	raw, ok := core.ToAnyMap(src.Value)
	if !ok {
		return nil, []source.Drop{source.DropOf(src, "tuple (%s, %s) value is not a metadata mapping", src.Scope, src.Tool)}
	}
	meta, err := DecodeMeta(raw)
	if err != nil {
		return nil, []source.Drop{source.DropOf(src, "tuple (%s, %s): %v", src.Scope, src.Tool, err)}
	}
	return []Record{NewRecord(src.Tool, meta)}, nil
}

// fromText parses a metadata document and extracts its tools sequence.
func (n *Normalizer) fromText(text, origin string) ([]Record, []source.Drop) {
	var doc map[string]any
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, []source.Drop{{Kind: source.KindText, Reason: fmt.Sprintf("parse %s: %v", origin, err)}}
	}
	return n.fromDocument(doc, origin)
}

// fromFile reads the referenced document and hands it to the text path.
func (n *Normalizer) fromFile(path string) ([]Record, []source.Drop) {
	data, err := afero.ReadFile(n.fs, path)
	if err != nil {
		return nil, []source.Drop{{Kind: source.KindFile, Reason: fmt.Sprintf("read %s: %v", path, err)}}
	}
	return n.fromText(string(data), path)
}

// fromDocument walks the tools sequence of a parsed metadata document: each
// element is a one-entry mapping keyed by tool name whose value is the
// tool's metadata.
func (n *Normalizer) fromDocument(doc map[string]any, origin string) ([]Record, []source.Drop) {
	rawTools, ok := doc[toolsKey]
	if !ok {
		return nil, []source.Drop{{Kind: source.KindMapping, Reason: fmt.Sprintf("%s has no %s entry", origin, toolsKey)}}
	}
	entries, ok := core.ToAnySlice(rawTools)
	if !ok {
		return nil, []source.Drop{{Kind: source.KindMapping, Reason: fmt.Sprintf("%s: %s entry is not a sequence", origin, toolsKey)}}
	}
	var records []Record
	var drops []source.Drop
	for i, entry := range entries {
		m, ok := core.ToAnyMap(entry)
		if !ok {
			drops = append(drops, source.Drop{Kind: source.KindMapping, Reason: fmt.Sprintf("%s: tools[%d] is not a mapping", origin, i)})
			continue
		}
		for _, tool := range core.SortedKeys(m) {
			raw := m[tool]
			if raw == nil {
				records = append(records, NewRecord(tool, Meta{}))
				continue
			}
			inner, ok := core.ToAnyMap(raw)
			if !ok {
				drops = append(drops, source.Drop{Kind: source.KindMapping, Reason: fmt.Sprintf("%s: metadata for %s is not a mapping", origin, tool)})
				continue
			}
			meta, err := DecodeMeta(inner)
			if err != nil {
				drops = append(drops, source.Drop{Kind: source.KindMapping, Reason: fmt.Sprintf("%s: %s: %v", origin, tool, err)})
				continue
			}
			records = append(records, NewRecord(tool, meta))
		}
	}
	return records, drops
}
