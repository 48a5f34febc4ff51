package version

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pipefacts/pipefacts/engine/core"
	"github.com/pipefacts/pipefacts/engine/source"
	"github.com/pipefacts/pipefacts/pkg/logger"
)

// Normalizer converts classified version sources into canonical records.
// Anything it cannot make sense of becomes a Drop, never an error: one broken
// step report must not take down the aggregation for a whole pipeline run.
type Normalizer struct {
	fs           afero.Fs
	defaultScope string
}

// NewNormalizer builds a normalizer reading file sources from fs. A nil fs
// falls back to the OS filesystem; an empty scope falls back to DefaultScope.
func NewNormalizer(fs afero.Fs, defaultScope string) *Normalizer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if defaultScope == "" {
		defaultScope = DefaultScope
	}
	return &Normalizer{fs: fs, defaultScope: defaultScope}
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
		log.Debug("dropped version source", "kind", d.Kind.String(), "reason", d.Reason)
	}
	log.Debug("normalized version sources", "items", len(items), "records", len(records), "dropped", len(drops))
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
		return n.fromMapping(src.Mapping)
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

// fromTuple emits one record from a (scope, tool, version) triple. The tuple
// value must be a scalar on the version side.
func (n *Normalizer) fromTuple(src source.Source) ([]Record, []source.Drop) {
	ver, ok := core.ScalarToString(src.Value)
	if !ok {
		return nil, []source.Drop{source.DropOf(src, "tuple (%s, %s) value is not a scalar version", src.Scope, src.Tool)}
	}
	return []Record{{Scope: collapseKey(src.Scope), Tool: src.Tool, Version: ver}}, nil
}

// fromMapping walks an already-structured mapping. Scalar values are flat
// tool/version pairs under the default scope; mapping values use the outer
// key as the scope. Keys are visited in sorted order so duplicate-key
// resolution stays deterministic across runs.
func (n *Normalizer) fromMapping(m map[string]any) ([]Record, []source.Drop) {
	var records []Record
	var drops []source.Drop
	for _, key := range core.SortedKeys(m) {
		value := m[key]
		if inner, ok := core.ToAnyMap(value); ok {
			scope := collapseKey(key)
			for _, tool := range core.SortedKeys(inner) {
				ver, ok := core.ScalarToString(inner[tool])
				if !ok {
					drops = append(drops, source.Drop{Kind: source.KindMapping, Reason: fmt.Sprintf("value for %s/%s is not a scalar", scope, tool)})
					continue
				}
				records = append(records, Record{Scope: scope, Tool: collapseKey(tool), Version: ver})
			}
			continue
		}
		ver, ok := core.ScalarToString(value)
		if !ok {
			drops = append(drops, source.Drop{Kind: source.KindMapping, Reason: fmt.Sprintf("value for %s is neither scalar nor mapping", key)})
			continue
		}
		records = append(records, Record{Scope: n.defaultScope, Tool: collapseKey(key), Version: ver})
	}
	return records, drops
}

// fromText parses inline YAML. The document is decoded into a node tree so
// scalar literals survive exactly as written: a version "1.10" must not come
// back as the float 1.1.
func (n *Normalizer) fromText(text, origin string) ([]Record, []source.Drop) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return nil, []source.Drop{{Kind: source.KindText, Reason: fmt.Sprintf("parse %s: %v", origin, err)}}
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, []source.Drop{{Kind: source.KindText, Reason: fmt.Sprintf("%s is not a mapping document", origin)}}
	}
	var records []Record
	var drops []source.Drop
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch value.Kind {
		case yaml.MappingNode:
			scope := collapseKey(key.Value)
			recs, ds := scopeRecords(scope, value, origin)
			records = append(records, recs...)
			drops = append(drops, ds...)
		case yaml.ScalarNode:
			if value.Tag == nullTag {
				drops = append(drops, source.Drop{Kind: source.KindText, Reason: fmt.Sprintf("%s: %s has a null version", origin, key.Value)})
				continue
			}
			records = append(records, Record{Scope: n.defaultScope, Tool: collapseKey(key.Value), Version: value.Value})
		default:
			drops = append(drops, source.Drop{Kind: source.KindText, Reason: fmt.Sprintf("%s: value for %s is neither scalar nor mapping", origin, key.Value)})
		}
	}
	return records, drops
}

// fromFile reads the referenced document and hands it to the text path.
// Unreadable paths drop with the read error attached.
func (n *Normalizer) fromFile(path string) ([]Record, []source.Drop) {
	data, err := afero.ReadFile(n.fs, path)
	if err != nil {
		return nil, []source.Drop{{Kind: source.KindFile, Reason: fmt.Sprintf("read %s: %v", path, err)}}
	}
	return n.fromText(string(data), path)
}

const nullTag = "!!null"

func scopeRecords(scope string, node *yaml.Node, origin string) ([]Record, []source.Drop) {
	var records []Record
	var drops []source.Drop
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if value.Kind != yaml.ScalarNode || value.Tag == nullTag {
			drops = append(drops, source.Drop{Kind: source.KindText, Reason: fmt.Sprintf("%s: %s/%s has no scalar version", origin, scope, key.Value)})
			continue
		}
		records = append(records, Record{Scope: scope, Tool: collapseKey(key.Value), Version: value.Value})
	}
	return records, drops
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return doc
}
