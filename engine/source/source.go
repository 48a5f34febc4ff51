package source

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pipefacts/pipefacts/engine/core"
)

// -----------------------------------------------------------------------------
// Kind
// -----------------------------------------------------------------------------

// Kind identifies the shape of a provenance input item. Classification is
// purely structural: it never reads file contents or validates semantics.
type Kind string

const (
	// KindText is inline YAML text carrying one or more scope mappings.
	KindText Kind = "text"
	// KindFile is a reference to a YAML document on disk.
	KindFile Kind = "file"
	// KindTuple is a (scope, tool, value) triple. The value is a scalar for
	// version tuples and a mapping for citation tuples.
	KindTuple Kind = "tuple"
	// KindMapping is an already-structured mapping of scopes or tools.
	KindMapping Kind = "mapping"
	// KindNested is a sequence of sequences, one level of collection
	// wrapping around further source items.
	KindNested Kind = "nested"
	// KindEmpty is a nil item or a blank string. Empty items are skipped
	// without being reported.
	KindEmpty Kind = "empty"
	// KindMalformed is anything that fits no other shape. Malformed items
	// are dropped and reported, never fatal.
	KindMalformed Kind = "malformed"
)

func (k Kind) String() string {
	return string(k)
}

// -----------------------------------------------------------------------------
// Source
// -----------------------------------------------------------------------------

// File marks a string as a filesystem path so it classifies as KindFile even
// when the extension alone would not give it away.
type File string

// Source is the classified form of one input item. Exactly the fields for its
// Kind are set; everything else is zero.
type Source struct {
	Kind Kind

	// Text is set for KindText.
	Text string
	// Path is set for KindFile.
	Path string

	// Scope and Tool are set for KindTuple.
	Scope string
	Tool  string
	// Value is the third tuple element: a scalar for version tuples, a
	// mapping for citation tuples.
	Value any

	// Mapping is set for KindMapping.
	Mapping map[string]any
	// Items is set for KindNested, one entry per inner element.
	Items []Source

	// Reason is set for KindMalformed.
	Reason string
}

// Malformed builds a rejected source with a human-readable reason.
func Malformed(format string, args ...any) Source {
	return Source{Kind: KindMalformed, Reason: fmt.Sprintf(format, args...)}
}

// -----------------------------------------------------------------------------
// Classify
// -----------------------------------------------------------------------------

// Classify inspects one input item and returns its tagged shape. Matching is
// attempted in a fixed order so overlapping shapes resolve deterministically:
// nested before tuple for sequences, file before text for strings.
func Classify(item any) Source {
	if item == nil {
		return Source{Kind: KindEmpty}
	}
	switch v := item.(type) {
	case Source:
		return v
	case File:
		return Source{Kind: KindFile, Path: string(v)}
	case afero.File:
		return Source{Kind: KindFile, Path: v.Name()}
	case string:
		return classifyString(v)
	}
	if m, ok := core.ToAnyMap(item); ok {
		if len(m) == 0 {
			return Source{Kind: KindEmpty}
		}
		return Source{Kind: KindMapping, Mapping: m}
	}
	if s, ok := core.ToAnySlice(item); ok {
		return classifySequence(s)
	}
	return Malformed("unsupported item type %T", item)
}

// classifyString splits the string shapes: blank is empty, a single-line
// YAML path is a file reference, anything else is inline text. Path detection
// is extension-based so classification stays free of filesystem access;
// callers holding paths without a YAML extension wrap them in File.
func classifyString(s string) Source {
	if strings.TrimSpace(s) == "" {
		return Source{Kind: KindEmpty}
	}
	if looksLikeYAMLPath(s) {
		return Source{Kind: KindFile, Path: s}
	}
	return Source{Kind: KindText, Text: s}
}

func looksLikeYAMLPath(s string) bool {
	if strings.ContainsAny(s, "\n\r") {
		return false
	}
	switch strings.ToLower(filepath.Ext(strings.TrimSpace(s))) {
	case ".yml", ".yaml":
		return true
	}
	return false
}

// classifySequence resolves the two sequence shapes. A sequence whose
// elements are all themselves sequences is one level of collection wrapping:
// it flattens into KindNested with each inner element re-classified. Any
// other sequence must be a (scope, tool, value) triple.
func classifySequence(items []any) Source {
	if len(items) == 0 {
		return Source{Kind: KindEmpty}
	}
	if allSequences(items) {
		inner := make([]Source, 0, len(items))
		for _, it := range items {
			inner = append(inner, Classify(it))
		}
		return Source{Kind: KindNested, Items: inner}
	}
	if len(items) != 3 {
		return Malformed("sequence of %d elements is not a (scope, tool, value) triple", len(items))
	}
	return classifyTuple(items)
}

func classifyTuple(items []any) Source {
	scope, ok := scalarString(items[0])
	if !ok {
		return Malformed("tuple scope %v is not a scalar", items[0])
	}
	tool, ok := scalarString(items[1])
	if !ok {
		return Malformed("tuple tool %v is not a scalar", items[1])
	}
	value := items[2]
	if value == nil {
		return Malformed("tuple (%s, %s) has no value", scope, tool)
	}
	if !core.IsScalar(value) {
		m, ok := core.ToAnyMap(value)
		if !ok {
			return Malformed("tuple (%s, %s) value %T is neither scalar nor mapping", scope, tool, value)
		}
		value = m
	}
	return Source{Kind: KindTuple, Scope: scope, Tool: tool, Value: value}
}

func scalarString(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	s, ok := core.ScalarToString(v)
	if !ok {
		return "", false
	}
	return s, true
}

func allSequences(items []any) bool {
	for _, it := range items {
		if _, ok := core.ToAnySlice(it); !ok {
			return false
		}
	}
	return true
}
