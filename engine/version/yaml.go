package version

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/pipefacts/pipefacts/engine/core"
)

// ToYAML renders the table as the canonical nested report: one block per
// scope, scopes and tools sorted lexicographically, two-space indent. Every
// value is tagged as a string so the emitter quotes anything that would
// re-parse as another type ("1.15" stays a string) and leaves unambiguous
// versions bare. An empty table renders as an empty string.
func (t *Table) ToYAML() (string, error) {
	if t.IsEmpty() {
		return "", nil
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, scope := range t.Scopes() {
		tools := t.scopes[scope]
		scopeNode := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, tool := range core.SortedKeys(tools) {
			scopeNode.Content = append(scopeNode.Content, strNode(tool), strNode(tools[tool]))
		}
		root.Content = append(root.Content, strNode(scope), scopeNode)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return "", fmt.Errorf("encode version report: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close version report encoder: %w", err)
	}
	return buf.String(), nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
