package report

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pipefacts/pipefacts/engine/core"
	"github.com/pipefacts/pipefacts/engine/manifest"
	"github.com/pipefacts/pipefacts/engine/version"
)

// MultiQCVersions wraps the version table as a MultiQC custom-content
// document: fixed header fields plus an HTML table in the data field, rows
// sorted like the YAML report. An empty table renders as an empty string.
func MultiQCVersions(table *version.Table, info manifest.Info) (string, error) {
	if table == nil || table.IsEmpty() {
		return "", nil
	}
	sectionName := "Software Versions"
	if info.PipelineName != "" {
		sectionName = info.PipelineName + " Software Versions"
	}
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	root.Content = append(root.Content,
		scalarNode("id"), scalarNode("software_versions"),
		scalarNode("section_name"), scalarNode(sectionName),
	)
	if info.PipelineName != "" {
		root.Content = append(root.Content,
			scalarNode("section_href"), scalarNode("https://github.com/"+info.PipelineName),
		)
	}
	root.Content = append(root.Content,
		scalarNode("plot_type"), scalarNode("html"),
		scalarNode("description"), scalarNode("are collected at run time from the software output."),
		scalarNode("data"), blockNode(versionsHTML(table)),
	)
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		_ = enc.Close()
		return "", fmt.Errorf("encode multiqc document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("close multiqc encoder: %w", err)
	}
	return buf.String(), nil
}

// versionsHTML renders the scope/tool/version rows as the table MultiQC
// embeds in its report.
func versionsHTML(table *version.Table) string {
	var b strings.Builder
	b.WriteString("<table class=\"table\" style=\"width:100%\" id=\"pipefacts-versions\">\n")
	b.WriteString("  <thead><tr><th>Process</th><th>Software</th><th>Version</th></tr></thead>\n")
	b.WriteString("  <tbody>\n")
	for _, scope := range table.Scopes() {
		tools := table.Tools(scope)
		for _, tool := range core.SortedKeys(tools) {
			fmt.Fprintf(&b, "    <tr><td>%s</td><td>%s</td><td>%s</td></tr>\n",
				html.EscapeString(scope), html.EscapeString(tool), html.EscapeString(tools[tool]))
		}
	}
	b.WriteString("  </tbody>\n")
	b.WriteString("</table>\n")
	return b.String()
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func blockNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s, Style: yaml.LiteralStyle}
}
