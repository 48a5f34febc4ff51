package citation

import "strings"

// Placeholder markers recognized by MethodsText. Substitution is textual,
// not a template language: markers outside this set stay in the output
// untouched.
const (
	PlaceholderCitations       = "${tool_citations}"
	PlaceholderBibliography    = "${tool_bibliography}"
	PlaceholderPipelineName    = "${pipeline_name}"
	PlaceholderPipelineVersion = "${pipeline_version}"
	PlaceholderPipelineDOI     = "${pipeline_doi}"
)

// MethodsData carries the values substituted into a methods-description
// template. Workflow fields left empty (no metadata provider) substitute to
// empty strings rather than failing.
type MethodsData struct {
	ToolCitations    string
	ToolBibliography string
	PipelineName     string
	PipelineVersion  string
	PipelineDOI      string
}

// MethodsText fills the recognized placeholders of a methods-description
// template in one pass.
func MethodsText(template string, data MethodsData) string {
	r := strings.NewReplacer(
		PlaceholderCitations, data.ToolCitations,
		PlaceholderBibliography, data.ToolBibliography,
		PlaceholderPipelineName, data.PipelineName,
		PlaceholderPipelineVersion, data.PipelineVersion,
		PlaceholderPipelineDOI, data.PipelineDOI,
	)
	return r.Replace(template)
}
