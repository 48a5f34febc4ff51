package version

import "strings"

const (
	// DefaultScope groups records that arrive without a step of their own.
	DefaultScope = "Software"
	// WorkflowScope is reserved for the manifest-derived entries. Inputs may
	// still write to it; the manifest injection runs last and wins.
	WorkflowScope = "Workflow"
	// RuntimeTool is the tool name the resolved runtime version is filed
	// under inside the workflow scope.
	RuntimeTool = "Nextflow"
)

// Record is one normalized software-version fact. A finished report holds at
// most one record per (Scope, Tool) pair; the last write in input order wins.
type Record struct {
	Scope   string
	Tool    string
	Version string
}

// collapseKey strips everything before the last colon. Fully qualified step
// paths like "NFCORE_RNASEQ:RNASEQ:FASTQC" collapse to their leaf name.
func collapseKey(key string) string {
	if i := strings.LastIndex(key, ":"); i >= 0 {
		return key[i+1:]
	}
	return key
}
