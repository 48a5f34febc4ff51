package manifest

// StaticProvider is a fixed metadata snapshot. The CLI builds one from flags
// and configuration; tests use it in place of a live pipeline runtime.
type StaticProvider struct {
	Name           string
	Version        string
	DOI            string
	RuntimeVersion string
}

var _ Provider = StaticProvider{}
var _ DOIProvider = StaticProvider{}

func (s StaticProvider) PipelineName() string {
	return s.Name
}

func (s StaticProvider) PipelineVersion() string {
	return s.Version
}

func (s StaticProvider) RuntimeVersionConfig() string {
	return s.RuntimeVersion
}

func (s StaticProvider) PipelineDOI() string {
	return s.DOI
}
