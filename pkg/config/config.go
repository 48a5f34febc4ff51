package config

// Config is the full application configuration. Values load in precedence
// order: built-in defaults, then PIPEFACTS_* environment variables, then
// command-line flags applied by the CLI layer.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Engine   EngineConfig   `koanf:"engine"`
	Manifest ManifestConfig `koanf:"manifest"`
	Output   OutputConfig   `koanf:"output"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `koanf:"level"  validate:"omitempty,oneof=debug info warn error disabled"`
	JSON   bool   `koanf:"json"`
	Source bool   `koanf:"source"`
}

// EngineConfig tunes normalization and source collection.
type EngineConfig struct {
	// DefaultScope labels records that arrive without a step of their own.
	DefaultScope string `koanf:"default_scope" validate:"required"`
	// VersionGlobs are the patterns the CLI expands to find version
	// documents under a results tree.
	VersionGlobs []string `koanf:"version_globs"`
	// CitationGlobs are the patterns for module metadata documents.
	CitationGlobs []string `koanf:"citation_globs"`
}

// ManifestConfig backs the static workflow metadata provider.
type ManifestConfig struct {
	Name           string `koanf:"name"`
	Version        string `koanf:"version"`
	DOI            string `koanf:"doi"`
	RuntimeVersion string `koanf:"runtime_version"`
}

// OutputConfig names the artifact files the CLI writes.
type OutputConfig struct {
	Dir              string `koanf:"dir"               validate:"required"`
	VersionsFile     string `koanf:"versions_file"     validate:"required"`
	MultiQCFile      string `koanf:"multiqc_file"`
	CitationsFile    string `koanf:"citations_file"`
	BibliographyFile string `koanf:"bibliography_file"`
	MethodsFile      string `koanf:"methods_file"`
	ReportFile       string `koanf:"report_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Engine: EngineConfig{
			DefaultScope:  "Software",
			VersionGlobs:  []string{"**/versions.yml"},
			CitationGlobs: []string{"**/meta.yml"},
		},
		Output: OutputConfig{
			Dir:              "pipeline_info",
			VersionsFile:     "software_versions.yml",
			MultiQCFile:      "software_versions_mqc.yml",
			CitationsFile:    "citations.txt",
			BibliographyFile: "bibliography.html",
			MethodsFile:      "methods_description.html",
			ReportFile:       "provenance_report.md",
		},
	}
}
