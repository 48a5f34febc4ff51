package manifest

import (
	"os"
	"strings"
)

// -----------------------------------------------------------------------------
// Provider
// -----------------------------------------------------------------------------

// Provider supplies workflow metadata captured by the pipeline runtime. The
// engine never reaches into runtime state on its own; whoever owns the run
// hands in a Provider and the engine reads it once per report call.
type Provider interface {
	// PipelineName returns the published pipeline name, empty when unset.
	PipelineName() string
	// PipelineVersion returns the declared pipeline version without any
	// display prefix, empty when unset.
	PipelineVersion() string
	// RuntimeVersionConfig returns the runtime version pinned in the
	// pipeline configuration, empty when the run did not pin one.
	RuntimeVersionConfig() string
}

// DOIProvider is an optional upgrade interface for providers that also carry
// the pipeline's publication DOI. Resolve checks for it with a type
// assertion so plain Providers stay valid.
type DOIProvider interface {
	PipelineDOI() string
}

// -----------------------------------------------------------------------------
// Info
// -----------------------------------------------------------------------------

const (
	// RuntimeVersionEnv is the environment fallback consulted when neither
	// an explicit override nor the provider pins the runtime version.
	RuntimeVersionEnv = "NXF_VER"
	// UnknownVersion closes the runtime-version precedence chain.
	UnknownVersion = "unknown"
)

// Info is the metadata snapshot resolved for one report call. It is built
// fresh every time and never persisted.
type Info struct {
	PipelineName    string
	PipelineVersion string
	PipelineDOI     string
	RuntimeVersion  string
}

// Resolve reads the provider once and computes the snapshot. The runtime
// version follows a fixed precedence: explicit override, then the provider's
// pinned configuration, then the RuntimeVersionEnv variable, then
// UnknownVersion.
func Resolve(p Provider, runtimeOverride string) Info {
	info := Info{RuntimeVersion: resolveRuntimeVersion(p, runtimeOverride)}
	if p == nil {
		return info
	}
	info.PipelineName = p.PipelineName()
	info.PipelineVersion = p.PipelineVersion()
	if d, ok := p.(DOIProvider); ok {
		info.PipelineDOI = d.PipelineDOI()
	}
	return info
}

func resolveRuntimeVersion(p Provider, override string) string {
	if override != "" {
		return override
	}
	if p != nil {
		if v := p.RuntimeVersionConfig(); v != "" {
			return v
		}
	}
	if v := os.Getenv(RuntimeVersionEnv); v != "" {
		return v
	}
	return UnknownVersion
}

// VersionString renders a pipeline version for display. Versions get a "v"
// prefix unless they already carry one; an unset version stays empty.
func VersionString(version string) string {
	if version == "" {
		return ""
	}
	if strings.HasPrefix(version, "v") {
		return version
	}
	return "v" + version
}
