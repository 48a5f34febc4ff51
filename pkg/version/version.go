package version

import "fmt"

// Set at build time via -ldflags, e.g.
// -X 'github.com/pipefacts/pipefacts/pkg/version.Version=v0.3.0'.
var (
	Version    = "dev"
	CommitHash = "none"
	BuildDate  = "unknown"
)

// Info is the build metadata snapshot reported by the version command.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildDate  string `json:"build_date"`
}

// Get snapshots the ldflags-injected build variables.
func Get() Info {
	return Info{Version: Version, CommitHash: CommitHash, BuildDate: BuildDate}
}

// String renders the snapshot in the one-line-per-field form the CLI prints.
func (i Info) String() string {
	return fmt.Sprintf("pipefacts version %s\ncommit: %s\nbuilt: %s", i.Version, i.CommitHash, i.BuildDate)
}
