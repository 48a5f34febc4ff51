package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pipefacts/pipefacts/pkg/version"
)

// VersionCmd reports the pipefacts build itself, not pipeline tooling.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(version.Get())
		},
	}
}
