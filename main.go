package main

import (
	"os"

	"github.com/pipefacts/pipefacts/cli"
)

func main() {
	if err := cli.RootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
