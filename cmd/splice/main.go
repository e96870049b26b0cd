// Command splice generates Go source from marker templates.
package main

import (
	"os"

	"github.com/roach88/splice/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
