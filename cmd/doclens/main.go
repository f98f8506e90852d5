// Command doclens indexes a documentation corpus and answers coverage
// queries against it.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/doclens-cli/internal/adapters/driving/cli"
)

// version is injected at build time via -ldflags.
var version = "dev"

func main() {
	cli.SetVersion(version)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
