// Command ghtools runs the GitHub tool server CLI.
package main

import (
	"fmt"
	"os"

	"github.com/harun/ghtools/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
