// Command realm answers route-planning questions about a fantasy map:
// safest paths, strategic locations and regional groupings.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
