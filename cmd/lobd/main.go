// Command lobd drives a lob.Engine from a Postgres-backed event log: it
// can generate synthetic data, replay it while timing per-batch
// latency, and serve the engine's query surface over HTTP. Adapted from
// the quantcup engine's main.go replay loop, split into cobra
// subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/lightsgoout/quantcup-lob/cmd/lobd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
