// Command devresp plays mechanical keyboard sounds for global key presses.
//
// On Windows build with -ldflags -H=windowsgui to run without a console.
package main

import (
	"os"

	"github.com/Effyiex/dev-resp/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
