// Command hookslab runs the hook demos in a terminal.
package main

import (
	"github.com/tebeka/atexit"

	"github.com/go-drift/hookslab/cmd/hookslab/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
