// lightbox browses images and files in a terminal gallery with a
// fullscreen viewer, and serves the same viewer over HTTP and MCP.
package main

import (
	"os"

	"github.com/wethinkt/go-lightbox/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
