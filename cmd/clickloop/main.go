package main

import (
	"os"

	"github.com/bnema/clickloop-cli/cmd"

	_ "github.com/go-vgo/robotgo/base"  // Blank import for robotgo C sources
	_ "github.com/go-vgo/robotgo/mouse" // Blank import for robotgo C sources
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
