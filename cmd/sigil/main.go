package main

import (
	"os"

	"github.com/opd-ai/sigil/cmd/sigil/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
