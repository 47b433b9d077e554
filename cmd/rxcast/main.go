package main

import (
	"os"

	"github.com/rxcast/rxcast/cmd/rxcast/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
