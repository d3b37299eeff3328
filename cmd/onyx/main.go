package main

import (
	"os"

	"onyx/cmd/onyx/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
