package main

import (
	"os"

	"github.com/ib-77/bitbench/cmd/bitbench/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
