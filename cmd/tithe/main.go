package main

import (
	"os"

	"github.com/tithe-dev/tithe/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
