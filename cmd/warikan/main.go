package main

import (
	"os"

	"github.com/susu3304/warikan/cmd/warikan/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
