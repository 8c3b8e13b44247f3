package main

import (
	"os"

	"github.com/msto63/sprachwerk/cmd/sprachwerk/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
