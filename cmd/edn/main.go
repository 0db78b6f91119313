package main

import (
	"os"

	"github.com/grinkers/edn/cmd/edn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
