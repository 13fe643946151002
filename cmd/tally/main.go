package main

import (
	"os"

	"github.com/ahrav/go-tally/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
