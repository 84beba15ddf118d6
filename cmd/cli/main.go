package main

import (
	"os"

	"github.com/rentacar-dev/rentacar/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
