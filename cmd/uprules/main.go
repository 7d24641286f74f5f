package main

import (
	"os"

	"github.com/fumikura/uprules/cmd/uprules/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
