package main

import (
	"os"

	"github.com/mamadbah2/tco/cmd/tco/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
