package main

import (
	"os"

	"github.com/bnema/termdemo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
