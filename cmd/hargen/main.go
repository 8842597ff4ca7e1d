package main

import (
	"os"

	"github.com/pb33f/hareport/cmd"
)

func main() {
	if err := cmd.NewGenerateCommand("hargen").Execute(); err != nil {
		os.Exit(1)
	}
}
