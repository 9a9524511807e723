package main

import (
	"os"

	"github.com/corpustools/corec/cmd"
)

func main() {
	if err := cmd.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
