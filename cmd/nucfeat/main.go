package main

import (
	"log"
	"os"

	"github.com/histoquant/nucfeat/cmd/nucfeat/cmd"
)

func main() {
	// All logging goes to stderr; stdout carries command output (CSV, tables).
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
