// Package main is the entry point for the cherry-ledger CLI.
package main

import (
	"os"

	"github.com/dualibesoft/cherry-ledger/cmd/cherry-ledger/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
