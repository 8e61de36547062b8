// Package main provides the entry point for the import sorter CLI.
package main

import (
	"fmt"
	"os"

	"github.com/bovan/import-sorter/cmd/import-sorter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
