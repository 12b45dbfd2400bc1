package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/modresolve/cmd/modresolve"
	"github.com/arthur-debert/modresolve/internal/version"
)

func main() {
	rootCmd := modresolve.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MODRESOLVE",
		Section: "1",
		Source:  "modresolve " + version.Version,
		Manual:  "modresolve manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
