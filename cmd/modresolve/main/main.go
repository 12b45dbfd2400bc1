package main

import (
	"os"

	"github.com/arthur-debert/modresolve/cmd/modresolve"
	"github.com/arthur-debert/modresolve/pkg/report"
)

func main() {
	rootCmd := modresolve.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		renderer := report.NewRenderer(os.Stderr, report.DetectFormat(os.Stderr))
		_ = renderer.Error(err)
		os.Exit(1)
	}
}
