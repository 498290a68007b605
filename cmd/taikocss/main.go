/*
  File: main.go
  Purpose: Command-line entry point for the taikocss extractor.
  Author: taikocss project
  Notes: The CLI is the host collaborator around the pure transform core:
         it owns file I/O, artifact naming, caching, and watch mode.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "taikocss",
	Short: "Build-time CSS extractor for css(), globalCss and keyframes",
	Long: `taikocss turns inline style definitions in JS/TS sources into static,
content-addressed CSS artifacts. Call sites are rewritten to plain string
literals, so no styling library code runs in the browser.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(schemesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
