/*
  File: schemes.go
  Purpose: The schemes command: emit color-scheme CSS from the theme.
  Author: taikocss project
  Notes: Runs independently of source transforms; typically once at the
         start of a build pipeline.
*/

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"taikocss/pkg/schemes"
)

var schemesCmd = &cobra.Command{
	Use:   "schemes",
	Short: "Emit color-scheme CSS variable blocks from the theme",
	Long: `Generate one rule per color scheme and mode:

  [data-color-scheme="S"][data-mode="M"] { --<group>-<token>: <value>; }

Output goes to stdout unless --out-file is given.`,
	RunE: runSchemes,
}

var schemesOutFile string

func init() {
	schemesCmd.Flags().StringVarP(&themePath, "theme", "t", "", "Path to the theme JSON file")
	schemesCmd.Flags().StringVar(&schemesOutFile, "out-file", "", "Write CSS to this file instead of stdout")
	schemesCmd.MarkFlagRequired("theme")
}

// runSchemes generates and writes the scheme CSS.
func runSchemes(cmd *cobra.Command, args []string) error {
	themeJSON, err := loadTheme()
	if err != nil {
		return err
	}

	css, err := schemes.GenerateFromJSON(themeJSON)
	if err != nil {
		return err
	}

	if schemesOutFile == "" {
		fmt.Print(css)
		return nil
	}
	return writeArtifact(schemesOutFile, css)
}
