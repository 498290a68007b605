/*
  File: build.go
  Purpose: The build command: transform sources and emit CSS artifacts.
  Author: taikocss project
  Notes: Artifact names follow the documented virtual-module convention:
         <hash>.css for component rules, global-<hash>.css and
         kf-<hash>.css for the other kinds. The rule cache de-duplicates
         across files and builds by hash.
*/

package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"taikocss/internal/store"
	"taikocss/pkg/schemes"
	"taikocss/pkg/transform"
)

var buildCmd = &cobra.Command{
	Use:   "build <files...>",
	Short: "Extract CSS from source files",
	Long: `Transform each source file, write the rewritten source and one CSS
artifact per extracted rule into the output directory, and record
emissions in the rule cache.

Examples:
  taikocss build src/App.tsx src/Button.tsx
  taikocss build --theme theme.json --out dist src/*.tsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBuild,
}

var (
	themePath string
	outputDir string
	direction string
	cachePath string
)

func init() {
	buildCmd.Flags().StringVarP(&themePath, "theme", "t", "", "Path to the theme JSON file")
	buildCmd.Flags().StringVarP(&outputDir, "out", "o", "dist", "Output directory")
	buildCmd.Flags().StringVarP(&direction, "direction", "d", "ltr", "Default document direction (ltr or rtl)")
	buildCmd.Flags().StringVar(&cachePath, "cache", ".taikocss/cache.db", "Rule cache database path")
}

// runBuild transforms every argument file through one build session.
func runBuild(cmd *cobra.Command, args []string) error {
	session, err := newBuildSession()
	if err != nil {
		return err
	}
	defer session.Close()

	for _, file := range args {
		if err := session.BuildFile(file); err != nil {
			return err
		}
	}

	count, err := session.store.RuleCount()
	if err == nil {
		log.Printf("Build complete: %d files, %d distinct rules cached", len(args), count)
	}
	return nil
}

// buildSession holds the state shared by every file of one build run.
type buildSession struct {
	themeJSON string
	store     *store.RuleStore
	buildID   string
}

// newBuildSession loads the theme, opens the cache, and emits the
// color-scheme CSS once.
func newBuildSession() (*buildSession, error) {
	themeJSON, err := loadTheme()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	ruleStore, err := store.NewRuleStore(cachePath)
	if err != nil {
		return nil, err
	}

	session := &buildSession{
		themeJSON: themeJSON,
		store:     ruleStore,
		buildID:   ruleStore.BeginBuild(),
	}

	if err := session.emitSchemes(); err != nil {
		ruleStore.Close()
		return nil, err
	}
	return session, nil
}

// Close releases the session's cache connection.
func (s *buildSession) Close() {
	s.store.Close()
}

// emitSchemes writes the color-scheme variable blocks derived from the
// theme; nothing is written for themes without colorSchemes.
func (s *buildSession) emitSchemes() error {
	css, err := schemes.GenerateFromJSON(s.themeJSON)
	if err != nil {
		return err
	}
	if css == "" {
		return nil
	}
	target := filepath.Join(outputDir, "schemes.css")
	if err := writeArtifact(target, css); err != nil {
		return err
	}
	log.Printf("Wrote %s", target)
	return nil
}

// BuildFile transforms one source file and writes its outputs.
func (s *buildSession) BuildFile(file string) error {
	source, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}

	result, err := transform.Transform(file, string(source), s.themeJSON, direction)
	if err != nil {
		return err
	}

	if err := s.store.ClearEmissions(file); err != nil {
		return err
	}

	// Global rules, then keyframes, then component rules: the order the
	// rewritten module's import prelude expects.
	for _, rule := range result.GlobalCSS {
		if err := s.writeRule(file, rule.Hash, "global", "global-"+rule.Hash+".css", rule.CSS); err != nil {
			return err
		}
	}
	for _, rule := range result.Keyframes {
		if err := s.writeRule(file, rule.Hash, "kf", "kf-"+rule.Hash+".css", rule.CSS); err != nil {
			return err
		}
	}
	for _, rule := range result.CSSRules {
		if err := s.writeRule(file, rule.Hash, "component", rule.Hash+".css", rule.CSS); err != nil {
			return err
		}
	}

	target := filepath.Join(outputDir, filepath.Base(file))
	if err := writeArtifact(target, result.Code); err != nil {
		return err
	}
	if result.Map != "" {
		if err := writeArtifact(target+".map", result.Map); err != nil {
			return err
		}
	}

	log.Printf("Transformed %s: %d component, %d global, %d keyframes",
		file, len(result.CSSRules), len(result.GlobalCSS), len(result.Keyframes))
	return nil
}

// writeRule caches one rule and writes its artifact unless an identical
// rule already produced it.
func (s *buildSession) writeRule(file, hash, kind, name, css string) error {
	inserted, err := s.store.PutRule(hash, kind, css)
	if err != nil {
		return err
	}
	if err := s.store.RecordEmission(s.buildID, file, hash); err != nil {
		return err
	}
	if !inserted {
		return nil
	}
	return writeArtifact(filepath.Join(outputDir, "css", name), css)
}

// loadTheme reads the optional theme file.
func loadTheme() (string, error) {
	if themePath == "" {
		return "", nil
	}
	data, err := os.ReadFile(themePath)
	if err != nil {
		return "", fmt.Errorf("failed to read theme %s: %w", themePath, err)
	}
	return string(data), nil
}

// writeArtifact creates parent directories and writes one output file.
func writeArtifact(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
