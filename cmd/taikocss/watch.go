/*
  File: watch.go
  Purpose: The watch command: rebuild sources on filesystem changes.
  Author: taikocss project
  Notes: Events are debounced per file; a change re-transforms only the
         file it touched.
*/

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch <files...>",
	Short: "Rebuild source files when they change",
	Long: `Run an initial build, then watch the given files and re-transform
each one as it changes. Stops on interrupt.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

// debounceDelay coalesces editor save bursts into one rebuild.
const debounceDelay = 100 * time.Millisecond

func init() {
	watchCmd.Flags().StringVarP(&themePath, "theme", "t", "", "Path to the theme JSON file")
	watchCmd.Flags().StringVarP(&outputDir, "out", "o", "dist", "Output directory")
	watchCmd.Flags().StringVarP(&direction, "direction", "d", "ltr", "Default document direction (ltr or rtl)")
	watchCmd.Flags().StringVar(&cachePath, "cache", ".taikocss/cache.db", "Rule cache database path")
}

// runWatch builds once, then loops on filesystem events.
func runWatch(cmd *cobra.Command, args []string) error {
	session, err := newBuildSession()
	if err != nil {
		return err
	}
	defer session.Close()

	watched := make(map[string]bool, len(args))
	for _, file := range args {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", file, err)
		}
		watched[abs] = true
		if err := session.BuildFile(file); err != nil {
			log.Printf("Build failed for %s: %v", file, err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch parent directories; editors often replace files instead of
	// writing them in place.
	dirs := make(map[string]bool)
	for path := range watched {
		dirs[filepath.Dir(path)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.Printf("Watching %s", dir)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !watched[abs] {
				continue
			}
			mu.Lock()
			if timer, ok := timers[abs]; ok {
				timer.Stop()
			}
			timers[abs] = time.AfterFunc(debounceDelay, func() {
				if err := session.BuildFile(abs); err != nil {
					log.Printf("Rebuild failed for %s: %v", abs, err)
				}
			})
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error: %v", err)
		case <-stop:
			log.Printf("Watch stopped")
			return nil
		}
	}
}
