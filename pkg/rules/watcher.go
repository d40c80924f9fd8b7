package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/actionsmith/inputguard/pkg/constants"
	"github.com/actionsmith/inputguard/pkg/fileutil"
	"github.com/actionsmith/inputguard/pkg/logger"
)

var watcherLog = logger.New("rules:watcher")

// WatchActions watches an actions directory tree and invokes onChange
// with the action name once edits to its action file settle. Events
// for the same action within the debounce window coalesce into a
// single callback. onChange runs on the watch goroutine, so callbacks
// for different actions never overlap. Blocks until ctx is done.
func WatchActions(ctx context.Context, actionsDir string, debounce time.Duration, onChange func(action string)) error {
	if debounce <= 0 {
		debounce = constants.DefaultWatchDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(actionsDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", actionsDir, err)
	}
	entries, err := os.ReadDir(actionsDir)
	if err != nil {
		return fmt.Errorf("failed to read actions directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if err := watcher.Add(filepath.Join(actionsDir, entry.Name())); err != nil {
			return fmt.Errorf("failed to watch %s: %w", entry.Name(), err)
		}
	}

	fired := make(chan string)
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, timer := range timers {
			timer.Stop()
		}
	}()

	watcherLog.Printf("watching %s (debounce %s)", actionsDir, debounce)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// New action directories join the watch as they appear.
			if event.Has(fsnotify.Create) && filepath.Dir(event.Name) == filepath.Clean(actionsDir) {
				if fileutil.DirExists(event.Name) {
					if err := watcher.Add(event.Name); err != nil {
						watcherLog.Printf("failed to watch new directory %s: %v", event.Name, err)
					}
					continue
				}
			}
			action, ok := actionForEvent(actionsDir, event)
			if !ok {
				continue
			}
			if timer, exists := timers[action]; exists {
				timer.Reset(debounce)
				continue
			}
			timers[action] = time.AfterFunc(debounce, func() {
				select {
				case fired <- action:
				case <-ctx.Done():
				}
			})

		case action := <-fired:
			delete(timers, action)
			watcherLog.Printf("action %s changed", action)
			onChange(action)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			watcherLog.Printf("watch error: %v", watchErr)
		}
	}
}

// actionForEvent maps a filesystem event to the action it belongs to.
// Only action metadata files exactly one level below the actions
// directory count; everything else in the tree is ignored.
func actionForEvent(actionsDir string, event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return "", false
	}
	base := filepath.Base(event.Name)
	if base != "action.yml" && base != "action.yaml" {
		return "", false
	}
	parent := filepath.Dir(event.Name)
	if filepath.Dir(parent) != filepath.Clean(actionsDir) {
		return "", false
	}
	return filepath.Base(parent), true
}
