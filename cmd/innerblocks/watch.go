package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/nativeblocks/innerblocks/placeholder"
)

// templateWatcher re-scans a template glob whenever a file under one of its
// directories changes.
type templateWatcher struct {
	detector *placeholder.Detector
	pattern  string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
}

func newTemplateWatcher(detector *placeholder.Detector, pattern string, logger *slog.Logger) (*templateWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &templateWatcher{
		detector: detector,
		pattern:  pattern,
		watcher:  watcher,
		logger:   logger,
	}
	if err := w.addDirs(); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

// addDirs watches every directory the pattern can currently reach. Adding a
// directory that is already watched is a no-op.
func (w *templateWatcher) addDirs() error {
	dirs, err := watchDirs(w.pattern)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			w.logger.Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		w.logger.Debug("watching directory", "dir", dir)
	}
	return nil
}

// watchDirs returns the deepest glob-free ancestor of pattern plus every
// existing directory matched by the pattern's directory components, so block
// directories created later are noticed under their parent.
func watchDirs(pattern string) ([]string, error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	dir := filepath.Dir(pattern)
	base := dir
	for hasMeta(base) {
		base = filepath.Dir(base)
	}

	seen := map[string]struct{}{base: {}}
	if rel, err := filepath.Rel(base, dir); err == nil && rel != "." {
		prefix := base
		for _, part := range strings.Split(rel, string(filepath.Separator)) {
			prefix = filepath.Join(prefix, part)
			matches, err := filepath.Glob(prefix)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
			}
			for _, match := range matches {
				if info, err := os.Stat(match); err == nil && info.IsDir() {
					seen[match] = struct{}{}
				}
			}
		}
	}

	dirs := make([]string, 0, len(seen))
	for d := range seen {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs, nil
}

func hasMeta(path string) bool {
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			return true
		}
	}
	return false
}

// Run blocks until ctx is done, calling onChange with the fresh scan result
// after every relevant event.
func (w *templateWatcher) Run(ctx context.Context, onChange func([]string)) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if w.isNewDir(event) {
				// files written before the directory was added are picked up by the rescan below
				if err := w.addDirs(); err != nil {
					return err
				}
			} else if !w.relevant(event) {
				continue
			}
			matches, err := w.detector.ScanTemplates(w.pattern)
			if err != nil {
				return err
			}
			w.logger.Debug("templates rescanned", "event", event.Op.String(), "file", event.Name, "matches", len(matches))
			onChange(matches)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		}
	}
}

func (w *templateWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	matched, err := filepath.Match(w.pattern, event.Name)
	return err == nil && matched
}

func (w *templateWatcher) isNewDir(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) {
		return false
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

func (w *templateWatcher) Close() error {
	return w.watcher.Close()
}
