// Package watch re-runs a generation whenever the icon sources change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the source directory must stay quiet before
// a burst of changes triggers one run.
const DefaultDebounce = 200 * time.Millisecond

// Reporter receives run and watcher failures, which never stop the loop.
type Reporter interface {
	Warn(format string, args ...any)
}

// Options configures Watch.
type Options struct {
	Dir       string
	Extension string
	Debounce  time.Duration
	Reporter  Reporter
}

// RunFunc performs one generation.
type RunFunc func(ctx context.Context) error

// Relevant reports whether ev touches a source file with extension ext.
// Chmod-only events are ignored.
func Relevant(ev fsnotify.Event, ext string) bool {
	if !strings.HasSuffix(filepath.Base(ev.Name), ext) {
		return false
	}
	return ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

// Watch runs fn once, then again after every debounced burst of relevant
// changes in opts.Dir, until ctx is canceled. Errors from fn are reported
// and the loop keeps going. Returns nil when ctx is canceled.
func Watch(ctx context.Context, opts Options, fn RunFunc) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	report := func(format string, args ...any) {
		if opts.Reporter != nil {
			opts.Reporter.Warn(format, args...)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // nothing to do on close failure

	if err := watcher.Add(opts.Dir); err != nil {
		return fmt.Errorf("watching %s: %w", opts.Dir, err)
	}

	run := func() {
		if err := fn(ctx); err != nil && ctx.Err() == nil {
			report("%v", err)
		}
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !Relevant(ev, opts.Extension) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			report("watch error: %v", err)
		case <-fire:
			fire = nil
			run()
		}
	}
}
