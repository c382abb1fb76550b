package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"create svg", fsnotify.Event{Name: "/icons/home.svg", Op: fsnotify.Create}, true},
		{"write svg", fsnotify.Event{Name: "/icons/home.svg", Op: fsnotify.Write}, true},
		{"remove svg", fsnotify.Event{Name: "/icons/home.svg", Op: fsnotify.Remove}, true},
		{"rename svg", fsnotify.Event{Name: "/icons/home.svg", Op: fsnotify.Rename}, true},
		{"chmod svg", fsnotify.Event{Name: "/icons/home.svg", Op: fsnotify.Chmod}, false},
		{"other extension", fsnotify.Event{Name: "/icons/notes.txt", Op: fsnotify.Write}, false},
		{"editor swap file", fsnotify.Event{Name: "/icons/.home.svg.swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Relevant(tt.ev, ".svg"); got != tt.want {
				t.Errorf("Relevant() = %v, want %v", got, tt.want)
			}
		})
	}
}

type warnRecorder struct {
	mu       sync.Mutex
	warnings []string
}

func (r *warnRecorder) Warn(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnings = append(r.warnings, format)
}

func (r *warnRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.warnings)
}

func waitRun(t *testing.T, runs <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-runs:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s", what)
	}
}

func startWatch(t *testing.T, opts Options, fn RunFunc) (cancel func()) {
	t.Helper()
	ctx, cancelCtx := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, opts, fn) }()

	return func() {
		cancelCtx()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Watch() error = %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Watch did not stop after cancel")
		}
	}
}

func TestWatch_RerunsOnRelevantChange(t *testing.T) {
	dir := t.TempDir()
	runs := make(chan struct{}, 16)

	stop := startWatch(t, Options{Dir: dir, Extension: ".svg", Debounce: 20 * time.Millisecond},
		func(context.Context) error {
			runs <- struct{}{}
			return nil
		})
	defer stop()

	waitRun(t, runs, "initial run")

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-runs:
		t.Fatal("unrelated file should not trigger a run")
	case <-time.After(200 * time.Millisecond):
	}

	if err := os.WriteFile(filepath.Join(dir, "home.svg"), []byte("<svg/>"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitRun(t, runs, "run after svg change")
}

func TestWatch_ReportsRunErrors(t *testing.T) {
	dir := t.TempDir()
	rec := &warnRecorder{}
	runs := make(chan struct{}, 16)

	stop := startWatch(t, Options{Dir: dir, Extension: ".svg", Debounce: 20 * time.Millisecond, Reporter: rec},
		func(context.Context) error {
			runs <- struct{}{}
			return errors.New("broken icon")
		})

	waitRun(t, runs, "initial run")
	if err := os.WriteFile(filepath.Join(dir, "home.svg"), []byte("<svg/>"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitRun(t, runs, "run after failure")

	deadline := time.Now().Add(5 * time.Second)
	for rec.count() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	stop()

	if rec.count() < 2 {
		t.Errorf("warnings = %d, want at least 2", rec.count())
	}
}

func TestWatch_MissingDir(t *testing.T) {
	err := Watch(context.Background(), Options{Dir: filepath.Join(t.TempDir(), "missing"), Extension: ".svg"},
		func(context.Context) error { return nil })
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}
