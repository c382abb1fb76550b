package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/output"
	"github.com/gorewood/iconpack/internal/watch"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Regenerate whenever a source SVG changes",
		Long: `Run generate once, then again each time an SVG in the source directory is
created, written, removed or renamed. Bursts of changes within the debounce
window trigger a single run. A failing run is reported and watching goes on.

Stop with Ctrl-C.

Examples:
  iconpack watch
  iconpack watch --debounce 1s --no-format`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "Quiet period before a change triggers a run")
	return cmd
}

func runWatch(cmd *cobra.Command, debounce time.Duration) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	gen, err := newGenerator(settings, printer)
	if err != nil {
		printer.Error(err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printer.Stderr("Watching %s for *%s changes\n", settings.SourceDir, settings.Extension)

	run := func(ctx context.Context) error {
		result, err := gen.Run(ctx)
		if result == nil {
			return err
		}
		if printer.IsJSON() {
			_ = printer.Success(map[string]any{
				"status":    "ok",
				"icons":     len(result.Icons),
				"skipped":   len(result.Skipped),
				"formatted": result.Formatted,
				"time":      time.Now().Format(time.RFC3339),
			})
		} else {
			printer.Print("%s  generated %d icon components\n", time.Now().Format(time.TimeOnly), len(result.Icons))
		}
		return err
	}

	err = watch.Watch(ctx, watch.Options{
		Dir:       settings.SourceDir,
		Extension: settings.Extension,
		Debounce:  debounce,
		Reporter:  printer,
	}, run)
	if err != nil {
		wrapped := output.NewSystemErrorWithCause(fmt.Sprintf("watching %s", settings.SourceDir), err)
		printer.Error(wrapped)
		return wrapped
	}
	return nil
}
