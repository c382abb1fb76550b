package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/config"
	"github.com/gorewood/iconpack/internal/formatter"
	"github.com/gorewood/iconpack/internal/generator"
	"github.com/gorewood/iconpack/internal/naming"
	"github.com/gorewood/iconpack/internal/optimize"
	"github.com/gorewood/iconpack/internal/output"
)

// flagKeys maps config keys to the root flags that override them.
var flagKeys = map[string]string{
	"source_dir": "source",
	"output_dir": "out",
	"barrel_dir": "barrel",
	"template":   "template",
	"naming":     "naming",
	"keep_going": "keep-going",
}

// addSettingsFlags registers the generation overrides shared by every command.
func addSettingsFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("source", "", "Directory holding the raw SVG files")
	flags.String("out", "", "Generated components directory (wiped on every run)")
	flags.String("barrel", "", "Directory of the package index")
	flags.String("template", "", "Component template: svelte, svelte5, or a .tmpl path")
	flags.String("naming", "", "Component naming: hyphen or camel")
	flags.Bool("keep-going", false, "Skip icons that fail instead of aborting")
	flags.Bool("no-format", false, "Do not run the formatter over generated files")
}

// loadSettings resolves the configuration for cmd: defaults, config file,
// ICONPACK_* variables, then flags the user set.
func loadSettings(cmd *cobra.Command) (*config.Loaded, error) {
	file, _ := cmd.Flags().GetString("config")

	loaded, err := config.Load(config.LoadOptions{
		File:     file,
		Flags:    cmd.Flags(),
		FlagKeys: flagKeys,
	})
	if err != nil {
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}

	if noFormat, _ := cmd.Flags().GetBool("no-format"); noFormat {
		loaded.Formatter.Enabled = false
	}
	if err := loaded.Validate(); err != nil {
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	return loaded, nil
}

// newGenerator builds a generator from resolved settings.
func newGenerator(settings *config.Loaded, reporter generator.Reporter) (*generator.Generator, error) {
	strategy, err := naming.ParseStrategy(settings.Naming)
	if err != nil {
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}

	cfg := generator.Config{
		SourceDir: settings.SourceDir,
		OutputDir: settings.OutputDir,
		BarrelDir: settings.BarrelDir,
		Extension: settings.Extension,
		IndexExt:  settings.IndexExt,
		Naming:    strategy,
		Optimize: optimize.Options{
			Multipass:            settings.Optimize.Multipass,
			MaxPasses:            settings.Optimize.MaxPasses,
			CurrentColor:         settings.Optimize.CurrentColor,
			RemoveAttrs:          settings.Optimize.RemoveAttrs,
			PreserveCurrentColor: settings.Optimize.PreserveCurrentColor,
		},
		Template:  settings.Template,
		Banner:    settings.Banner,
		KeepGoing: settings.KeepGoing,
	}

	opts := []generator.Option{generator.WithReporter(reporter)}
	if settings.Formatter.Enabled {
		opts = append(opts, generator.WithFormatter(
			formatter.NewCommand(settings.Formatter.Command, settings.Formatter.Args...)))
	}
	return generator.New(cfg, opts...)
}

// warningCollector holds warnings back in JSON mode so they land in the
// command's single result object. In human mode they print immediately.
type warningCollector struct {
	printer   *output.Printer
	collected []string
}

func (w *warningCollector) Warn(format string, args ...any) {
	if w.printer.IsJSON() {
		w.collected = append(w.collected, fmt.Sprintf(format, args...))
		return
	}
	w.printer.Warn(format, args...)
}
