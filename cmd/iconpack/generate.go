package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/config"
	"github.com/gorewood/iconpack/internal/generator"
	"github.com/gorewood/iconpack/internal/output"
)

// newGenerateCmd creates the generate command.
func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Rebuild every icon component and both indexes",
		Long: `Rebuild the icon pack from the source directory.

The output directory is wiped first, so components whose source SVG was
removed disappear. Names are checked before anything is deleted: an invalid
component name or two files mapping to one name stops the run with the
previous output intact.

Examples:
  iconpack generate
  iconpack generate --source assets/svg --out src/lib/icons --barrel src/lib
  iconpack generate --keep-going --no-format --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}
}

func runGenerate(cmd *cobra.Command) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}

	warnings := &warningCollector{printer: printer}
	gen, err := newGenerator(settings, warnings)
	if err != nil {
		printer.Error(err)
		return err
	}

	result, runErr := gen.Run(cmd.Context())
	if result == nil {
		printer.Error(runErr)
		return runErr
	}

	if err := printGenerateResult(printer, settings, result, warnings.collected, runErr); err != nil {
		return err
	}
	if runErr != nil && !printer.IsJSON() {
		printer.Error(runErr)
	}
	return runErr
}

func printGenerateResult(
	printer *output.Printer,
	settings *config.Loaded,
	result *generator.Result,
	warnings []string,
	runErr error,
) error {
	if printer.IsJSON() {
		data := map[string]any{
			"status":        "ok",
			"icons":         result.Icons,
			"icons_index":   result.IconsIndex,
			"package_index": result.PackageIndex,
			"formatted":     result.Formatted,
		}
		if len(result.Skipped) > 0 {
			data["skipped"] = result.Skipped
		}
		if len(warnings) > 0 {
			data["warnings"] = warnings
		}
		if settings.File != "" {
			data["config_file"] = settings.File
		}
		if runErr != nil {
			data["status"] = "partial"
			data["error"] = runErr.Error()
			data["code"] = output.GetExitCode(runErr)
		}
		return printer.Success(data)
	}

	_ = printer.Success(map[string]any{
		"message": fmt.Sprintf("Generated %d icon components", len(result.Icons)),
	})
	printer.KeyValue("Components", settings.OutputDir)
	printer.KeyValue("Icons index", result.IconsIndex)
	printer.KeyValue("Package index", result.PackageIndex)
	printer.KeyValue("Formatted", formattedLabel(settings, result))
	if n := len(result.Skipped); n > 0 {
		printer.KeyValue("Skipped", strconv.Itoa(n))
	}
	if settings.File != "" {
		printer.KeyValue("Config", settings.File)
	}
	return nil
}

func formattedLabel(settings *config.Loaded, result *generator.Result) string {
	switch {
	case !settings.Formatter.Enabled:
		return "no (disabled)"
	case result.Formatted:
		return "yes"
	default:
		return "no (formatter failed)"
	}
}
