package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/output"
	"github.com/gorewood/iconpack/internal/preview"
)

type previewFlags struct {
	file       string
	size       int
	columns    int
	padding    int
	paint      string
	background string
}

// newPreviewCmd creates the preview command.
func newPreviewCmd() *cobra.Command {
	defaults := preview.DefaultOptions()
	flags := previewFlags{
		file:       "iconpack-preview.png",
		size:       defaults.Size,
		columns:    defaults.Columns,
		padding:    defaults.Padding,
		paint:      defaults.Paint,
		background: "white",
	}

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render every icon onto one PNG contact sheet",
		Long: `Optimize every source SVG the way generate does and rasterize the result
onto a grid, in source order. currentColor is painted with --paint, so a
literal color that escaped conversion stands out.

Nothing in the output directory is touched.

Examples:
  iconpack preview
  iconpack preview --file docs/icons.png --size 32 --columns 12
  iconpack preview --paint '#1f2937' --background '#f9fafb'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", flags.file, "Image to write (.png, .jpg, .gif)")
	cmd.Flags().IntVar(&flags.size, "size", flags.size, "Icon edge length in pixels")
	cmd.Flags().IntVar(&flags.columns, "columns", flags.columns, "Icons per row")
	cmd.Flags().IntVar(&flags.padding, "padding", flags.padding, "Padding around each icon in pixels")
	cmd.Flags().StringVar(&flags.paint, "paint", flags.paint, "Color substituted for currentColor")
	cmd.Flags().StringVar(&flags.background, "background", flags.background, "Sheet background color")
	return cmd
}

func runPreview(cmd *cobra.Command, flags previewFlags) error {
	printer := newPrinter(cmd)

	opts, err := previewOptions(flags)
	if err != nil {
		printer.Error(err)
		return err
	}

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

	icons, skipped, err := gen.Plan()
	if err != nil {
		printer.Error(err)
		return err
	}
	for _, s := range skipped {
		warnings.Warn("skipping %s", s.Reason)
	}

	markups := make([]string, 0, len(icons))
	for _, icon := range icons {
		svg, err := gen.Optimized(icon)
		if err != nil {
			if !settings.KeepGoing {
				printer.Error(err)
				return err
			}
			warnings.Warn("skipping %s: %v", icon.Source, err)
			continue
		}
		markups = append(markups, svg)
	}

	sheet, err := preview.Build(markups, opts)
	if err != nil {
		wrapped := &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
		printer.Error(wrapped)
		return wrapped
	}
	if err := preview.Save(sheet, flags.file); err != nil {
		wrapped := output.NewSystemErrorWithCause("writing preview", err)
		printer.Error(wrapped)
		return wrapped
	}

	bounds := sheet.Bounds()
	data := map[string]any{
		"status": "ok",
		"file":   flags.file,
		"icons":  len(markups),
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}
	if len(warnings.collected) > 0 {
		data["warnings"] = warnings.collected
	}
	if printer.IsJSON() {
		return printer.Success(data)
	}
	return printer.Success(map[string]any{
		"message": fmt.Sprintf("Wrote %d icons to %s (%dx%d)", len(markups), flags.file, bounds.Dx(), bounds.Dy()),
	})
}

func previewOptions(flags previewFlags) (preview.Options, error) {
	if flags.size <= 0 {
		return preview.Options{}, output.NewUserError("--size must be positive")
	}
	if flags.columns <= 0 {
		return preview.Options{}, output.NewUserError("--columns must be positive")
	}
	if flags.padding < 0 {
		return preview.Options{}, output.NewUserError("--padding must not be negative")
	}
	if _, err := preview.ParseColor(flags.paint); err != nil {
		return preview.Options{}, output.NewUserError(err.Error())
	}
	bg, err := preview.ParseColor(flags.background)
	if err != nil {
		return preview.Options{}, output.NewUserError(err.Error())
	}

	return preview.Options{
		Size:       flags.size,
		Columns:    flags.columns,
		Padding:    flags.padding,
		Paint:      flags.paint,
		Background: bg,
	}, nil
}
