package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/iconpack/internal/generator"
)

// --- Shared types ---

// IconSummary is one source icon and its component.
type IconSummary struct {
	Source string `json:"source" jsonschema:"source file name"`
	Name   string `json:"name"   jsonschema:"component identifier"`
	Path   string `json:"path"   jsonschema:"component file path"`
}

// SkipSummary is an icon left out of a keep_going run.
type SkipSummary struct {
	Source string `json:"source" jsonschema:"source file name"`
	Reason string `json:"reason" jsonschema:"why the icon was skipped"`
}

func toIconSummaries(icons []generator.Icon) []IconSummary {
	result := make([]IconSummary, 0, len(icons))
	for _, icon := range icons {
		result = append(result, IconSummary{Source: icon.Source, Name: icon.Name, Path: icon.Path})
	}
	return result
}

func toSkipSummaries(skipped []generator.Skip) []SkipSummary {
	if len(skipped) == 0 {
		return nil
	}
	result := make([]SkipSummary, 0, len(skipped))
	for _, s := range skipped {
		result = append(result, SkipSummary(s))
	}
	return result
}

// --- list_icons tool ---

// ListIconsInput is the input for the list_icons tool (no parameters needed).
type ListIconsInput struct{}

// ListIconsOutput is the output for the list_icons tool.
type ListIconsOutput struct {
	SourceDir string        `json:"source_dir"        jsonschema:"directory the icons are read from"`
	Template  string        `json:"template"          jsonschema:"component template name"`
	Count     int           `json:"count"             jsonschema:"number of icons that will be generated"`
	Icons     []IconSummary `json:"icons"             jsonschema:"icons in generation order"`
	Skipped   []SkipSummary `json:"skipped,omitempty" jsonschema:"icons that will be skipped under keep_going"`
}

func handleListIcons(gen *generator.Generator) mcp.ToolHandlerFor[ListIconsInput, ListIconsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ ListIconsInput) (*mcp.CallToolResult, ListIconsOutput, error) {
		icons, skipped, err := gen.Plan()
		if err != nil {
			return nil, ListIconsOutput{}, fmt.Errorf("listing icons: %w", err)
		}
		return nil, ListIconsOutput{
			SourceDir: gen.Config().SourceDir,
			Template:  gen.Template().Name,
			Count:     len(icons),
			Icons:     toIconSummaries(icons),
			Skipped:   toSkipSummaries(skipped),
		}, nil
	}
}

// --- inspect_icon tool ---

// InspectIconInput is the input for the inspect_icon tool.
type InspectIconInput struct {
	Source string `json:"source" jsonschema:"source file name, e.g. arrow-left.svg"`
}

// InspectIconOutput is the output for the inspect_icon tool.
type InspectIconOutput struct {
	Icon      IconSummary `json:"icon"      jsonschema:"the icon and its component"`
	Component string      `json:"component" jsonschema:"generated component source"`
}

func handleInspectIcon(gen *generator.Generator) mcp.ToolHandlerFor[InspectIconInput, InspectIconOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input InspectIconInput) (*mcp.CallToolResult, InspectIconOutput, error) {
		if input.Source == "" {
			return nil, InspectIconOutput{}, errors.New("source is required")
		}

		icons, _, err := gen.Plan()
		if err != nil {
			return nil, InspectIconOutput{}, fmt.Errorf("listing icons: %w", err)
		}
		for _, icon := range icons {
			if icon.Source != input.Source {
				continue
			}
			prepared, err := gen.Prepare(icon)
			if err != nil {
				return nil, InspectIconOutput{}, err
			}
			return nil, InspectIconOutput{
				Icon:      IconSummary{Source: prepared.Source, Name: prepared.Name, Path: prepared.Path},
				Component: prepared.Markup,
			}, nil
		}
		return nil, InspectIconOutput{}, fmt.Errorf("icon %q not found in %s", input.Source, gen.Config().SourceDir)
	}
}

// --- generate tool ---

// GenerateInput is the input for the generate tool (no parameters needed).
type GenerateInput struct{}

// GenerateOutput is the output for the generate tool.
type GenerateOutput struct {
	Generated    int           `json:"generated"              jsonschema:"number of component files written"`
	Icons        []IconSummary `json:"icons"                  jsonschema:"generated components"`
	Skipped      []SkipSummary `json:"skipped,omitempty"      jsonschema:"icons skipped under keep_going"`
	IconsIndex   string        `json:"icons_index"            jsonschema:"path of the icons index"`
	PackageIndex string        `json:"package_index"          jsonschema:"path of the package index"`
	Formatted    bool          `json:"formatted"              jsonschema:"whether the formatter ran successfully"`
	Warning      string        `json:"warning,omitempty"      jsonschema:"non-fatal problem such as a formatter failure"`
}

func handleGenerate(gen *generator.Generator) mcp.ToolHandlerFor[GenerateInput, GenerateOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ GenerateInput) (*mcp.CallToolResult, GenerateOutput, error) {
		result, err := gen.Run(ctx)
		if result == nil {
			return nil, GenerateOutput{}, fmt.Errorf("generating icons: %w", err)
		}

		out := GenerateOutput{
			Generated:    len(result.Icons),
			Icons:        toIconSummaries(result.Icons),
			Skipped:      toSkipSummaries(result.Skipped),
			IconsIndex:   result.IconsIndex,
			PackageIndex: result.PackageIndex,
			Formatted:    result.Formatted,
		}
		switch {
		case err != nil:
			out.Warning = err.Error()
		case result.FormatError != nil:
			out.Warning = "formatter failed: " + result.FormatError.Error()
		}
		return nil, out, nil
	}
}
