package main

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gorewood/iconpack/internal/generator"
	"github.com/gorewood/iconpack/internal/output"
)

// listEntry is one planned component in list output.
type listEntry struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Name   string `json:"name" yaml:"name" toml:"name"`
	Path   string `json:"path" yaml:"path" toml:"path"`
}

type listSkip struct {
	Source string `json:"source" yaml:"source" toml:"source"`
	Reason string `json:"reason" yaml:"reason" toml:"reason"`
}

// listDocument is the yaml and toml shape of list output.
type listDocument struct {
	Icons   []listEntry `json:"icons" yaml:"icons" toml:"icons"`
	Skipped []listSkip  `json:"skipped,omitempty" yaml:"skipped,omitempty" toml:"skipped,omitempty"`
}

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the component each source SVG maps to",
		Long: `List the source files and the components a run would produce, without
reading or writing any icon.

Formats:
  table  aligned columns (default)
  json   same as --json
  yaml   an icons: sequence
  toml   [[icons]] tables

Examples:
  iconpack list
  iconpack list --naming camel
  iconpack list --format toml > icons.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml, toml")
	return cmd
}

func runList(cmd *cobra.Command, format string) error {
	printer := newPrinter(cmd)
	if printer.IsJSON() {
		format = "json"
	}
	switch format {
	case "table", "json", "yaml", "toml":
	default:
		err := output.NewUserError(fmt.Sprintf("unknown format %q (want table, json, yaml or toml)", format))
		printer.Error(err)
		return err
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	gen, err := newGenerator(settings, &warningCollector{printer: printer})
	if err != nil {
		printer.Error(err)
		return err
	}

	icons, skipped, err := gen.Plan()
	if err != nil {
		printer.Error(err)
		return err
	}
	doc := newListDocument(icons, skipped)

	switch format {
	case "json":
		return printer.WriteJSON(doc)
	case "yaml":
		return writeYAML(cmd.OutOrStdout(), doc)
	case "toml":
		return writeTOML(cmd.OutOrStdout(), doc)
	}

	if len(icons) == 0 && len(skipped) == 0 {
		printer.Println("No icons found in " + settings.SourceDir)
		return nil
	}
	rows := make([][]string, 0, len(icons))
	for _, e := range doc.Icons {
		rows = append(rows, []string{e.Source, e.Name, e.Path})
	}
	printer.Table([]string{"SOURCE", "COMPONENT", "FILE"}, rows)
	for _, s := range doc.Skipped {
		printer.Warn("skipping %s", s.Reason)
	}
	return nil
}

func newListDocument(icons []generator.Icon, skipped []generator.Skip) listDocument {
	doc := listDocument{Icons: make([]listEntry, 0, len(icons))}
	for _, icon := range icons {
		doc.Icons = append(doc.Icons, listEntry{Source: icon.Source, Name: icon.Name, Path: icon.Path})
	}
	for _, s := range skipped {
		doc.Skipped = append(doc.Skipped, listSkip{Source: s.Source, Reason: s.Reason})
	}
	return doc
}

func writeYAML(w io.Writer, doc listDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return output.NewSystemErrorWithCause("encoding yaml", err)
	}
	if err := enc.Close(); err != nil {
		return output.NewSystemErrorWithCause("encoding yaml", err)
	}
	return nil
}

func writeTOML(w io.Writer, doc listDocument) error {
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return output.NewSystemErrorWithCause("encoding toml", err)
	}
	return nil
}
