// Package main provides the entry point for the iconpack CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/config"
	"github.com/gorewood/iconpack/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor resolves --color against TTY detection of the command's output.
func useColor(cmd *cobra.Command) bool {
	mode := output.ColorAuto
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter returns the printer for cmd, with warnings and errors on the
// command's error stream in human mode.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the iconpack CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iconpack",
		Short: "Turn a folder of SVG icons into Svelte components",
		Long: `iconpack converts raw SVG icons into Svelte components and writes a barrel
export so the whole set can be imported from one module.

Each run:
  - wipes the output directory
  - optimizes every SVG (literal colors become currentColor, style attributes go)
  - wraps it in a component template sized by a size prop
  - writes an index re-exporting every component, plus a package index
  - runs the formatter (pnpm prettier --write by default)

Running iconpack with no subcommand performs one generation run.
All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd)
		},
	}

	// .env.local, then .env; variables already in the environment win.
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		if mode, _ := cmd.Flags().GetString("color"); !output.ValidColorMode(mode) {
			err := output.NewUserError("invalid --color " + mode + " (want auto, always or never)")
			newPrinter(cmd).Error(err)
			return err
		}
		_ = config.LoadEnvFiles(".")
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Config file (default: ./iconpack.yaml, then "+configDirHint()+")")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	addSettingsFlags(cmd)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

func configDirHint() string {
	if dir := config.Dir(); dir != "" {
		return dir + "/iconpack.yaml"
	}
	return "the user config dir"
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "inspect", Title: "Inspect Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newGenerateCmd(), "core")
	addGroupedCommand(cmd, newWatchCmd(), "core")

	addGroupedCommand(cmd, newListCmd(), "inspect")
	addGroupedCommand(cmd, newPreviewCmd(), "inspect")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newInitCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
