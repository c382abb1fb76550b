package main

import (
	"errors"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gorewood/iconpack/internal/config"
	"github.com/gorewood/iconpack/internal/output"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a commented default iconpack.yaml",
		Long: `Write the default configuration, with a comment on every key, to
./iconpack.yaml or the given path. With --global it goes to the user config
directory instead, where every project picks it up.

An existing file is left alone unless --force is given.

Examples:
  iconpack init
  iconpack init config/iconpack.yaml
  iconpack init --global --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, args, force, global)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "Write to the user config directory")
	return cmd
}

func runInit(cmd *cobra.Command, args []string, force, global bool) error {
	printer := newPrinter(cmd)

	path, err := initPath(args, global)
	if err != nil {
		printer.Error(err)
		return err
	}

	if err := config.WriteDefault(path, force); err != nil {
		var exitErr *output.ExitError
		if errors.Is(err, config.ErrExists) {
			exitErr = output.NewConflictError(path + " already exists (use --force to overwrite)")
		} else {
			exitErr = output.NewSystemErrorWithCause("writing config", err)
		}
		printer.Error(exitErr)
		return exitErr
	}

	if printer.IsJSON() {
		return printer.Success(map[string]any{"status": "ok", "path": path})
	}
	return printer.Success(map[string]any{"message": "Wrote " + path})
}

func initPath(args []string, global bool) (string, error) {
	switch {
	case len(args) == 1 && global:
		return "", output.NewUserError("a path and --global cannot be combined")
	case len(args) == 1:
		return args[0], nil
	case global:
		dir := config.Dir()
		if dir == "" {
			return "", output.NewSystemError("cannot determine the user config directory")
		}
		return filepath.Join(dir, config.FileName+".yaml"), nil
	default:
		return config.FileName + ".yaml", nil
	}
}
