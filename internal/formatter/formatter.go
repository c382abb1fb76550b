// Package formatter runs an external source formatter over generated files.
//
// Formatting is optional post-processing: callers treat a failing Formatter
// as a warning, never as a failed generation.
package formatter

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"github.com/gorewood/iconpack/internal/output"
)

// Formatter rewrites the files at paths in place.
type Formatter interface {
	Format(ctx context.Context, paths []string) error
}

// Nop is a Formatter that does nothing.
type Nop struct{}

// Format implements Formatter.
func (Nop) Format(context.Context, []string) error { return nil }

// Command runs an executable with fixed leading arguments followed by the
// paths to format, for example "pnpm prettier --write <paths...>".
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current directory.
	Dir string
}

// NewCommand returns a Command for name and args.
func NewCommand(name string, args ...string) *Command {
	return &Command{Name: name, Args: args}
}

// Default returns the prettier invocation used when nothing is configured.
func Default() *Command {
	return NewCommand("pnpm", "prettier", "--write")
}

// String returns the command line without the paths.
func (c *Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Format runs the command over paths and blocks until it exits.
// Returns an *output.ExitError when the binary is missing or exits non-zero;
// the message carries the command's stderr when it printed any.
func (c *Command) Format(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	args := make([]string, 0, len(c.Args)+len(paths))
	args = append(args, c.Args...)
	args = append(args, paths...)

	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Dir = c.Dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return output.NewSystemErrorWithCause("formatter "+c.Name+" not found", err)
		}

		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = err.Error()
		}
		return &output.ExitError{
			Code:    output.ExitSystemError,
			Message: "formatter " + c.String() + " failed: " + errMsg,
			Cause:   err,
		}
	}
	return nil
}
