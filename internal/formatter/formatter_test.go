package formatter

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gorewood/iconpack/internal/output"
)

func TestNop(t *testing.T) {
	if err := (Nop{}).Format(context.Background(), []string{"a.svelte"}); err != nil {
		t.Errorf("Nop.Format() error = %v", err)
	}
}

func TestCommand_String(t *testing.T) {
	if got := Default().String(); got != "pnpm prettier --write" {
		t.Errorf("String() = %q", got)
	}
}

func TestCommand_NoPathsSkipsRun(t *testing.T) {
	cmd := NewCommand("iconpack-definitely-missing-formatter")
	if err := cmd.Format(context.Background(), nil); err != nil {
		t.Errorf("Format(nil) error = %v, want nil", err)
	}
}

func TestCommand_MissingBinary(t *testing.T) {
	cmd := NewCommand("iconpack-definitely-missing-formatter", "--write")

	err := cmd.Format(context.Background(), []string{"Home.svelte"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}

	var exitErr *output.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error type = %T, want *output.ExitError", err)
	}
	if exitErr.Code != output.ExitSystemError {
		t.Errorf("Code = %d, want %d", exitErr.Code, output.ExitSystemError)
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want 'not found'", err.Error())
	}
}

func requireShell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell-based formatter tests need sh")
	}
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestCommand_PassesPathsAfterArgs(t *testing.T) {
	sh := requireShell(t)
	dir := t.TempDir()
	record := filepath.Join(dir, "args.txt")

	// sh -c 'script' argv0 arg1 arg2...
	cmd := NewCommand(sh, "-c", `printf '%s\n' "$@" > "$0"`, record)
	if err := cmd.Format(context.Background(), []string{"icons/Home.svelte", "icons/index.ts"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	data, err := os.ReadFile(record)
	if err != nil {
		t.Fatalf("read record: %v", err)
	}
	if got := string(data); got != "icons/Home.svelte\nicons/index.ts\n" {
		t.Errorf("formatter received %q", got)
	}
}

func TestCommand_NonZeroExitIncludesStderr(t *testing.T) {
	sh := requireShell(t)
	cmd := NewCommand(sh, "-c", `echo "[error] bad syntax" >&2; exit 2`)

	err := cmd.Format(context.Background(), []string{"Home.svelte"})
	if err == nil {
		t.Fatal("expected error for non-zero exit")
	}
	if !strings.Contains(err.Error(), "[error] bad syntax") {
		t.Errorf("error = %q, want stderr text", err.Error())
	}
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d", output.GetExitCode(err))
	}
}

func TestCommand_Dir(t *testing.T) {
	sh := requireShell(t)
	dir := t.TempDir()

	cmd := NewCommand(sh, "-c", `pwd > out.txt`)
	cmd.Dir = dir
	if err := cmd.Format(context.Background(), []string{"x"}); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.txt")); err != nil {
		t.Errorf("command did not run in Dir: %v", err)
	}
}
