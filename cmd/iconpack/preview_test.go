package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/iconpack/internal/output"
)

func TestPreviewCommand(t *testing.T) {
	l := newIconLayout(t, "arrow-left.svg", "home.svg")
	file := filepath.Join(t.TempDir(), "sheet.png")

	out, err := executeCLI(t, l.args("preview", "--json", "--file", file, "--size", "16", "--padding", "4")...)
	if err != nil {
		t.Fatalf("preview error = %v\n%s", err, out)
	}

	result := decodeJSON(t, out)
	// two icons on one row of 16px cells padded by 4 on each side
	if result["width"] != float64(48) || result["height"] != float64(24) {
		t.Errorf("size = %vx%v, want 48x24", result["width"], result["height"])
	}

	f, err := os.Open(file)
	if err != nil {
		t.Fatalf("opening sheet: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("sheet is not a png: %v", err)
	}
	if cfg.Width != 48 || cfg.Height != 24 {
		t.Errorf("png = %dx%d, want 48x24", cfg.Width, cfg.Height)
	}

	if _, err := os.Stat(l.out); !os.IsNotExist(err) {
		t.Error("preview should not touch the output directory")
	}
}

func TestPreviewCommand_InvalidFlags(t *testing.T) {
	l := newIconLayout(t, "home.svg")

	tests := []struct {
		name string
		args []string
	}{
		{"zero size", []string{"--size", "0"}},
		{"zero columns", []string{"--columns", "0"}},
		{"bad paint", []string{"--paint", "not-a-color"}},
		{"bad background", []string{"--background", "#zz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(l.args("preview", "--file", filepath.Join(t.TempDir(), "p.png")), tt.args...)
			_, err := executeCLI(t, args...)
			if code := output.GetExitCode(err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d (%v)", code, output.ExitUserError, err)
			}
		})
	}
}
