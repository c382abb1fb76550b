package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("ICONPACK_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "iconpack" {
			t.Errorf("Dir() = %q, want path ending in 'iconpack'", dir)
		}
	}
}

func TestDir_Overrides(t *testing.T) {
	tests := []struct {
		name string
		home string
		xdg  string
		want string
	}{
		{"explicit wins", "/custom/path", "/xdg/config", "/custom/path"},
		{"xdg", "", "/xdg/config", filepath.Join("/xdg/config", "iconpack")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ICONPACK_CONFIG_HOME", tt.home)
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			if got := Dir(); got != tt.want {
				t.Errorf("Dir() = %q, want %q", got, tt.want)
			}
		})
	}
}
