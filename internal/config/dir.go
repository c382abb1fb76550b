// Package config resolves iconpack settings from defaults, iconpack.yaml,
// ICONPACK_* environment variables and command-line flags.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the global iconpack configuration directory.
//
// Resolution:
//   - $ICONPACK_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/iconpack if set (any platform)
//   - %AppData%/iconpack on Windows
//   - ~/.config/iconpack elsewhere
func Dir() string {
	if dir := os.Getenv("ICONPACK_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "iconpack")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "iconpack")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "iconpack")
}
