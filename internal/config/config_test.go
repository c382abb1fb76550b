package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

// unsetEnv clears key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	loaded, err := Load(LoadOptions{SearchDirs: []string{t.TempDir()}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.File != "" {
		t.Errorf("File = %q, want empty", loaded.File)
	}
	if !reflect.DeepEqual(loaded.Config, Defaults()) {
		t.Errorf("Config = %+v\nwant %+v", loaded.Config, Defaults())
	}
}

func TestLoad_SearchDirFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "iconpack.yaml"), `
source_dir: assets/svg
naming: camel
optimize:
  multipass: false
  remove_attrs: [style, class]
formatter:
  enabled: false
`)

	loaded, err := Load(LoadOptions{SearchDirs: []string{dir}})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	cfg := loaded.Config

	if loaded.File == "" {
		t.Error("File should name the config that was read")
	}
	if cfg.SourceDir != "assets/svg" {
		t.Errorf("SourceDir = %q", cfg.SourceDir)
	}
	if cfg.Naming != "camel" {
		t.Errorf("Naming = %q", cfg.Naming)
	}
	if cfg.Optimize.Multipass {
		t.Error("Optimize.Multipass should be false")
	}
	if !reflect.DeepEqual(cfg.Optimize.RemoveAttrs, []string{"style", "class"}) {
		t.Errorf("RemoveAttrs = %v", cfg.Optimize.RemoveAttrs)
	}
	if cfg.Formatter.Enabled {
		t.Error("Formatter.Enabled should be false")
	}
	// untouched keys keep defaults
	if cfg.OutputDir != Defaults().OutputDir {
		t.Errorf("OutputDir = %q, want default", cfg.OutputDir)
	}
	if !cfg.Optimize.CurrentColor {
		t.Error("Optimize.CurrentColor should keep its default")
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "nope.yaml")})
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconpack.yaml")
	writeFile(t, path, "source_dir: [unclosed\n")

	if _, err := Load(LoadOptions{File: path}); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeFile(t, path, "source_dir: from-file\nindex_ext: js\n")

	t.Setenv("ICONPACK_SOURCE_DIR", "from-env")
	t.Setenv("ICONPACK_OPTIMIZE_MAX_PASSES", "3")
	t.Setenv("ICONPACK_KEEP_GOING", "true")

	loaded, err := Load(LoadOptions{File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.SourceDir != "from-env" {
		t.Errorf("SourceDir = %q, want from-env", loaded.SourceDir)
	}
	if loaded.IndexExt != "js" {
		t.Errorf("IndexExt = %q, want js", loaded.IndexExt)
	}
	if loaded.Optimize.MaxPasses != 3 {
		t.Errorf("MaxPasses = %d, want 3", loaded.Optimize.MaxPasses)
	}
	if !loaded.KeepGoing {
		t.Error("KeepGoing should be true from env")
	}
}

func TestLoad_ChangedFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ICONPACK_SOURCE_DIR", "from-env")
	t.Setenv("ICONPACK_OUTPUT_DIR", "out-from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("source", "", "")
	flags.String("out", "flag-default", "")
	if err := flags.Parse([]string{"--source", "from-flag"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	loaded, err := Load(LoadOptions{
		SearchDirs: []string{t.TempDir()},
		Flags:      flags,
		FlagKeys:   map[string]string{"source_dir": "source", "output_dir": "out", "barrel_dir": "barrel"},
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.SourceDir != "from-flag" {
		t.Errorf("SourceDir = %q, want from-flag", loaded.SourceDir)
	}
	// --out was not set, so env still wins over the flag default
	if loaded.OutputDir != "out-from-env" {
		t.Errorf("OutputDir = %q, want out-from-env", loaded.OutputDir)
	}
	if loaded.BarrelDir != Defaults().BarrelDir {
		t.Errorf("BarrelDir = %q, want default", loaded.BarrelDir)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"empty source", func(c *Config) { c.SourceDir = " " }, "source_dir"},
		{"empty extension", func(c *Config) { c.Extension = "" }, "extension"},
		{"dot index ext", func(c *Config) { c.IndexExt = "." }, "index_ext"},
		{"formatter without command", func(c *Config) { c.Formatter.Command = "" }, "formatter.command"},
		{"disabled formatter without command", func(c *Config) {
			c.Formatter.Enabled = false
			c.Formatter.Command = ""
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "iconpack.yaml")
	if err := WriteDefault(path, false); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"# iconpack configuration.",
		"# Directory holding the raw SVG files.",
		"source_dir: src/lib/icon-pack/svg",
		"# Repeat optimization until the markup stops shrinking.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("config missing %q:\n%s", want, text)
		}
	}

	loaded, err := Load(LoadOptions{File: path})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(loaded.Config, Defaults()) {
		t.Errorf("round trip = %+v\nwant %+v", loaded.Config, Defaults())
	}
}

func TestWriteDefault_Exists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "iconpack.yaml")
	writeFile(t, path, "naming: camel\n")

	err := WriteDefault(path, false)
	if !errors.Is(err, ErrExists) {
		t.Fatalf("WriteDefault() error = %v, want ErrExists", err)
	}

	if err := WriteDefault(path, true); err != nil {
		t.Fatalf("WriteDefault(force) error = %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "naming: hyphen") {
		t.Error("force should overwrite the existing file")
	}
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ".env.local"), "ICONPACK_TEST_NAMING=camel\n")
	writeFile(t, filepath.Join(dir, ".env"), "ICONPACK_TEST_NAMING=hyphen\nICONPACK_TEST_TEMPLATE=svelte5\n")

	unsetEnv(t, "ICONPACK_TEST_NAMING")
	unsetEnv(t, "ICONPACK_TEST_TEMPLATE")
	t.Setenv("ICONPACK_TEST_KEEP", "shell")

	if err := LoadEnvFiles(dir); err != nil {
		t.Fatalf("LoadEnvFiles() error = %v", err)
	}

	if got := os.Getenv("ICONPACK_TEST_NAMING"); got != "camel" {
		t.Errorf("ICONPACK_TEST_NAMING = %q, want camel (.env.local wins)", got)
	}
	if got := os.Getenv("ICONPACK_TEST_TEMPLATE"); got != "svelte5" {
		t.Errorf("ICONPACK_TEST_TEMPLATE = %q, want svelte5", got)
	}
	if got := os.Getenv("ICONPACK_TEST_KEEP"); got != "shell" {
		t.Errorf("ICONPACK_TEST_KEEP = %q, existing env should win", got)
	}
}

func TestLoadEnvFiles_NoFiles(t *testing.T) {
	if err := LoadEnvFiles(t.TempDir()); err != nil {
		t.Errorf("LoadEnvFiles() error = %v, want nil", err)
	}
}
