package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the base name searched for in the working directory and Dir().
const FileName = "iconpack"

// EnvPrefix prefixes every environment override, e.g. ICONPACK_SOURCE_DIR.
const EnvPrefix = "ICONPACK"

// DefaultBanner is the attribution text placed at the top of generated files.
const DefaultBanner = "Icon components generated by iconpack from SVG sources.\n" +
	"Do not edit by hand, changes are overwritten on the next run."

// ErrExists is returned by WriteDefault when the target exists and force is off.
var ErrExists = errors.New("config file already exists")

// Config is the resolved iconpack configuration.
type Config struct {
	SourceDir string `mapstructure:"source_dir" yaml:"source_dir"`
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`
	BarrelDir string `mapstructure:"barrel_dir" yaml:"barrel_dir"`
	Extension string `mapstructure:"extension" yaml:"extension"`
	Template  string `mapstructure:"template" yaml:"template"`
	IndexExt  string `mapstructure:"index_ext" yaml:"index_ext"`
	Naming    string `mapstructure:"naming" yaml:"naming"`
	Banner    string `mapstructure:"banner" yaml:"banner"`
	KeepGoing bool   `mapstructure:"keep_going" yaml:"keep_going"`

	Optimize  Optimize  `mapstructure:"optimize" yaml:"optimize"`
	Formatter Formatter `mapstructure:"formatter" yaml:"formatter"`
}

// Optimize holds the SVG optimization settings.
type Optimize struct {
	Multipass            bool     `mapstructure:"multipass" yaml:"multipass"`
	MaxPasses            int      `mapstructure:"max_passes" yaml:"max_passes"`
	CurrentColor         bool     `mapstructure:"current_color" yaml:"current_color"`
	RemoveAttrs          []string `mapstructure:"remove_attrs" yaml:"remove_attrs"`
	PreserveCurrentColor bool     `mapstructure:"preserve_current_color" yaml:"preserve_current_color"`
}

// Formatter holds the external formatter invocation.
type Formatter struct {
	Enabled bool     `mapstructure:"enabled" yaml:"enabled"`
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args"`
}

// Defaults returns the built-in configuration, matching the layout
// src/lib/icon-pack/{svg,icons,index.ts}.
func Defaults() Config {
	return Config{
		SourceDir: "src/lib/icon-pack/svg",
		OutputDir: "src/lib/icon-pack/icons",
		BarrelDir: "src/lib/icon-pack",
		Extension: ".svg",
		Template:  "svelte",
		IndexExt:  "ts",
		Naming:    "hyphen",
		Banner:    DefaultBanner,
		Optimize: Optimize{
			Multipass:            true,
			MaxPasses:            10,
			CurrentColor:         true,
			RemoveAttrs:          []string{"style"},
			PreserveCurrentColor: true,
		},
		Formatter: Formatter{
			Enabled: true,
			Command: "pnpm",
			Args:    []string{"prettier", "--write"},
		},
	}
}

// Validate reports settings that cannot drive a generation run.
func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.SourceDir) == "" {
		problems = append(problems, "source_dir is empty")
	}
	if strings.TrimSpace(c.OutputDir) == "" {
		problems = append(problems, "output_dir is empty")
	}
	if strings.TrimSpace(c.BarrelDir) == "" {
		problems = append(problems, "barrel_dir is empty")
	}
	if c.Extension == "" {
		problems = append(problems, "extension is empty")
	}
	if strings.Trim(c.IndexExt, ".") == "" {
		problems = append(problems, "index_ext is empty")
	}
	if c.Formatter.Enabled && strings.TrimSpace(c.Formatter.Command) == "" {
		problems = append(problems, "formatter.command is empty while formatter.enabled is true")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// File is an explicit config file. It must exist when set.
	File string
	// SearchDirs are searched in order for iconpack.yaml when File is empty.
	// Nil means the working directory, then Dir().
	SearchDirs []string
	// Flags are bound by key; only flags the user changed override.
	Flags *pflag.FlagSet
	// FlagKeys maps config keys to flag names, e.g. "source_dir" -> "source".
	FlagKeys map[string]string
}

// Loaded is a resolved Config plus the file it was read from, if any.
type Loaded struct {
	Config
	File string
}

// Load resolves the configuration: defaults, then the config file, then
// ICONPACK_* environment variables, then changed flags.
func Load(opts LoadOptions) (*Loaded, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		dirs := opts.SearchDirs
		if dirs == nil {
			dirs = []string{"."}
			if d := Dir(); d != "" {
				dirs = append(dirs, d)
			}
		}
		for _, d := range dirs {
			v.AddConfigPath(d)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range opts.FlagKeys {
			flag := opts.Flags.Lookup(name)
			if flag == nil {
				continue
			}
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("binding flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &Loaded{Config: cfg, File: v.ConfigFileUsed()}, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("source_dir", d.SourceDir)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("barrel_dir", d.BarrelDir)
	v.SetDefault("extension", d.Extension)
	v.SetDefault("template", d.Template)
	v.SetDefault("index_ext", d.IndexExt)
	v.SetDefault("naming", d.Naming)
	v.SetDefault("banner", d.Banner)
	v.SetDefault("keep_going", d.KeepGoing)
	v.SetDefault("optimize.multipass", d.Optimize.Multipass)
	v.SetDefault("optimize.max_passes", d.Optimize.MaxPasses)
	v.SetDefault("optimize.current_color", d.Optimize.CurrentColor)
	v.SetDefault("optimize.remove_attrs", d.Optimize.RemoveAttrs)
	v.SetDefault("optimize.preserve_current_color", d.Optimize.PreserveCurrentColor)
	v.SetDefault("formatter.enabled", d.Formatter.Enabled)
	v.SetDefault("formatter.command", d.Formatter.Command)
	v.SetDefault("formatter.args", d.Formatter.Args)
}

// LoadEnvFiles loads .env.local then .env from dir. Variables already in the
// environment are left alone, so .env.local wins over .env.
// Missing files are skipped.
func LoadEnvFiles(dir string) error {
	for _, name := range []string{".env.local", ".env"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := gotenv.Load(path); err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

var keyComments = map[string]string{
	"source_dir":                      "Directory holding the raw SVG files.",
	"output_dir":                      "Generated components directory. Wiped and rebuilt on every run.",
	"barrel_dir":                      "Directory of the package index that re-exports output_dir.",
	"extension":                       "Suffix a source file must end with (case-sensitive).",
	"template":                        "Component template: svelte, svelte5, or a path to a .tmpl file.",
	"index_ext":                       "Extension of both index files.",
	"naming":                          "Component naming: hyphen (arrow-left -> ArrowLeft) or camel.",
	"banner":                          "Attribution comment at the top of generated files.",
	"keep_going":                      "Skip icons that fail instead of aborting the run.",
	"optimize.multipass":              "Repeat optimization until the markup stops shrinking.",
	"optimize.max_passes":             "Upper bound on multipass repetitions.",
	"optimize.current_color":          "Rewrite literal fill/stroke colors to currentColor.",
	"optimize.remove_attrs":           "Attribute name patterns (regular expressions) to strip.",
	"optimize.preserve_current_color": "Keep a matching attribute when its value is currentColor.",
	"formatter.enabled":               "Run the formatter over generated files. Failures only warn.",
	"formatter.command":               "Formatter executable.",
	"formatter.args":                  "Arguments placed before the generated file paths.",
}

// WriteDefault writes a commented iconpack.yaml holding Defaults() to path.
// Returns ErrExists if path exists and force is false.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrExists)
		}
	}

	data, err := DefaultYAML()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// DefaultYAML renders Defaults() as a commented YAML document.
func DefaultYAML() ([]byte, error) {
	var node yaml.Node
	if err := node.Encode(Defaults()); err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	annotate(&node, "")

	var buf bytes.Buffer
	buf.WriteString("# iconpack configuration.\n")
	buf.WriteString("# ICONPACK_* environment variables and command-line flags override these values.\n\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return buf.Bytes(), nil
}

func annotate(n *yaml.Node, prefix string) {
	if n.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		path := key.Value
		if prefix != "" {
			path = prefix + "." + key.Value
		}
		if c, ok := keyComments[path]; ok {
			key.HeadComment = c
		}
		annotate(val, path)
	}
}
