package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/iconpack/internal/component"
	"github.com/gorewood/iconpack/internal/formatter"
	"github.com/gorewood/iconpack/internal/naming"
	"github.com/gorewood/iconpack/internal/optimize"
	"github.com/gorewood/iconpack/internal/output"
)

// Config is everything one generator needs. Nothing is read from globals.
type Config struct {
	SourceDir string
	OutputDir string
	BarrelDir string
	// Extension is the suffix source files must end with, e.g. ".svg".
	Extension string
	// IndexExt is the extension of both index files, without the dot.
	IndexExt string
	Naming   naming.Strategy
	Optimize optimize.Options
	// Template is a built-in template name or a path to a template file.
	Template string
	// Banner is the attribution text; it is wrapped in a block comment.
	Banner    string
	KeepGoing bool
}

// Reporter receives non-fatal problems. *output.Printer satisfies it.
type Reporter interface {
	Warn(format string, args ...any)
}

type nopReporter struct{}

func (nopReporter) Warn(string, ...any) {}

// Icon is one source file and the component generated from it.
type Icon struct {
	Source string `json:"source"`
	Name   string `json:"name"`
	Path   string `json:"path"`
	// Markup is the rendered component. Empty until the icon is prepared.
	Markup string `json:"-"`
}

// Skip records an icon left out of a KeepGoing run.
type Skip struct {
	Source string `json:"source"`
	Reason string `json:"reason"`
}

// Result describes a completed run.
type Result struct {
	Icons        []Icon `json:"icons"`
	Skipped      []Skip `json:"skipped,omitempty"`
	IconsIndex   string `json:"icons_index"`
	PackageIndex string `json:"package_index"`
	// Formatted is true when the formatter ran and succeeded.
	Formatted   bool  `json:"formatted"`
	FormatError error `json:"-"`
}

// Generator runs the SVG to component pipeline.
type Generator struct {
	cfg       Config
	tmpl      *component.Template
	optimizer *optimize.Optimizer
	banner    string
	formatter formatter.Formatter
	reporter  Reporter
}

// Option configures a Generator.
type Option func(*Generator)

// WithFormatter sets the formatter run over generated files.
// The default is formatter.Nop.
func WithFormatter(f formatter.Formatter) Option {
	return func(g *Generator) {
		if f != nil {
			g.formatter = f
		}
	}
}

// WithReporter sets where warnings go. The default discards them.
func WithReporter(r Reporter) Option {
	return func(g *Generator) {
		if r != nil {
			g.reporter = r
		}
	}
}

// New validates cfg, loads the component template and builds the optimizer.
func New(cfg Config, opts ...Option) (*Generator, error) {
	if cfg.Extension == "" {
		return nil, output.NewUserError("source extension must not be empty")
	}
	cfg.IndexExt = strings.TrimPrefix(cfg.IndexExt, ".")
	if cfg.IndexExt == "" {
		return nil, output.NewUserError("index extension must not be empty")
	}
	if cfg.Naming == "" {
		cfg.Naming = naming.Hyphen
	}

	tmpl, err := component.Load(cfg.Template)
	if err != nil {
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	optimizer, err := optimize.New(cfg.Optimize)
	if err != nil {
		return nil, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}

	g := &Generator{
		cfg:       cfg,
		tmpl:      tmpl,
		optimizer: optimizer,
		banner:    component.Banner(cfg.Banner),
		formatter: formatter.Nop{},
		reporter:  nopReporter{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config {
	return g.cfg
}

// Template returns the component template in use.
func (g *Generator) Template() *component.Template {
	return g.tmpl
}

// Plan lists the sources and the component each one maps to, without
// reading or writing any icon. Names that are not valid identifiers fail
// the plan, or are returned as skips under KeepGoing. Two sources mapping
// to one name are always a conflict.
func (g *Generator) Plan() ([]Icon, []Skip, error) {
	files, err := ListSources(g.cfg.SourceDir, g.cfg.Extension)
	if err != nil {
		return nil, nil, err
	}

	var (
		icons   []Icon
		skipped []Skip
	)
	// keyed case-insensitively: Home.svelte and HOME.svelte collide on
	// case-insensitive filesystems
	seen := make(map[string]string, len(files))
	for _, file := range files {
		name := g.ComponentName(file)
		if !naming.ValidIdentifier(name) {
			msg := fmt.Sprintf("%s: %q is not a valid component name", file, name)
			if !g.cfg.KeepGoing {
				return nil, nil, output.NewUserError(msg)
			}
			skipped = append(skipped, Skip{Source: file, Reason: msg})
			continue
		}

		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return nil, nil, output.NewConflictError(
				fmt.Sprintf("%s and %s both map to component %s", prev, file, name))
		}
		seen[key] = file

		icons = append(icons, Icon{
			Source: file,
			Name:   name,
			Path:   filepath.Join(g.cfg.OutputDir, name+"."+g.tmpl.Ext),
		})
	}
	return icons, skipped, nil
}

// ComponentName derives the component identifier for a source file name.
func (g *Generator) ComponentName(file string) string {
	return g.cfg.Naming.Identifier(strings.TrimSuffix(file, g.cfg.Extension))
}

// Optimized reads a planned icon's source and returns the optimized SVG
// document.
func (g *Generator) Optimized(icon Icon) (string, error) {
	srcPath := filepath.Join(g.cfg.SourceDir, icon.Source)
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return "", output.NewSystemErrorWithCause("reading "+srcPath, err)
	}

	optimized, err := g.optimizer.Optimize(string(raw))
	if err != nil {
		return "", &output.ExitError{
			Code:    output.ExitUserError,
			Message: fmt.Sprintf("optimizing %s: %v", srcPath, err),
			Cause:   err,
		}
	}
	return optimized, nil
}

// Prepare reads, optimizes and renders one planned icon. It writes nothing.
func (g *Generator) Prepare(icon Icon) (Icon, error) {
	optimized, err := g.Optimized(icon)
	if err != nil {
		return icon, err
	}

	markup, err := g.tmpl.Render(component.NewData(icon.Name, g.banner, optimize.InnerMarkup(optimized)))
	if err != nil {
		return icon, &output.ExitError{Code: output.ExitUserError, Message: err.Error(), Cause: err}
	}
	icon.Markup = markup
	return icon, nil
}

// Run performs one full generation.
//
// With KeepGoing, failing icons are skipped; Run then returns the Result
// together with a user error naming how many were skipped, after every
// other file has been written.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if err := checkResetTarget(g.cfg.OutputDir, g.cfg.SourceDir, g.cfg.BarrelDir); err != nil {
		return nil, err
	}

	planned, skipped, err := g.Plan()
	if err != nil {
		return nil, err
	}
	for _, s := range skipped {
		g.reporter.Warn("skipping %s", s.Reason)
	}

	if err := ResetDir(g.cfg.OutputDir); err != nil {
		return nil, err
	}

	result := &Result{Icons: make([]Icon, 0, len(planned)), Skipped: skipped}
	for _, icon := range planned {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		prepared, err := g.write(icon)
		if err != nil {
			if !g.cfg.KeepGoing {
				return nil, err
			}
			g.reporter.Warn("skipping %s: %v", icon.Source, err)
			result.Skipped = append(result.Skipped, Skip{Source: icon.Source, Reason: err.Error()})
			continue
		}
		result.Icons = append(result.Icons, prepared)
	}

	if err := g.writeIndexes(result); err != nil {
		return nil, err
	}

	g.format(ctx, result)

	if n := len(result.Skipped); n > 0 {
		return result, output.NewUserError(fmt.Sprintf("%d of %d icons skipped", n, n+len(result.Icons)))
	}
	return result, nil
}

func (g *Generator) write(icon Icon) (Icon, error) {
	prepared, err := g.Prepare(icon)
	if err != nil {
		return icon, err
	}
	if err := atomicWrite(prepared.Path, []byte(prepared.Markup)); err != nil {
		return icon, output.NewSystemErrorWithCause("writing "+prepared.Path, err)
	}
	return prepared, nil
}

func (g *Generator) writeIndexes(result *Result) error {
	lines := make([]string, 0, len(result.Icons))
	for _, icon := range result.Icons {
		lines = append(lines, ExportLine(icon.Name, g.tmpl.Ext))
	}

	result.IconsIndex = filepath.Join(g.cfg.OutputDir, "index."+g.cfg.IndexExt)
	if err := atomicWrite(result.IconsIndex, []byte(IconsIndex(g.banner, lines))); err != nil {
		return output.NewSystemErrorWithCause("writing "+result.IconsIndex, err)
	}

	barrel, err := filepath.Abs(g.cfg.BarrelDir)
	if err != nil {
		return output.NewSystemErrorWithCause("resolving "+g.cfg.BarrelDir, err)
	}
	out, err := filepath.Abs(g.cfg.OutputDir)
	if err != nil {
		return output.NewSystemErrorWithCause("resolving "+g.cfg.OutputDir, err)
	}
	rel, err := RelativeSpecifier(barrel, out)
	if err != nil {
		return output.NewSystemErrorWithCause("relating "+g.cfg.OutputDir+" to "+g.cfg.BarrelDir, err)
	}

	if err := os.MkdirAll(g.cfg.BarrelDir, 0o755); err != nil {
		return output.NewSystemErrorWithCause("creating "+g.cfg.BarrelDir, err)
	}
	result.PackageIndex = filepath.Join(g.cfg.BarrelDir, "index."+g.cfg.IndexExt)
	if err := atomicWrite(result.PackageIndex, []byte(PackageIndex(g.banner, rel))); err != nil {
		return output.NewSystemErrorWithCause("writing "+result.PackageIndex, err)
	}
	return nil
}

// format runs the formatter over the components and the icons index.
// A failure is reported and recorded, never returned.
func (g *Generator) format(ctx context.Context, result *Result) {
	if _, ok := g.formatter.(formatter.Nop); ok {
		return
	}

	paths := make([]string, 0, len(result.Icons)+1)
	for _, icon := range result.Icons {
		paths = append(paths, icon.Path)
	}
	paths = append(paths, result.IconsIndex)

	if err := g.formatter.Format(ctx, paths); err != nil {
		result.FormatError = err
		g.reporter.Warn("formatting skipped, files left unformatted: %v", err)
		return
	}
	result.Formatted = true
}
