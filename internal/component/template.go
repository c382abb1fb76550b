package component

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Fixed parts of every generated component.
const (
	Namespace   = "http://www.w3.org/2000/svg"
	ViewBox     = "0 0 24 24"
	DefaultSize = "24"
)

// Template is a parsed component template.
type Template struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Ext is the file extension of generated components, without the dot.
	Ext string `yaml:"ext"`

	// Source is "built-in" or the file the template was read from.
	Source string `yaml:"-"`

	tmpl *template.Template
}

// Data is the input to a component template.
type Data struct {
	Name        string
	Banner      string
	Inner       string
	Namespace   string
	ViewBox     string
	DefaultSize string
}

// NewData returns Data for one icon with the fixed namespace, view box
// and default size filled in.
func NewData(name, banner, inner string) Data {
	return Data{
		Name:        name,
		Banner:      banner,
		Inner:       inner,
		Namespace:   Namespace,
		ViewBox:     ViewBox,
		DefaultSize: DefaultSize,
	}
}

// Load finds and parses a template by built-in name or file path.
func Load(nameOrPath string) (*Template, error) {
	if nameOrPath == "" {
		nameOrPath = "svelte"
	}
	if isPath(nameOrPath) {
		data, err := os.ReadFile(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", nameOrPath, err)
		}
		return parseTemplate(string(data), nameOrPath)
	}
	return loadBuiltin(nameOrPath)
}

func isPath(name string) bool {
	return strings.ContainsRune(name, '/') ||
		strings.ContainsRune(name, filepath.Separator) ||
		strings.HasSuffix(name, templateSuffix)
}

// Render executes the template for one icon. The result is trimmed and
// ends with a single newline.
func (t *Template) Render(data Data) (string, error) {
	var buf bytes.Buffer
	if err := t.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s template for %s: %w", t.Name, data.Name, err)
	}
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// parseTemplate parses raw content with YAML frontmatter.
func parseTemplate(raw, source string) (*Template, error) {
	frontmatter, content := splitFrontmatter(raw)

	tmpl := &Template{Source: source}
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), tmpl); err != nil {
			return nil, fmt.Errorf("invalid frontmatter in %s: %w", source, err)
		}
	}
	if tmpl.Name == "" {
		tmpl.Name = strings.TrimSuffix(filepath.Base(source), templateSuffix)
	}
	tmpl.Ext = strings.TrimPrefix(tmpl.Ext, ".")
	if tmpl.Ext == "" {
		return nil, errors.New("template " + tmpl.Name + ": frontmatter must set ext")
	}

	parsed, err := template.New(tmpl.Name).Option("missingkey=error").Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", tmpl.Name, err)
	}
	tmpl.tmpl = parsed
	return tmpl, nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	before, after, ok := strings.Cut(raw[3:], "\n---")
	if !ok {
		return "", raw
	}
	return strings.TrimSpace(before), strings.TrimSpace(after)
}

// Banner wraps text in a block comment, one " * " line per input line.
// Empty text yields an empty banner.
func Banner(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString("/**\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * " + line + "\n")
	}
	b.WriteString(" */")
	return b.String()
}
