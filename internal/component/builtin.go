package component

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed templates/*.tmpl
var builtinFS embed.FS

const templateSuffix = ".tmpl"

// loadBuiltin loads a built-in template by name.
func loadBuiltin(name string) (*Template, error) {
	file := path.Join("templates", name+templateSuffix)
	data, err := builtinFS.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("template %q not found (built-in: %s)", name, strings.Join(Builtins(), ", "))
	}
	return parseTemplate(string(data), "built-in")
}

// Builtins returns the names of the embedded templates, sorted.
func Builtins() []string {
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), templateSuffix))
	}
	sort.Strings(names)
	return names
}
