package generator

import (
	"path/filepath"
	"strings"
)

// ExportLine is the icons index entry for one component:
//
//	export { default as ArrowLeft } from './ArrowLeft.svelte';
func ExportLine(name, ext string) string {
	return "export { default as " + name + " } from './" + name + "." + ext + "';"
}

// IconsIndex renders the index listing every component, one export per line.
func IconsIndex(banner string, lines []string) string {
	return withBanner(banner, strings.Join(lines, "\n")+"\n")
}

// PackageIndex renders the barrel module that re-exports the icons index
// found at rel, a module specifier relative to the barrel directory.
func PackageIndex(banner, rel string) string {
	return withBanner(banner, `export * from "`+rel+`";`+"\n")
}

func withBanner(banner, body string) string {
	if banner == "" {
		return body
	}
	return banner + "\n\n" + body
}

// RelativeSpecifier returns the import path of outDir as seen from
// barrelDir, slash-separated and prefixed with ./ when it stays below
// barrelDir (src/lib/icon-pack, src/lib/icon-pack/icons -> ./icons).
func RelativeSpecifier(barrelDir, outDir string) (string, error) {
	rel, err := filepath.Rel(barrelDir, outDir)
	if err != nil {
		return "", err
	}
	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return rel, nil
	}
	return "./" + rel, nil
}
