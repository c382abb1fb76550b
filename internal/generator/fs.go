package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorewood/iconpack/internal/output"
)

// ResetDir removes path and everything under it, then recreates it empty.
func ResetDir(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return output.NewSystemErrorWithCause("removing "+path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return output.NewSystemErrorWithCause("creating "+path, err)
	}
	return nil
}

// ListSources returns the names of the files directly inside dir whose
// name ends with ext, in lexical order. Subdirectories are ignored.
func ListSources(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("reading source directory "+dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// checkResetTarget refuses output directories whose removal would take
// sources or unrelated files with it.
func checkResetTarget(outDir, sourceDir, barrelDir string) error {
	out, err := filepath.Abs(outDir)
	if err != nil {
		return output.NewSystemErrorWithCause("resolving "+outDir, err)
	}
	src, err := filepath.Abs(sourceDir)
	if err != nil {
		return output.NewSystemErrorWithCause("resolving "+sourceDir, err)
	}
	barrel, err := filepath.Abs(barrelDir)
	if err != nil {
		return output.NewSystemErrorWithCause("resolving "+barrelDir, err)
	}

	switch {
	case filepath.Dir(out) == out:
		return output.NewUserError("refusing to reset filesystem root " + out)
	case within(out, src):
		return output.NewUserError(fmt.Sprintf("output directory %s contains the source directory %s", outDir, sourceDir))
	case out == barrel:
		return output.NewUserError("output directory and barrel directory must differ: " + outDir)
	case within(out, barrel):
		return output.NewUserError(fmt.Sprintf("output directory %s contains the barrel directory %s", outDir, barrelDir))
	}
	return nil
}

// within reports whether path is dir or lies below it.
func within(dir, path string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// atomicWrite writes data to a temp file in the target directory and renames
// it over path, so readers never see a half-written file.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Chmod(0o644); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
