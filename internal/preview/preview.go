// Package preview rasterizes optimized icons and lays them out on a PNG
// contact sheet, so a whole icon set can be checked at a glance.
package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// Options controls the contact sheet layout.
type Options struct {
	// Size is the edge length of one rendered icon in pixels.
	Size int
	// Columns is the number of icons per row.
	Columns int
	// Padding surrounds every icon cell.
	Padding int
	// Paint replaces currentColor before rendering, e.g. "#1f2937".
	Paint      string
	Background color.Color
}

// DefaultOptions returns a 48px, 8-column sheet with black icons on white.
func DefaultOptions() Options {
	return Options{
		Size:       48,
		Columns:    8,
		Padding:    8,
		Paint:      "#000000",
		Background: color.White,
	}
}

// ParseColor parses an SVG color value such as "#1f2937", "rgb(0,0,0)"
// or "white".
func ParseColor(value string) (color.Color, error) {
	c, err := oksvg.ParseSVGColor(value)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", value, err)
	}
	if c == nil {
		return nil, fmt.Errorf("invalid color %q", value)
	}
	return c, nil
}

// Rasterize renders SVG markup into a size x size image, substituting
// paint for currentColor.
func Rasterize(markup string, size int, paint string) (*image.NRGBA, error) {
	if size <= 0 {
		return nil, errors.New("preview size must be positive")
	}

	icon, err := oksvg.ReadReplacingCurrentColor(strings.NewReader(markup), paint, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("parsing svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	dasher := rasterx.NewDasher(size, size, rasterx.NewScannerGV(size, size, img, img.Bounds()))
	icon.Draw(dasher, 1)

	return imaging.Clone(img), nil
}

// Sheet composes tiles into a grid. Tiles are drawn at their own size in
// the top-left of each cell; a sheet with no tiles is one empty cell.
func Sheet(tiles []image.Image, opts Options) *image.NRGBA {
	cols := opts.Columns
	if cols <= 0 || cols > len(tiles) {
		cols = len(tiles)
	}
	if cols == 0 {
		cols = 1
	}
	rows := (len(tiles) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}

	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	cell := opts.Size + 2*opts.Padding
	sheet := imaging.New(cols*cell, rows*cell, bg)
	for i, tile := range tiles {
		x := (i%cols)*cell + opts.Padding
		y := (i/cols)*cell + opts.Padding
		r := image.Rect(x, y, x+opts.Size, y+opts.Size)
		draw.Draw(sheet, r, tile, tile.Bounds().Min, draw.Over)
	}
	return sheet
}

// Build rasterizes every markup and composes the sheet.
func Build(markups []string, opts Options) (*image.NRGBA, error) {
	tiles := make([]image.Image, 0, len(markups))
	for i, m := range markups {
		tile, err := Rasterize(m, opts.Size, opts.Paint)
		if err != nil {
			return nil, fmt.Errorf("icon %d: %w", i, err)
		}
		tiles = append(tiles, tile)
	}
	return Sheet(tiles, opts), nil
}

// Save writes img to path, creating parent directories. The format follows
// the extension (.png, .jpg, .gif, .bmp, .tif).
func Save(img image.Image, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
