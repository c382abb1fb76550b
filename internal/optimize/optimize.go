package optimize

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/beevik/etree"
)

const (
	// CurrentColor is the paint keyword that resolves to the inherited text color.
	CurrentColor = "currentColor"

	// DefaultMaxPasses bounds multipass optimization.
	DefaultMaxPasses = 10
)

// ErrNotSVG is returned when the markup's root element is not <svg>.
var ErrNotSVG = errors.New("root element is not <svg>")

// editorSpaces are namespace prefixes of design-tool data (sodipodi:namedview,
// inkscape:label). Elements and attributes in them are dropped.
var editorSpaces = map[string]bool{
	"sodipodi": true,
	"inkscape": true,
	"sketch":   true,
}

// textElements keep whitespace-only character data.
var textElements = map[string]bool{
	"text":     true,
	"tspan":    true,
	"textPath": true,
	"style":    true,
}

// colorAttrs are the presentation attributes that carry a paint or color.
var colorAttrs = map[string]bool{
	"fill":           true,
	"stroke":         true,
	"stop-color":     true,
	"flood-color":    true,
	"lighting-color": true,
	"color":          true,
}

// Options controls which rewrites an Optimizer applies.
type Options struct {
	Multipass            bool
	MaxPasses            int
	CurrentColor         bool
	RemoveAttrs          []string
	PreserveCurrentColor bool
}

// DefaultOptions returns the options used for icon generation:
// multipass, currentColor conversion, and style removal that keeps
// currentColor values.
func DefaultOptions() Options {
	return Options{
		Multipass:            true,
		MaxPasses:            DefaultMaxPasses,
		CurrentColor:         true,
		RemoveAttrs:          []string{"style"},
		PreserveCurrentColor: true,
	}
}

// Optimizer applies the configured passes to SVG documents.
// It holds no per-document state and may be reused.
type Optimizer struct {
	opts   Options
	remove []*regexp.Regexp
}

// New validates opts and returns an Optimizer.
// Each RemoveAttrs entry is a regular expression matched against the whole
// attribute name.
func New(opts Options) (*Optimizer, error) {
	if opts.MaxPasses <= 0 {
		opts.MaxPasses = DefaultMaxPasses
	}

	remove := make([]*regexp.Regexp, 0, len(opts.RemoveAttrs))
	for _, pattern := range opts.RemoveAttrs {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err != nil {
			return nil, fmt.Errorf("invalid remove_attrs pattern %q: %w", pattern, err)
		}
		remove = append(remove, re)
	}

	return &Optimizer{opts: opts, remove: remove}, nil
}

// Optimize returns the rewritten, minified form of raw, starting at the
// <svg> root with no prolog.
func (o *Optimizer) Optimize(raw string) (string, error) {
	out := raw
	prevLen := -1
	for pass := 0; pass < o.opts.MaxPasses; pass++ {
		next, err := o.pass(out)
		if err != nil {
			return "", err
		}
		out = next
		if !o.opts.Multipass || (prevLen >= 0 && len(out) >= prevLen) {
			break
		}
		prevLen = len(out)
	}
	return out, nil
}

// pass runs one parse, rewrite, strip, serialize cycle.
func (o *Optimizer) pass(markup string) (string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(markup); err != nil {
		return "", fmt.Errorf("parsing svg: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return "", ErrNotSVG
	}
	o.rewrite(root, false)
	strip(root)

	// Re-root into a fresh document so the XML declaration, doctype and
	// top-level comments are not carried into the output.
	clean := etree.NewDocument()
	clean.SetRoot(root)
	out, err := clean.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing svg: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// strip removes comments, processing instructions, directives, editor
// metadata and whitespace-only text between elements from e's subtree.
func strip(e *etree.Element) {
	kept := e.Attr[:0]
	for _, attr := range e.Attr {
		if editorSpaces[attr.Space] || (attr.Space == "xmlns" && editorSpaces[attr.Key]) {
			continue
		}
		kept = append(kept, attr)
	}
	e.Attr = kept

	for i := len(e.Child) - 1; i >= 0; i-- {
		switch t := e.Child[i].(type) {
		case *etree.Element:
			if t.Tag == "metadata" || editorSpaces[t.Space] {
				e.RemoveChildAt(i)
				continue
			}
			strip(t)
		case *etree.CharData:
			if t.IsWhitespace() && !textElements[e.Tag] {
				e.RemoveChildAt(i)
			}
		case *etree.Comment, *etree.ProcInst, *etree.Directive:
			e.RemoveChildAt(i)
		}
	}
}

// rewrite applies the attribute passes to e and its descendants.
func (o *Optimizer) rewrite(e *etree.Element, inMask bool) {
	if e.Tag == "mask" {
		inMask = true
	}

	if o.opts.CurrentColor && !inMask {
		for i := range e.Attr {
			attr := &e.Attr[i]
			if attr.Space == "" && colorAttrs[attr.Key] && convertible(attr.Value) {
				attr.Value = CurrentColor
			}
		}
	}

	if len(o.remove) > 0 {
		kept := e.Attr[:0]
		for _, attr := range e.Attr {
			if o.removable(attr) {
				continue
			}
			kept = append(kept, attr)
		}
		e.Attr = kept
	}

	for _, child := range e.ChildElements() {
		o.rewrite(child, inMask)
	}
}

func (o *Optimizer) removable(attr etree.Attr) bool {
	if o.opts.PreserveCurrentColor && strings.EqualFold(strings.TrimSpace(attr.Value), CurrentColor) {
		return false
	}
	for _, re := range o.remove {
		if re.MatchString(attr.Key) {
			return true
		}
	}
	return false
}

// convertible reports whether a color attribute value should become currentColor.
func convertible(value string) bool {
	v := strings.TrimSpace(value)
	switch {
	case v == "":
		return false
	case strings.EqualFold(v, "none"), strings.EqualFold(v, CurrentColor):
		return false
	case strings.HasPrefix(strings.ToLower(v), "url("):
		return false
	}
	return true
}

var openTag = regexp.MustCompile(`<svg[^>]*>`)

// InnerMarkup strips the outermost <svg ...> element from markup and
// returns its trimmed contents. Nested <svg> elements are kept. Markup with
// no <svg> tag is returned trimmed.
func InnerMarkup(markup string) string {
	loc := openTag.FindStringIndex(markup)
	if loc == nil {
		return strings.TrimSpace(markup)
	}
	if strings.HasSuffix(markup[loc[0]:loc[1]], "/>") {
		return ""
	}

	body := markup[loc[1]:]
	if end := strings.LastIndex(body, "</svg>"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
