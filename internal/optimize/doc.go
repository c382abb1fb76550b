// Package optimize rewrites and minifies SVG icon markup.
//
// An Optimizer runs two attribute passes over the parsed document:
//
//   - current color: literal values of color attributes (fill, stroke,
//     stop-color, flood-color, lighting-color, color) become currentColor,
//     so an icon inherits the text color of whatever contains it. The value
//     none, url(...) paint references and everything inside <mask> are
//     left alone.
//   - attribute removal: attributes whose local name matches one of the
//     configured patterns (style by default) are dropped. With
//     PreserveCurrentColor an attribute whose value is currentColor survives.
//
// It then minifies the tree: the XML prolog, comments, <metadata>,
// design-tool namespaces and whitespace between elements are removed
// before the document is serialized on a single line.
//
// With Multipass the whole sequence repeats until the output stops getting
// shorter, bounded by MaxPasses.
//
//	opt, err := optimize.New(optimize.DefaultOptions())
//	svg, err := opt.Optimize(raw)
//	inner := optimize.InnerMarkup(svg)
package optimize
