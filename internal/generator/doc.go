// Package generator turns a directory of SVG icons into component files
// and barrel index modules.
//
// One Run is strictly sequential:
//
//	validate -> reset output dir -> transform each icon -> write indexes -> format
//
// Every component and both indexes are regenerated from scratch on each
// run, so the output directory always mirrors the current source set and
// two runs over unchanged input produce byte-identical files.
//
// Failures abort the run, except that the formatter step only warns
// through the Reporter, and with KeepGoing a failing icon is skipped and
// reported instead of stopping the remaining icons.
package generator
