// Package naming derives component identifiers from icon file names.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Strategy selects how a file stem becomes a component identifier.
type Strategy string

const (
	// Hyphen uppercases the first character and every character that
	// follows a hyphen, dropping those hyphens. Nothing else changes.
	Hyphen Strategy = "hyphen"
	// Camel folds hyphens, underscores, dots and spaces into PascalCase.
	Camel Strategy = "camel"
)

// ParseStrategy validates a configured strategy name.
// An empty name selects Hyphen.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(name))) {
	case "", Hyphen:
		return Hyphen, nil
	case Camel:
		return Camel, nil
	default:
		return "", fmt.Errorf("unknown naming strategy %q (want %q or %q)", name, Hyphen, Camel)
	}
}

// Identifier derives the component identifier for stem.
func (s Strategy) Identifier(stem string) string {
	if s == Camel {
		return strcase.ToCamel(stem)
	}
	return PascalCase(stem)
}

// PascalCase converts a kebab-case file stem into a component identifier.
//
// The first character is uppercased when it is a word character
// ([A-Za-z0-9_]). A hyphen immediately followed by a word character is
// dropped and that character uppercased. Every other character, including
// a hyphen with no word character after it, is copied unchanged:
//
//	arrow-left  -> ArrowLeft
//	icon-24-px  -> Icon24Px
//	a--b        -> A-B
//	-lead       -> Lead
func PascalCase(stem string) string {
	runes := []rune(stem)
	var b strings.Builder
	b.Grow(len(stem))

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case i == 0 && isWordChar(r):
			b.WriteRune(unicode.ToUpper(r))
		case r == '-' && i+1 < len(runes) && isWordChar(runes[i+1]):
			b.WriteRune(unicode.ToUpper(runes[i+1]))
			i++
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isWordChar reports whether r is an ASCII letter, digit or underscore.
func isWordChar(r rune) bool {
	return r == '_' ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z') ||
		('0' <= r && r <= '9')
}

// ValidIdentifier reports whether name can be used as an exported
// JavaScript/TypeScript binding in a generated index file.
func ValidIdentifier(name string) bool {
	if name == "" || reserved[name] {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// reserved holds the words that cannot be used as binding names.
var reserved = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true,
	"do": true, "else": true, "enum": true, "export": true, "extends": true,
	"false": true, "finally": true, "for": true, "function": true, "if": true,
	"import": true, "in": true, "instanceof": true, "new": true, "null": true,
	"return": true, "super": true, "switch": true, "this": true, "throw": true,
	"true": true, "try": true, "typeof": true, "var": true, "void": true,
	"while": true, "with": true, "yield": true, "let": true, "static": true,
	"await": true, "implements": true, "interface": true, "package": true,
	"private": true, "protected": true, "public": true,
}
