package output

import (
	"io"
	"os"
)

// Values accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidColorMode reports whether mode is auto, always or never.
// The empty string counts as auto.
func ValidColorMode(mode string) bool {
	switch mode {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// ResolveColorMode reports whether human output should be styled.
//
// never and always win outright. Anything else is auto: a non-empty
// NO_COLOR environment variable turns styling off, otherwise isTTY decides.
func ResolveColorMode(colorMode string, isTTY bool) bool {
	switch colorMode {
	case ColorNever:
		return false
	case ColorAlways:
		return true
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTTY
}

// IsTTY reports whether writer is a terminal. Anything other than an
// *os.File, such as a test buffer, is not.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
