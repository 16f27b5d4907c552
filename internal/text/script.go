// Package text implements the text-run scanner: splitting the character
// content of an inline run into per-font, per-script runs, collapsing
// whitespace, and breaking each run into UAX #14 glyph runs.
package text

import "unicode"

// scriptCompatible reports whether two runs of text can stay in the same
// text run. Per UAX #24, the Common and Inherited pseudo-scripts are
// compatible with any specific script (punctuation and combining marks
// don't force a font/script boundary); otherwise two specific scripts are
// only compatible if they are identical.
func scriptCompatible(a, b string) bool {
	if a == b {
		return true
	}
	if a == scriptCommon || a == scriptInherited {
		return true
	}
	if b == scriptCommon || b == scriptInherited {
		return true
	}
	return false
}

const (
	scriptCommon    = "Common"
	scriptInherited = "Inherited"
)

// runeScript returns the best-effort Unicode script name for r, using the
// standard library's script range tables. No third-party package exposes
// per-rune Script property data, so this falls back to unicode.Scripts;
// see DESIGN.md for why this one piece stays on the standard library.
func runeScript(r rune) string {
	for name, table := range unicode.Scripts {
		if unicode.Is(table, r) {
			return name
		}
	}
	return scriptCommon
}

// isSpecificScript reports whether a script is neither Common nor
// Inherited, i.e. whether it forces a font boundary on its own.
func isSpecificScript(script string) bool {
	return script != scriptCommon && script != scriptInherited
}
