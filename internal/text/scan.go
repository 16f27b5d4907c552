package text

import (
	"strings"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/style"
)

// Run is a maximal span of text that can be measured and shaped with a
// single font: the text-run scanner flushes a new Run whenever the
// resolved font changes or the Unicode script becomes incompatible with
// the run in progress.
type Run struct {
	Text     string
	FontSize float64
	Font     *font.Handle

	// WordBreak carries the resolved `word-break` property (spec 4.1)
	// this run's text node cascaded to: "normal", "break-all" or
	// "keep-all". SplitGlyphRuns reads it to decide whether glyph runs
	// may split mid-word.
	WordBreak string
}

func isHTMLWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

// collapseWhitespace reduces every maximal run of HTML whitespace
// characters to a single space, per the HTML whitespace-collapsing rule
// the scanner applies before a Run is handed to the line-breaker.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevWasSpace := false
	for _, r := range s {
		if isHTMLWhitespace(r) {
			if !prevWasSpace {
				b.WriteByte(' ')
			}
			prevWasSpace = true
			continue
		}
		prevWasSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// Scan walks the character content of an inline text node and splits it
// into font/script-homogeneous Runs, resolving a concrete font handle
// per character (falling back to the per-codepoint fallback chain when
// the element's own font-family list has no glyph for it) and flushing a
// new Run whenever the resolved font changes or the script becomes
// incompatible with the run in progress.
func Scan(content string, styled *style.StyledNode, fc *font.Context) []Run {
	families := styled.FontFamily()
	weight := styled.FontWeight()
	fontStyle := styled.FontStyle()
	size := styled.FontSize()
	wordBreak := styled.WordBreak()

	runes := []rune(content)
	if len(runes) == 0 {
		return nil
	}

	var runs []Run
	segStart := 0
	var curFont *font.Handle
	curScript := scriptCommon
	haveCur := false

	flush := func(end int) {
		if end <= segStart || !haveCur {
			segStart = end
			return
		}
		transformed := collapseWhitespace(string(runes[segStart:end]))
		if transformed != "" {
			runs = append(runs, Run{Text: transformed, FontSize: size, Font: curFont, WordBreak: wordBreak})
		}
		segStart = end
	}

	for i, r := range runes {
		lookupRune := r
		if isHTMLWhitespace(r) {
			// Whitespace doesn't carry script/font information of its own;
			// it stays attached to whichever run is already in progress.
			if haveCur {
				continue
			}
			lookupRune = ' '
		}

		script := runeScript(lookupRune)
		h := fc.ResolveForRune(families, weight, fontStyle, lookupRune)

		if !haveCur {
			curFont, curScript, haveCur = h, script, true
			continue
		}

		sameFont := h.Family == curFont.Family && h.Weight == curFont.Weight
		compatible := scriptCompatible(curScript, script)

		if !sameFont || !compatible {
			flush(i)
			curFont = h
			curScript = script
			continue
		}
		if isSpecificScript(script) {
			curScript = script
		}
	}
	flush(len(runes))

	return runs
}
