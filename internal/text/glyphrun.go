package text

import (
	"unicode/utf8"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/rivo/uniseg"
)

// cjkScripts are the scripts word-break: keep-all treats as glued: CJK
// text wraps between characters by default (handled by uniseg's UAX #14
// segmentation), but keep-all asks for whole runs of it to stay on one
// line instead.
var cjkScripts = map[string]bool{
	"Han":      true,
	"Hiragana": true,
	"Katakana": true,
	"Hangul":   true,
	"Bopomofo": true,
}

// isCJKText reports whether every non-whitespace rune in s belongs to a
// CJK script, i.e. whether keep-all's glued-run treatment applies to it.
func isCJKText(s string) bool {
	seenAny := false
	for _, r := range s {
		if r == ' ' {
			continue
		}
		if !cjkScripts[runeScript(r)] {
			return false
		}
		seenAny = true
	}
	return seenAny
}

// GlyphRun is the atomic unit the inline line-breaker places: a piece of
// a Run that uniseg's UAX #14 segmentation allows breaking after, with
// any trailing collapsed whitespace isolated into its own is-whitespace
// GlyphRun so it can be dropped from a line's measured width without
// touching the preceding glyphs (invariant P5).
type GlyphRun struct {
	Text                    string
	FontSize                float64
	Font                    *font.Handle
	IsWhitespace            bool
	SuppressLineBreakBefore bool
}

// Width returns the glyph run's advance width using the shared font
// context, in px.
func (g GlyphRun) Width(fc *font.Context) float64 {
	return fc.AdvanceWidth(g.Font, g.Text, g.FontSize)
}

// noBreakBeforeRunes are punctuation characters that must stay glued to
// whatever precedes them: closing brackets and CJK closing punctuation
// never begin a line on their own.
var noBreakBeforeRunes = map[rune]bool{
	')': true, ']': true, '}': true,
	'】': true, '」': true, '』': true, '）': true,
	'、': true, '。': true, '，': true,
}

// SplitGlyphRuns breaks a single font/script-homogeneous Run into UAX #14
// glyph runs, adjusted by the run's resolved word-break property (spec
// 4.1): break-all permits a break after every character instead of only
// at uniseg's UAX #14 opportunities, and keep-all glues an all-CJK run
// into one unsplittable glyph run rather than breaking between its
// characters (uniseg's default CJK behavior).
func SplitGlyphRuns(run Run) []GlyphRun {
	switch run.WordBreak {
	case "break-all":
		return splitGlyphRunsBreakAll(run)
	case "keep-all":
		if isCJKText(run.Text) {
			return glyphRunsFromSegment(run.Text, run)
		}
	}
	return splitGlyphRunsUAX14(run)
}

func splitGlyphRunsUAX14(run Run) []GlyphRun {
	var out []GlyphRun
	remaining := run.Text
	state := -1
	for len(remaining) > 0 {
		segment, rest, _, newState := uniseg.FirstLineSegmentInString(remaining, state)
		state = newState
		if segment == "" {
			break
		}
		out = append(out, glyphRunsFromSegment(segment, run)...)
		remaining = rest
	}
	return out
}

// splitGlyphRunsBreakAll ignores UAX #14's segmentation and instead
// allows a break after every character: each rune (or maximal run of
// collapsed whitespace) becomes its own glyph run.
func splitGlyphRunsBreakAll(run Run) []GlyphRun {
	var out []GlyphRun
	var pending []rune
	flushPending := func() {
		if len(pending) == 0 {
			return
		}
		out = append(out, glyphRunsFromSegment(string(pending), run)...)
		pending = pending[:0]
	}
	for _, r := range run.Text {
		if r == ' ' {
			pending = append(pending, r)
			continue
		}
		flushPending()
		out = append(out, glyphRunsFromSegment(string(r), run)...)
	}
	flushPending()
	return out
}

func glyphRunsFromSegment(segment string, run Run) []GlyphRun {
	trimmed := segment
	var trailingSpace string
	for len(trimmed) > 0 {
		r, size := utf8.DecodeLastRuneInString(trimmed)
		if r != ' ' {
			break
		}
		trailingSpace = trimmed[len(trimmed)-size:] + trailingSpace
		trimmed = trimmed[:len(trimmed)-size]
	}

	var runs []GlyphRun
	if trimmed != "" {
		first, _ := utf8.DecodeRuneInString(trimmed)
		runs = append(runs, GlyphRun{
			Text:                    trimmed,
			FontSize:                run.FontSize,
			Font:                    run.Font,
			SuppressLineBreakBefore: noBreakBeforeRunes[first],
		})
	}
	if trailingSpace != "" {
		runs = append(runs, GlyphRun{
			Text:         trailingSpace,
			FontSize:     run.FontSize,
			Font:         run.Font,
			IsWhitespace: true,
		})
	}
	return runs
}
