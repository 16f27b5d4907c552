package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/font"
)

func runWithWordBreak(s, wordBreak string) Run {
	h := font.Shared().Resolve([]string{"Helvetica"}, 400, "normal")
	return Run{Text: s, FontSize: 16, Font: h, WordBreak: wordBreak}
}

// spec 4.1: word-break: break-all permits a line break after every
// character, so the glyph-run splitter must not group consecutive
// non-whitespace characters into one atom the way UAX #14 would.
func TestSplitGlyphRuns_BreakAllSplitsPerCharacter(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("abc", "break-all"))

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Text)
	assert.Equal(t, "b", out[1].Text)
	assert.Equal(t, "c", out[2].Text)
}

// break-all still isolates whitespace into its own glyph run so it can be
// trimmed from a line's measured width (invariant P5).
func TestSplitGlyphRuns_BreakAllIsolatesWhitespace(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("a b", "break-all"))

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].Text)
	assert.False(t, out[0].IsWhitespace)
	assert.Equal(t, " ", out[1].Text)
	assert.True(t, out[1].IsWhitespace)
	assert.Equal(t, "b", out[2].Text)
}

// break-all still honors noBreakBeforeRunes: a closing bracket produced
// as its own atom must stay flagged so it can't start a line either.
func TestSplitGlyphRuns_BreakAllKeepsSuppressFlagOnClosingPunctuation(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("a)", "break-all"))

	require.Len(t, out, 2)
	assert.Equal(t, ")", out[1].Text)
	assert.True(t, out[1].SuppressLineBreakBefore)
}

// spec 4.1: word-break: keep-all glues an all-CJK run into a single
// unsplittable glyph run rather than breaking between its characters,
// which is UAX #14's default for CJK scripts.
func TestSplitGlyphRuns_KeepAllGluesCJKRun(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("日本語", "keep-all"))

	require.Len(t, out, 1)
	assert.Equal(t, "日本語", out[0].Text)
}

// keep-all only applies its glued-run treatment to CJK text; Latin text
// falls back to the ordinary UAX #14 segmentation, where a space is still
// a break opportunity.
func TestSplitGlyphRuns_KeepAllFallsBackForNonCJKText(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("foo bar", "keep-all"))

	require.GreaterOrEqual(t, len(out), 2)
	var sawWhitespace bool
	for _, g := range out {
		if g.IsWhitespace {
			sawWhitespace = true
		}
	}
	assert.True(t, sawWhitespace, "non-CJK text under keep-all still breaks at whitespace")
}

func TestSplitGlyphRuns_NormalUsesUAX14Segmentation(t *testing.T) {
	out := SplitGlyphRuns(runWithWordBreak("foo bar", "normal"))

	require.GreaterOrEqual(t, len(out), 2)
	assert.Equal(t, "foo", out[0].Text)
}
