package font

// Unicode block ranges used only to pick a CJK fallback family; these are
// narrower than the full Script property and only cover the blocks the
// reference implementation special-cases.
const (
	blockKanbunStart, blockKanbunEnd                     = 0x3190, 0x319F
	blockHiraganaStart, blockHiraganaEnd                 = 0x3040, 0x309F
	blockKatakanaStart, blockKatakanaEnd                 = 0x30A0, 0x30FF
	blockCJKStrokesStart, blockCJKStrokesEnd             = 0x31C0, 0x31EF
	blockCJKSymbolsStart, blockCJKSymbolsEnd             = 0x3000, 0x303F
	blockCJKUnifiedStart, blockCJKUnifiedEnd             = 0x4E00, 0x9FFF
	blockKatakanaPhoneticStart, blockKatakanaPhoneticEnd = 0x31F0, 0x31FF
)

func inBlock(r rune, lo, hi rune) bool {
	return r >= lo && r <= hi
}

// FallbackFontFamilies returns the ordered list of font families to try
// for a given rune when the element's own font-family list has no glyph
// for it, mirroring the reference implementation's per-codepoint fallback
// table: a Mac Latin face first, a CJK face for the common Japanese
// blocks, a symbol face for astral-plane codepoints, and a final catch-all.
func FallbackFontFamilies(r rune) []string {
	families := []string{"Lucida Grande"}

	switch {
	case inBlock(r, blockKanbunStart, blockKanbunEnd),
		inBlock(r, blockHiraganaStart, blockHiraganaEnd),
		inBlock(r, blockKatakanaStart, blockKatakanaEnd),
		inBlock(r, blockCJKStrokesStart, blockCJKStrokesEnd),
		inBlock(r, blockCJKSymbolsStart, blockCJKSymbolsEnd),
		inBlock(r, blockCJKUnifiedStart, blockCJKUnifiedEnd),
		inBlock(r, blockKatakanaPhoneticStart, blockKatakanaPhoneticEnd):
		families = append(families, "Hiragino Sans GB")
	case r > 0xFFFF:
		families = append(families, "Apple Symbols", "STIXGeneral")
	}

	families = append(families, "Geneva")
	return families
}
