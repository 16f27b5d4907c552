package style

// defaultGenericFamilies maps a CSS generic font-family keyword to the
// concrete font names the font service should try, in priority order.
// Ported from the reference implementation's font_list table.
var defaultGenericFamilies = map[string][]string{
	"serif":      {"Times New Roman"},
	"sans-serif": {"Helvetica"},
	"cursive":    {"Apple Chancery"},
	"fantasy":    {"Papyrus"},
	"monospace":  {"Menlo", "Osaka"},
}

// DefaultFontFamilyName is used when no font-family resolves to anything,
// matching the reference implementation's fallback constant.
const DefaultFontFamilyName = "Times New Roman"
