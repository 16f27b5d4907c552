// Package font is the process-wide font service: it resolves a CSS
// font-family list plus weight/style to a measurable font handle, and
// answers the glyph-coverage, advance-width and line-metric queries the
// text-run scanner and inline line-breaker need.
//
// A single fpdf.Fpdf instance is used purely as a metrics oracle (it is
// never written to a PDF); fpdf's 14 core fonts give accurate advance
// widths for Latin text without requiring embedded font files, matching
// this being a toy layout engine rather than a full text-shaping stack.
package font

import (
	"fmt"
	"sync"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/sync/singleflight"
)

// Handle identifies a resolved, measurable font: a concrete PDF core font
// name standing in for the requested family, plus the caller's weight
// (normalised to 400 or 700) and style.
type Handle struct {
	Family    string
	Weight    int
	Style     string
	styleCode string
}

type cacheKey struct {
	family string
	weight int
	style  string
}

// Context is the process-wide, concurrency-safe font cache. Handles are
// created at most once per (family, weight, style) key: concurrent
// lookups for the same key are coalesced by singleflight rather than
// racing to populate the cache.
type Context struct {
	initOnce sync.Once
	pdf      *fpdf.Fpdf
	mu       sync.Mutex

	handles sync.Map // cacheKey -> *Handle
	group   singleflight.Group
}

var (
	sharedCtx  *Context
	sharedOnce sync.Once
)

// Shared returns the process-wide font context singleton.
func Shared() *Context {
	sharedOnce.Do(func() {
		sharedCtx = &Context{}
	})
	return sharedCtx
}

func (c *Context) measurer() *fpdf.Fpdf {
	c.initOnce.Do(func() {
		c.pdf = fpdf.New("P", "pt", "A4", "")
		c.pdf.AddPage()
	})
	return c.pdf
}

// Resolve returns the font handle for the first family in families that
// maps to a known core font, falling back to Times if none match. It does
// no per-codepoint fallback; ResolveForRune adds that.
func (c *Context) Resolve(families []string, weight int, style string) *Handle {
	core := firstCoreFont(families)
	key := cacheKey{core, normalizeWeight(weight), style}

	if v, ok := c.handles.Load(key); ok {
		return v.(*Handle)
	}

	groupKey := fmt.Sprintf("%s|%d|%s", key.family, key.weight, key.style)
	v, _, _ := c.group.Do(groupKey, func() (interface{}, error) {
		if existing, ok := c.handles.Load(key); ok {
			return existing, nil
		}
		h := &Handle{
			Family:    key.family,
			Weight:    key.weight,
			Style:     style,
			styleCode: fpdfStyleCode(key.weight, style),
		}
		c.handles.Store(key, h)
		return h, nil
	})
	return v.(*Handle)
}

// ResolveForRune is like Resolve, but swaps in the per-codepoint fallback
// family chain when the primary resolution can't render r.
func (c *Context) ResolveForRune(families []string, weight int, style string, r rune) *Handle {
	h := c.Resolve(families, weight, style)
	if h.HasGlyph(r) {
		return h
	}
	return c.Resolve(FallbackFontFamilies(r), weight, style)
}

// AdvanceWidth returns the px advance width of text set in h at sizePx.
func (c *Context) AdvanceWidth(h *Handle, text string, sizePx float64) float64 {
	pdf := c.measurer()
	c.mu.Lock()
	defer c.mu.Unlock()
	pdf.SetFont(h.Family, h.styleCode, sizePx)
	return pdf.GetStringWidth(text)
}

// HasGlyph reports whether h can plausibly render r. The bundled core
// fonts only cover Latin-1, so anything outside that range is treated as
// unsupported and routed through the fallback family chain.
func (h *Handle) HasGlyph(r rune) bool {
	return r < 0x100
}

// Ascent and Descent approximate the font's vertical metrics from its
// size, since the core PDF fonts don't expose hhea-style metrics through
// fpdf. This is a deliberate simplification noted in DESIGN.md.
func (h *Handle) Ascent(sizePx float64) float64 {
	return sizePx * 0.8
}

func (h *Handle) Descent(sizePx float64) float64 {
	return sizePx * 0.2
}

func normalizeWeight(weight int) int {
	if weight >= 600 {
		return 700
	}
	return 400
}

func fpdfStyleCode(weight int, style string) string {
	code := ""
	if weight >= 600 {
		code += "B"
	}
	if style == "italic" || style == "oblique" {
		code += "I"
	}
	return code
}

// firstCoreFont maps the first recognizable family name in families to
// one of fpdf's 14 core fonts, grounded on the reference engine's
// resolveFontFromStyle table.
func firstCoreFont(families []string) string {
	for _, f := range families {
		switch normalizeFamilyName(f) {
		case "helvetica", "arial", "sans-serif":
			return "Helvetica"
		case "courier", "courier new", "menlo", "osaka", "monospace":
			return "Courier"
		case "times new roman", "times", "serif", "georgia":
			return "Times"
		}
	}
	return "Times"
}

func normalizeFamilyName(f string) string {
	out := make([]rune, 0, len(f))
	for _, r := range f {
		if r >= 'A' && r <= 'Z' {
			r = r + ('a' - 'A')
		}
		out = append(out, r)
	}
	return string(out)
}

