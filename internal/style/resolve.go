package style

import (
	"strconv"
	"strings"

	"github.com/keiya01/kamaitachi/internal/parser/html"
	xhtml "golang.org/x/net/html"
)

// ValueKind tags the variant held by a Value.
type ValueKind int

const (
	ValueKeyword ValueKind = iota
	ValueKeywordList
	ValueLengthPx
	ValueNumber
	ValueColor
	ValueNone
)

// RGBA is an opaque-by-construction colour: the data model only admits
// hex RGB colours, so every Value of kind ValueColor carries A=255.
type RGBA struct {
	R, G, B, A uint8
}

// Value is the tagged union of declaration values the resolved queries
// operate on: a bare keyword, a comma-separated keyword list (font-family),
// a pixel length, a raw number (e.g. unitless line-height or font-weight),
// a hex colour, or the literal absence value "none".
type Value struct {
	Kind     ValueKind
	Keyword  string
	Keywords []string
	Length   float64
	Number   float64
	Color    RGBA
}

// ParseValue interprets a single CSS value token. Declarations with
// multiple space-separated tokens (box-model shorthands) are tokenized by
// the caller; ParseValue handles one token at a time.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	if raw == "" || foldEqual(raw, "none") {
		return Value{Kind: ValueNone}
	}
	if strings.HasPrefix(raw, "#") {
		if c, ok := parseHexColor(raw); ok {
			return Value{Kind: ValueColor, Color: c}
		}
		return Value{Kind: ValueKeyword, Keyword: raw}
	}
	if strings.HasSuffix(raw, "px") {
		if n, err := strconv.ParseFloat(strings.TrimSuffix(raw, "px"), 64); err == nil {
			return Value{Kind: ValueLengthPx, Length: n}
		}
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return Value{Kind: ValueNumber, Number: n}
	}
	return Value{Kind: ValueKeyword, Keyword: foldCaser.String(raw)}
}

func parseHexColor(raw string) (RGBA, bool) {
	hex := strings.TrimPrefix(raw, "#")
	expand := func(c byte) (byte, bool) {
		v, err := strconv.ParseUint(strings.Repeat(string(c), 2), 16, 8)
		if err != nil {
			return 0, false
		}
		return byte(v), true
	}
	parseByte := func(s string) (byte, bool) {
		v, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, false
		}
		return byte(v), true
	}
	switch len(hex) {
	case 3:
		r, ok1 := expand(hex[0])
		g, ok2 := expand(hex[1])
		b, ok3 := expand(hex[2])
		if ok1 && ok2 && ok3 {
			return RGBA{r, g, b, 255}, true
		}
	case 6:
		r, ok1 := parseByte(hex[0:2])
		g, ok2 := parseByte(hex[2:4])
		b, ok3 := parseByte(hex[4:6])
		if ok1 && ok2 && ok3 {
			return RGBA{r, g, b, 255}, true
		}
	}
	return RGBA{}, false
}

// inheritableProperties are the seven properties that propagate from a
// parent's computed style down to a child that does not override them.
var inheritableProperties = map[string]bool{
	"font-size":   true,
	"color":       true,
	"line-height": true,
	"font-family": true,
	"font-weight": true,
	"font-style":  true,
	"word-break":  true,
}

// StyledNode mirrors one node of the document tree together with its
// cascaded-and-inherited computed style.
type StyledNode struct {
	Node      *html.Node
	Specified ComputedStyle
	Computed  ComputedStyle
	Children  []*StyledNode
}

// BuildStyledTree runs the cascade over every node in the document and
// folds inheritance in as it descends, producing the styled tree that
// layout construction walks.
func BuildStyledTree(doc *html.Document, engine *Engine) *StyledNode {
	return buildStyledNode(doc.Root, engine, ComputedStyle{})
}

func buildStyledNode(node *html.Node, engine *Engine, inherited ComputedStyle) *StyledNode {
	if node == nil {
		return nil
	}

	var specified ComputedStyle
	if node.Type == xhtml.ElementNode {
		specified = engine.computeStyleForElement(node)
	} else {
		specified = ComputedStyle{}
	}

	computed := make(ComputedStyle, len(inherited)+len(specified))
	for name, prop := range inherited {
		if inheritableProperties[name] {
			computed[name] = prop
		}
	}
	for name, prop := range specified {
		computed[name] = prop
	}

	sn := &StyledNode{Node: node, Specified: specified, Computed: computed}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		if child := buildStyledNode(c, engine, computed); child != nil {
			sn.Children = append(sn.Children, child)
		}
	}
	return sn
}

func (s *StyledNode) lookup(names ...string) (Value, bool) {
	for _, name := range names {
		if p, ok := s.Computed[name]; ok {
			return ParseValue(p.Value), true
		}
	}
	return Value{}, false
}

func (s *StyledNode) rawProp(name string) (string, bool) {
	if p, ok := s.Computed[name]; ok {
		return p.Value, true
	}
	return "", false
}

// Display resolves the computed display keyword; non-replaced elements
// default to "inline" and the user-agent sheet overrides the common
// block-level tag names (see defaultUserAgentStyles).
func (s *StyledNode) Display() string {
	if v, ok := s.lookup("display"); ok && v.Kind == ValueKeyword {
		return v.Keyword
	}
	return "inline"
}

const mediumFactor = 1.3
const defaultFontSizePx = 16.0

// FontSize resolves the font-size property: a specified px length (or the
// default of 16px when unspecified) scaled by the MEDIUM factor.
func (s *StyledNode) FontSize() float64 {
	length := defaultFontSizePx
	if v, ok := s.lookup("font-size"); ok && v.Kind == ValueLengthPx {
		length = v.Length
	}
	return length * mediumFactor
}

// FontWeight resolves font-weight to a numeric CSS weight, defaulting to
// the normal weight of 400.
func (s *StyledNode) FontWeight() int {
	if v, ok := s.lookup("font-weight"); ok {
		switch v.Kind {
		case ValueNumber:
			return int(v.Number)
		case ValueKeyword:
			if v.Keyword == "bold" {
				return 700
			}
		}
	}
	return 400
}

// FontStyle resolves font-style, defaulting to "normal".
func (s *StyledNode) FontStyle() string {
	if v, ok := s.lookup("font-style"); ok && v.Kind == ValueKeyword {
		return v.Keyword
	}
	return "normal"
}

// FontFamily resolves the font-family list, expanding any CSS generic
// family keyword (serif, sans-serif, cursive, fantasy, monospace) into
// its concrete font names via the generic-family map.
func (s *StyledNode) FontFamily() []string {
	raw, ok := s.rawProp("font-family")
	if !ok {
		return append([]string{}, defaultGenericFamilies["serif"]...)
	}
	var families []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.Trim(strings.TrimSpace(part), `"'`)
		if name == "" {
			continue
		}
		if generic, ok := defaultGenericFamilies[foldCaser.String(name)]; ok {
			families = append(families, generic...)
		} else {
			families = append(families, name)
		}
	}
	if len(families) == 0 {
		families = append([]string{}, defaultGenericFamilies["serif"]...)
	}
	return families
}

// LineHeight resolves line-height: a unitless number scales the font
// size, a px length is used directly, and the default is 1.2x font-size.
func (s *StyledNode) LineHeight() float64 {
	fontSize := s.FontSize()
	if v, ok := s.lookup("line-height"); ok {
		switch v.Kind {
		case ValueNumber:
			return v.Number * fontSize
		case ValueLengthPx:
			return v.Length
		}
	}
	return fontSize * 1.2
}

// WordBreak resolves word-break, defaulting to "normal".
func (s *StyledNode) WordBreak() string {
	if v, ok := s.lookup("word-break"); ok && v.Kind == ValueKeyword {
		return v.Keyword
	}
	return "normal"
}

// Color resolves the inherited text colour, defaulting to opaque black.
func (s *StyledNode) Color() RGBA {
	if v, ok := s.lookup("color"); ok && v.Kind == ValueColor {
		return v.Color
	}
	return RGBA{0, 0, 0, 255}
}

// BackgroundColor resolves background-color; ok is false when no
// background paints (unset or the "transparent" keyword).
func (s *StyledNode) BackgroundColor() (RGBA, bool) {
	if v, ok := s.lookup("background-color", "background"); ok && v.Kind == ValueColor {
		return v.Color, true
	}
	return RGBA{}, false
}

// edgeShorthand splits a 1-, 2-, 3- or 4-value box-model shorthand into
// its per-side tokens, in top/right/bottom/left order.
func edgeShorthand(raw string) [4]Value {
	tokens := strings.Fields(raw)
	values := make([]Value, len(tokens))
	for i, t := range tokens {
		values[i] = ParseValue(t)
	}
	switch len(values) {
	case 1:
		return [4]Value{values[0], values[0], values[0], values[0]}
	case 2:
		return [4]Value{values[0], values[1], values[0], values[1]}
	case 3:
		return [4]Value{values[0], values[1], values[2], values[1]}
	case 4:
		return [4]Value{values[0], values[1], values[2], values[3]}
	}
	return [4]Value{}
}

func sideIndex(side string) int {
	switch side {
	case "top":
		return 0
	case "right":
		return 1
	case "bottom":
		return 2
	case "left":
		return 3
	}
	return -1
}

func (s *StyledNode) edgeValue(prop, side string) (Value, bool) {
	if v, ok := s.lookup(prop + "-" + side); ok {
		return v, true
	}
	if raw, ok := s.rawProp(prop); ok {
		edges := edgeShorthand(raw)
		if idx := sideIndex(side); idx >= 0 {
			return edges[idx], true
		}
	}
	return Value{}, false
}

// MarginPx resolves the margin on the given side ("top", "right",
// "bottom" or "left"); an auto margin resolves to 0 here, use MarginAuto
// to detect the auto case used by the block-width algorithm.
func (s *StyledNode) MarginPx(side string) float64 {
	if v, ok := s.edgeValue("margin", side); ok && v.Kind == ValueLengthPx {
		return v.Length
	}
	return 0
}

// MarginAuto reports whether the margin on the given side is "auto".
func (s *StyledNode) MarginAuto(side string) bool {
	v, ok := s.edgeValue("margin", side)
	return ok && v.Kind == ValueKeyword && v.Keyword == "auto"
}

// PaddingPx resolves the padding on the given side, defaulting to 0.
func (s *StyledNode) PaddingPx(side string) float64 {
	if v, ok := s.edgeValue("padding", side); ok && v.Kind == ValueLengthPx {
		return v.Length
	}
	return 0
}

// BorderWidthPx resolves the border width on the given side. A border
// whose style token is "none" (or whose width token is absent) resolves
// to 0 regardless of any explicit width, per CSS2.1 border collapsing.
func (s *StyledNode) BorderWidthPx(side string) float64 {
	candidates := []string{"border-" + side + "-width"}
	shorthands := []string{"border-" + side, "border"}

	if v, ok := s.lookup(candidates...); ok && v.Kind == ValueLengthPx {
		return v.Length
	}

	for _, prop := range shorthands {
		raw, ok := s.rawProp(prop)
		if !ok {
			continue
		}
		tokens := strings.Fields(raw)
		var width float64
		var hasWidth bool
		var isNone bool
		for _, t := range tokens {
			v := ParseValue(t)
			if v.Kind == ValueLengthPx {
				width = v.Length
				hasWidth = true
			}
			if v.Kind == ValueNone {
				isNone = true
			}
		}
		if isNone {
			return 0
		}
		if hasWidth {
			return width
		}
	}
	return 0
}

// BorderColor resolves the border colour on the given side. ok is false
// when no border-color is specified (directly or via the border
// shorthand), per spec §6: an absent border-color paints nothing even if
// a border width is set.
func (s *StyledNode) BorderColor(side string) (RGBA, bool) {
	shorthands := []string{"border-" + side + "-color", "border-color", "border-" + side, "border"}
	for _, prop := range shorthands {
		raw, ok := s.rawProp(prop)
		if !ok {
			continue
		}
		for _, t := range strings.Fields(raw) {
			v := ParseValue(t)
			if v.Kind == ValueColor {
				return v.Color, true
			}
		}
	}
	return RGBA{}, false
}

// Width resolves the width property; isAuto is true when unset or "auto".
func (s *StyledNode) Width() (px float64, isAuto bool) {
	if v, ok := s.lookup("width"); ok && v.Kind == ValueLengthPx {
		return v.Length, false
	}
	return 0, true
}

// Height resolves the height property; isAuto is true when unset or "auto".
func (s *StyledNode) Height() (px float64, isAuto bool) {
	if v, ok := s.lookup("height"); ok && v.Kind == ValueLengthPx {
		return v.Length, false
	}
	return 0, true
}
