package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/parser/html"
)

func styledDiv(t *testing.T, attrs string) *StyledNode {
	t.Helper()
	doc, err := html.NewParser().ParseString(`<div ` + attrs + `>x</div>`)
	require.NoError(t, err)
	return BuildStyledTree(doc, NewEngine())
}

func findTag(n *StyledNode, tag string) *StyledNode {
	if n.Node.Data == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findTag(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, ValueLengthPx, ParseValue("12px").Kind)
	assert.Equal(t, 12.0, ParseValue("12px").Length)
	assert.Equal(t, ValueNumber, ParseValue("1.5").Kind)
	assert.Equal(t, ValueNone, ParseValue("none").Kind)
	assert.Equal(t, ValueKeyword, ParseValue("auto").Kind)

	c := ParseValue("#ff0000")
	require.Equal(t, ValueColor, c.Kind)
	assert.Equal(t, RGBA{255, 0, 0, 255}, c.Color)

	c3 := ParseValue("#0f0")
	require.Equal(t, ValueColor, c3.Kind)
	assert.Equal(t, RGBA{0, 255, 0, 255}, c3.Color)
}

func TestFontSize_ScalesByMediumFactor(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div style="font-size: 10px;">x</div>`)
	require.NoError(t, err)
	n := findTag(BuildStyledTree(doc, NewEngine()), "div")
	assert.InDelta(t, 13.0, n.FontSize(), 1e-9)
}

func TestFontSize_DefaultsTo16TimesMedium(t *testing.T) {
	n := styledDiv(t, "")
	assert.InDelta(t, 16.0*1.3, n.FontSize(), 1e-9)
}

func TestEdgeShorthand_Expansion(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div style="margin: 10px 20px 30px;">x</div>`)
	require.NoError(t, err)
	n := findTag(BuildStyledTree(doc, NewEngine()), "div")
	assert.Equal(t, 10.0, n.MarginPx("top"))
	assert.Equal(t, 20.0, n.MarginPx("right"))
	assert.Equal(t, 30.0, n.MarginPx("bottom"))
	assert.Equal(t, 20.0, n.MarginPx("left"))
}

func TestMarginAuto(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div style="margin-left: auto; margin-right: auto; width: 100px;">x</div>`)
	require.NoError(t, err)
	n := findTag(BuildStyledTree(doc, NewEngine()), "div")
	assert.True(t, n.MarginAuto("left"))
	assert.True(t, n.MarginAuto("right"))
	width, isAuto := n.Width()
	assert.False(t, isAuto)
	assert.Equal(t, 100.0, width)
}

func TestBorderWidthPx_NoneCollapsesToZero(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div style="border: 2px solid #000000; border-left: none;">x</div>`)
	require.NoError(t, err)
	n := findTag(BuildStyledTree(doc, NewEngine()), "div")
	assert.Equal(t, 2.0, n.BorderWidthPx("top"))
	assert.Equal(t, 0.0, n.BorderWidthPx("left"))
}

func TestFontFamily_ExpandsGenerics(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div style="font-family: sans-serif;">x</div>`)
	require.NoError(t, err)
	n := findTag(BuildStyledTree(doc, NewEngine()), "div")
	families := n.FontFamily()
	require.NotEmpty(t, families)
	assert.Contains(t, families, "Helvetica")
}

func TestBackgroundColor_UnsetIsNotOk(t *testing.T) {
	n := styledDiv(t, "")
	_, ok := n.BackgroundColor()
	assert.False(t, ok)
}
