package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/parser/css"
	"github.com/keiya01/kamaitachi/internal/parser/html"
)

func parseOneElement(t *testing.T, htmlSrc string) *html.Node {
	t.Helper()
	doc, err := html.NewParser().ParseString(htmlSrc)
	require.NoError(t, err)

	var find func(n *html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Data == "div" || n.Data == "p" || n.Data == "span" {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	n := find(doc.Root)
	require.NotNil(t, n)
	return n
}

// P1: cascade order — author beats user-agent, inline beats both,
// regardless of specificity.
func TestCascade_OriginPrecedence(t *testing.T) {
	node := parseOneElement(t, `<div id="x" class="c" style="color: #ff0000;">hi</div>`)

	engine := NewEngine()
	authorSheet, err := css.NewParser().ParseString(`#x { color: #00ff00; } .c { color: #0000ff; }`)
	require.NoError(t, err)
	engine.AddStylesheet(authorSheet)

	computed := engine.computeStyleForElement(node)
	assert.Equal(t, "#ff0000", computed["color"].Value, "inline style must win over any author rule")
}

func TestCascade_SpecificityBreaksAuthorTie(t *testing.T) {
	node := parseOneElement(t, `<div id="x" class="c">hi</div>`)

	engine := NewEngine()
	authorSheet, err := css.NewParser().ParseString(`.c { color: #0000ff; } #x { color: #00ff00; }`)
	require.NoError(t, err)
	engine.AddStylesheet(authorSheet)

	computed := engine.computeStyleForElement(node)
	assert.Equal(t, "#00ff00", computed["color"].Value, "id selector must win over class selector regardless of source order")
}

func TestCascade_ImportantOverridesHigherSpecificity(t *testing.T) {
	node := parseOneElement(t, `<div id="x">hi</div>`)

	engine := NewEngine()
	authorSheet, err := css.NewParser().ParseString(`div { color: #0000ff !important; } #x { color: #00ff00; }`)
	require.NoError(t, err)
	engine.AddStylesheet(authorSheet)

	computed := engine.computeStyleForElement(node)
	assert.Equal(t, "#0000ff", computed["color"].Value)
}

func TestCascade_LaterAuthorSheetBreaksEqualSpecificityTie(t *testing.T) {
	node := parseOneElement(t, `<div class="c">hi</div>`)

	engine := NewEngine()
	first, err := css.NewParser().ParseString(`.c { color: #111111; }`)
	require.NoError(t, err)
	second, err := css.NewParser().ParseString(`.c { color: #222222; }`)
	require.NoError(t, err)
	engine.AddStylesheet(first)
	engine.AddStylesheet(second)

	computed := engine.computeStyleForElement(node)
	assert.Equal(t, "#222222", computed["color"].Value)
}

// P2: inheritance — a declared inheritable property propagates through an
// element that doesn't override it; a non-inheritable property does not.
func TestBuildStyledTree_Inheritance(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<html><body style="color: #123456;"><div><span>leaf</span></div></body></html>`)
	require.NoError(t, err)

	engine := NewEngine()
	root := BuildStyledTree(doc, engine)

	var find func(n *StyledNode, tag string) *StyledNode
	find = func(n *StyledNode, tag string) *StyledNode {
		if n.Node.Data == tag {
			return n
		}
		for _, c := range n.Children {
			if found := find(c, tag); found != nil {
				return found
			}
		}
		return nil
	}

	span := find(root, "span")
	require.NotNil(t, span)
	assert.Equal(t, "#123456", span.Computed["color"].Value, "color must inherit down through div to span")

	div := find(root, "div")
	require.NotNil(t, div)
	_, hasOwnColor := div.Specified["color"]
	assert.False(t, hasOwnColor, "div itself never declared color, only inherited it")
}

func TestSelectorMatches_SimpleSelectorsOnly(t *testing.T) {
	node := parseOneElement(t, `<p id="a" class="b c">text</p>`)

	assert.True(t, selectorMatches(node, "p"))
	assert.True(t, selectorMatches(node, "#a"))
	assert.True(t, selectorMatches(node, ".b"))
	assert.True(t, selectorMatches(node, ".b.c"))
	assert.True(t, selectorMatches(node, "p#a.b"))
	assert.False(t, selectorMatches(node, "div"))
	assert.False(t, selectorMatches(node, "#other"))
	assert.False(t, selectorMatches(node, ".missing"))
}

func TestCalculateSpecificity(t *testing.T) {
	assert.Equal(t, Specificity{Element: 1}, calculateSpecificity("div"))
	assert.Equal(t, Specificity{Class: 1}, calculateSpecificity(".c"))
	assert.Equal(t, Specificity{ID: 1}, calculateSpecificity("#x"))
	assert.Equal(t, Specificity{ID: 1, Class: 2, Element: 1}, calculateSpecificity("div#x.a.b"))
}
