package layout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/parser/html"
	"github.com/keiya01/kamaitachi/internal/style"
)

func layoutHTML(t *testing.T, src string, viewport Rect) (*LayoutBox, error) {
	t.Helper()
	doc, err := html.NewParser().ParseString(src)
	require.NoError(t, err)
	styledRoot := style.BuildStyledTree(doc, style.NewEngine())
	return LayoutTree(styledRoot, viewport)
}

// P7: block height accumulation — an auto-height block's content height is
// the sum of its children's margin-box heights.
func TestLayout_BlockHeightAccumulates(t *testing.T) {
	root, err := layoutHTML(t, `<html><body>
		<div style="height: 30px;">a</div>
		<div style="height: 50px;">b</div>
	</body></html>`, Rect{Width: 800, Height: 600})
	require.NoError(t, err)

	body := findFirstOfType(root, BlockNode)
	require.NotNil(t, body)
	assert.Equal(t, 80.0, body.Dimensions.Content.Height)
}

// P8: auto margins on both sides centre the box within its containing block.
func TestLayout_AutoMarginsCentre(t *testing.T) {
	root, err := layoutHTML(t, `<html><body>
		<div style="width: 200px; margin-left: auto; margin-right: auto;">a</div>
	</body></html>`, Rect{Width: 800, Height: 600})
	require.NoError(t, err)

	div := findStyled(t, root, "div")
	require.NotNil(t, div)
	assert.Equal(t, 200.0, div.Dimensions.Content.Width)
	assert.InDelta(t, div.Dimensions.Margin.Left, div.Dimensions.Margin.Right, 1e-9)
	assert.InDelta(t, 300.0, div.Dimensions.Margin.Left, 1e-9)
}

func TestLayout_ExplicitMarginOverConstrainedAbsorbsIntoRightMargin(t *testing.T) {
	root, err := layoutHTML(t, `<html><body>
		<div style="width: 700px; margin-left: 50px; margin-right: 100px;">a</div>
	</body></html>`, Rect{Width: 800, Height: 600})
	require.NoError(t, err)

	div := findStyled(t, root, "div")
	require.NotNil(t, div)
	assert.Equal(t, 50.0, div.Dimensions.Margin.Left)
	assert.Equal(t, 50.0, div.Dimensions.Margin.Right, "over-constrained case absorbs the underflow into the right margin")
}

// F1: root display:none is fatal.
func TestLayout_RootDisplayNone(t *testing.T) {
	_, err := layoutHTML(t, `<html style="display: none;"><body>x</body></html>`, Rect{Width: 800, Height: 600})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRootDisplayNone))
}

// F2: an anonymous block's StyledNode() call fails.
func TestLayoutBox_AnonymousBlockHasNoStyledNode(t *testing.T) {
	anon := NewAnonymousBlock()
	_, err := anon.StyledNode()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAnonymousBlockStyle))
}

// Anonymous-block collapsing: a block whose children are all inline-level
// acts as its own inline container rather than wrapping them.
func TestBuildBlockChildren_CollapsesWhenAllChildrenInline(t *testing.T) {
	doc, err := html.NewParser().ParseString(`<div>hello <span>world</span></div>`)
	require.NoError(t, err)
	styledRoot := style.BuildStyledTree(doc, style.NewEngine())

	div := findStyledDOM(styledRoot, "div")
	require.NotNil(t, div)

	children, err := buildBlockChildren(div, font.Shared())
	require.NoError(t, err)
	for _, c := range children {
		assert.NotEqual(t, AnonymousBlock, c.Type, "children should be the flattened inline content, not an anonymous-block wrapper")
	}
}

// P3/P4: a long run of inline text wraps onto multiple lines, and an
// InlineNode wrapper split across lines keeps its left edge only on the
// first fragment and its right edge only on the last.
func TestLayout_InlineWrapsAndSplitsWrapperEdges(t *testing.T) {
	root, err := layoutHTML(t, `<html><body style="width: 100px;">
		<div style="width: 100px;"><span style="padding: 2px;">one two three four five six seven eight nine ten</span></div>
	</body></html>`, Rect{Width: 100, Height: 600})
	require.NoError(t, err)

	div := findStyled(t, root, "div")
	require.NotNil(t, div)
	assert.Greater(t, len(div.Children), 1, "narrow viewport should force at least two lines of text")

	var fragments []*LayoutBox
	var collect func(b *LayoutBox)
	collect = func(b *LayoutBox) {
		if b.Type == InlineNode {
			fragments = append(fragments, b)
		}
		for _, c := range b.Children {
			collect(c)
		}
	}
	collect(div)

	if len(fragments) > 1 {
		first, last := fragments[0], fragments[len(fragments)-1]
		assert.Equal(t, 0.0, last.Dimensions.Padding.Left, "only the first fragment keeps the left padding")
		assert.Equal(t, 0.0, first.Dimensions.Padding.Right, "only the last fragment keeps the right padding")
	}
}

func findFirstOfType(b *LayoutBox, boxType BoxType) *LayoutBox {
	if b.Type == boxType {
		return b
	}
	for _, c := range b.Children {
		if found := findFirstOfType(c, boxType); found != nil {
			return found
		}
	}
	return nil
}

func findStyled(t *testing.T, b *LayoutBox, tag string) *LayoutBox {
	t.Helper()
	if sn, err := b.StyledNode(); err == nil && sn.Node.Data == tag {
		return b
	}
	for _, c := range b.Children {
		if found := findStyled(t, c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findStyledDOM(n *style.StyledNode, tag string) *style.StyledNode {
	if n.Node.Data == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findStyledDOM(c, tag); found != nil {
			return found
		}
	}
	return nil
}
