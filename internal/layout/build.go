package layout

import (
	"fmt"

	xhtml "golang.org/x/net/html"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/style"
	"github.com/keiya01/kamaitachi/internal/text"
)

// BuildLayoutBoxTree constructs the layout box tree from a styled tree:
// resolving each node's display, inserting anonymous block boxes around
// runs of inline-level content found inside a block container, and
// invoking the text-run scanner on text nodes to produce their leaf
// TextNode boxes.
func BuildLayoutBoxTree(styledRoot *style.StyledNode, fc *font.Context) (*LayoutBox, error) {
	// A parsed document's root is its DocumentNode; layout starts at the
	// document's root element.
	if styledRoot != nil && styledRoot.Node.Type == xhtml.DocumentNode {
		var rootElement *style.StyledNode
		for _, c := range styledRoot.Children {
			if c.Node.Type == xhtml.ElementNode {
				rootElement = c
				break
			}
		}
		styledRoot = rootElement
	}

	boxes, err := buildBoxesForNode(styledRoot, fc)
	if err != nil {
		return nil, err
	}
	if len(boxes) == 0 {
		return nil, fmt.Errorf("layout: %w", ErrRootDisplayNone)
	}
	return boxes[0], nil
}

// buildBoxesForNode returns the zero, one, or many sibling layout boxes a
// single styled node expands to: zero for display:none, many for a text
// node that scans into several glyph runs, one otherwise.
func buildBoxesForNode(node *style.StyledNode, fc *font.Context) ([]*LayoutBox, error) {
	if node == nil {
		return nil, nil
	}

	if node.Node.Type == xhtml.TextNode {
		return buildTextBoxes(node, fc), nil
	}

	if node.Node.Type != xhtml.ElementNode {
		return nil, nil
	}

	switch node.Display() {
	case "none":
		return nil, nil
	case "inline":
		box := NewLayoutBox(InlineNode, node)
		applyInlineEdges(box, node)
		children, err := buildInlineChildren(node, fc)
		if err != nil {
			return nil, err
		}
		box.Children = children
		return []*LayoutBox{box}, nil
	default:
		box := NewLayoutBox(BlockNode, node)
		children, err := buildBlockChildren(node, fc)
		if err != nil {
			return nil, err
		}
		box.Children = children
		return []*LayoutBox{box}, nil
	}
}

// buildInlineChildren collects the child boxes of an inline container.
// Inline content nests directly with no anonymous-block wrapping. A
// block-display element nested in inline source still becomes a BlockNode
// child of the inline box; the line-breaker only places TextNode and
// InlineNode boxes, so such a child is not laid out (real browsers handle
// this case with box-fixup rules this toy engine does not reproduce).
func buildInlineChildren(node *style.StyledNode, fc *font.Context) ([]*LayoutBox, error) {
	var out []*LayoutBox
	for _, child := range node.Children {
		boxes, err := buildBoxesForNode(child, fc)
		if err != nil {
			return nil, err
		}
		out = append(out, boxes...)
	}
	return out, nil
}

// buildBlockChildren collects the child boxes of a block container,
// wrapping any run of inline-level content in an anonymous block so the
// result is either all block-level children or a single run of
// inline-level children, never a mix (spec 4.3). When every child turns
// out to be inline-level, the anonymous-block indirection is dropped and
// the block container acts as its own inline container directly.
func buildBlockChildren(node *style.StyledNode, fc *font.Context) ([]*LayoutBox, error) {
	var out []*LayoutBox
	var pendingInline []*LayoutBox

	flushInline := func() {
		if len(pendingInline) == 0 {
			return
		}
		anon := NewAnonymousBlock()
		anon.Children = pendingInline
		out = append(out, anon)
		pendingInline = nil
	}

	for _, child := range node.Children {
		boxes, err := buildBoxesForNode(child, fc)
		if err != nil {
			return nil, err
		}
		for _, b := range boxes {
			if b.IsBlockLevel() {
				flushInline()
				out = append(out, b)
			} else {
				pendingInline = append(pendingInline, b)
			}
		}
	}
	flushInline()

	if len(out) == 1 && out[0].Type == AnonymousBlock {
		return out[0].Children, nil
	}
	return out, nil
}

// applyInlineEdges populates an inline box's padding/border/margin from
// its styled node. Unlike block boxes, inline boxes never resolve auto
// margins or distribute underflow: their horizontal edges are simply
// added to the line's cursor on each side during position assignment,
// and a split fragment has the edge facing away from its original
// content zeroed out (invariant P4).
func applyInlineEdges(box *LayoutBox, node *style.StyledNode) {
	d := box.Dimensions
	d.Padding.Left = node.PaddingPx("left")
	d.Padding.Right = node.PaddingPx("right")
	d.Padding.Top = node.PaddingPx("top")
	d.Padding.Bottom = node.PaddingPx("bottom")
	d.Border.Left = node.BorderWidthPx("left")
	d.Border.Right = node.BorderWidthPx("right")
	d.Border.Top = node.BorderWidthPx("top")
	d.Border.Bottom = node.BorderWidthPx("bottom")
	d.Margin.Left = node.MarginPx("left")
	d.Margin.Right = node.MarginPx("right")
}

// buildTextBoxes scans a DOM text node's character content into
// font/script-homogeneous runs, splits each into UAX #14 glyph runs, and
// wraps each glyph run in its own leaf TextNode box.
func buildTextBoxes(node *style.StyledNode, fc *font.Context) []*LayoutBox {
	runs := text.Scan(node.Node.Data, node, fc)
	var out []*LayoutBox
	for _, run := range runs {
		glyphRuns := text.SplitGlyphRuns(run)
		for i, gr := range glyphRuns {
			out = append(out, NewTextBox(node, TextNodeData{
				GlyphRun:                gr,
				HasStart:                i == 0,
				SuppressLineBreakBefore: gr.SuppressLineBreakBefore,
			}))
		}
	}
	return out
}
