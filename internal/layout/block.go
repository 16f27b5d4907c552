package layout

import (
	"fmt"

	"github.com/keiya01/kamaitachi/internal/font"
	"github.com/keiya01/kamaitachi/internal/style"
)

// LayoutTree is the layout-tree external interface: it builds the box
// tree (inserting anonymous blocks and scanning text runs) from a styled
// tree, then lays it out within viewport, returning the fully positioned
// layout tree. Per spec semantics the containing block's content height
// starts at 0 and grows as auto-height block children are stacked.
func LayoutTree(styledRoot *style.StyledNode, viewport Rect) (*LayoutBox, error) {
	fc := font.Shared()

	root, err := BuildLayoutBoxTree(styledRoot, fc)
	if err != nil {
		return nil, err
	}

	containingBlock := &Dimensions{Content: viewport}
	containingBlock.Content.Height = 0

	if err := layoutBlockBox(root, containingBlock, fc); err != nil {
		return nil, err
	}
	return root, nil
}

// layoutBlockBox lays out a single block-level (or anonymous-block) box
// within containingBlock: width, then position, then children, then
// height.
func layoutBlockBox(box *LayoutBox, containingBlock *Dimensions, fc *font.Context) error {
	calculateBlockWidth(box, containingBlock)
	calculateBlockPosition(box, containingBlock)

	if err := layoutBlockChildren(box, fc); err != nil {
		return err
	}

	calculateBlockHeight(box)
	return nil
}

// calculateBlockWidth implements the CSS2.1 10.3.3 algorithm for block
// boxes in normal flow: given the containing block's content width, and
// the box's margin-left/width/margin-right (each either a length or
// auto), distribute any remaining space ("underflow") per the five-case
// table.
func calculateBlockWidth(box *LayoutBox, containingBlock *Dimensions) {
	styled, err := box.StyledNode()
	d := box.Dimensions

	if err != nil {
		// Anonymous blocks have no declared box-model properties: they
		// simply take the full width of their containing block.
		d.Content.Width = containingBlock.Content.Width
		return
	}

	cbWidth := containingBlock.Content.Width

	widthPx, widthAuto := styled.Width()
	marginLeftAuto := styled.MarginAuto("left")
	marginRightAuto := styled.MarginAuto("right")

	d.Padding.Left = styled.PaddingPx("left")
	d.Padding.Right = styled.PaddingPx("right")
	d.Border.Left = styled.BorderWidthPx("left")
	d.Border.Right = styled.BorderWidthPx("right")
	d.Padding.Top = styled.PaddingPx("top")
	d.Padding.Bottom = styled.PaddingPx("bottom")
	d.Border.Top = styled.BorderWidthPx("top")
	d.Border.Bottom = styled.BorderWidthPx("bottom")

	marginLeft := styled.MarginPx("left")
	marginRight := styled.MarginPx("right")

	width := widthPx

	total := marginLeft + marginRight + d.Border.Left + d.Border.Right + d.Padding.Left + d.Padding.Right + width
	if !widthAuto && total > cbWidth {
		if marginLeftAuto {
			marginLeft = 0
		}
		if marginRightAuto {
			marginRight = 0
		}
	}

	underflow := cbWidth - (marginLeft + marginRight + d.Border.Left + d.Border.Right + d.Padding.Left + d.Padding.Right + width)

	switch {
	case !widthAuto && !marginLeftAuto && !marginRightAuto:
		// Over-constrained: the spec resolves this by absorbing the
		// underflow into the right margin.
		marginRight += underflow

	case !widthAuto && !marginLeftAuto && marginRightAuto:
		marginRight = underflow

	case !widthAuto && marginLeftAuto && !marginRightAuto:
		marginLeft = underflow

	case !widthAuto && marginLeftAuto && marginRightAuto:
		marginLeft = underflow / 2
		marginRight = underflow / 2

	case widthAuto:
		if marginLeftAuto {
			marginLeft = 0
		}
		if marginRightAuto {
			marginRight = 0
		}
		if underflow >= 0 {
			width = underflow
		} else {
			width = 0
			marginRight += underflow
		}
	}

	d.Content.Width = width
	d.Margin.Left = marginLeft
	d.Margin.Right = marginRight
}

// calculateBlockPosition positions the box's content box within the
// containing block: x is offset by the box's own left margin/border/
// padding, y stacks below whatever content has already been placed in
// the containing block (tracked via containingBlock.Content.Height).
func calculateBlockPosition(box *LayoutBox, containingBlock *Dimensions) {
	d := box.Dimensions
	styled, err := box.StyledNode()
	if err == nil {
		d.Margin.Top = styled.MarginPx("top")
		d.Margin.Bottom = styled.MarginPx("bottom")
	}

	d.Content.X = containingBlock.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containingBlock.Content.Y + containingBlock.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutBlockChildren dispatches each child of box according to its
// kind: block-level children are stacked vertically (each one's margin
// box height advances the running content height of box), and a run of
// inline-level children is handed to the line-breaker as a unit.
func layoutBlockChildren(box *LayoutBox, fc *font.Context) error {
	if len(box.Children) == 0 {
		return nil
	}

	if box.Children[0].IsInlineLevel() {
		return LayoutInline(box, fc)
	}

	for _, child := range box.Children {
		if !child.IsBlockLevel() {
			return fmt.Errorf("layout: block container %s has mixed inline/block children", box.Type)
		}
		if err := layoutBlockBox(child, box.Dimensions, fc); err != nil {
			return err
		}
		box.Dimensions.Content.Height += child.Dimensions.MarginBoxHeight()
	}
	return nil
}

// calculateBlockHeight applies an explicit CSS height, overriding the
// auto height accumulated by layoutBlockChildren.
func calculateBlockHeight(box *LayoutBox) {
	styled, err := box.StyledNode()
	if err != nil {
		return
	}
	if h, isAuto := styled.Height(); !isAuto {
		box.Dimensions.Content.Height = h
	}
}
