package layout

import (
	"fmt"

	"github.com/keiya01/kamaitachi/internal/style"
	"github.com/keiya01/kamaitachi/internal/text"
)

// BoxType distinguishes the four kinds of layout box the data model
// admits: block and inline boxes backed by a real element, anonymous
// blocks synthesized to wrap stray inline content inside a block parent,
// and leaf text boxes holding a single glyph run.
type BoxType int

const (
	BlockNode BoxType = iota
	InlineNode
	TextNode
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case BlockNode:
		return "BlockNode"
	case InlineNode:
		return "InlineNode"
	case TextNode:
		return "TextNode"
	case AnonymousBlock:
		return "AnonymousBlock"
	}
	return "Unknown"
}

// TextNodeData is the leaf payload of a TextNode box: exactly one glyph
// run, plus the flags the line-breaker's split algorithm needs.
type TextNodeData struct {
	GlyphRun text.GlyphRun

	// HasStart reports whether this box begins at the start of its
	// originating text run (as opposed to being the tail produced by an
	// earlier split of the same run).
	HasStart bool

	// SuppressLineBreakBefore mirrors the glyph run's own flag: true
	// when a break opportunity immediately before this box must be
	// rejected and retried further back (spec 4.5.b).
	SuppressLineBreakBefore bool
}

// LayoutBox is the single polymorphic node of the layout tree. Rather
// than a family of concrete box types, every box carries the same shape;
// BoxType says which fields are meaningful. This is what lets the
// line-breaker's work queue clone, split and requeue boxes generically
// regardless of whether they wrap a block element, an inline element, or
// a single run of text.
type LayoutBox struct {
	Type       BoxType
	Dimensions *Dimensions
	Children   []*LayoutBox

	styledNode *style.StyledNode // nil for AnonymousBlock boxes (F2)
	Text       *TextNodeData     // non-nil only when Type == TextNode

	IsSplitted bool
	IsHidden   bool
}

// NewLayoutBox creates a box of the given type backed by styled.
func NewLayoutBox(boxType BoxType, styled *style.StyledNode) *LayoutBox {
	return &LayoutBox{
		Type:       boxType,
		Dimensions: &Dimensions{},
		styledNode: styled,
	}
}

// NewAnonymousBlock creates a BlockNode-shaped box with no styled node,
// used to wrap runs of inline-level content found directly inside a
// block container alongside block-level siblings.
func NewAnonymousBlock() *LayoutBox {
	return &LayoutBox{
		Type:       AnonymousBlock,
		Dimensions: &Dimensions{},
	}
}

// NewTextBox creates a leaf TextNode box for a single glyph run.
func NewTextBox(styled *style.StyledNode, data TextNodeData) *LayoutBox {
	return &LayoutBox{
		Type:       TextNode,
		Dimensions: &Dimensions{},
		styledNode: styled,
		Text:       &data,
	}
}

// StyledNode returns the box's styled node, or F2 if called on an
// anonymous block.
func (b *LayoutBox) StyledNode() (*style.StyledNode, error) {
	if b.styledNode == nil {
		return nil, fmt.Errorf("%w: box type %s", ErrAnonymousBlockStyle, b.Type)
	}
	return b.styledNode, nil
}

// IsBlockLevel reports whether this box participates in block layout
// (i.e. is stacked vertically by its containing block) rather than
// inline layout.
func (b *LayoutBox) IsBlockLevel() bool {
	return b.Type == BlockNode || b.Type == AnonymousBlock
}

// IsInlineLevel reports whether this box participates in the inline
// line-breaker rather than block stacking.
func (b *LayoutBox) IsInlineLevel() bool {
	return b.Type == InlineNode || b.Type == TextNode
}

// Clone returns a shallow copy of the box with its own Dimensions bag,
// sharing Text and with Children left nil for the caller to fill, used by the
// line-breaker when an inline wrapper must be split across two lines: the
// clone becomes the tail fragment, edges are re-zeroed by the caller per
// invariant P4.
func (b *LayoutBox) Clone() *LayoutBox {
	cp := *b
	cp.Dimensions = b.Dimensions.Clone()
	cp.Children = nil
	return &cp
}
