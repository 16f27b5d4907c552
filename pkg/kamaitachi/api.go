package kamaitachi

import (
	"github.com/keiya01/kamaitachi/internal/displaylist"
	"github.com/keiya01/kamaitachi/internal/layout"
	xhtmlparser "github.com/keiya01/kamaitachi/internal/parser/html"
	"github.com/keiya01/kamaitachi/internal/style"
)

// BuildStyledTree is the style-resolution stage exposed standalone, for
// callers that already have a parsed document and engine and want the
// styled tree without running the rest of the pipeline.
func BuildStyledTree(doc *xhtmlparser.Document, engine *style.Engine) *style.StyledNode {
	return style.BuildStyledTree(doc, engine)
}

// LayoutTree is the layout stage exposed standalone.
func LayoutTree(styledRoot *style.StyledNode, pageWidth, pageHeight float64) (*layout.LayoutBox, error) {
	return layout.LayoutTree(styledRoot, layout.Rect{Width: pageWidth, Height: pageHeight})
}

// BuildDisplayList is the display-list stage exposed standalone.
func BuildDisplayList(root *layout.LayoutBox) []displaylist.Command {
	return displaylist.Build(root)
}

// NewEngine creates a style engine seeded with the built-in user-agent
// stylesheet, for callers assembling a custom pipeline with BuildStyledTree.
func NewEngine() *style.Engine {
	return style.NewEngine()
}
