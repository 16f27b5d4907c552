// Package displaylist walks a laid-out LayoutBox tree and emits the flat
// list of paint commands a renderer backend consumes, decoupling layout
// from any particular output format (PDF, in this repo; nothing stops a
// future backend from walking the same command list to draw to a raster
// canvas or a terminal).
package displaylist

import (
	"github.com/keiya01/kamaitachi/internal/layout"
	"github.com/keiya01/kamaitachi/internal/style"
)

// CommandKind tags the variant held by a Command.
type CommandKind int

const (
	SolidColor CommandKind = iota
	Text
)

// Command is one paint operation: a solid-colour rect (used for both
// backgrounds and, one edge at a time, borders) or a run of text at a
// content-box position.
type Command struct {
	Kind CommandKind

	Rect  layout.Rect
	Color style.RGBA

	TextContent string
	FontFamily  string
	FontWeight  int
	FontStyle   string
	FontSizePx  float64
}

// Options toggles which paint commands Build emits; the zero value
// (everything false) is never what a caller wants, so use DefaultOptions
// or Build's convenience form rather than constructing it directly.
type Options struct {
	Backgrounds bool
	Borders     bool
}

// DefaultOptions emits everything: backgrounds, borders, and text.
func DefaultOptions() Options {
	return Options{Backgrounds: true, Borders: true}
}

// Build walks root depth-first and returns the display commands needed
// to paint it: a background rect, then up to four border-edge rects,
// then (for TextNode leaves) the text itself, before descending into
// children. Anonymous blocks are layout-only and paint nothing of their
// own — the walk still descends into their children.
func Build(root *layout.LayoutBox) []Command {
	return BuildWithOptions(root, DefaultOptions())
}

// BuildWithOptions is Build with background/border emission individually
// toggled (wired from the host's render_backgrounds/render_borders
// config); text commands are always emitted regardless of opts.
func BuildWithOptions(root *layout.LayoutBox, opts Options) []Command {
	var cmds []Command
	walk(root, opts, &cmds)
	return cmds
}

func walk(box *layout.LayoutBox, opts Options, cmds *[]Command) {
	if box == nil || box.IsHidden {
		return
	}

	styled, err := box.StyledNode()
	if err == nil {
		if opts.Backgrounds {
			emitBackground(box, styled, cmds)
		}
		if opts.Borders {
			emitBorders(box, styled, cmds)
		}
	}

	if box.Type == layout.TextNode && err == nil {
		emitText(box, styled, cmds)
	}

	for _, child := range box.Children {
		walk(child, opts, cmds)
	}
}

func emitBackground(box *layout.LayoutBox, styled *style.StyledNode, cmds *[]Command) {
	bg, ok := styled.BackgroundColor()
	if !ok {
		return
	}
	*cmds = append(*cmds, Command{
		Kind:  SolidColor,
		Rect:  box.Dimensions.BorderBox(),
		Color: bg,
	})
}

func emitBorders(box *layout.LayoutBox, styled *style.StyledNode, cmds *[]Command) {
	d := box.Dimensions
	border := d.Border
	padding := d.PaddingBox()

	if border.Top > 0 {
		if c, ok := styled.BorderColor("top"); ok {
			*cmds = append(*cmds, Command{
				Kind:  SolidColor,
				Rect:  layout.Rect{X: padding.X - border.Left, Y: padding.Y - border.Top, Width: padding.Width + border.Left + border.Right, Height: border.Top},
				Color: c,
			})
		}
	}
	if border.Bottom > 0 {
		if c, ok := styled.BorderColor("bottom"); ok {
			*cmds = append(*cmds, Command{
				Kind:  SolidColor,
				Rect:  layout.Rect{X: padding.X - border.Left, Y: padding.Y + padding.Height, Width: padding.Width + border.Left + border.Right, Height: border.Bottom},
				Color: c,
			})
		}
	}
	if border.Left > 0 {
		if c, ok := styled.BorderColor("left"); ok {
			*cmds = append(*cmds, Command{
				Kind:  SolidColor,
				Rect:  layout.Rect{X: padding.X - border.Left, Y: padding.Y - border.Top, Width: border.Left, Height: padding.Height + border.Top + border.Bottom},
				Color: c,
			})
		}
	}
	if border.Right > 0 {
		if c, ok := styled.BorderColor("right"); ok {
			*cmds = append(*cmds, Command{
				Kind:  SolidColor,
				Rect:  layout.Rect{X: padding.X + padding.Width, Y: padding.Y - border.Top, Width: border.Right, Height: padding.Height + border.Top + border.Bottom},
				Color: c,
			})
		}
	}
}

func emitText(box *layout.LayoutBox, styled *style.StyledNode, cmds *[]Command) {
	if box.Text == nil || box.Text.GlyphRun.IsWhitespace {
		return
	}
	gr := box.Text.GlyphRun
	*cmds = append(*cmds, Command{
		Kind:        Text,
		Rect:        box.Dimensions.Content,
		Color:       styled.Color(),
		TextContent: gr.Text,
		FontFamily:  gr.Font.Family,
		FontWeight:  gr.Font.Weight,
		FontStyle:   gr.Font.Style,
		FontSizePx:  gr.FontSize,
	})
}
