package layout

import (
	"fmt"

	"github.com/keiya01/kamaitachi/internal/font"
)

// Line records one completed line of inline content: the (already
// positioned) boxes placed on it and the metrics used to compute its
// height and baseline.
type Line struct {
	Boxes   []*LayoutBox
	Width   float64
	Height  float64
	Ascent  float64
	Descent float64
}

// inlineLeaf is one TextNode box together with the chain of InlineNode
// wrapper boxes it is nested inside (outermost first), and its position
// in the original, fully flattened inline content — used to tell whether
// a line's fragment of a wrapper is its first and/or last fragment.
type inlineLeaf struct {
	box         *LayoutBox
	wrappers    []*LayoutBox
	globalIndex int
}

// LayoutInline is the inline line-breaker's entry point: it consumes
// container's inline-level children (TextNode leaves, possibly nested
// inside InlineNode wrappers), greedily fills lines up to the
// container's content width, and replaces container.Children with the
// positioned per-line fragments. container.Dimensions.Content.Height is
// advanced by the stacked line heights.
func LayoutInline(container *LayoutBox, fc *font.Context) error {
	maxWidth := container.Dimensions.Content.Width

	leaves := flattenInline(container.Children, nil)
	if len(leaves) == 0 {
		return nil
	}
	if maxWidth <= 0 {
		return fmt.Errorf("layout: %w", ErrUnsplittableInlineBox)
	}

	wrapperRange := computeWrapperRanges(leaves)

	lb := &lineBreaker{
		fc:           fc,
		maxWidth:     maxWidth,
		queue:        leaves,
		wrapperRange: wrapperRange,
	}
	lines, err := lb.run()
	if err != nil {
		return err
	}

	curY := container.Dimensions.Content.Y
	var allBoxes []*LayoutBox
	totalHeight := 0.0
	for _, line := range lines {
		positionLine(line, container.Dimensions.Content.X, curY)
		curY += line.Height
		totalHeight += line.Height
		allBoxes = append(allBoxes, line.Boxes...)
	}

	container.Children = allBoxes
	container.Dimensions.Content.Height += totalHeight
	return nil
}

// wrapperSpan is the [start, end) range of global leaf indices a wrapper
// box's original content spans.
type wrapperSpan struct {
	start, end int
}

func computeWrapperRanges(leaves []inlineLeaf) map[*LayoutBox]wrapperSpan {
	ranges := make(map[*LayoutBox]wrapperSpan)
	for _, leaf := range leaves {
		for _, w := range leaf.wrappers {
			span, ok := ranges[w]
			if !ok {
				ranges[w] = wrapperSpan{start: leaf.globalIndex, end: leaf.globalIndex + 1}
				continue
			}
			if leaf.globalIndex < span.start {
				span.start = leaf.globalIndex
			}
			if leaf.globalIndex+1 > span.end {
				span.end = leaf.globalIndex + 1
			}
			ranges[w] = span
		}
	}
	return ranges
}

// flattenInline walks the (possibly nested) inline box tree in order and
// produces the flat sequence of TextNode leaves the line-breaker's work
// queue operates on.
func flattenInline(boxes []*LayoutBox, ancestors []*LayoutBox) []inlineLeaf {
	var out []inlineLeaf
	for _, b := range boxes {
		switch b.Type {
		case TextNode:
			chain := make([]*LayoutBox, len(ancestors))
			copy(chain, ancestors)
			out = append(out, inlineLeaf{box: b, wrappers: chain})
		case InlineNode:
			out = append(out, flattenInline(b.Children, append(ancestors, b))...)
		}
	}
	for i := range out {
		out[i].globalIndex = i
	}
	return out
}

type lineBreaker struct {
	fc           *font.Context
	maxWidth     float64
	queue        []inlineLeaf
	wrapperRange map[*LayoutBox]wrapperSpan
}

// run executes the main loop (spec 4.5): repeatedly fill a line greedily
// from the front of the work queue, handling the suppress-break-before
// retry, until the queue is drained.
func (lb *lineBreaker) run() ([]*Line, error) {
	var lines []*Line
	for len(lb.queue) > 0 {
		lineLeaves, err := lb.fillLine()
		if err != nil {
			return nil, err
		}
		if len(lineLeaves) == 0 {
			break
		}
		lineLeaves = trimTrailingWhitespace(lineLeaves)
		if len(lineLeaves) == 0 {
			continue
		}
		boxes := reconstructLine(lineLeaves, 0, lb.wrapperRange)
		line := &Line{Boxes: boxes}
		lb.computeLineMetrics(line, lineLeaves)
		lines = append(lines, line)
	}
	return lines, nil
}

// fillLine pops leaves off the front of the queue and greedily appends
// them to the current line while they fit within maxWidth.
//
// Three things can happen to a leaf that doesn't fit at the cursor:
//
//   - Its own width already exceeds maxWidth, so no line could ever hold
//     it regardless of what else shares the line (spec 4.5.a case 2,
//     "idx==0 and total > max_width"). It is marked IsHidden, contributes
//     zero width, and is dropped from the work queue — this check runs
//     unconditionally, before the empty-line/suppression logic below, so
//     an oversized run is never force-rendered overflowing.
//   - The line is otherwise empty: there is nothing on it to retry
//     against, so the leaf becomes the line's first content regardless of
//     SuppressLineBreakBefore (matches the original per-character
//     algorithm, where the suppress-break case can only ever be reached
//     once some width has already been spent on the line — an empty
//     line's remaining width always equals maxWidth, so a run that
//     fits maxWidth never even reaches the split/suppression check).
//   - The line already holds content and the leaf is flagged
//     SuppressLineBreakBefore: a break immediately before it is
//     forbidden, so it cannot simply start the next line. The
//     suppress-break retry (spec 4.5.b) discounts the line's trailing
//     whitespace — which a line break would trim away regardless — and
//     re-checks the fit; if that rescues it, it joins the current line in
//     the whitespace's place. If it still doesn't fit, there is no
//     earlier position this atomic-glyph-run queue can retry (runs are
//     pre-split at UAX #14 opportunities upstream and can't be divided
//     further), so per P6/F3 the layout is unimplemented here.
//
// A non-suppressed leaf that simply doesn't fit a non-empty line takes
// the ordinary path: it stays at the front of the queue for the next
// line.
func (lb *lineBreaker) fillLine() ([]inlineLeaf, error) {
	var line []inlineLeaf
	width := 0.0

	for len(lb.queue) > 0 {
		leaf := lb.queue[0]

		// Collapse leading whitespace: a line never starts with a
		// whitespace-only glyph run.
		if len(line) == 0 && leaf.box.Text.GlyphRun.IsWhitespace {
			lb.queue = lb.queue[1:]
			continue
		}

		w := leaf.box.Text.GlyphRun.Width(lb.fc)

		if w > lb.maxWidth {
			leaf.box.IsHidden = true
			leaf.box.Dimensions.Content.Width = 0
			line = append(line, leaf)
			lb.queue = lb.queue[1:]
			continue
		}

		if width+w <= lb.maxWidth {
			leaf.box.Dimensions.Content.Width = w
			line = append(line, leaf)
			width += w
			lb.queue = lb.queue[1:]
			continue
		}

		if len(line) == 0 {
			leaf.box.Dimensions.Content.Width = w
			line = append(line, leaf)
			width += w
			lb.queue = lb.queue[1:]
			continue
		}

		if !leaf.box.Text.SuppressLineBreakBefore {
			break
		}

		trimmed := trimTrailingWhitespace(line)
		trimmedWidth := sumContentWidth(trimmed)
		if trimmedWidth+w > lb.maxWidth {
			return nil, fmt.Errorf("layout: %w", ErrUnsplittableInlineBox)
		}

		leaf.box.Dimensions.Content.Width = w
		line = append(trimmed, leaf)
		width = trimmedWidth + w
		lb.queue = lb.queue[1:]
	}

	return line, nil
}

func sumContentWidth(leaves []inlineLeaf) float64 {
	var w float64
	for _, l := range leaves {
		w += l.box.Dimensions.Content.Width
	}
	return w
}

// trimTrailingWhitespace drops any trailing whitespace-only glyph runs
// from a filled line, so a line's measured width never counts a trailing
// space (invariant P5).
func trimTrailingWhitespace(leaves []inlineLeaf) []inlineLeaf {
	end := len(leaves)
	for end > 0 && leaves[end-1].box.Text.GlyphRun.IsWhitespace {
		end--
	}
	return leaves[:end]
}

// reconstructLine rebuilds the box tree for one line from its flat leaf
// sequence, regrouping consecutive leaves that share the same wrapper at
// this depth into a single (possibly cloned) InlineNode fragment. A
// fragment that isn't the first (or last) fragment of its wrapper's
// original content has its left (or right) edge zeroed, per the
// clone-and-zero discipline (invariant P4).
func reconstructLine(leaves []inlineLeaf, depth int, wrapperRange map[*LayoutBox]wrapperSpan) []*LayoutBox {
	var out []*LayoutBox
	i := 0
	for i < len(leaves) {
		leaf := leaves[i]
		if depth >= len(leaf.wrappers) {
			out = append(out, leaf.box)
			i++
			continue
		}

		wrapper := leaf.wrappers[depth]
		j := i
		for j < len(leaves) && depth < len(leaves[j].wrappers) && leaves[j].wrappers[depth] == wrapper {
			j++
		}
		group := leaves[i:j]

		span := wrapperRange[wrapper]
		isFirstFragment := group[0].globalIndex == span.start
		isLastFragment := group[len(group)-1].globalIndex == span.end-1

		frag := wrapper.Clone()
		if !isFirstFragment {
			frag.Dimensions.ResetEdgeLeft()
		}
		if !isLastFragment {
			frag.Dimensions.ResetEdgeRight()
		}
		frag.IsSplitted = !isFirstFragment || !isLastFragment
		frag.Children = reconstructLine(group, depth+1, wrapperRange)

		out = append(out, frag)
		i = j
	}
	return out
}

// computeLineMetrics derives the line's ascent, descent and total height
// from the tallest font among its leaves and the inherited line-height
// of each leaf's styled node, per spec 4.5.d: leading is the slack
// between the line-height and the font's own ascent+descent, split
// evenly above and below as the half-leading.
func (lb *lineBreaker) computeLineMetrics(line *Line, leaves []inlineLeaf) {
	var ascent, descent, lineHeight, width float64
	for _, leaf := range leaves {
		gr := leaf.box.Text.GlyphRun
		a := gr.Font.Ascent(gr.FontSize)
		d := gr.Font.Descent(gr.FontSize)
		if a > ascent {
			ascent = a
		}
		if d > descent {
			descent = d
		}
		if styled, err := leaf.box.StyledNode(); err == nil {
			if lh := styled.LineHeight(); lh > lineHeight {
				lineHeight = lh
			}
		}
		width += leaf.box.Dimensions.Content.Width
	}
	if lineHeight < ascent+descent {
		lineHeight = ascent + descent
	}
	line.Ascent = ascent
	line.Descent = descent
	line.Height = lineHeight
	line.Width = width
}

// positionLine runs the position-assignment pass (spec 4.5.e): a
// left-to-right cumulative x offset across the line's boxes, with each
// TextNode leaf's y derived from the line's shared baseline (its ascent)
// adjusted by the half-leading above the font's own ascent+descent box.
func positionLine(line *Line, originX, lineY float64) {
	halfLeading := (line.Height - (line.Ascent + line.Descent)) / 2
	cursorX := originX
	positionInlineBoxes(line.Boxes, &cursorX, lineY, line.Ascent, halfLeading)
}

func positionInlineBoxes(boxes []*LayoutBox, cursorX *float64, lineY, lineAscent, halfLeading float64) {
	for _, b := range boxes {
		switch b.Type {
		case TextNode:
			gr := b.Text.GlyphRun
			ascent := gr.Font.Ascent(gr.FontSize)
			descent := gr.Font.Descent(gr.FontSize)
			b.Dimensions.Content.X = *cursorX
			b.Dimensions.Content.Y = lineY + halfLeading + (lineAscent - ascent)
			b.Dimensions.Content.Height = ascent + descent
			*cursorX += b.Dimensions.Content.Width

		case InlineNode:
			*cursorX += b.Dimensions.Margin.Left + b.Dimensions.Border.Left + b.Dimensions.Padding.Left
			startX := *cursorX
			positionInlineBoxes(b.Children, cursorX, lineY, lineAscent, halfLeading)
			b.Dimensions.Content.X = startX
			b.Dimensions.Content.Width = *cursorX - startX
			b.Dimensions.Content.Y = lineY
			b.Dimensions.Content.Height = lineAscent + halfLeading
			*cursorX += b.Dimensions.Margin.Right + b.Dimensions.Border.Right + b.Dimensions.Padding.Right
		}
	}
}
