package layout

// Rect is an axis-aligned box in layout space, expressed in pixels.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// ExpandedBy returns the rect grown outward by the given edge sizes.
func (r Rect) ExpandedBy(e EdgeSizes) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// EdgeSizes holds the four edge widths of a padding, border or margin ring.
type EdgeSizes struct {
	Left, Right, Top, Bottom float64
}

// Dimensions is the shared geometry bag for a layout box: a content rect
// plus the padding/border/margin rings around it. Callers reach the
// padding, border and margin boxes through the PaddingBox/BorderBox/
// MarginBox helpers rather than
// recomputing edge arithmetic inline.
type Dimensions struct {
	Content Rect

	Padding EdgeSizes
	Border  EdgeSizes
	Margin  EdgeSizes
}

// PaddingBox returns the content rect expanded by the padding edges.
func (d *Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the padding box expanded by the border edges.
func (d *Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the border box expanded by the margin edges.
func (d *Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// MarginBoxHeight is the total vertical extent a box occupies in normal
// flow stacking: content height plus every padding/border/margin edge.
func (d *Dimensions) MarginBoxHeight() float64 {
	return d.MarginBox().Height
}

// PaddingBoxWidth and friends give only the horizontal extent of a ring,
// not its vertical one.
func (d *Dimensions) PaddingBoxWidth() float64 {
	return d.Content.Width + d.Padding.Left + d.Padding.Right
}

func (d *Dimensions) BorderBoxWidth() float64 {
	return d.PaddingBoxWidth() + d.Border.Left + d.Border.Right
}

func (d *Dimensions) MarginBoxWidth() float64 {
	return d.BorderBoxWidth() + d.Margin.Left + d.Margin.Right
}

// ResetEdgeLeft zeroes the left padding, border and margin. Used when an
// inline box is split across lines: only the first fragment keeps the
// original left edge (invariant P4).
func (d *Dimensions) ResetEdgeLeft() {
	d.Padding.Left = 0
	d.Border.Left = 0
	d.Margin.Left = 0
}

// ResetEdgeRight zeroes the right padding, border and margin. Used so that
// only the last fragment of a split inline box keeps the original right
// edge (invariant P4).
func (d *Dimensions) ResetEdgeRight() {
	d.Padding.Right = 0
	d.Border.Right = 0
	d.Margin.Right = 0
}

// ResetEdgeTop zeroes the top padding, border and margin.
func (d *Dimensions) ResetEdgeTop() {
	d.Padding.Top = 0
	d.Border.Top = 0
	d.Margin.Top = 0
}

// ResetEdgeBottom zeroes the bottom padding, border and margin.
func (d *Dimensions) ResetEdgeBottom() {
	d.Padding.Bottom = 0
	d.Border.Bottom = 0
	d.Margin.Bottom = 0
}

// Clone returns a deep copy so that split fragments can diverge without
// aliasing the original box's geometry.
func (d *Dimensions) Clone() *Dimensions {
	cp := *d
	return &cp
}
