package layout

import "errors"

// Layout is total over any styled tree except for the three fatal
// conditions below; every other input, however degenerate, produces some
// laid-out tree rather than a panic.
var (
	// ErrRootDisplayNone is returned when the document root itself
	// resolves to display:none, leaving nothing to lay out (F1).
	ErrRootDisplayNone = errors.New("layout: root element has display:none")

	// ErrAnonymousBlockStyle is returned when code asks an anonymous
	// block box for its styled node; anonymous blocks are a layout-only
	// construct and carry no style of their own (F2).
	ErrAnonymousBlockStyle = errors.New("layout: anonymous block has no styled node")

	// ErrUnsplittableInlineBox is returned when the line-breaker cannot
	// find any valid split position for an inline box that doesn't fit
	// the remaining line width (F3).
	ErrUnsplittableInlineBox = errors.New("layout: inline box has no valid split position")
)
