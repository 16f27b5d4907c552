package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensions_BoxChain(t *testing.T) {
	d := &Dimensions{
		Content: Rect{X: 10, Y: 10, Width: 100, Height: 50},
		Padding: EdgeSizes{Left: 5, Right: 5, Top: 2, Bottom: 2},
		Border:  EdgeSizes{Left: 1, Right: 1, Top: 1, Bottom: 1},
		Margin:  EdgeSizes{Left: 3, Right: 3, Top: 4, Bottom: 4},
	}

	padding := d.PaddingBox()
	assert.Equal(t, Rect{X: 5, Y: 8, Width: 110, Height: 54}, padding)

	border := d.BorderBox()
	assert.Equal(t, Rect{X: 4, Y: 7, Width: 112, Height: 56}, border)

	margin := d.MarginBox()
	assert.Equal(t, Rect{X: 1, Y: 3, Width: 118, Height: 64}, margin)

	assert.Equal(t, 64.0, d.MarginBoxHeight())
}

func TestDimensions_ResetEdges(t *testing.T) {
	d := &Dimensions{
		Padding: EdgeSizes{Left: 5, Right: 5},
		Border:  EdgeSizes{Left: 1, Right: 1},
		Margin:  EdgeSizes{Left: 2, Right: 2},
	}
	d.ResetEdgeLeft()
	assert.Equal(t, 0.0, d.Padding.Left)
	assert.Equal(t, 0.0, d.Border.Left)
	assert.Equal(t, 0.0, d.Margin.Left)
	assert.Equal(t, 5.0, d.Padding.Right, "resetting the left edge must not touch the right edge")

	d.ResetEdgeRight()
	assert.Equal(t, 0.0, d.Padding.Right)
}

func TestDimensions_CloneIsIndependent(t *testing.T) {
	d := &Dimensions{Content: Rect{Width: 10}}
	cp := d.Clone()
	cp.Content.Width = 99
	assert.Equal(t, 10.0, d.Content.Width, "mutating the clone must not affect the original")
}
