package mask

import (
	"fmt"

	"lensgrid/pkg/geometry"
	"lensgrid/pkg/grids"
)

// SubMask is the sub-grid tier of the hierarchy: a mask whose every unmasked
// pixel is divided into subSize x subSize sub-pixels for higher-resolution
// grids. A sub size of 1 leaves the pixel grid unchanged.
type SubMask struct {
	Mask
	subSize int

	subBorderIndexes []int
}

// NewSub copies a [][]bool literal into a sub-grid mask.
func NewSub(cells [][]bool, subSize int) (*SubMask, error) {
	m, err := New(cells)
	if err != nil {
		return nil, err
	}
	return subFromMask(*m, subSize)
}

// UnmaskedSub returns a sub-grid mask of the given shape with every pixel
// unmasked, or every pixel masked when invert is set.
func UnmaskedSub(shape geometry.Shape, subSize int, invert bool) (*SubMask, error) {
	return subFromMask(*Unmasked(shape, invert), subSize)
}

// subFromMask validates the sub size and wraps a pixel-tier mask. The mask
// value must carry buffers the new instance can own.
func subFromMask(m Mask, subSize int) (*SubMask, error) {
	if subSize < 1 {
		return nil, fmt.Errorf("sub-grid size %d: %w", subSize, ErrSubSize)
	}
	return &SubMask{Mask: m, subSize: subSize}, nil
}

// SubSize returns the sub-grid resolution factor.
func (m *SubMask) SubSize() int { return m.subSize }

// SubLength returns the number of sub-pixels per unmasked pixel.
func (m *SubMask) SubLength() int { return m.subSize * m.subSize }

// SubFraction returns the fraction of a pixel each sub-pixel covers.
func (m *SubMask) SubFraction() float64 {
	return 1.0 / float64(m.SubLength())
}

// WithSubSize returns a mask of the same cells at a different sub-grid
// resolution.
func (m *SubMask) WithSubSize(subSize int) (*SubMask, error) {
	cells := make([]bool, len(m.cells))
	copy(cells, m.cells)
	return subFromMask(Mask{cells: cells, shape: m.shape}, subSize)
}

// ExpandedMask returns the pixel-tier mask at sub-pixel resolution: each
// pixel becomes a uniform subSize x subSize block of a shape x subSize grid.
func (m *SubMask) ExpandedMask() *Mask {
	expandedShape := geometry.Shape{Rows: m.shape.Rows * m.subSize, Cols: m.shape.Cols * m.subSize}
	return &Mask{cells: geometry.ExpandedSubCells(m.cells, m.shape, m.subSize), shape: expandedShape}
}

// SubPixels returns the 2D coordinates, on the sub-resolution grid, of every
// sub-pixel of every unmasked pixel, in parent-major order.
func (m *SubMask) SubPixels() []geometry.PixelCoord {
	return geometry.SubPixelCoords(m.cells, m.shape, m.subSize)
}

// ParentIndexes maps every sub-pixel 1D index to the 1D index of the
// unmasked pixel containing it.
func (m *SubMask) ParentIndexes() []int {
	return geometry.ParentIndexes(m.cells, m.subSize)
}

// SubBorderIndexes returns, for every border pixel, the sub 1D index of the
// sub-pixel of that pixel radially furthest from the centre of the mask's
// unit-scale sub grid. Ties keep the first sub-pixel in scan order. The
// returned slice is shared with the mask; treat it as read-only.
func (m *SubMask) SubBorderIndexes() []int {
	if m.subBorderIndexes == nil {
		border := m.BorderIndexes()
		unit := grids.FromMask(m.cells, m.shape, geometry.Scales{Y: 1.0, X: 1.0}, m.subSize, geometry.Coord{})
		centre := unit.Centre()
		subLength := m.SubLength()

		indexes := make([]int, len(border))
		for i, parent := range border {
			best := parent * subLength
			bestDistance := -1.0
			for k := parent * subLength; k < (parent+1)*subLength; k++ {
				dy, dx := unit[k].Y-centre.Y, unit[k].X-centre.X
				if d := dy*dy + dx*dx; d > bestDistance {
					best, bestDistance = k, d
				}
			}
			indexes[i] = best
		}
		m.subBorderIndexes = indexes
	}
	return m.subBorderIndexes
}
