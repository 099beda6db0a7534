// Package mask implements the three-tier mask hierarchy of the imaging
// pipeline. A Mask is a rectangular boolean grid marking which pixels of an
// image are excluded from analysis; a SubMask adds a sub-pixel resolution
// factor; a ScaledMask adds the physical pixel scales and arc-second origin
// that tie the grid to sky coordinates.
//
// Masks are immutable after their setup phase: every derived mask is a
// brand-new instance with freshly allocated buffers, and the index tables
// (unmasked pixels, edge, border) are computed once per instance on first
// use and reused afterwards.
package mask

import (
	"errors"
	"fmt"

	"lensgrid/pkg/geometry"
)

// ErrCells reports a [][]bool literal whose rows are empty or of unequal
// length.
var ErrCells = errors.New("mask cells must form a non-empty rectangular grid")

// ErrSubSize reports a sub-grid size below 1.
var ErrSubSize = errors.New("sub-grid size must be at least 1")

// ErrPixelScales reports a non-positive pixel scale.
var ErrPixelScales = errors.New("pixel scales must be positive")

// ErrTwoCentres reports a resize given a centre in both pixel and arc-second
// coordinates.
var ErrTwoCentres = errors.New("resize centre given in both pixel and arc-second coordinates")

// ErrScaleMismatch reports a single-scale accessor on an anisotropic mask.
var ErrScaleMismatch = errors.New("pixel scales differ between axes")

// ErrBinFactor reports a bin-up factor below 1.
var ErrBinFactor = errors.New("bin-up factor must be at least 1")

// Mask is the pixel tier of the hierarchy: a boolean grid where true marks a
// masked (excluded) pixel and false an unmasked (analysed) pixel.
type Mask struct {
	cells []bool
	shape geometry.Shape

	// Index tables, computed on first use. A mask must not be modified once
	// any of them has been read.
	unmaskedPixels []geometry.PixelCoord
	edgeIndexes    []int
	borderIndexes  []int
}

// New copies a [][]bool literal into a mask. Every row must be non-empty
// and of the same length.
func New(cells [][]bool) (*Mask, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("new mask: %w", ErrCells)
	}
	shape := geometry.Shape{Rows: len(cells), Cols: len(cells[0])}
	flat := make([]bool, 0, shape.Pixels())
	for r, row := range cells {
		if len(row) != shape.Cols {
			return nil, fmt.Errorf("new mask: row %d has %d columns, row 0 has %d: %w",
				r, len(row), shape.Cols, ErrCells)
		}
		flat = append(flat, row...)
	}
	return &Mask{cells: flat, shape: shape}, nil
}

// Unmasked returns a mask of the given shape with every pixel unmasked, or
// every pixel masked when invert is set.
func Unmasked(shape geometry.Shape, invert bool) *Mask {
	if invert {
		return &Mask{cells: geometry.Full(shape), shape: shape}
	}
	return &Mask{cells: geometry.Unmasked(shape), shape: shape}
}

// At reports whether the pixel at row r, column c is masked.
func (m *Mask) At(r, c int) bool { return m.cells[r*m.shape.Cols+c] }

// Set marks the pixel at row r, column c as masked or unmasked. Set is for
// adjusting a mask during setup; it must not be called once any derived
// quantity has been read from the instance.
func (m *Mask) Set(r, c int, masked bool) { m.cells[r*m.shape.Cols+c] = masked }

// Shape returns the grid dimensions.
func (m *Mask) Shape() geometry.Shape { return m.shape }

// PixelsInMask returns the number of unmasked pixels.
func (m *Mask) PixelsInMask() int { return geometry.TotalUnmasked(m.cells) }

// CentralPixelCoordinates returns the centre of the grid in fractional pixel
// units.
func (m *Mask) CentralPixelCoordinates() (float64, float64) {
	return geometry.CentralPixel(m.shape)
}

// UnmaskedPixels returns the 2D coordinates of the unmasked pixels in scan
// order: the table mapping a 1D index to its pixel. The returned slice is
// shared with the mask; treat it as read-only.
func (m *Mask) UnmaskedPixels() []geometry.PixelCoord {
	if m.unmaskedPixels == nil {
		m.unmaskedPixels = geometry.UnmaskedPixelCoords(m.cells, m.shape)
		if m.unmaskedPixels == nil {
			m.unmaskedPixels = []geometry.PixelCoord{}
		}
	}
	return m.unmaskedPixels
}

// EdgeIndexes returns the 1D indexes of the unmasked pixels on the mask
// edge: pixels with at least one masked orthogonal neighbour or a grid
// boundary on any side. The returned slice is shared with the mask; treat it
// as read-only.
func (m *Mask) EdgeIndexes() []int {
	if m.edgeIndexes == nil {
		m.edgeIndexes = geometry.EdgeIndexes(m.cells, m.shape)
		if m.edgeIndexes == nil {
			m.edgeIndexes = []int{}
		}
	}
	return m.edgeIndexes
}

// EdgePixels returns the 2D coordinates of the edge pixels.
func (m *Mask) EdgePixels() []geometry.PixelCoord {
	return m.pickPixels(m.EdgeIndexes())
}

// EdgeMask returns a mask unmasking exactly the edge pixels.
func (m *Mask) EdgeMask() *Mask {
	return &Mask{cells: m.pixelsToCells(m.EdgePixels()), shape: m.shape}
}

// BorderIndexes returns the 1D indexes of the edge pixels on the outer
// boundary of the unmasked region; edge pixels around masked holes enclosed
// by the unmasked region are excluded. The returned slice is shared with the
// mask; treat it as read-only.
func (m *Mask) BorderIndexes() []int {
	if m.borderIndexes == nil {
		m.borderIndexes = geometry.BorderIndexes(m.cells, m.shape)
		if m.borderIndexes == nil {
			m.borderIndexes = []int{}
		}
	}
	return m.borderIndexes
}

// BorderPixels returns the 2D coordinates of the border pixels.
func (m *Mask) BorderPixels() []geometry.PixelCoord {
	return m.pickPixels(m.BorderIndexes())
}

// BorderMask returns a mask unmasking exactly the border pixels.
func (m *Mask) BorderMask() *Mask {
	return &Mask{cells: m.pixelsToCells(m.BorderPixels()), shape: m.shape}
}

// Resized returns the mask copied into a grid of newShape, the copy window
// centred on the given pixel. A nil centre selects the geometric centre, so
// growing pads the mask evenly with masked cells and shrinking keeps the
// middle.
func (m *Mask) Resized(newShape geometry.Shape, centre *geometry.PixelCoord) *Mask {
	at := geometry.AutoCentre
	if centre != nil {
		at = *centre
	}
	return &Mask{cells: geometry.ResizedCells(m.cells, m.shape, newShape, at), shape: newShape}
}

// Inverted returns a mask with every pixel flipped.
func (m *Mask) Inverted() *Mask {
	return &Mask{cells: geometry.Inverted(m.cells), shape: m.shape}
}

// Cells returns a copy of the boolean grid as rows of columns.
func (m *Mask) Cells() [][]bool {
	rows := make([][]bool, m.shape.Rows)
	for r := range rows {
		rows[r] = make([]bool, m.shape.Cols)
		copy(rows[r], m.cells[r*m.shape.Cols:(r+1)*m.shape.Cols])
	}
	return rows
}

// pickPixels resolves 1D indexes through the unmasked-pixel table.
func (m *Mask) pickPixels(indexes []int) []geometry.PixelCoord {
	table := m.UnmaskedPixels()
	pixels := make([]geometry.PixelCoord, len(indexes))
	for i, idx := range indexes {
		pixels[i] = table[idx]
	}
	return pixels
}

// pixelsToCells builds a fully masked buffer and unmasks the given pixels.
func (m *Mask) pixelsToCells(pixels []geometry.PixelCoord) []bool {
	cells := geometry.Full(m.shape)
	for _, p := range pixels {
		cells[p.Row*m.shape.Cols+p.Col] = false
	}
	return cells
}
