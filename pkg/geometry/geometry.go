// Package geometry implements the low-level mask geometry routines shared by
// the mask and grid types: shape membership tests, edge and border discovery,
// blurring-region derivation, sub-pixel index mappings and conversions between
// pixel indexes and arc-second coordinates.
//
// Masks are stored as flat row-major []bool buffers where true marks a masked
// (excluded) pixel and false an unmasked (analysed) pixel. All functions treat
// their inputs as read-only and return freshly allocated buffers.
package geometry

import "errors"

// ErrEvenKernelShape reports a convolution kernel without a well-defined
// central pixel.
var ErrEvenKernelShape = errors.New("kernel dimensions must be odd")

// ErrAllMasked reports an operation that needs at least one unmasked pixel.
var ErrAllMasked = errors.New("mask has no unmasked pixels")

// Shape holds the dimensions of a 2D pixel grid as (rows, columns).
type Shape struct {
	Rows int
	Cols int
}

// Pixels returns the total pixel count of the grid.
func (s Shape) Pixels() int { return s.Rows * s.Cols }

// Scales holds the arc-second width of a pixel along each axis, ordered
// (y, x) to match the coordinate convention.
type Scales struct {
	Y float64
	X float64
}

// Coord is a physical (y, x) position in arc-seconds. The y coordinate grows
// towards the top of the grid (decreasing row index) and the x coordinate
// grows towards the right (increasing column index).
type Coord struct {
	Y float64
	X float64
}

// PixelCoord is a (row, column) pixel index pair.
type PixelCoord struct {
	Row int
	Col int
}

// AutoCentre is the sentinel pixel coordinate that selects the geometric
// centre of a grid in operations taking an optional centre.
var AutoCentre = PixelCoord{Row: -1, Col: -1}

// CentralPixel returns the centre of the grid in fractional pixel units.
// For odd dimensions this is the centre of the middle pixel, for even
// dimensions the boundary between the two middle pixels.
func CentralPixel(shape Shape) (float64, float64) {
	return (float64(shape.Rows) - 1) / 2.0, (float64(shape.Cols) - 1) / 2.0
}

// ArcsecFromPixel returns the arc-second coordinate of the centre of the
// pixel at p for a grid of the given shape, pixel scales and origin.
func ArcsecFromPixel(p PixelCoord, shape Shape, scales Scales, origin Coord) Coord {
	cy, cx := CentralPixel(shape)
	return Coord{
		Y: (cy-float64(p.Row))*scales.Y + origin.Y,
		X: (float64(p.Col)-cx)*scales.X + origin.X,
	}
}

// PixelValuesFromArcsec converts an arc-second coordinate to fractional pixel
// coordinates, offset by half a pixel so that truncating yields the pixel
// containing the coordinate.
func PixelValuesFromArcsec(c Coord, shape Shape, scales Scales, origin Coord) (float64, float64) {
	cy, cx := CentralPixel(shape)
	return (origin.Y-c.Y)/scales.Y + cy + 0.5, (c.X-origin.X)/scales.X + cx + 0.5
}

// PixelFromArcsec returns the pixel whose footprint contains the arc-second
// coordinate, truncating the fractional pixel values toward zero.
func PixelFromArcsec(c Coord, shape Shape, scales Scales, origin Coord) PixelCoord {
	yf, xf := PixelValuesFromArcsec(c, shape, scales, origin)
	return PixelCoord{Row: int(yf), Col: int(xf)}
}

// Unmasked returns cells with every pixel unmasked.
func Unmasked(shape Shape) []bool {
	return make([]bool, shape.Pixels())
}

// Full returns cells with every pixel masked.
func Full(shape Shape) []bool {
	cells := make([]bool, shape.Pixels())
	for i := range cells {
		cells[i] = true
	}
	return cells
}

// Inverted returns cells with the mask of every pixel flipped.
func Inverted(cells []bool) []bool {
	out := make([]bool, len(cells))
	for i, m := range cells {
		out[i] = !m
	}
	return out
}

// TotalUnmasked counts the unmasked pixels.
func TotalUnmasked(cells []bool) int {
	n := 0
	for _, m := range cells {
		if !m {
			n++
		}
	}
	return n
}

// UnmaskedPixelCoords lists the 2D coordinate of every unmasked pixel in
// row-major scan order. A pixel's position in this list is its 1D index,
// the index used by the edge, border and grid accessors.
func UnmaskedPixelCoords(cells []bool, shape Shape) []PixelCoord {
	coords := make([]PixelCoord, 0, TotalUnmasked(cells))
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if !cells[r*shape.Cols+c] {
				coords = append(coords, PixelCoord{Row: r, Col: c})
			}
		}
	}
	return coords
}
