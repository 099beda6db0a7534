// Package region provides rectangular pixel windows used to address
// sub-regions of 2D arrays, for example when extracting or overwriting
// a rectangular patch of an image.
package region

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds reports corner coordinates that do not describe a
// non-empty rectangle with non-negative pixel coordinates.
var ErrInvalidBounds = errors.New("invalid region bounds")

// Region is a rectangular window over a 2D array in pixel coordinates.
// It spans rows [Y0, Y1) and columns [X0, X1); both upper bounds are
// exclusive. A Region is immutable once constructed.
type Region struct {
	y0, y1 int
	x0, x1 int
}

// New validates the corner coordinates and returns the region.
// All coordinates must be non-negative, y0 must lie above y1 and
// x0 must lie left of x1.
func New(y0, y1, x0, x1 int) (Region, error) {
	if y0 < 0 || y1 < 0 || x0 < 0 || x1 < 0 {
		return Region{}, fmt.Errorf("region (%d, %d, %d, %d): coordinates must not be negative: %w",
			y0, y1, x0, x1, ErrInvalidBounds)
	}
	if y0 >= y1 {
		return Region{}, fmt.Errorf("region (%d, %d, %d, %d): first row must be above second row: %w",
			y0, y1, x0, x1, ErrInvalidBounds)
	}
	if x0 >= x1 {
		return Region{}, fmt.Errorf("region (%d, %d, %d, %d): first column must be left of second column: %w",
			y0, y1, x0, x1, ErrInvalidBounds)
	}
	return Region{y0: y0, y1: y1, x0: x0, x1: x1}, nil
}

// Y0 returns the first row of the window.
func (r Region) Y0() int { return r.y0 }

// Y1 returns the exclusive end row of the window.
func (r Region) Y1() int { return r.y1 }

// X0 returns the first column of the window.
func (r Region) X0() int { return r.x0 }

// X1 returns the exclusive end column of the window.
func (r Region) X1() int { return r.x1 }

// TotalRows returns the number of rows the window spans.
func (r Region) TotalRows() int { return r.y1 - r.y0 }

// TotalColumns returns the number of columns the window spans.
func (r Region) TotalColumns() int { return r.x1 - r.x0 }

// Contains reports whether the pixel (y, x) lies inside the window.
func (r Region) Contains(y, x int) bool {
	return y >= r.y0 && y < r.y1 && x >= r.x0 && x < r.x1
}

// FitsWithin reports whether the window lies fully inside an array of
// the given dimensions.
func (r Region) FitsWithin(rows, cols int) bool {
	return r.y1 <= rows && r.x1 <= cols
}

// String formats the region in (y0, y1, x0, x1) order.
func (r Region) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d)", r.y0, r.y1, r.x0, r.x1)
}
