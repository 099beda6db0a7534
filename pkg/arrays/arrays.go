// Package arrays provides a dense row-major 2D float64 array with the
// rectangular-window and bin-up operations applied to imaging data, noise
// maps and model images. Windows are addressed with region.Region values so
// the same coordinates extract from and assign into different arrays.
package arrays

import (
	"errors"
	"fmt"
	"math"

	"lensgrid/pkg/region"
)

// ErrRaggedValues reports a [][]float64 literal whose rows are empty or of
// unequal length.
var ErrRaggedValues = errors.New("rows must be non-empty and of equal length")

// ErrRegionBounds reports a window that does not fit inside the array.
var ErrRegionBounds = errors.New("region does not fit inside the array")

// ErrBinFactor reports a bin-up factor that is not positive or does not
// divide both array dimensions.
var ErrBinFactor = errors.New("bin-up factor must be positive and divide both dimensions")

// Array2D is a dense 2D array of float64 values stored flat in row-major
// order.
type Array2D struct {
	rows   int
	cols   int
	values []float64
}

// New returns a zero-filled rows x cols array.
func New(rows, cols int) *Array2D {
	return &Array2D{rows: rows, cols: cols, values: make([]float64, rows*cols)}
}

// Full returns a rows x cols array with every element set to value.
func Full(rows, cols int, value float64) *Array2D {
	a := New(rows, cols)
	for i := range a.values {
		a.values[i] = value
	}
	return a
}

// Ones returns a rows x cols array of ones.
func Ones(rows, cols int) *Array2D {
	return Full(rows, cols, 1.0)
}

// Zeros returns a rows x cols array of zeros.
func Zeros(rows, cols int) *Array2D {
	return New(rows, cols)
}

// FromValues copies a [][]float64 literal into an array. Every row must be
// non-empty and of the same length.
func FromValues(values [][]float64) (*Array2D, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, fmt.Errorf("array from values: %w", ErrRaggedValues)
	}
	cols := len(values[0])
	a := New(len(values), cols)
	for r, row := range values {
		if len(row) != cols {
			return nil, fmt.Errorf("array from values: row %d has %d columns, row 0 has %d: %w",
				r, len(row), cols, ErrRaggedValues)
		}
		copy(a.values[r*cols:(r+1)*cols], row)
	}
	return a, nil
}

// Rows returns the number of rows.
func (a *Array2D) Rows() int { return a.rows }

// Cols returns the number of columns.
func (a *Array2D) Cols() int { return a.cols }

// At returns the element at row r, column c.
func (a *Array2D) At(r, c int) float64 { return a.values[r*a.cols+c] }

// Set assigns the element at row r, column c.
func (a *Array2D) Set(r, c int, v float64) { a.values[r*a.cols+c] = v }

// Sum returns the sum of all elements.
func (a *Array2D) Sum() float64 {
	sum := 0.0
	for _, v := range a.values {
		sum += v
	}
	return sum
}

// Clone returns a deep copy of the array.
func (a *Array2D) Clone() *Array2D {
	clone := New(a.rows, a.cols)
	copy(clone.values, a.values)
	return clone
}

// Equal reports whether both arrays have the same shape and every pair of
// elements differs by at most tol.
func (a *Array2D) Equal(other *Array2D, tol float64) bool {
	if a.rows != other.rows || a.cols != other.cols {
		return false
	}
	for i := range a.values {
		if math.Abs(a.values[i]-other.values[i]) > tol {
			return false
		}
	}
	return true
}

// ExtractRegion copies the window the region addresses into a new array of
// the window's dimensions.
func (a *Array2D) ExtractRegion(reg region.Region) (*Array2D, error) {
	if !reg.FitsWithin(a.rows, a.cols) {
		return nil, fmt.Errorf("extract region %v from (%d, %d) array: %w",
			reg, a.rows, a.cols, ErrRegionBounds)
	}
	out := New(reg.TotalRows(), reg.TotalColumns())
	for r := 0; r < out.rows; r++ {
		srcRow := (reg.Y0() + r) * a.cols
		copy(out.values[r*out.cols:(r+1)*out.cols], a.values[srcRow+reg.X0():srcRow+reg.X1()])
	}
	return out, nil
}

// AddRegion adds the window of src the region addresses into the same window
// of this array, element by element. The region must fit inside both arrays.
func (a *Array2D) AddRegion(src *Array2D, reg region.Region) error {
	if !reg.FitsWithin(a.rows, a.cols) || !reg.FitsWithin(src.rows, src.cols) {
		return fmt.Errorf("add region %v between (%d, %d) and (%d, %d) arrays: %w",
			reg, src.rows, src.cols, a.rows, a.cols, ErrRegionBounds)
	}
	for r := reg.Y0(); r < reg.Y1(); r++ {
		for c := reg.X0(); c < reg.X1(); c++ {
			a.values[r*a.cols+c] += src.values[r*src.cols+c]
		}
	}
	return nil
}

// SetRegion assigns value to every element of the window.
func (a *Array2D) SetRegion(reg region.Region, value float64) error {
	if !reg.FitsWithin(a.rows, a.cols) {
		return fmt.Errorf("set region %v of (%d, %d) array: %w",
			reg, a.rows, a.cols, ErrRegionBounds)
	}
	for r := reg.Y0(); r < reg.Y1(); r++ {
		for c := reg.X0(); c < reg.X1(); c++ {
			a.values[r*a.cols+c] = value
		}
	}
	return nil
}

// BinnedUpMean reduces the array resolution by an integer factor, each
// binned element the mean of its factor x factor block. Both dimensions must
// divide by the factor; binning carries data values, so no padding is
// invented.
func (a *Array2D) BinnedUpMean(factor int) (*Array2D, error) {
	return a.binnedUp(factor, func(sum float64) float64 {
		return sum / float64(factor*factor)
	}, false)
}

// BinnedUpSum reduces the array resolution by an integer factor, each binned
// element the sum of its block.
func (a *Array2D) BinnedUpSum(factor int) (*Array2D, error) {
	return a.binnedUp(factor, func(sum float64) float64 { return sum }, false)
}

// BinnedUpQuadrature reduces the array resolution by an integer factor, each
// binned element the square root of the block's summed squares divided by
// factor². This is the reduction for noise maps, whose values add in
// quadrature while the signal adds linearly.
func (a *Array2D) BinnedUpQuadrature(factor int) (*Array2D, error) {
	return a.binnedUp(factor, func(sum float64) float64 {
		return math.Sqrt(sum) / float64(factor*factor)
	}, true)
}

func (a *Array2D) binnedUp(factor int, reduce func(float64) float64, squared bool) (*Array2D, error) {
	if factor < 1 || a.rows%factor != 0 || a.cols%factor != 0 {
		return nil, fmt.Errorf("bin up (%d, %d) array by factor %d: %w",
			a.rows, a.cols, factor, ErrBinFactor)
	}
	binned := New(a.rows/factor, a.cols/factor)
	for r := 0; r < a.rows; r++ {
		for c := 0; c < a.cols; c++ {
			v := a.values[r*a.cols+c]
			if squared {
				v *= v
			}
			binned.values[(r/factor)*binned.cols+c/factor] += v
		}
	}
	for i, v := range binned.values {
		binned.values[i] = reduce(v)
	}
	return binned, nil
}
