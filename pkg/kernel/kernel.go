// Package kernel implements 2D convolution kernels for blurring model
// images with an instrument's point spread function. A kernel pairs an
// odd-dimensioned grid of weights with the pixel scales it was sampled at,
// and can renormalize, rescale and convolve.
package kernel

import (
	"errors"
	"fmt"
	"math"

	"lensgrid/pkg/arrays"
	"lensgrid/pkg/geometry"
)

// ErrZeroSum reports a renormalization of a kernel whose weights sum to
// zero.
var ErrZeroSum = errors.New("kernel weights sum to zero")

// ErrRescaleFactor reports a rescale factor that is not positive.
var ErrRescaleFactor = errors.New("rescale factor must be positive")

// Kernel is a grid of convolution weights with the arc-second pixel scales
// it was sampled at.
type Kernel struct {
	values *arrays.Array2D
	scales geometry.Scales
}

// New copies the weights into a kernel. With renormalize set the weights are
// scaled to sum to unity.
func New(values *arrays.Array2D, scales geometry.Scales, renormalize bool) (*Kernel, error) {
	k := &Kernel{values: values.Clone(), scales: scales}
	if renormalize {
		return k.Renormalized()
	}
	return k, nil
}

// NoBlur returns the 3x3 identity kernel: a single unit weight at the
// centre, so convolution leaves an image unchanged.
func NoBlur(scales geometry.Scales) *Kernel {
	values := arrays.Zeros(3, 3)
	values.Set(1, 1, 1.0)
	return &Kernel{values: values, scales: scales}
}

// Values returns the kernel weights. The array is shared with the kernel;
// treat it as read-only.
func (k *Kernel) Values() *arrays.Array2D { return k.values }

// PixelScales returns the arc-second size of a kernel pixel along each axis.
func (k *Kernel) PixelScales() geometry.Scales { return k.scales }

// Shape returns the kernel dimensions.
func (k *Kernel) Shape() geometry.Shape {
	return geometry.Shape{Rows: k.values.Rows(), Cols: k.values.Cols()}
}

// Renormalized returns a kernel with the weights scaled to sum to unity.
func (k *Kernel) Renormalized() (*Kernel, error) {
	sum := k.values.Sum()
	if sum == 0 {
		return nil, fmt.Errorf("renormalize %dx%d kernel: %w",
			k.values.Rows(), k.values.Cols(), ErrZeroSum)
	}
	values := k.values.Clone()
	for r := 0; r < values.Rows(); r++ {
		for c := 0; c < values.Cols(); c++ {
			values.Set(r, c, values.At(r, c)/sum)
		}
	}
	return &Kernel{values: values, scales: k.scales}, nil
}

// RescaledWithOddDimensions resamples the kernel by the given factor with
// bilinear interpolation. Each output dimension is the rounded scaled
// dimension, bumped to the next odd number when the rounding lands on an
// even one, and never below 1. The pixel scales grow by the true per-axis
// shrink ratio, so the kernel keeps its arc-second extent.
func (k *Kernel) RescaledWithOddDimensions(factor float64, renormalize bool) (*Kernel, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("rescale kernel by %g: %w", factor, ErrRescaleFactor)
	}
	rows := oddDimension(factor, k.values.Rows())
	cols := oddDimension(factor, k.values.Cols())

	rescaled := &Kernel{
		values: resizeBilinear(k.values, rows, cols),
		scales: geometry.Scales{
			Y: k.scales.Y * float64(k.values.Rows()) / float64(rows),
			X: k.scales.X * float64(k.values.Cols()) / float64(cols),
		},
	}
	if renormalize {
		return rescaled.Renormalized()
	}
	return rescaled, nil
}

func oddDimension(factor float64, dimension int) int {
	scaled := int(math.Round(factor * float64(dimension)))
	if scaled < 1 {
		scaled = 1
	}
	if scaled%2 == 0 {
		scaled++
	}
	return scaled
}

// resizeBilinear resamples src to rows x cols, sampling each output pixel
// centre back in source coordinates and blending the four surrounding
// source pixels. Samples past the source boundary clamp to the nearest
// pixel.
func resizeBilinear(src *arrays.Array2D, rows, cols int) *arrays.Array2D {
	dst := arrays.New(rows, cols)
	stepY := float64(src.Rows()) / float64(rows)
	stepX := float64(src.Cols()) / float64(cols)

	for r := 0; r < rows; r++ {
		sy := clamp((float64(r)+0.5)*stepY-0.5, 0, float64(src.Rows()-1))
		y0 := int(sy)
		y1 := y0 + 1
		if y1 > src.Rows()-1 {
			y1 = src.Rows() - 1
		}
		fy := sy - float64(y0)

		for c := 0; c < cols; c++ {
			sx := clamp((float64(c)+0.5)*stepX-0.5, 0, float64(src.Cols()-1))
			x0 := int(sx)
			x1 := x0 + 1
			if x1 > src.Cols()-1 {
				x1 = src.Cols() - 1
			}
			fx := sx - float64(x0)

			top := src.At(y0, x0)*(1-fx) + src.At(y0, x1)*fx
			bottom := src.At(y1, x0)*(1-fx) + src.At(y1, x1)*fx
			dst.Set(r, c, top*(1-fy)+bottom*fy)
		}
	}
	return dst
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Convolved returns the 2D convolution of the array with the kernel, on the
// array's own shape. Values beyond the array boundary count as zero. The
// kernel dimensions must both be odd so the output pixels stay aligned with
// the input.
func (k *Kernel) Convolved(arr *arrays.Array2D) (*arrays.Array2D, error) {
	kRows, kCols := k.values.Rows(), k.values.Cols()
	if kRows%2 == 0 || kCols%2 == 0 {
		return nil, fmt.Errorf("convolve with %dx%d kernel: %w",
			kRows, kCols, geometry.ErrEvenKernelShape)
	}
	halfY, halfX := kRows/2, kCols/2

	out := arrays.New(arr.Rows(), arr.Cols())
	for i := 0; i < arr.Rows(); i++ {
		for j := 0; j < arr.Cols(); j++ {
			var sum float64
			for u := 0; u < kRows; u++ {
				r := i + halfY - u
				if r < 0 || r >= arr.Rows() {
					continue
				}
				for v := 0; v < kCols; v++ {
					c := j + halfX - v
					if c < 0 || c >= arr.Cols() {
						continue
					}
					sum += k.values.At(u, v) * arr.At(r, c)
				}
			}
			out.Set(i, j, sum)
		}
	}
	return out, nil
}
