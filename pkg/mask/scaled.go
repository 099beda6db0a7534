package mask

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"lensgrid/pkg/geometry"
	"lensgrid/pkg/grids"
)

// ScaledMask is the physical tier of the hierarchy: a sub-grid mask whose
// pixels have arc-second scales and whose grid centre sits at an arc-second
// origin. It is the tier that builds coordinate grids and converts between
// pixel indexes and sky positions.
type ScaledMask struct {
	SubMask
	scales geometry.Scales
	origin geometry.Coord

	maskedGrid    grids.Grid
	maskedSubGrid grids.Grid
}

// NewScaled copies a [][]bool literal into a scaled mask.
func NewScaled(cells [][]bool, scales geometry.Scales, subSize int, origin geometry.Coord) (*ScaledMask, error) {
	m, err := NewSub(cells, subSize)
	if err != nil {
		return nil, err
	}
	return scaledFromSub(*m, scales, origin)
}

// UnmaskedScaled returns a scaled mask of the given shape with every pixel
// unmasked, or every pixel masked when invert is set.
func UnmaskedScaled(shape geometry.Shape, scales geometry.Scales, subSize int, origin geometry.Coord, invert bool) (*ScaledMask, error) {
	m, err := UnmaskedSub(shape, subSize, invert)
	if err != nil {
		return nil, err
	}
	return scaledFromSub(*m, scales, origin)
}

// Circular returns a scaled mask unmasking the pixels within radius
// arc-seconds of centre, measured from the middle of the grid.
func Circular(shape geometry.Shape, scales geometry.Scales, subSize int, radius float64, centre, origin geometry.Coord) (*ScaledMask, error) {
	return scaledFromCells(geometry.Circular(shape, scales, radius, centre), shape, scales, subSize, origin)
}

// CircularAnnular returns a scaled mask unmasking the annulus between the
// inner and outer radii.
func CircularAnnular(shape geometry.Shape, scales geometry.Scales, subSize int, innerRadius, outerRadius float64, centre, origin geometry.Coord) (*ScaledMask, error) {
	return scaledFromCells(geometry.CircularAnnular(shape, scales, innerRadius, outerRadius, centre),
		shape, scales, subSize, origin)
}

// CircularAntiAnnular returns a scaled mask unmasking the disk inside
// innerRadius and the annulus between outerRadius and outerRadius2.
func CircularAntiAnnular(shape geometry.Shape, scales geometry.Scales, subSize int, innerRadius, outerRadius, outerRadius2 float64, centre, origin geometry.Coord) (*ScaledMask, error) {
	return scaledFromCells(geometry.CircularAntiAnnular(shape, scales, innerRadius, outerRadius, outerRadius2, centre),
		shape, scales, subSize, origin)
}

// Elliptical returns a scaled mask unmasking the pixels inside an ellipse.
func Elliptical(shape geometry.Shape, scales geometry.Scales, subSize int, majorAxisRadius, axisRatio, phi float64, centre, origin geometry.Coord) (*ScaledMask, error) {
	return scaledFromCells(geometry.Elliptical(shape, scales, majorAxisRadius, axisRatio, phi, centre),
		shape, scales, subSize, origin)
}

// EllipticalAnnular returns a scaled mask unmasking the pixels outside the
// inner ellipse and inside the outer one.
func EllipticalAnnular(shape geometry.Shape, scales geometry.Scales, subSize int,
	innerMajorAxisRadius, innerAxisRatio, innerPhi float64,
	outerMajorAxisRadius, outerAxisRatio, outerPhi float64, centre, origin geometry.Coord) (*ScaledMask, error) {

	cells := geometry.EllipticalAnnular(shape, scales,
		innerMajorAxisRadius, innerAxisRatio, innerPhi,
		outerMajorAxisRadius, outerAxisRatio, outerPhi, centre)
	return scaledFromCells(cells, shape, scales, subSize, origin)
}

func scaledFromCells(cells []bool, shape geometry.Shape, scales geometry.Scales, subSize int, origin geometry.Coord) (*ScaledMask, error) {
	sub, err := subFromMask(Mask{cells: cells, shape: shape}, subSize)
	if err != nil {
		return nil, err
	}
	return scaledFromSub(*sub, scales, origin)
}

func scaledFromSub(m SubMask, scales geometry.Scales, origin geometry.Coord) (*ScaledMask, error) {
	if scales.Y <= 0 || scales.X <= 0 {
		return nil, fmt.Errorf("pixel scales (%g, %g): %w", scales.Y, scales.X, ErrPixelScales)
	}
	return &ScaledMask{SubMask: m, scales: scales, origin: origin}, nil
}

// derived builds a mask inheriting this mask's already validated metadata.
func (m *ScaledMask) derived(cells []bool, shape geometry.Shape, scales geometry.Scales, subSize int) *ScaledMask {
	return &ScaledMask{
		SubMask: SubMask{Mask: Mask{cells: cells, shape: shape}, subSize: subSize},
		scales:  scales,
		origin:  m.origin,
	}
}

// PixelScales returns the arc-second size of a pixel along each axis.
func (m *ScaledMask) PixelScales() geometry.Scales { return m.scales }

// Origin returns the arc-second coordinate of the grid centre.
func (m *ScaledMask) Origin() geometry.Coord { return m.origin }

// PixelScale returns the single pixel scale of a mask with square pixels.
func (m *ScaledMask) PixelScale() (float64, error) {
	if m.scales.Y != m.scales.X {
		return 0, fmt.Errorf("pixel scale of mask with scales (%g, %g): %w",
			m.scales.Y, m.scales.X, ErrScaleMismatch)
	}
	return m.scales.Y, nil
}

// ShapeArcsec returns the grid dimensions in arc-seconds, (height, width).
func (m *ScaledMask) ShapeArcsec() (float64, float64) {
	return float64(m.shape.Rows) * m.scales.Y, float64(m.shape.Cols) * m.scales.X
}

// ArcsecMaxima returns the arc-second coordinate of the grid's top-right
// corner.
func (m *ScaledMask) ArcsecMaxima() geometry.Coord {
	height, width := m.ShapeArcsec()
	return geometry.Coord{Y: height/2.0 + m.origin.Y, X: width/2.0 + m.origin.X}
}

// ArcsecMinima returns the arc-second coordinate of the grid's bottom-left
// corner.
func (m *ScaledMask) ArcsecMinima() geometry.Coord {
	height, width := m.ShapeArcsec()
	return geometry.Coord{Y: -height/2.0 + m.origin.Y, X: -width/2.0 + m.origin.X}
}

// YTicks returns four evenly spaced y-axis tick positions spanning the
// grid's arc-second extent, for plotting.
func (m *ScaledMask) YTicks() []float64 {
	return floats.Span(make([]float64, 4), m.ArcsecMinima().Y, m.ArcsecMaxima().Y)
}

// XTicks returns four evenly spaced x-axis tick positions spanning the
// grid's arc-second extent, for plotting.
func (m *ScaledMask) XTicks() []float64 {
	return floats.Span(make([]float64, 4), m.ArcsecMinima().X, m.ArcsecMaxima().X)
}

// PixelCoordsFromArcsec returns the pixel whose footprint contains the
// arc-second coordinate.
func (m *ScaledMask) PixelCoordsFromArcsec(c geometry.Coord) geometry.PixelCoord {
	return geometry.PixelFromArcsec(c, m.shape, m.scales, m.origin)
}

// ArcsecFromPixelCoords returns the arc-second coordinate of a pixel centre.
func (m *ScaledMask) ArcsecFromPixelCoords(p geometry.PixelCoord) geometry.Coord {
	return geometry.ArcsecFromPixel(p, m.shape, m.scales, m.origin)
}

// UnmaskedGrid returns the grid of every pixel centre, masked or not.
func (m *ScaledMask) UnmaskedGrid() grids.Grid {
	return grids.FromShape(m.shape, m.scales, 1, m.origin)
}

// MaskedGrid returns the grid of the unmasked pixel centres.
func (m *ScaledMask) MaskedGrid() grids.Grid {
	if m.maskedGrid == nil {
		m.maskedGrid = grids.FromMask(m.cells, m.shape, m.scales, 1, m.origin)
	}
	return m.maskedGrid
}

// MaskedSubGrid returns the grid of the unmasked sub-pixel centres at the
// mask's sub-grid resolution.
func (m *ScaledMask) MaskedSubGrid() grids.Grid {
	if m.maskedSubGrid == nil {
		m.maskedSubGrid = grids.FromMask(m.cells, m.shape, m.scales, m.subSize, m.origin)
	}
	return m.maskedSubGrid
}

// EdgeGrid returns the coordinates of the edge pixel centres.
func (m *ScaledMask) EdgeGrid() grids.Grid {
	return m.MaskedGrid().Pick(m.EdgeIndexes())
}

// BorderGrid returns the coordinates of the border pixel centres.
func (m *ScaledMask) BorderGrid() grids.Grid {
	return m.MaskedGrid().Pick(m.BorderIndexes())
}

// SubBorderGrid returns the coordinates of the border sub-pixels.
func (m *ScaledMask) SubBorderGrid() grids.Grid {
	return m.MaskedSubGrid().Pick(m.SubBorderIndexes())
}

// MaskCentre returns the midrange of the masked region's pixel centres.
func (m *ScaledMask) MaskCentre() geometry.Coord {
	return m.MaskedGrid().Centre()
}

// Inverted returns a scaled mask with every pixel flipped.
func (m *ScaledMask) Inverted() *ScaledMask {
	return m.derived(geometry.Inverted(m.cells), m.shape, m.scales, m.subSize)
}

// EdgeMask returns a scaled mask, at sub size 1, unmasking exactly the edge
// pixels.
func (m *ScaledMask) EdgeMask() *ScaledMask {
	return m.derived(m.pixelsToCells(m.EdgePixels()), m.shape, m.scales, 1)
}

// BorderMask returns a scaled mask, at sub size 1, unmasking exactly the
// border pixels.
func (m *ScaledMask) BorderMask() *ScaledMask {
	return m.derived(m.pixelsToCells(m.BorderPixels()), m.shape, m.scales, 1)
}

// WithSubSize returns a mask of the same cells, scales and origin at a
// different sub-grid resolution.
func (m *ScaledMask) WithSubSize(subSize int) (*ScaledMask, error) {
	if subSize < 1 {
		return nil, fmt.Errorf("sub-grid size %d: %w", subSize, ErrSubSize)
	}
	cells := make([]bool, len(m.cells))
	copy(cells, m.cells)
	return m.derived(cells, m.shape, m.scales, subSize), nil
}

// ResizedFromNewShape returns the mask copied into a grid of newShape. The
// copy window is centred on pixelCentre, or on the pixel containing
// arcsecCentre; with neither, the geometric centre. Scales, sub size and
// origin carry over unchanged.
func (m *ScaledMask) ResizedFromNewShape(newShape geometry.Shape, pixelCentre *geometry.PixelCoord, arcsecCentre *geometry.Coord) (*ScaledMask, error) {
	if pixelCentre != nil && arcsecCentre != nil {
		return nil, fmt.Errorf("resize to (%d, %d): %w", newShape.Rows, newShape.Cols, ErrTwoCentres)
	}
	centre := geometry.AutoCentre
	if pixelCentre != nil {
		centre = *pixelCentre
	}
	if arcsecCentre != nil {
		centre = m.PixelCoordsFromArcsec(*arcsecCentre)
	}
	return m.derived(geometry.ResizedCells(m.cells, m.shape, newShape, centre), newShape, m.scales, m.subSize), nil
}

// BinnedUp reduces the mask resolution by an integer factor; a binned pixel
// is unmasked when any cell of its block is. The pixel scales grow by the
// factor and the sub size carries over.
func (m *ScaledMask) BinnedUp(factor int) (*ScaledMask, error) {
	return m.binnedUp(factor, m.subSize)
}

// BinnedUpSubSize1 bins the mask up and drops the sub-grid resolution to 1.
func (m *ScaledMask) BinnedUpSubSize1(factor int) (*ScaledMask, error) {
	return m.binnedUp(factor, 1)
}

func (m *ScaledMask) binnedUp(factor, subSize int) (*ScaledMask, error) {
	if factor < 1 {
		return nil, fmt.Errorf("bin-up factor %d: %w", factor, ErrBinFactor)
	}
	cells, binnedShape := geometry.BinnedCells(m.cells, m.shape, factor)
	scales := geometry.Scales{Y: m.scales.Y * float64(factor), X: m.scales.X * float64(factor)}
	binned := m.derived(cells, binnedShape, scales, subSize)
	return binned, nil
}

// BlurringMask returns the mask of pixels whose flux blurs into the unmasked
// region under convolution with a kernel of the given shape, at sub size 1
// with scales and origin carried over.
func (m *ScaledMask) BlurringMask(kernelShape geometry.Shape) (*ScaledMask, error) {
	cells, err := geometry.BlurringCells(m.cells, m.shape, kernelShape)
	if err != nil {
		return nil, err
	}
	return m.derived(cells, m.shape, m.scales, 1), nil
}

// ZoomBounds returns the end-exclusive [y0, y1, x0, x1] pixel bounds of the
// square region framing the unmasked pixels. The bounds may extend past the
// grid when the masked region hugs a grid edge.
func (m *ScaledMask) ZoomBounds() ([4]int, error) {
	return geometry.ZoomBounds(m.cells, m.shape)
}

// ZoomCentre returns the centre of the unmasked region's bounding box in
// fractional pixel units.
func (m *ScaledMask) ZoomCentre() (float64, float64, error) {
	pixels := m.UnmaskedPixels()
	if len(pixels) == 0 {
		return 0, 0, fmt.Errorf("zoom centre: %w", geometry.ErrAllMasked)
	}
	rowMin, rowMax := pixels[0].Row, pixels[0].Row
	colMin, colMax := pixels[0].Col, pixels[0].Col
	for _, p := range pixels[1:] {
		if p.Row < rowMin {
			rowMin = p.Row
		}
		if p.Row > rowMax {
			rowMax = p.Row
		}
		if p.Col < colMin {
			colMin = p.Col
		}
		if p.Col > colMax {
			colMax = p.Col
		}
	}
	return (float64(rowMin) + float64(rowMax)) / 2.0, (float64(colMin) + float64(colMax)) / 2.0, nil
}

// ZoomOffsetPixels returns the offset of the zoom centre from the grid
// centre in fractional pixel units.
func (m *ScaledMask) ZoomOffsetPixels() (float64, float64, error) {
	zy, zx, err := m.ZoomCentre()
	if err != nil {
		return 0, 0, err
	}
	cy, cx := geometry.CentralPixel(m.shape)
	return zy - cy, zx - cx, nil
}

// ZoomOffsetArcsec returns the zoom centre's offset from the grid centre in
// arc-seconds, on the y-up x-right coordinate convention.
func (m *ScaledMask) ZoomOffsetArcsec() (geometry.Coord, error) {
	offY, offX, err := m.ZoomOffsetPixels()
	if err != nil {
		return geometry.Coord{}, err
	}
	return geometry.Coord{Y: -m.scales.Y * offY, X: m.scales.X * offX}, nil
}
