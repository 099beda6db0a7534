package geometry

import "math"

// Membership builders evaluate each pixel centre against an analytic shape
// and unmask the pixels that fall inside it, boundary included. Centres are
// measured in arc-seconds from the centre of the grid, so a shape centre of
// (0, 0) places the shape in the middle of the grid regardless of the grid's
// own origin metadata.

// Circular returns cells unmasking every pixel whose centre lies within
// radius arc-seconds of centre.
func Circular(shape Shape, scales Scales, radius float64, centre Coord) []bool {
	cells := Full(shape)
	cy, cx := CentralPixel(shape)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			dy := (cy-float64(r))*scales.Y - centre.Y
			dx := (float64(c)-cx)*scales.X - centre.X
			if math.Sqrt(dy*dy+dx*dx) <= radius {
				cells[r*shape.Cols+c] = false
			}
		}
	}
	return cells
}

// CircularAnnular returns cells unmasking the pixels whose centres lie
// between the inner and outer radii of an annulus.
func CircularAnnular(shape Shape, scales Scales, innerRadius, outerRadius float64, centre Coord) []bool {
	cells := Full(shape)
	cy, cx := CentralPixel(shape)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			dy := (cy-float64(r))*scales.Y - centre.Y
			dx := (float64(c)-cx)*scales.X - centre.X
			rad := math.Sqrt(dy*dy + dx*dx)
			if rad >= innerRadius && rad <= outerRadius {
				cells[r*shape.Cols+c] = false
			}
		}
	}
	return cells
}

// CircularAntiAnnular returns cells with two unmasked regions: the disk
// inside innerRadius and the annulus between outerRadius and outerRadius2.
// The band separating them and everything beyond outerRadius2 stay masked.
func CircularAntiAnnular(shape Shape, scales Scales, innerRadius, outerRadius, outerRadius2 float64, centre Coord) []bool {
	cells := Full(shape)
	cy, cx := CentralPixel(shape)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			dy := (cy-float64(r))*scales.Y - centre.Y
			dx := (float64(c)-cx)*scales.X - centre.X
			rad := math.Sqrt(dy*dy + dx*dx)
			if rad <= innerRadius || (rad >= outerRadius && rad <= outerRadius2) {
				cells[r*shape.Cols+c] = false
			}
		}
	}
	return cells
}

// Elliptical returns cells unmasking the pixels whose centres lie within an
// ellipse of the given major-axis radius. The axis ratio is the minor over
// major axis length and phi rotates the major axis counter-clockwise from
// the positive x-axis, in degrees.
func Elliptical(shape Shape, scales Scales, majorAxisRadius, axisRatio, phi float64, centre Coord) []bool {
	cells := Full(shape)
	cy, cx := CentralPixel(shape)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			dy := (cy-float64(r))*scales.Y - centre.Y
			dx := (float64(c)-cx)*scales.X - centre.X
			if ellipticalRadius(dy, dx, axisRatio, phi) <= majorAxisRadius {
				cells[r*shape.Cols+c] = false
			}
		}
	}
	return cells
}

// EllipticalAnnular returns cells unmasking the pixels outside an inner
// ellipse and inside an outer ellipse, each with its own axis ratio and
// rotation.
func EllipticalAnnular(shape Shape, scales Scales,
	innerMajorAxisRadius, innerAxisRatio, innerPhi float64,
	outerMajorAxisRadius, outerAxisRatio, outerPhi float64, centre Coord) []bool {

	cells := Full(shape)
	cy, cx := CentralPixel(shape)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			dy := (cy-float64(r))*scales.Y - centre.Y
			dx := (float64(c)-cx)*scales.X - centre.X
			inner := ellipticalRadius(dy, dx, innerAxisRatio, innerPhi)
			outer := ellipticalRadius(dy, dx, outerAxisRatio, outerPhi)
			if inner >= innerMajorAxisRadius && outer <= outerMajorAxisRadius {
				cells[r*shape.Cols+c] = false
			}
		}
	}
	return cells
}

// ellipticalRadius maps the offset (dy, dx) into the rotated frame of an
// ellipse and returns the major-axis radius at which the ellipse's boundary
// would pass through the point.
func ellipticalRadius(dy, dx, axisRatio, phiDegrees float64) float64 {
	radius := math.Sqrt(dy*dy + dx*dx)
	theta := math.Atan2(dy, dx) - phiDegrees*math.Pi/180.0
	yEll := radius * math.Sin(theta)
	xEll := radius * math.Cos(theta)
	return math.Sqrt(xEll*xEll + (yEll/axisRatio)*(yEll/axisRatio))
}
