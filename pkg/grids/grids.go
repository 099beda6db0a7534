// Package grids builds the arc-second coordinate grids of masked images: one
// (y, x) coordinate per unmasked pixel, or per sub-pixel at sub-grid
// resolution, listed in the canonical scan order shared with the mask index
// tables. Grid construction is deterministic; building the same grid twice
// yields identical coordinates.
package grids

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"lensgrid/pkg/config"
	"lensgrid/pkg/geometry"
)

// Grid is an ordered list of arc-second coordinates. The y coordinate
// decreases with row index and the x coordinate increases with column index,
// so the grid's first coordinate, belonging to the top-left unmasked
// (sub-)pixel, is the most-positive-y, most-negative-x entry.
type Grid []geometry.Coord

// FromShape returns the grid of every pixel of an unmasked grid of the given
// shape, at sub-grid resolution for subSize > 1.
func FromShape(shape geometry.Shape, scales geometry.Scales, subSize int, origin geometry.Coord) Grid {
	return FromMask(geometry.Unmasked(shape), shape, scales, subSize, origin)
}

// FromMask returns the grid of the unmasked pixels of a mask. Parents are
// visited in scan order; for subSize > 1 each parent contributes its
// subSize² sub-pixel centres consecutively, row-major within the pixel, each
// centred in its own equal division of the pixel.
func FromMask(cells []bool, shape geometry.Shape, scales geometry.Scales, subSize int, origin geometry.Coord) Grid {
	grid := make(Grid, 0, geometry.TotalUnmasked(cells)*subSize*subSize)
	cy, cx := geometry.CentralPixel(shape)
	subY := scales.Y / float64(subSize)
	subX := scales.X / float64(subSize)

	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			top := (cy-float64(r))*scales.Y + origin.Y + scales.Y/2
			left := (float64(c)-cx)*scales.X + origin.X - scales.X/2
			for sr := 0; sr < subSize; sr++ {
				for sc := 0; sc < subSize; sc++ {
					grid = append(grid, geometry.Coord{
						Y: top - (float64(sr)+0.5)*subY,
						X: left + (float64(sc)+0.5)*subX,
					})
				}
			}
		}
	}
	return grid
}

// Pick returns the sub-sequence of the grid at the given indexes, in the
// order given.
func (g Grid) Pick(indexes []int) Grid {
	picked := make(Grid, len(indexes))
	for i, idx := range indexes {
		picked[i] = g[idx]
	}
	return picked
}

// Ys returns the y coordinates of the grid.
func (g Grid) Ys() []float64 {
	ys := make([]float64, len(g))
	for i, coord := range g {
		ys[i] = coord.Y
	}
	return ys
}

// Xs returns the x coordinates of the grid.
func (g Grid) Xs() []float64 {
	xs := make([]float64, len(g))
	for i, coord := range g {
		xs[i] = coord.X
	}
	return xs
}

// Centre returns the midrange of the grid: the midpoint between the extreme
// coordinates along each axis. The centre of an empty grid is the zero
// coordinate.
func (g Grid) Centre() geometry.Coord {
	if len(g) == 0 {
		return geometry.Coord{}
	}
	ys, xs := g.Ys(), g.Xs()
	return geometry.Coord{
		Y: (floats.Max(ys) + floats.Min(ys)) / 2.0,
		X: (floats.Max(xs) + floats.Min(xs)) / 2.0,
	}
}

// Extremes returns the per-axis minima and maxima of the grid. The extremes
// of an empty grid are zero coordinates.
func (g Grid) Extremes() (min, max geometry.Coord) {
	if len(g) == 0 {
		return geometry.Coord{}, geometry.Coord{}
	}
	ys, xs := g.Ys(), g.Xs()
	min = geometry.Coord{Y: floats.Min(ys), X: floats.Min(xs)}
	max = geometry.Coord{Y: floats.Max(ys), X: floats.Max(xs)}
	return min, max
}

// Radii returns the radial distance of every coordinate from centre.
func (g Grid) Radii(centre geometry.Coord) []float64 {
	radii := make([]float64, len(g))
	for i, coord := range g {
		radii[i] = math.Hypot(coord.Y-centre.Y, coord.X-centre.X)
	}
	return radii
}

// RelocatedToRadialMinimum returns a grid whose coordinates all lie at least
// minRadius from centre. Coordinates closer than that are pushed out to the
// minimum radius along their own direction; a coordinate exactly at the
// centre, whose direction is undefined, moves to (minRadius, 0) relative to
// the centre. Mass and light profiles diverge at their centre, so their
// callers relocate grids before evaluating.
func (g Grid) RelocatedToRadialMinimum(centre geometry.Coord, minRadius float64) Grid {
	moved := make(Grid, len(g))
	for i, coord := range g {
		dy, dx := coord.Y-centre.Y, coord.X-centre.X
		radius := math.Hypot(dy, dx)
		switch {
		case radius == 0:
			moved[i] = geometry.Coord{Y: centre.Y + minRadius, X: centre.X}
		case radius < minRadius:
			scale := minRadius / radius
			moved[i] = geometry.Coord{Y: centre.Y + dy*scale, X: centre.X + dx*scale}
		default:
			moved[i] = coord
		}
	}
	return moved
}

// RelocatedToProfileMinimum relocates the grid to the radial minimum the
// geometry configuration assigns to the profile identifier.
func (g Grid) RelocatedToProfileMinimum(geom *config.Geometry, profileID string, centre geometry.Coord) Grid {
	return g.RelocatedToRadialMinimum(centre, geom.RadialMinimum(profileID))
}
