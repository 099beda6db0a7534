package geometry

// ResizedCells copies the mask into a grid of newShape. The copy window is
// centred on the given pixel of the source grid; AutoCentre selects the
// geometric centre, so growing a mask pads it evenly and shrinking it keeps
// the middle. Cells of the new grid with no source pixel are masked.
func ResizedCells(cells []bool, shape, newShape Shape, centre PixelCoord) []bool {
	cy, cx := centre.Row, centre.Col
	if centre == AutoCentre {
		cy, cx = shape.Rows/2, shape.Cols/2
	}
	rowMin := cy - newShape.Rows/2
	colMin := cx - newShape.Cols/2

	resized := Full(newShape)
	for r := 0; r < newShape.Rows; r++ {
		for c := 0; c < newShape.Cols; c++ {
			sr, sc := r+rowMin, c+colMin
			if sr < 0 || sr >= shape.Rows || sc < 0 || sc >= shape.Cols {
				continue
			}
			resized[r*newShape.Cols+c] = cells[sr*shape.Cols+sc]
		}
	}
	return resized
}

// BinnedCells reduces the mask resolution by an integer factor. The mask is
// first padded with masked cells, split evenly between the two ends of each
// axis, until both dimensions divide by the factor. A binned pixel is
// unmasked when any cell of its factor×factor block is unmasked. Returns the
// binned cells and their shape.
func BinnedCells(cells []bool, shape Shape, factor int) ([]bool, Shape) {
	padded, paddedShape := padForBinning(cells, shape, factor)
	binnedShape := Shape{Rows: paddedShape.Rows / factor, Cols: paddedShape.Cols / factor}
	binned := Full(binnedShape)
	for r := 0; r < paddedShape.Rows; r++ {
		for c := 0; c < paddedShape.Cols; c++ {
			if !padded[r*paddedShape.Cols+c] {
				binned[(r/factor)*binnedShape.Cols+c/factor] = false
			}
		}
	}
	return binned, binnedShape
}

func padForBinning(cells []bool, shape Shape, factor int) ([]bool, Shape) {
	padY, padX := 0, 0
	if shape.Rows%factor != 0 {
		padY = factor - shape.Rows%factor
	}
	if shape.Cols%factor != 0 {
		padX = factor - shape.Cols%factor
	}
	if padY == 0 && padX == 0 {
		return cells, shape
	}
	paddedShape := Shape{Rows: shape.Rows + padY, Cols: shape.Cols + padX}
	return ResizedCells(cells, shape, paddedShape, AutoCentre), paddedShape
}

// ZoomBounds returns the end-exclusive [y0, y1, x0, x1] bounds of the square
// region framing the unmasked pixels: the tight bounding box grown
// symmetrically along its shorter axis until both spans match. The bounds
// can extend past the grid when the bounding box hugs a grid edge. Fails on
// a fully masked grid.
func ZoomBounds(cells []bool, shape Shape) ([4]int, error) {
	rowMin, rowMax := shape.Rows, -1
	colMin, colMax := shape.Cols, -1
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			if r < rowMin {
				rowMin = r
			}
			if r > rowMax {
				rowMax = r
			}
			if c < colMin {
				colMin = c
			}
			if c > colMax {
				colMax = c
			}
		}
	}
	if rowMax < 0 {
		return [4]int{}, ErrAllMasked
	}

	rowSpan := rowMax - rowMin
	colSpan := colMax - colMin
	if rowSpan > colSpan {
		d := rowSpan - colSpan
		colMin -= d / 2
		colMax += d - d/2
	} else if colSpan > rowSpan {
		d := colSpan - rowSpan
		rowMin -= d / 2
		rowMax += d - d/2
	}
	return [4]int{rowMin, rowMax + 1, colMin, colMax + 1}, nil
}
