package geometry

import "fmt"

// EdgeIndexes returns the 1D indexes (positions in the unmasked scan order)
// of every unmasked pixel that touches the mask edge: at least one of its
// four orthogonal neighbours is masked or lies outside the grid.
func EdgeIndexes(cells []bool, shape Shape) []int {
	var edges []int
	index := 0
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			if isEdge(cells, shape, r, c) {
				edges = append(edges, index)
			}
			index++
		}
	}
	return edges
}

func isEdge(cells []bool, shape Shape, r, c int) bool {
	if r == 0 || r == shape.Rows-1 || c == 0 || c == shape.Cols-1 {
		return true
	}
	return cells[(r-1)*shape.Cols+c] || cells[(r+1)*shape.Cols+c] ||
		cells[r*shape.Cols+c-1] || cells[r*shape.Cols+c+1]
}

// BorderIndexes returns the 1D indexes of the edge pixels that lie on the
// outer boundary of the unmasked region. An edge pixel next to a masked hole
// enclosed by the unmasked region is not a border pixel; the outer boundary
// is found by flood filling the masked cells that connect to the grid edge.
func BorderIndexes(cells []bool, shape Shape) []int {
	exterior := exteriorCells(cells, shape)
	var border []int
	index := 0
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			if isBorder(exterior, shape, r, c) {
				border = append(border, index)
			}
			index++
		}
	}
	return border
}

func isBorder(exterior []bool, shape Shape, r, c int) bool {
	if r == 0 || r == shape.Rows-1 || c == 0 || c == shape.Cols-1 {
		return true
	}
	return exterior[(r-1)*shape.Cols+c] || exterior[(r+1)*shape.Cols+c] ||
		exterior[r*shape.Cols+c-1] || exterior[r*shape.Cols+c+1]
}

// exteriorCells marks the masked cells reachable from outside the grid with
// a breadth-first flood fill seeded on the grid boundary. Diagonal steps are
// allowed so the fill wraps around corners of the unmasked region; masked
// holes enclosed by unmasked pixels stay unmarked.
func exteriorCells(cells []bool, shape Shape) []bool {
	exterior := make([]bool, len(cells))
	queue := make([]PixelCoord, 0, 2*(shape.Rows+shape.Cols))

	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if r != 0 && r != shape.Rows-1 && c != 0 && c != shape.Cols-1 {
				continue
			}
			if idx := r*shape.Cols + c; cells[idx] && !exterior[idx] {
				exterior[idx] = true
				queue = append(queue, PixelCoord{Row: r, Col: c})
			}
		}
	}

	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := p.Row+dr, p.Col+dc
				if nr < 0 || nr >= shape.Rows || nc < 0 || nc >= shape.Cols {
					continue
				}
				if idx := nr*shape.Cols + nc; cells[idx] && !exterior[idx] {
					exterior[idx] = true
					queue = append(queue, PixelCoord{Row: nr, Col: nc})
				}
			}
		}
	}
	return exterior
}

// BlurringCells returns the mask of pixels whose flux blurs into the unmasked
// region under convolution with a kernel of the given shape: a masked pixel
// becomes unmasked in the result when it lies within half a kernel footprint,
// along each axis independently, of any unmasked pixel. The kernel window is
// clipped where it overhangs the grid. Kernels without a central pixel are
// rejected.
func BlurringCells(cells []bool, shape Shape, kernelShape Shape) ([]bool, error) {
	if kernelShape.Rows%2 == 0 || kernelShape.Cols%2 == 0 {
		return nil, fmt.Errorf("blurring mask for kernel shape (%d, %d): %w",
			kernelShape.Rows, kernelShape.Cols, ErrEvenKernelShape)
	}
	blurring := Full(shape)
	halfY, halfX := kernelShape.Rows/2, kernelShape.Cols/2
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			for dr := -halfY; dr <= halfY; dr++ {
				for dc := -halfX; dc <= halfX; dc++ {
					nr, nc := r+dr, c+dc
					if nr < 0 || nr >= shape.Rows || nc < 0 || nc >= shape.Cols {
						continue
					}
					if cells[nr*shape.Cols+nc] {
						blurring[nr*shape.Cols+nc] = false
					}
				}
			}
		}
	}
	return blurring, nil
}

// SubPixelCoords lists the 2D coordinate, on the sub-pixel resolution grid,
// of every sub-pixel of every unmasked pixel. Parents are visited in scan
// order and each contributes its subSize² sub-pixels consecutively, again in
// row-major order, so a sub-pixel's position in the list is its sub 1D index.
func SubPixelCoords(cells []bool, shape Shape, subSize int) []PixelCoord {
	coords := make([]PixelCoord, 0, TotalUnmasked(cells)*subSize*subSize)
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if cells[r*shape.Cols+c] {
				continue
			}
			for sr := 0; sr < subSize; sr++ {
				for sc := 0; sc < subSize; sc++ {
					coords = append(coords, PixelCoord{Row: r*subSize + sr, Col: c*subSize + sc})
				}
			}
		}
	}
	return coords
}

// ParentIndexes maps every sub-pixel 1D index to the 1D index of the
// unmasked pixel containing it.
func ParentIndexes(cells []bool, subSize int) []int {
	parents := make([]int, TotalUnmasked(cells)*subSize*subSize)
	for i := range parents {
		parents[i] = i / (subSize * subSize)
	}
	return parents
}

// ExpandedSubCells scales the mask up to sub-pixel resolution; each pixel
// becomes a uniform subSize×subSize block.
func ExpandedSubCells(cells []bool, shape Shape, subSize int) []bool {
	cols := shape.Cols * subSize
	expanded := make([]bool, shape.Rows*subSize*cols)
	for r := 0; r < shape.Rows*subSize; r++ {
		for c := 0; c < cols; c++ {
			expanded[r*cols+c] = cells[(r/subSize)*shape.Cols+c/subSize]
		}
	}
	return expanded
}
