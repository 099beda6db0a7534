// Package maskio reads and writes masks as 8-bit grayscale image files.
// Unmasked pixels are stored white and masked pixels black. Images carry no
// geometric metadata, so the pixel scales, sub-grid size and origin travel
// alongside the file and are passed back in when loading.
package maskio

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"

	"lensgrid/pkg/geometry"
	"lensgrid/pkg/mask"
)

// Save writes the mask's boolean grid as a grayscale image. The encoding
// follows the file extension; use a lossless format such as PNG when the
// mask must load back bit for bit.
func Save(m *mask.ScaledMask, path string) error {
	shape := m.Shape()
	img := image.NewGray(image.Rect(0, 0, shape.Cols, shape.Rows))
	for r := 0; r < shape.Rows; r++ {
		for c := 0; c < shape.Cols; c++ {
			if !m.At(r, c) {
				img.SetGray(c, r, color.Gray{Y: 255})
			}
		}
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save mask image: %w", err)
	}
	return nil
}

// Load reads a mask image and binarizes it at half intensity: pixels at or
// above mid-grey load as unmasked, the rest as masked.
func Load(path string, scales geometry.Scales, subSize int, origin geometry.Coord) (*mask.ScaledMask, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mask image: %w", err)
	}

	binary := segment.Threshold(img, 128)
	bounds := binary.Bounds()

	cells := make([][]bool, bounds.Dy())
	for r := range cells {
		cells[r] = make([]bool, bounds.Dx())
		for c := range cells[r] {
			cells[r][c] = binary.GrayAt(bounds.Min.X+c, bounds.Min.Y+r).Y == 0
		}
	}
	return mask.NewScaled(cells, scales, subSize, origin)
}
