package geometry

import "testing"

func unmaskedSet(cells []bool, shape Shape) map[PixelCoord]bool {
	set := make(map[PixelCoord]bool)
	for _, p := range UnmaskedPixelCoords(cells, shape) {
		set[p] = true
	}
	return set
}

// TestCircular verifies the radius membership test, boundary included.
func TestCircular(t *testing.T) {
	scales := Scales{Y: 1.0, X: 1.0}

	cells := Circular(Shape{3, 3}, scales, 0.5, Coord{})
	if n := TotalUnmasked(cells); n != 1 {
		t.Errorf("Radius 0.5: expected 1 unmasked pixel, got %d", n)
	}

	cells = Circular(Shape{3, 3}, scales, 1.0, Coord{})
	set := unmaskedSet(cells, Shape{3, 3})
	want := []PixelCoord{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}}
	if len(set) != len(want) {
		t.Fatalf("Radius 1.0: expected %d unmasked pixels, got %d", len(want), len(set))
	}
	for _, p := range want {
		if !set[p] {
			t.Errorf("Radius 1.0: expected pixel %v unmasked", p)
		}
	}

	cells = Circular(Shape{5, 5}, scales, 2.0, Coord{})
	if n := TotalUnmasked(cells); n != 13 {
		t.Errorf("Radius 2.0: expected 13 unmasked pixels, got %d", n)
	}
}

// TestCircularOffCentre verifies that the shape centre is measured in
// arc-seconds from the middle of the grid.
func TestCircularOffCentre(t *testing.T) {
	cells := Circular(Shape{3, 3}, Scales{Y: 1.0, X: 1.0}, 0.5, Coord{Y: 1.0, X: 0.0})
	set := unmaskedSet(cells, Shape{3, 3})
	if len(set) != 1 || !set[PixelCoord{0, 1}] {
		t.Errorf("Expected only the top-centre pixel unmasked, got %v", set)
	}

	cells = Circular(Shape{3, 3}, Scales{Y: 1.0, X: 1.0}, 0.5, Coord{Y: 0.0, X: -1.0})
	set = unmaskedSet(cells, Shape{3, 3})
	if len(set) != 1 || !set[PixelCoord{1, 0}] {
		t.Errorf("Expected only the middle-left pixel unmasked, got %v", set)
	}
}

// TestCircularAnnular verifies that both annulus boundaries are inclusive.
func TestCircularAnnular(t *testing.T) {
	shape := Shape{5, 5}
	cells := CircularAnnular(shape, Scales{Y: 1.0, X: 1.0}, 1.0, 2.0, Coord{})

	if n := TotalUnmasked(cells); n != 12 {
		t.Errorf("Expected 12 unmasked pixels, got %d", n)
	}

	set := unmaskedSet(cells, shape)
	if set[PixelCoord{2, 2}] {
		t.Error("Centre pixel should stay masked")
	}
	if !set[PixelCoord{1, 2}] {
		t.Error("Pixel on the inner radius should be unmasked")
	}
	if !set[PixelCoord{0, 2}] {
		t.Error("Pixel on the outer radius should be unmasked")
	}
	if set[PixelCoord{0, 0}] {
		t.Error("Corner pixel beyond the outer radius should stay masked")
	}
}

// TestCircularAntiAnnular verifies the two unmasked regions and the masked
// band separating them.
func TestCircularAntiAnnular(t *testing.T) {
	shape := Shape{7, 7}
	cells := CircularAntiAnnular(shape, Scales{Y: 1.0, X: 1.0}, 1.0, 2.0, 3.0, Coord{})
	set := unmaskedSet(cells, shape)

	if !set[PixelCoord{3, 3}] {
		t.Error("Centre pixel should be unmasked")
	}
	if !set[PixelCoord{2, 3}] {
		t.Error("Pixel on the inner radius should be unmasked")
	}
	if set[PixelCoord{2, 2}] {
		t.Error("Pixel in the separating band should stay masked")
	}
	if !set[PixelCoord{1, 3}] {
		t.Error("Pixel on the second region's inner boundary should be unmasked")
	}
	if !set[PixelCoord{0, 3}] {
		t.Error("Pixel on the outermost radius should be unmasked")
	}
	if set[PixelCoord{0, 0}] {
		t.Error("Corner pixel beyond the outermost radius should stay masked")
	}

	if n := TotalUnmasked(cells); n != 25 {
		t.Errorf("Expected 25 unmasked pixels, got %d", n)
	}
}

// TestElliptical verifies the axis ratio squeezes the minor axis and that
// phi rotates the major axis counter-clockwise.
func TestElliptical(t *testing.T) {
	shape := Shape{3, 5}
	scales := Scales{Y: 1.0, X: 1.0}

	cells := Elliptical(shape, scales, 1.3, 0.1, 0.0, Coord{})
	set := unmaskedSet(cells, shape)
	want := []PixelCoord{{1, 1}, {1, 2}, {1, 3}}
	if len(set) != len(want) {
		t.Fatalf("phi=0: expected %d unmasked pixels, got %v", len(want), set)
	}
	for _, p := range want {
		if !set[p] {
			t.Errorf("phi=0: expected pixel %v unmasked", p)
		}
	}

	cells = Elliptical(Shape{5, 5}, scales, 1.3, 0.1, 90.0, Coord{})
	set = unmaskedSet(cells, Shape{5, 5})
	want = []PixelCoord{{1, 2}, {2, 2}, {3, 2}}
	if len(set) != len(want) {
		t.Fatalf("phi=90: expected %d unmasked pixels, got %v", len(want), set)
	}
	for _, p := range want {
		if !set[p] {
			t.Errorf("phi=90: expected pixel %v unmasked", p)
		}
	}
}

// TestEllipticalAnnular verifies that unit axis ratios reduce the elliptical
// annulus to the circular one.
func TestEllipticalAnnular(t *testing.T) {
	shape := Shape{7, 7}
	scales := Scales{Y: 1.0, X: 1.0}

	elliptical := EllipticalAnnular(shape, scales, 1.0, 1.0, 0.0, 3.0, 1.0, 0.0, Coord{})
	circular := CircularAnnular(shape, scales, 1.0, 3.0, Coord{})

	for i := range circular {
		if elliptical[i] != circular[i] {
			t.Fatalf("Cell %d: elliptical annulus with unit axis ratios should match circular", i)
		}
	}
}

// TestEllipticalAnnularRotated verifies an annulus with a squeezed, rotated
// outer ellipse keeps only pixels along the rotated major axis.
func TestEllipticalAnnularRotated(t *testing.T) {
	shape := Shape{7, 7}
	scales := Scales{Y: 1.0, X: 1.0}

	cells := EllipticalAnnular(shape, scales, 1.0, 1.0, 0.0, 3.0, 0.1, 90.0, Coord{})
	set := unmaskedSet(cells, shape)

	if set[PixelCoord{3, 3}] {
		t.Error("Centre pixel should stay masked")
	}
	if !set[PixelCoord{1, 3}] || !set[PixelCoord{5, 3}] {
		t.Error("Pixels along the vertical major axis should be unmasked")
	}
	if set[PixelCoord{3, 1}] || set[PixelCoord{3, 5}] {
		t.Error("Pixels along the squeezed horizontal axis should stay masked")
	}
}
