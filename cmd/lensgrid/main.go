package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"lensgrid/pkg/config"
	"lensgrid/pkg/geometry"
	"lensgrid/pkg/mask"
	"lensgrid/pkg/maskio"
)

func main() {
	// Parse command line arguments
	geometryKind := flag.String("geometry", "circular", "Mask geometry: unmasked, circular, annular, anti-annular, elliptical, elliptical-annular")
	rows := flag.Int("rows", 101, "Number of grid rows")
	cols := flag.Int("cols", 101, "Number of grid columns")
	pixelScaleY := flag.Float64("pixel-scale-y", 0.1, "Pixel height in arc-seconds")
	pixelScaleX := flag.Float64("pixel-scale-x", 0.1, "Pixel width in arc-seconds")
	subSize := flag.Int("sub-size", 2, "Sub-pixel grid resolution per unmasked pixel")
	originY := flag.Float64("origin-y", 0.0, "Arc-second y coordinate of the grid centre")
	originX := flag.Float64("origin-x", 0.0, "Arc-second x coordinate of the grid centre")
	centreY := flag.Float64("centre-y", 0.0, "Arc-second y offset of the geometry centre from the grid centre")
	centreX := flag.Float64("centre-x", 0.0, "Arc-second x offset of the geometry centre from the grid centre")
	radius := flag.Float64("radius", 3.0, "Radius of circular and major axis of elliptical geometries, in arc-seconds")
	inner := flag.Float64("inner", 1.0, "Inner radius of annular geometries, in arc-seconds")
	outer := flag.Float64("outer", 3.0, "Outer radius of annular geometries, in arc-seconds")
	outer2 := flag.Float64("outer2", 0.0, "Second outer radius of the anti-annular geometry (0: frame the whole grid)")
	axisRatio := flag.Float64("axis-ratio", 1.0, "Minor-to-major axis ratio of elliptical geometries")
	phi := flag.Float64("phi", 0.0, "Rotation angle of elliptical geometries, in degrees counter-clockwise from the x axis")
	kernelSize := flag.Int("kernel", 0, "Odd kernel size for the blurring-mask report (0 disables)")
	binUp := flag.Int("bin-up", 0, "Bin the mask up by this factor before reporting (0 disables)")
	outPath := flag.String("out", "", "Write the mask as a grayscale image to this path")
	configPath := flag.String("config", "", "YAML geometry configuration file (default: built-in defaults)")
	writeConfig := flag.String("write-config", "", "Write the default geometry configuration to this path and exit")
	profile := flag.String("profile", "", "Profile identifier for the radial-minimum relocation report")
	flag.Parse()

	if *writeConfig != "" {
		if err := config.CreateDefaultGeometryFile(*writeConfig); err != nil {
			log.Fatalf("Failed to write default configuration: %v", err)
		}
		fmt.Printf("Default geometry configuration written to: %s\n", *writeConfig)
		return
	}

	// Validate inputs
	if *rows < 1 || *cols < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.LoadGeometry(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !flagProvided("sub-size") {
		*subSize = cfg.Mask.SubSize
	}
	if !flagProvided("pixel-scale-y") {
		*pixelScaleY = cfg.Mask.PixelScaleY
	}
	if !flagProvided("pixel-scale-x") {
		*pixelScaleX = cfg.Mask.PixelScaleX
	}
	if !flagProvided("origin-y") {
		*originY = cfg.Mask.OriginY
	}
	if !flagProvided("origin-x") {
		*originX = cfg.Mask.OriginX
	}

	fmt.Println("================================")
	fmt.Println("LENSGRID MASKED GRID GEOMETRY FOR GRAVITATIONAL LENS MODELLING")
	fmt.Println("================================")

	shape := geometry.Shape{Rows: *rows, Cols: *cols}
	scales := geometry.Scales{Y: *pixelScaleY, X: *pixelScaleX}
	origin := geometry.Coord{Y: *originY, X: *originX}
	centre := geometry.Coord{Y: *centreY, X: *centreX}

	fmt.Printf("Building %s mask...\n", *geometryKind)
	startTime := time.Now()

	var m *mask.ScaledMask
	switch *geometryKind {
	case "unmasked":
		m, err = mask.UnmaskedScaled(shape, scales, *subSize, origin, false)
	case "circular":
		m, err = mask.Circular(shape, scales, *subSize, *radius, centre, origin)
	case "annular":
		m, err = mask.CircularAnnular(shape, scales, *subSize, *inner, *outer, centre, origin)
	case "anti-annular":
		second := *outer2
		if second <= 0 {
			height, width := float64(*rows)*(*pixelScaleY), float64(*cols)*(*pixelScaleX)
			second = math.Hypot(height, width) / 2.0
		}
		m, err = mask.CircularAntiAnnular(shape, scales, *subSize, *inner, *outer, second, centre, origin)
	case "elliptical":
		m, err = mask.Elliptical(shape, scales, *subSize, *radius, *axisRatio, *phi, centre, origin)
	case "elliptical-annular":
		m, err = mask.EllipticalAnnular(shape, scales, *subSize,
			*inner, *axisRatio, *phi, *outer, *axisRatio, *phi, centre, origin)
	default:
		log.Fatalf("Unknown geometry %q (expected unmasked, circular, annular, anti-annular, elliptical or elliptical-annular)", *geometryKind)
	}
	if err != nil {
		log.Fatalf("Failed to build mask: %v", err)
	}

	if *binUp > 0 {
		binned, err := m.BinnedUp(*binUp)
		if err != nil {
			log.Fatalf("Failed to bin mask up: %v", err)
		}
		fmt.Printf("Binned mask up by factor %d: %dx%d -> %dx%d pixels\n",
			*binUp, shape.Rows, shape.Cols, binned.Shape().Rows, binned.Shape().Cols)
		m = binned
	}

	fmt.Printf("Mask built in %v\n", time.Since(startTime))
	printReport(m, cfg)

	if *profile != "" {
		printRelocationReport(m, cfg, *profile)
	}

	if *kernelSize > 0 {
		blurring, err := m.BlurringMask(geometry.Shape{Rows: *kernelSize, Cols: *kernelSize})
		if err != nil {
			log.Fatalf("Failed to build blurring mask: %v", err)
		}
		fmt.Printf("\nBlurring mask for a %dx%d kernel:\n", *kernelSize, *kernelSize)
		fmt.Printf("================================\n")
		fmt.Printf("Masked pixels blurring into the mask: %d\n", blurring.PixelsInMask())
	}

	if *outPath != "" {
		if err := maskio.Save(m, *outPath); err != nil {
			log.Fatalf("Failed to save mask image: %v", err)
		}
		fmt.Printf("\nMask image saved to: %s\n", *outPath)
	}
}

// flagProvided reports whether the named flag was given on the command line,
// so configuration defaults only fill in flags the user left untouched.
func flagProvided(name string) bool {
	provided := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			provided = true
		}
	})
	return provided
}

func printReport(m *mask.ScaledMask, cfg *config.Geometry) {
	shape := m.Shape()
	scales := m.PixelScales()
	height, width := m.ShapeArcsec()

	fmt.Printf("\nMask geometry summary:\n")
	fmt.Printf("================================\n")
	fmt.Printf("Grid shape:          %d x %d pixels\n", shape.Rows, shape.Cols)
	fmt.Printf("Pixel scales:        (%.4f, %.4f) arcsec/pixel\n", scales.Y, scales.X)
	fmt.Printf("Grid origin:         (%.4f, %.4f) arcsec\n", m.Origin().Y, m.Origin().X)
	fmt.Printf("Sub-grid size:       %d (%d sub-pixels per pixel)\n", m.SubSize(), m.SubLength())
	fmt.Printf("Arcsec extent:       %.4f x %.4f arcsec\n", height, width)
	fmt.Printf("Arcsec minima:       (%.4f, %.4f)\n", m.ArcsecMinima().Y, m.ArcsecMinima().X)
	fmt.Printf("Arcsec maxima:       (%.4f, %.4f)\n", m.ArcsecMaxima().Y, m.ArcsecMaxima().X)
	fmt.Printf("Pixels in mask:      %d of %d\n", m.PixelsInMask(), shape.Pixels())
	fmt.Printf("Sub-pixels in mask:  %d\n", m.PixelsInMask()*m.SubLength())

	if m.PixelsInMask() == 0 {
		fmt.Println("\nThe mask has no unmasked pixels; skipping the radial and zoom reports.")
		return
	}

	fmt.Printf("Edge pixels:         %d\n", len(m.EdgeIndexes()))
	fmt.Printf("Border pixels:       %d\n", len(m.BorderIndexes()))

	maskCentre := m.MaskCentre()
	radii := m.MaskedGrid().Radii(maskCentre)
	fmt.Printf("\nRadial distribution of unmasked pixel centres:\n")
	fmt.Printf("================================\n")
	fmt.Printf("Mask centre:         (%.4f, %.4f) arcsec\n", maskCentre.Y, maskCentre.X)
	fmt.Printf("Mean radius:         %.4f arcsec\n", stat.Mean(radii, nil))
	fmt.Printf("Radius stddev:       %.4f arcsec\n", stat.StdDev(radii, nil))
	fmt.Printf("Radius range:        %.4f to %.4f arcsec\n", floats.Min(radii), floats.Max(radii))

	bounds, err := m.ZoomBounds()
	if err != nil {
		log.Fatalf("Failed to compute zoom bounds: %v", err)
	}
	offset, err := m.ZoomOffsetArcsec()
	if err != nil {
		log.Fatalf("Failed to compute zoom offset: %v", err)
	}
	fmt.Printf("\nZoom region framing the mask:\n")
	fmt.Printf("================================\n")
	fmt.Printf("Pixel bounds:        rows [%d, %d), columns [%d, %d)\n",
		bounds[0], bounds[1], bounds[2], bounds[3])
	fmt.Printf("Offset from centre:  (%.4f, %.4f) arcsec\n", offset.Y, offset.X)

	if cfg.Output.Verbose {
		fmt.Printf("\nPlot ticks spanning the mask:\n")
		fmt.Printf("================================\n")
		fmt.Printf("Y ticks: %.4f\n", m.YTicks())
		fmt.Printf("X ticks: %.4f\n", m.XTicks())
	}
}

func printRelocationReport(m *mask.ScaledMask, cfg *config.Geometry, profile string) {
	if m.PixelsInMask() == 0 {
		return
	}
	maskCentre := m.MaskCentre()
	grid := m.MaskedGrid()
	relocated := grid.RelocatedToProfileMinimum(cfg, profile, maskCentre)

	moved := 0
	for i := range grid {
		if relocated[i] != grid[i] {
			moved++
		}
	}
	fmt.Printf("\nRadial-minimum relocation for profile %q:\n", profile)
	fmt.Printf("================================\n")
	fmt.Printf("Radial minimum:      %g arcsec\n", cfg.RadialMinimum(profile))
	fmt.Printf("Coordinates moved:   %d of %d\n", moved, len(grid))
}
