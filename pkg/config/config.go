// Package config provides configuration loading and management for lensgrid.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Geometry represents the geometry configuration loaded from YAML
type Geometry struct {
	// Grid parameters
	Grid struct {
		// RadialMinimum maps a profile identifier to the minimum radius, in
		// arc-seconds, that grid coordinates are relocated to before the
		// profile is evaluated. Profiles diverge at their centre; the
		// relocation keeps evaluations finite.
		RadialMinimum map[string]float64 `yaml:"radialMinimum"`

		// RadialMinimumDefault is the minimum radius used for profile
		// identifiers missing from the RadialMinimum map
		RadialMinimumDefault float64 `yaml:"radialMinimumDefault"`
	} `yaml:"grid"`

	// Mask parameters
	Mask struct {
		// SubSize is the default sub-pixel grid resolution of new masks
		SubSize int `yaml:"subSize"`

		// PixelScaleY is the default arc-second height of a pixel
		PixelScaleY float64 `yaml:"pixelScaleY"`

		// PixelScaleX is the default arc-second width of a pixel
		PixelScaleX float64 `yaml:"pixelScaleX"`

		// OriginY is the default arc-second y coordinate of the grid centre
		OriginY float64 `yaml:"originY"`

		// OriginX is the default arc-second x coordinate of the grid centre
		OriginX float64 `yaml:"originX"`
	} `yaml:"mask"`

	// Output parameters
	Output struct {
		// Verbose controls the level of report output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultGeometry returns a geometry configuration with default values
func DefaultGeometry() *Geometry {
	g := &Geometry{}

	// Set default radial minima per profile identifier
	g.Grid.RadialMinimum = map[string]float64{
		"point":       1.0e-4,
		"gaussian":    1.0e-8,
		"sersic":      1.0e-6,
		"exponential": 1.0e-6,
		"nfw":         1.0e-6,
		"isothermal":  1.0e-8,
		"power-law":   1.0e-8,
	}
	g.Grid.RadialMinimumDefault = 1.0e-8

	// Set default mask parameters
	g.Mask.SubSize = 2
	g.Mask.PixelScaleY = 0.1
	g.Mask.PixelScaleX = 0.1
	g.Mask.OriginY = 0.0
	g.Mask.OriginX = 0.0

	// Set default output parameters
	g.Output.Verbose = true

	return g
}

// RadialMinimum returns the minimum radius configured for the profile
// identifier, falling back to the default when the identifier is unknown.
func (g *Geometry) RadialMinimum(profileID string) float64 {
	if minimum, ok := g.Grid.RadialMinimum[profileID]; ok {
		return minimum
	}
	return g.Grid.RadialMinimumDefault
}

// LoadGeometry loads the geometry configuration from a YAML file
// If the file doesn't exist, it returns the default configuration
func LoadGeometry(configPath string) (*Geometry, error) {
	g := DefaultGeometry()

	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return g, nil
	}

	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return g, nil
}

// SaveGeometry saves the geometry configuration to a YAML file
func SaveGeometry(g *Geometry, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	// Marshal config to YAML
	data, err := yaml.Marshal(g)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	// Write to file
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultGeometryFile creates a default configuration file at the specified path
func CreateDefaultGeometryFile(configPath string) error {
	return SaveGeometry(DefaultGeometry(), configPath)
}
