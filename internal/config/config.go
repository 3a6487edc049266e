// Package config loads softrast's render settings from a JSON file and
// merges command-line overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/render"
)

// Config holds all render settings.
type Config struct {
	// Canvas
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Background string `json:"background"` // "r,g,b"

	// Shading
	Light    [3]float64 `json:"light"`
	Color    string     `json:"color"` // "r,g,b"
	Strategy string     `json:"strategy"`

	// Output
	Scale  int    `json:"scale"`
	Output string `json:"output"`

	// Viewer
	FPS int `json:"fps"`
}

// Defaults applied by Resolve to fields left empty.
const (
	DefaultWidth      = 200
	DefaultHeight     = 200
	DefaultColor      = "255,255,255"
	DefaultBackground = "0,0,0"
	DefaultStrategy   = "barycentric"
	DefaultScale      = 1
	DefaultOutput     = "artifact.tga"
	DefaultFPS        = 30
)

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Width      int
	Height     int
	Light      [3]float64
	Color      string
	Background string
	Strategy   string
	Scale      int
	Output     string
	FPS        int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Light != [3]float64{} {
		c.Light = flags.Light
	}
	if flags.Color != "" {
		c.Color = flags.Color
	}
	if flags.Background != "" {
		c.Background = flags.Background
	}
	if flags.Strategy != "" {
		c.Strategy = flags.Strategy
	}
	if flags.Scale > 0 {
		c.Scale = flags.Scale
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}

	// Defaults
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Light == [3]float64{} {
		d := render.DefaultLightDir
		c.Light = [3]float64{d.X, d.Y, d.Z}
	}
	if c.Color == "" {
		c.Color = DefaultColor
	}
	if c.Background == "" {
		c.Background = DefaultBackground
	}
	if c.Strategy == "" {
		c.Strategy = DefaultStrategy
	}
	if c.Scale <= 0 {
		c.Scale = DefaultScale
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
}

// Validate reports every setting that cannot be rendered with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Light == [3]float64{} {
		errs = append(errs, errors.New("light direction must be non-zero"))
	}
	if _, err := ParseRGB(c.Color); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if _, err := ParseRGB(c.Background); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if _, err := render.ParseFillStrategy(c.Strategy); err != nil {
		errs = append(errs, err)
	}
	if c.Scale < 1 {
		errs = append(errs, fmt.Errorf("scale %d must be at least 1", c.Scale))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// LightDir returns the light direction as a vector.
func (c Config) LightDir() math3d.Vec3 {
	return math3d.V3(c.Light[0], c.Light[1], c.Light[2])
}

// BaseColor returns the parsed shading color. Call Validate first.
func (c Config) BaseColor() render.Color {
	col, _ := ParseRGB(c.Color)
	return col
}

// BackgroundColor returns the parsed background color. Call Validate first.
func (c Config) BackgroundColor() render.Color {
	col, _ := ParseRGB(c.Background)
	return col
}

// FillStrategy returns the parsed fill strategy. Call Validate first.
func (c Config) FillStrategy() render.FillStrategy {
	s, _ := render.ParseFillStrategy(c.Strategy)
	return s
}

// ParseRGB parses an opaque color written as "r,g,b" with components in
// 0-255.
func ParseRGB(s string) (render.Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return render.Color{}, fmt.Errorf("color %q: want r,g,b", s)
	}
	var c [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return render.Color{}, fmt.Errorf("color %q: component %q: want 0-255", s, p)
		}
		c[i] = uint8(v)
	}
	return render.RGB(c[0], c[1], c[2]), nil
}

// ParseVec3 parses a vector written as "x,y,z".
func ParseVec3(s string) ([3]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return [3]float64{}, fmt.Errorf("vector %q: want x,y,z", s)
	}
	var v [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return [3]float64{}, fmt.Errorf("vector %q: %w", s, err)
		}
		v[i] = f
	}
	return v, nil
}
