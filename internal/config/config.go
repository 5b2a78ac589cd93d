// Package config handles scene configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// Config holds all scene settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Text     TextConfig     `yaml:"text"`
	Donuts   DonutConfig    `yaml:"donuts"`
	Camera   CameraConfig   `yaml:"camera"`
	Assets   AssetsConfig   `yaml:"assets"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int        `yaml:"width"`
	Height        int        `yaml:"height"`
	Fullscreen    bool       `yaml:"fullscreen"`
	VSync         bool       `yaml:"vsync"`
	MaxPixelRatio float32    `yaml:"max_pixel_ratio"`
	ClearColor    [3]float32 `yaml:"clear_color"`
}

// TextConfig holds the initial text lines and the extrusion style shared by all of them.
type TextConfig struct {
	FirstLine  string `yaml:"first_line"`
	SecondLine string `yaml:"second_line"`
	ThirdLine  string `yaml:"third_line"`

	Size           float32 `yaml:"size"`
	Depth          float32 `yaml:"depth"`
	CurveSegments  int     `yaml:"curve_segments"`
	BevelEnabled   bool    `yaml:"bevel_enabled"`
	BevelThickness float32 `yaml:"bevel_thickness"`
	BevelSize      float32 `yaml:"bevel_size"`
	BevelOffset    float32 `yaml:"bevel_offset"`
	BevelSegments  int     `yaml:"bevel_segments"`
	LineSpacing    float32 `yaml:"line_spacing"` // vertical distance between line centers
}

// DonutConfig holds the torus scatter settings.
type DonutConfig struct {
	Count           int     `yaml:"count"`
	Spread          float32 `yaml:"spread"` // edge length of the cube positions are drawn from
	Seed            int64   `yaml:"seed"`   // 0 picks a time-based seed
	Radius          float32 `yaml:"radius"`
	Tube            float32 `yaml:"tube"`
	RadialSegments  int     `yaml:"radial_segments"`
	TubularSegments int     `yaml:"tubular_segments"`
}

// CameraConfig holds the perspective camera and orbit control settings.
type CameraConfig struct {
	FOV           float32    `yaml:"fov"` // vertical, degrees
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	Position      [3]float32 `yaml:"position"`
	EnableDamping bool       `yaml:"enable_damping"`
	DampingFactor float32    `yaml:"damping_factor"`
}

// AssetsConfig holds asset file paths.
type AssetsConfig struct {
	Matcap string `yaml:"matcap"` // PNG, JPEG, BMP or WebP; empty uses the procedural matcap
	Font   string `yaml:"font"`   // bundled name, typeface JSON or TTF/OTF; empty uses Go Regular

	MaxMatcapSize int  `yaml:"max_matcap_size"` // larger matcaps are downscaled; 0 keeps the original
	WatchMatcap   bool `yaml:"watch_matcap"`    // reload the matcap when its file changes

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// minCurveSegments is the fewest points per curve that keep flattened
// glyph contours from folding over themselves.
const minCurveSegments = 3

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MaxPixelRatio: 2,
			ClearColor:    [3]float32{0, 0, 0},
		},
		Text: TextConfig{
			FirstLine:      "Alex Anderson",
			SecondLine:     "Software Developer",
			ThirdLine:      "Creative Designer",
			Size:           0.5,
			Depth:          0.2,
			CurveSegments:  5,
			BevelEnabled:   true,
			BevelThickness: 0.03,
			BevelSize:      0.02,
			BevelOffset:    0,
			BevelSegments:  4,
			LineSpacing:    0.7,
		},
		Donuts: DonutConfig{
			Count:           100,
			Spread:          11,
			Seed:            0,
			Radius:          0.3,
			Tube:            0.2,
			RadialSegments:  30,
			TubularSegments: 45,
		},
		Camera: CameraConfig{
			FOV:           75,
			Near:          0.1,
			Far:           100,
			Position:      [3]float32{1, 1, 2},
			EnableDamping: true,
			DampingFactor: 0.05,
		},
		Assets: AssetsConfig{
			Matcap: "",
			Font:   "",

			MaxMatcapSize: 1024,
			WatchMatcap:   true,

			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks that the settings describe a scene that can be built.
func (c *Config) Validate() error {
	var errs []error
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		errs = append(errs, fmt.Errorf("graphics: window size %dx%d must be positive", c.Graphics.Width, c.Graphics.Height))
	}
	if c.Graphics.MaxPixelRatio <= 0 {
		errs = append(errs, fmt.Errorf("graphics: max_pixel_ratio %v must be positive", c.Graphics.MaxPixelRatio))
	}
	if c.Text.Size <= 0 {
		errs = append(errs, fmt.Errorf("text: size %v must be positive", c.Text.Size))
	}
	if c.Text.CurveSegments < minCurveSegments {
		errs = append(errs, fmt.Errorf("text: curve_segments %d must be at least %d", c.Text.CurveSegments, minCurveSegments))
	}
	if c.Text.BevelEnabled && c.Text.BevelSegments < 1 {
		errs = append(errs, fmt.Errorf("text: bevel_segments %d must be at least 1", c.Text.BevelSegments))
	}
	if c.Donuts.Count < 0 {
		errs = append(errs, fmt.Errorf("donuts: count %d must not be negative", c.Donuts.Count))
	}
	if c.Donuts.RadialSegments < 3 || c.Donuts.TubularSegments < 3 {
		errs = append(errs, fmt.Errorf("donuts: segments %dx%d must be at least 3", c.Donuts.RadialSegments, c.Donuts.TubularSegments))
	}
	if c.Assets.MaxMatcapSize < 0 {
		errs = append(errs, fmt.Errorf("assets: max_matcap_size %d must not be negative", c.Assets.MaxMatcapSize))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera: clip range %v..%v is invalid", c.Camera.Near, c.Camera.Far))
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera: fov %v must be in (0, 180)", c.Camera.FOV))
	}
	return errors.Join(errs...)
}

// Lines returns the three configured text lines in display order.
func (t TextConfig) Lines() [3]string {
	return [3]string{t.FirstLine, t.SecondLine, t.ThirdLine}
}
