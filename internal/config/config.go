// Package config handles viewer configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/orrery/pkg/math"
)

// Sphere resolution and spin defaults shared by every configured planet.
const (
	DefaultLongitudeSegments = 100
	DefaultLatitudeSegments  = 50
	DefaultVelocityScale     = 0.1
)

// Config holds all viewer settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Scene   SceneConfig   `yaml:"scene"`
	Data    DataConfig    `yaml:"data"`
	Logging LoggingConfig `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
}

// SceneConfig describes what the viewer puts in front of the camera.
type SceneConfig struct {
	ClearColor math.Vec4      `yaml:"clear_color"`
	TimeScale  float64        `yaml:"time_scale"` // Simulation seconds per wall-clock second
	Planets    []PlanetConfig `yaml:"planets"`
}

// PlanetConfig describes one planet. Zero segment counts fall back to the defaults.
type PlanetConfig struct {
	Name              string         `yaml:"name"`
	Radius            float64        `yaml:"radius"`
	Color             math.Vec4      `yaml:"color"`
	Texture           string         `yaml:"texture"`
	NightTexture      string         `yaml:"night_texture"`
	LongitudeSegments int            `yaml:"longitude_segments"`
	LatitudeSegments  int            `yaml:"latitude_segments"`
	Offset            [3]float32     `yaml:"offset"`
	Rotation          RotationConfig `yaml:"rotation"`
}

// RotationConfig holds the spin settings of a planet.
type RotationConfig struct {
	Enabled       bool    `yaml:"enabled"`
	VelocityScale float64 `yaml:"velocity_scale"`
}

// DataConfig holds asset locations.
type DataConfig struct {
	SearchPaths   []string `yaml:"search_paths"` // Roots tried in order when resolving texture paths
	ScreenshotDir string   `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DefaultPlanet returns the settings a planet entry starts from before YAML is applied.
func DefaultPlanet() PlanetConfig {
	return PlanetConfig{
		Radius:            1,
		Color:             math.White,
		LongitudeSegments: DefaultLongitudeSegments,
		LatitudeSegments:  DefaultLatitudeSegments,
		Rotation: RotationConfig{
			Enabled:       true,
			VelocityScale: DefaultVelocityScale,
		},
	}
}

// UnmarshalYAML decodes a planet entry on top of DefaultPlanet, so omitted keys keep their defaults.
func (p *PlanetConfig) UnmarshalYAML(value *yaml.Node) error {
	type plain PlanetConfig
	out := plain(DefaultPlanet())
	if err := value.Decode(&out); err != nil {
		return err
	}
	*p = PlanetConfig(out)
	return nil
}

// EarthPlanet returns the day/night textured Earth shown when no planets are configured.
func EarthPlanet() PlanetConfig {
	p := DefaultPlanet()
	p.Name = "Earth"
	p.Radius = 100
	p.Texture = "Images/land_shallow_topo_2048.jpg"
	p.NightTexture = "Images/land_ocean_ice_lights_2048.jpg"
	return p
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:      "Orrery",
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
		},
		Scene: SceneConfig{
			ClearColor: math.Black,
			TimeScale:  1,
			Planets:    []PlanetConfig{EarthPlanet()},
		},
		Data: DataConfig{
			SearchPaths:   []string{"."},
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks settings the viewer cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if !c.Scene.ClearColor.InUnitRange() {
		errs = append(errs, fmt.Errorf("clear color %v outside [0,1]", c.Scene.ClearColor))
	}
	seen := make(map[string]bool, len(c.Scene.Planets))
	for i, p := range c.Scene.Planets {
		label := p.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if seen[p.Name] && p.Name != "" {
			errs = append(errs, fmt.Errorf("planet %s: duplicate name", label))
		}
		seen[p.Name] = true
		if !(p.Radius > 0) {
			errs = append(errs, fmt.Errorf("planet %s: radius %v must be positive", label, p.Radius))
		}
		if p.LongitudeSegments < 2 || p.LatitudeSegments < 2 {
			errs = append(errs, fmt.Errorf("planet %s: segments %dx%d must be at least 2x2",
				label, p.LongitudeSegments, p.LatitudeSegments))
		}
		if !p.Color.InUnitRange() {
			errs = append(errs, fmt.Errorf("planet %s: color %v outside [0,1]", label, p.Color))
		}
	}
	return errors.Join(errs...)
}
