// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Camera    CameraConfig    `yaml:"camera"`
	Tiles     TilesConfig     `yaml:"tiles"`
	Assets    AssetsConfig    `yaml:"assets"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
	Keys      KeysConfig      `yaml:"keys"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Fullscreen bool   `yaml:"fullscreen"`
}

// SimConfig holds the fixed-tick scheduler parameters.
type SimConfig struct {
	TicksPerSecond   float64 `yaml:"ticks_per_second"`
	MaxTicksPerFrame int     `yaml:"max_ticks_per_frame"` // Catch-up bound after a stall
}

// PhysicsConfig holds physics engine parameters.
type PhysicsConfig struct {
	GravityX   float64 `yaml:"gravity_x"`
	GravityY   float64 `yaml:"gravity_y"`
	Iterations int     `yaml:"iterations"` // Solver iterations per step
	Damping    float64 `yaml:"damping"`    // Fraction of velocity kept per second (1 = none lost)
}

// CameraConfig holds the initial camera parameters.
type CameraConfig struct {
	ViewHeight    float64 `yaml:"view_height"` // World units visible top to bottom
	MinViewHeight float64 `yaml:"min_view_height"`
	MaxViewHeight float64 `yaml:"max_view_height"`
}

// TilesConfig holds tile sizing.
type TilesConfig struct {
	TexelSize  int `yaml:"texel_size"`  // Tile edge in world units
	PixelScale int `yaml:"pixel_scale"` // Texture pixels per world unit
}

// AssetsConfig holds image paths.
type AssetsConfig struct {
	Ship string `yaml:"ship"`
	Wall string `yaml:"wall"`
}

// SceneConfig holds parameters for the startup scene.
type SceneConfig struct {
	Seed        int64   `yaml:"seed"`
	MapWidth    int     `yaml:"map_width"`
	MapHeight   int     `yaml:"map_height"`
	MapOriginX  float64 `yaml:"map_origin_x"`
	MapOriginY  float64 `yaml:"map_origin_y"`
	WallDensity float64 `yaml:"wall_density"` // Noise threshold in [0, 1]; 0 disables scatter
	ShipPower   float64 `yaml:"ship_power"`
	ShipBrake   float64 `yaml:"ship_brake"`
}

// TelemetryConfig holds performance telemetry parameters.
type TelemetryConfig struct {
	Window      int     `yaml:"window"`       // Frames in the rolling perf window
	LogInterval float64 `yaml:"log_interval"` // Seconds between perf log lines (0 = off)
	OutputDir   string  `yaml:"output_dir"`   // Empty disables perf.csv
}

// LogConfig holds logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// KeysConfig maps each action to the names of the keys bound to it.
type KeysConfig struct {
	Boost []string `yaml:"boost"`
	Slow  []string `yaml:"slow"`
	Pause []string `yaml:"pause"`
	Debug []string `yaml:"debug"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedDeltaTime float64 // 1 / Sim.TicksPerSecond
	TilePixelSize  int     // Tiles.TexelSize * Tiles.PixelScale
	LogLevel       slog.Level
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects settings the scheduler and tile map cannot run with.
func (c *Config) validate() error {
	var errs []error
	if c.Sim.TicksPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("sim.ticks_per_second must be positive, got %v", c.Sim.TicksPerSecond))
	}
	if c.Sim.MaxTicksPerFrame <= 0 {
		errs = append(errs, fmt.Errorf("sim.max_ticks_per_frame must be positive, got %d", c.Sim.MaxTicksPerFrame))
	}
	if c.Tiles.TexelSize <= 0 || c.Tiles.PixelScale <= 0 {
		errs = append(errs, fmt.Errorf("tiles sizes must be positive, got texel=%d scale=%d", c.Tiles.TexelSize, c.Tiles.PixelScale))
	}
	if c.Camera.ViewHeight <= 0 {
		errs = append(errs, fmt.Errorf("camera.view_height must be positive, got %v", c.Camera.ViewHeight))
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FixedDeltaTime = 1.0 / c.Sim.TicksPerSecond
	c.Derived.TilePixelSize = c.Tiles.TexelSize * c.Tiles.PixelScale
	c.Derived.LogLevel, _ = parseLevel(c.Log.Level)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log.level %q is not one of debug, info, warn, error", s)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
