// Package config loads the gopoly TOML configuration.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strings"
	"time"

	"cogentcore.org/core/colors"
	"github.com/pelletier/go-toml/v2"
	"github.com/philipparndt/gopoly/internal/editor"
	"github.com/philipparndt/gopoly/pkg/geometry"
)

// Config is the full application configuration
type Config struct {
	Window   Window   `toml:"window"`
	Scene    Scene    `toml:"scene"`
	Colors   Colors   `toml:"colors"`
	Behavior Behavior `toml:"behavior"`
	Debug    Debug    `toml:"debug"`
	Log      Log      `toml:"log"`
}

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	FPS    int    `toml:"fps"`
}

type Scene struct {
	GroundSize    float64    `toml:"ground_size"`
	GridDivisions int        `toml:"grid_divisions"`
	SurfaceOffset float64    `toml:"surface_offset"`
	MarkerRadius  float64    `toml:"marker_radius"`
	CloneOrigin   [3]float64 `toml:"clone_origin"`
}

// Colors holds "#rrggbb" or "#rrggbbaa" strings
type Colors struct {
	Marker       string  `toml:"marker"`
	Polygon      string  `toml:"polygon"`
	Clone        string  `toml:"clone"`
	CloneOpacity float64 `toml:"clone_opacity"`
	Background   string  `toml:"background"`
}

type Behavior struct {
	PolygonPolicy  string   `toml:"polygon_policy"`
	StatusInterval Duration `toml:"status_interval"`
}

type Debug struct {
	Addr string `toml:"addr"`
}

type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("1s", "250ms")
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built in configuration
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 800, Title: "gopoly", FPS: 60},
		Scene: Scene{
			GroundSize:    20,
			GridDivisions: 20,
			SurfaceOffset: 0.1,
			MarkerRadius:  0.1,
			CloneOrigin:   [3]float64{0, 0.1, 0},
		},
		Colors: Colors{
			Marker:       "#ff0000",
			Polygon:      "#00ff00",
			Clone:        "#ffa500",
			CloneOpacity: 0.7,
			Background:   "#f5f5f5",
		},
		Behavior: Behavior{
			PolygonPolicy:  string(editor.PolicyAllow),
			StatusInterval: Duration{time.Second},
		},
		Log: Log{Level: "info"},
	}
}

// Load reads path on top of the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return cfg, fmt.Errorf("failed to parse config %s:%d:%d: %w", path, row, col, err)
		}
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders the configuration as TOML
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks value ranges and formats
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Scene.GroundSize <= 0 {
		errs = append(errs, fmt.Errorf("scene.ground_size must be positive"))
	}
	if c.Scene.GridDivisions < 0 {
		errs = append(errs, fmt.Errorf("scene.grid_divisions must not be negative"))
	}
	if c.Scene.MarkerRadius <= 0 {
		errs = append(errs, fmt.Errorf("scene.marker_radius must be positive"))
	}
	if c.Colors.CloneOpacity < 0 || c.Colors.CloneOpacity > 1 {
		errs = append(errs, fmt.Errorf("colors.clone_opacity must be within [0, 1]"))
	}
	for name, value := range map[string]string{
		"marker":     c.Colors.Marker,
		"polygon":    c.Colors.Polygon,
		"clone":      c.Colors.Clone,
		"background": c.Colors.Background,
	} {
		if _, err := ParseHexColor(value); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}
	if _, err := editor.ParsePolicy(c.Behavior.PolygonPolicy); err != nil {
		errs = append(errs, fmt.Errorf("behavior.polygon_policy: %w", err))
	}
	if c.Behavior.StatusInterval.Duration < 0 {
		errs = append(errs, fmt.Errorf("behavior.status_interval must not be negative"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// EditorOptions converts the configuration into editor options. The config
// must have passed Validate.
func (c Config) EditorOptions() editor.Options {
	opts := editor.DefaultOptions()
	opts.SurfaceOffset = c.Scene.SurfaceOffset
	opts.MarkerRadius = c.Scene.MarkerRadius
	o := c.Scene.CloneOrigin
	opts.CloneOrigin = geometry.NewVector3(o[0], o[1], o[2])
	opts.CloneOpacity = c.Colors.CloneOpacity
	if v, err := ParseHexColor(c.Colors.Marker); err == nil {
		opts.MarkerColor = v
	}
	if v, err := ParseHexColor(c.Colors.Polygon); err == nil {
		opts.PolygonColor = v
	}
	if v, err := ParseHexColor(c.Colors.Clone); err == nil {
		opts.CloneColor = v
	}
	if p, err := editor.ParsePolicy(c.Behavior.PolygonPolicy); err == nil {
		opts.Policy = p
	}
	return opts
}

// BackgroundColor returns the viewport clear color
func (c Config) BackgroundColor() color.RGBA {
	v, err := ParseHexColor(c.Colors.Background)
	if err != nil {
		return color.RGBA{R: 245, G: 245, B: 245, A: 255}
	}
	return v
}

// ParseHexColor parses "#rgb", "#rrggbb" or "#rrggbbaa"
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colors.FromHex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// ParseLevel maps a level name to a slog level
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

// NewLogger creates the text logger used by all commands
func NewLogger(level string) *slog.Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
