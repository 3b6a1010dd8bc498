// Package config loads and validates the filamentd configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/filamentd/filament/internal/model"
)

// Duration is a time.Duration that unmarshals from human-readable
// strings like "5s", "1m30s", or bare integer milliseconds. A zero
// duration means never expire.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (d *Duration) UnmarshalText(text []byte) error {
	s := string(text)

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		*d = Duration(time.Duration(ms) * time.Millisecond)
		return nil
	}

	dur, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: must be like '5s', '1m30s' or milliseconds: %w", s, err)
	}
	*d = Duration(dur)
	return nil
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Milliseconds returns the duration in milliseconds.
func (d Duration) Milliseconds() int64 {
	return time.Duration(d).Milliseconds()
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Config is the filamentd configuration.
// Loaded from ~/.config/filament/filamentd.toml.
type Config struct {
	Display  DisplayConfig  `toml:"display"`
	Timeouts TimeoutConfig  `toml:"timeouts"`
	Behavior BehaviorConfig `toml:"behavior"`
	Audio    AudioConfig    `toml:"audio"`
	Layout   LayoutConfig   `toml:"layout"`
}

// DisplayConfig contains popup placement settings.
type DisplayConfig struct {
	Position   string `toml:"position"`    // screen corner popups stack from
	OffsetX    int    `toml:"offset_x"`    // pixels from the screen edge
	OffsetY    int    `toml:"offset_y"`    // pixels from the screen edge
	Gap        int    `toml:"gap"`         // gap between stacked popups
	MaxVisible int    `toml:"max_visible"` // maximum simultaneous popups
	Monitor    int    `toml:"monitor"`     // 0 = compositor default, 1+ = specific output
	Debug      bool   `toml:"debug"`       // outline block rects in popups
}

// TimeoutConfig contains per-urgency expiry for notifications that
// don't carry their own timeout. Zero means never expire.
type TimeoutConfig struct {
	Low      Duration `toml:"low"`
	Normal   Duration `toml:"normal"`
	Critical Duration `toml:"critical"`
}

// BehaviorConfig contains popup behavior settings.
type BehaviorConfig struct {
	PauseOnHover bool `toml:"pause_on_hover"` // pause expiry while the pointer hovers
	IdleAnimate  bool `toml:"idle_animate"`   // keep animating popups whose fuse is paused
}

// AudioConfig contains notification sound settings.
type AudioConfig struct {
	Enabled bool        `toml:"enabled"`
	Volume  int         `toml:"volume"` // 0-100
	Sounds  SoundConfig `toml:"sounds"`
}

// SoundConfig contains per-urgency sound file paths.
type SoundConfig struct {
	Low      string `toml:"low"`
	Normal   string `toml:"normal"`
	Critical string `toml:"critical"`
}

// LayoutConfig selects the popup layout template.
type LayoutConfig struct {
	Template     string `toml:"template"`      // template name without .yaml extension
	TemplatesDir string `toml:"templates_dir"` // user template directory, empty = config dir
}

// Position represents a popup stacking corner.
type Position string

const (
	PositionTopLeft     Position = "top-left"
	PositionTopRight    Position = "top-right"
	PositionBottomLeft  Position = "bottom-left"
	PositionBottomRight Position = "bottom-right"
)

// ValidPositions returns all valid position values.
func ValidPositions() []Position {
	return []Position{
		PositionTopLeft,
		PositionTopRight,
		PositionBottomLeft,
		PositionBottomRight,
	}
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Position:   string(PositionTopRight),
			OffsetX:    10,
			OffsetY:    10,
			Gap:        8,
			MaxVisible: 5,
			Monitor:    0,
		},
		Timeouts: TimeoutConfig{
			Low:      Duration(5 * time.Second),
			Normal:   Duration(10 * time.Second),
			Critical: Duration(0),
		},
		Behavior: BehaviorConfig{
			PauseOnHover: true,
			IdleAnimate:  true,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  80,
		},
		Layout: LayoutConfig{
			Template: "default",
		},
	}
}

// Path returns the default config file path.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "filament", "filamentd.toml"), nil
}

// TemplatesDir resolves the user template directory: the configured one
// or <config dir>/filament/templates.
func (c *Config) TemplatesDir() string {
	if c.Layout.TemplatesDir != "" {
		return expandPath(c.Layout.TemplatesDir)
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "filament", "templates")
}

// Load reads the configuration at path. A missing file yields defaults;
// a present file is overlaid on the defaults and validated.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration to path, atomically via a temp file.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return os.Rename(tmpPath, path)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	validPos := false
	for _, p := range ValidPositions() {
		if c.Display.Position == string(p) {
			validPos = true
			break
		}
	}
	if !validPos {
		return fmt.Errorf("invalid position %q, must be one of: %v", c.Display.Position, ValidPositions())
	}

	if c.Display.MaxVisible < 1 || c.Display.MaxVisible > 20 {
		return fmt.Errorf("max_visible must be between 1 and 20, got %d", c.Display.MaxVisible)
	}
	if c.Display.Gap < 0 {
		return fmt.Errorf("gap must not be negative, got %d", c.Display.Gap)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", c.Audio.Volume)
	}
	return nil
}

// TimeoutForUrgency returns the configured expiry for an urgency level
// in milliseconds. Zero means never expire.
func (c *Config) TimeoutForUrgency(urgency int) int64 {
	switch urgency {
	case model.UrgencyLow:
		return c.Timeouts.Low.Milliseconds()
	case model.UrgencyCritical:
		return c.Timeouts.Critical.Milliseconds()
	default:
		return c.Timeouts.Normal.Milliseconds()
	}
}

// SoundForUrgency returns the sound file path for an urgency level,
// with ~ expanded.
func (c *Config) SoundForUrgency(urgency int) string {
	var path string
	switch urgency {
	case model.UrgencyLow:
		path = c.Audio.Sounds.Low
	case model.UrgencyCritical:
		path = c.Audio.Sounds.Critical
	default:
		path = c.Audio.Sounds.Normal
	}
	return expandPath(path)
}

// expandPath expands a leading ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
