package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config for the engine run. Loaded from TOML with sensible defaults, so
// a missing file is not an error.
type Config struct {
	Title      string     `toml:"title"`
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	VSync      bool       `toml:"vsync"`
	ClearColor [4]float32 `toml:"clear_color"`

	// UI holds toolkit tuning knobs.
	UI UIConfig `toml:"ui"`

	// Font is the TTF used by the text subsystem.
	FontPath string  `toml:"font_path"`
	FontSize float32 `toml:"font_size"`
}

type UIConfig struct {
	// ArenaKB is the initial per-frame text arena size in kilobytes.
	ArenaKB int `toml:"arena_kb"`
	// MaxQuads bounds one GPU batch before a forced flush.
	MaxQuads int `toml:"max_quads"`
	// WheelScale converts wheel ticks to scroll pixels.
	WheelScale float32 `toml:"wheel_scale"`
}

// DefaultConfig returns the baseline configuration.
func DefaultConfig() Config {
	return Config{
		Title:      "thicket",
		Width:      1280,
		Height:     720,
		VSync:      true,
		ClearColor: [4]float32{0.08, 0.10, 0.12, 1},
		FontSize:   16,
		UI: UIConfig{
			ArenaKB:    64,
			MaxQuads:   10000,
			WheelScale: 24,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file returns the
// defaults; a malformed one is an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Width < 1 || cfg.Height < 1 {
		return cfg, fmt.Errorf("config %s: window size %dx%d invalid", path, cfg.Width, cfg.Height)
	}
	return cfg, nil
}
