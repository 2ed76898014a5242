// Package config loads lite-edit's startup configuration from a TOML
// file: font size, recency cap, wrap column override, theme choice,
// and keymap overrides. A missing config file silently yields
// Default(), the same "missing is empty" policy the recency file uses
// (internal/fileindex).
package config

import (
	"os"

	"github.com/BurntSushi/toml"
)

// Theme selects one of the built-in color themes.
type Theme string

const (
	ThemeDark       Theme = "dark"
	ThemeLight      Theme = "light"
	ThemeMonochrome Theme = "monochrome"
)

// Config is the full set of user-tunable startup settings.
type Config struct {
	Font     FontConfig        `toml:"font"`
	Index    IndexConfig       `toml:"index"`
	Theme    Theme             `toml:"theme"`
	Keymap   map[string]string `toml:"keymap"` // chord notation -> command name, overrides ResolveBufferChord's defaults
	LogLevel string            `toml:"log_level"`
	LogFile  string            `toml:"log_file"`
}

// FontConfig controls the glyph atlas's rasterization size and the cell
// grid the renderer lays out against.
type FontConfig struct {
	SizePx   float32 `toml:"size_px"`
	WrapCols uint32  `toml:"wrap_cols"` // 0 means no soft wrap, matching viewport.Viewport's own zero value
}

// IndexConfig tunes the background file index (internal/fileindex).
type IndexConfig struct {
	RecencyCap int `toml:"recency_cap"`
}

// Default returns the configuration used when no file is present or a
// field is left unset.
func Default() Config {
	return Config{
		Font:     FontConfig{SizePx: 14, WrapCols: 0},
		Index:    IndexConfig{RecencyCap: 50},
		Theme:    ThemeDark,
		LogLevel: "info",
	}
}

// Load reads path and overlays it onto Default(). A missing file is not
// an error — it yields Default() unchanged, matching the recency file's
// "missing is empty" policy.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
