// Package config provides TOML configuration for the frontend. Values are
// layered: defaults, then the file, then OSIRIS_* environment variables;
// command-line flags are applied last by the binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/rook-computer/osiris/internal/command"
	"github.com/rook-computer/osiris/internal/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	General GeneralConfig `toml:"general"`
	Display DisplayConfig `toml:"display"`
	Font    FontConfig    `toml:"font"`
	Library LibraryConfig `toml:"library"`
	Layout  LayoutConfig  `toml:"layout"`
	Detail  DetailConfig  `toml:"detail"`
	Input   InputConfig   `toml:"input"`
}

type GeneralConfig struct {
	LogLevel string `toml:"log_level"`
	// StdioLog receives stdout and stderr, panics included, when set.
	StdioLog string `toml:"stdio_log"`
}

type DisplayConfig struct {
	Framebuffer string `toml:"framebuffer"`
	// FrameRate caps idle ticks and paints per second.
	FrameRate int `toml:"frame_rate"`
}

type FontConfig struct {
	// Path to a TTF/OTF file. Empty uses the embedded Go Mono.
	Path   string `toml:"path"`
	Engine string `toml:"engine"`
}

type LibraryConfig struct {
	Roms       string           `toml:"roms"`
	MameBinary string           `toml:"mame_binary"`
	Databases  []DatabaseConfig `toml:"database"`
}

// DatabaseConfig binds a RetroArch RDB file to a system directory.
type DatabaseConfig struct {
	System     string   `toml:"system"`
	Path       string   `toml:"path"`
	Extensions []string `toml:"extensions"`
}

type LayoutConfig struct {
	CarouselPercent int `toml:"carousel_percent"`
	ListPercent     int `toml:"list_percent"`
}

type DetailConfig struct {
	// InfoURL is encoded as a QR code; {system} and {id} are substituted.
	InfoURL string `toml:"info_url"`
}

type InputConfig struct {
	RepeatDelay    Duration            `toml:"repeat_delay"`
	RepeatInterval Duration            `toml:"repeat_interval"`
	Devices        string              `toml:"devices"`
	Keyboard       map[string][]uint16 `toml:"keyboard"`
	Gamepad        map[string][]uint16 `toml:"gamepad"`
}

func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Display: DisplayConfig{
			Framebuffer: "/dev/fb0",
			FrameRate:   60,
		},
		Font: FontConfig{
			Engine: "opentype",
		},
		Library: LibraryConfig{
			Roms:       "roms",
			MameBinary: "mame",
		},
		Layout: LayoutConfig{
			CarouselPercent: 20,
			ListPercent:     35,
		},
		Input: InputConfig{
			RepeatDelay:    Duration{400 * time.Millisecond},
			RepeatInterval: Duration{80 * time.Millisecond},
			Devices:        "/dev/input/event*",
		},
	}
}

// LoadFromFile reads path. A missing file yields the defaults with
// environment overrides applied.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, err
	}
	defer f.Close()
	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalid, strings.Join(keys, ", "))
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OSIRIS_ROMS"); v != "" {
		cfg.Library.Roms = v
	}
	if v := os.Getenv("OSIRIS_FONT"); v != "" {
		cfg.Font.Path = v
	}
	if v := os.Getenv("OSIRIS_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	if v := os.Getenv("OSIRIS_FB"); v != "" {
		cfg.Display.Framebuffer = v
	}
	if v := os.Getenv("OSIRIS_STDIO_LOG"); v != "" {
		cfg.General.StdioLog = v
	}
}

var logLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validate checks ranges and names. Every error wraps ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]interface{}{ErrInvalid}, args...)...))
	}

	if !oneOf(strings.ToLower(c.General.LogLevel), logLevels) {
		fail("general.log_level %q is not one of %v", c.General.LogLevel, logLevels)
	}
	if c.Display.FrameRate <= 0 || c.Display.FrameRate > 240 {
		fail("display.frame_rate %d must be in 1..240", c.Display.FrameRate)
	}
	if _, err := render.ParseFontEngine(c.Font.Engine); err != nil {
		fail("font.engine: %v", err)
	}
	if c.Library.Roms == "" {
		fail("library.roms is empty")
	}
	for i, db := range c.Library.Databases {
		if db.System == "" || db.Path == "" {
			fail("library.database[%d] needs system and path", i)
		}
	}
	if c.Layout.CarouselPercent < 1 || c.Layout.CarouselPercent > 99 {
		fail("layout.carousel_percent %d must be in 1..99", c.Layout.CarouselPercent)
	}
	if c.Layout.ListPercent < 1 || c.Layout.ListPercent > 99 {
		fail("layout.list_percent %d must be in 1..99", c.Layout.ListPercent)
	}
	if c.Input.RepeatDelay.Duration <= 0 {
		fail("input.repeat_delay must be positive")
	}
	if c.Input.RepeatInterval.Duration <= 0 {
		fail("input.repeat_interval must be positive")
	}
	for section, bindings := range map[string]map[string][]uint16{"keyboard": c.Input.Keyboard, "gamepad": c.Input.Gamepad} {
		for name := range bindings {
			if _, err := command.ParseFlat(name); err != nil {
				fail("input.%s: %v", section, err)
			}
		}
	}
	return errors.Join(errs...)
}

func oneOf(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
