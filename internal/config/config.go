package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/tztail/tztail-go/internal/safefile"
)

// EnvPath names the environment variable that overrides the default path.
const EnvPath = "TZTAIL_CONFIG"

const (
	defaultConfigPath = "~/.config/tztail/config.toml"
	maxConfigSize     = 64 * 1024
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings read from the config file.
type Config struct {
	Timezone    string `toml:"timezone"`
	Format      string `toml:"format"`
	FormatsFile string `toml:"formats_file"`
	Color       string `toml:"color"`

	// Path is the resolved file the values came from. Empty when defaults
	// were used.
	Path string `toml:"-"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{Color: ColorAuto}
}

// DefaultPath returns the config path used when none is given explicitly.
func DefaultPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p
	}
	return defaultConfigPath
}

// Load locates and parses the config file, falling back to defaults when it
// is missing. An empty path means DefaultPath(). When neither a path nor
// $TZTAIL_CONFIG is given and the home directory is unknown, defaults are
// returned.
func Load(path string) (Config, error) {
	implicit := false
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
		implicit = path == defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		// Without a home directory the default file cannot exist.
		if implicit {
			return Default(), nil
		}
		return Config{}, err
	}

	cfg := Default()

	data, err := safefile.ReadFile(resolved, maxConfigSize)
	switch {
	case errors.Is(err, os.ErrNotExist), errors.Is(err, safefile.ErrEmpty):
		return cfg, nil
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Config{}, fmt.Errorf("parse config: %s", strict.String())
		}
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.FormatsFile = strings.TrimSpace(cfg.FormatsFile)
	if cfg.FormatsFile != "" {
		cfg.FormatsFile = mustExpand(cfg.FormatsFile)
	}
	cfg.Color = strings.ToLower(strings.TrimSpace(cfg.Color))
	if cfg.Color == "" {
		cfg.Color = ColorAuto
	}
	cfg.Path = resolved

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects combinations the converter cannot honor.
func (c Config) Validate() error {
	if c.Format != "" && c.FormatsFile != "" {
		return errors.New("config: format and formats_file are mutually exclusive")
	}
	if _, err := ParseColor(c.Color); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ParseColor normalizes a color mode. Empty means ColorAuto.
func ParseColor(s string) (string, error) {
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return v, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
