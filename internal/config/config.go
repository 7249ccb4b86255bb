package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the persistent jlcat defaults. Command-line flags override
// any of them.
type Config struct {
	SkipEmptyLines bool
	SessionStart   string
	NoExtras       bool
	Color          string
	Theme          string
	LogLevel       string
}

const (
	defaultConfigPath = "~/.config/jlcat/config.toml"
	defaultColor      = ColorAuto
	defaultTheme      = "Default"
	defaultLogLevel   = "warn"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Color:    defaultColor,
		Theme:    defaultTheme,
		LogLevel: defaultLogLevel,
	}
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file yields Default.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		SkipEmptyLines *bool  `toml:"skip_empty_lines"`
		SessionStart   string `toml:"session_start"`
		NoExtras       *bool  `toml:"no_extras"`
		Color          string `toml:"color"`
		Theme          string `toml:"theme"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.SkipEmptyLines != nil {
		cfg.SkipEmptyLines = *raw.SkipEmptyLines
	}
	if raw.NoExtras != nil {
		cfg.NoExtras = *raw.NoExtras
	}
	// Leading space can be part of a session marker; only a blank value is
	// treated as unset.
	if strings.TrimSpace(raw.SessionStart) != "" {
		cfg.SessionStart = raw.SessionStart
	}

	if color := strings.ToLower(strings.TrimSpace(raw.Color)); color != "" {
		if err := ValidateColor(color); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.Color = color
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// ValidateColor reports whether mode is one of auto, always or never.
func ValidateColor(mode string) error {
	switch mode {
	case ColorAuto, ColorAlways, ColorNever:
		return nil
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", mode)
	}
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
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
