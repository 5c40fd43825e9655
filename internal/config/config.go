// Package config loads editor settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/JackWReid/svim/internal/buffer"
	"github.com/JackWReid/svim/internal/editor"
)

// Config holds the editor settings. Zero values in a file fall back to
// the defaults.
type Config struct {
	// LoadCapacity is the number of bytes staged when opening a file.
	LoadCapacity int `toml:"load_capacity"`
	// CommandCapacity bounds the text collected after ':'.
	CommandCapacity int `toml:"command_capacity"`
	// HeapBytes caps the memory held by the document; 0 means no cap.
	HeapBytes int `toml:"heap_bytes"`
	// LogFile receives the editor log. A leading "~/" is expanded.
	LogFile string `toml:"log_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LoadCapacity:    511,
		CommandCapacity: 15,
		HeapBytes:       0,
		LogFile:         "~/.svimlog",
		LogLevel:        "info",
	}
}

// DefaultPath returns the config file consulted when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "svim", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return Default(), fmt.Errorf("parsing config: %w", err)
	}

	cfg := Default()
	if file.LoadCapacity != 0 {
		cfg.LoadCapacity = file.LoadCapacity
	}
	if file.CommandCapacity != 0 {
		cfg.CommandCapacity = file.CommandCapacity
	}
	if file.HeapBytes != 0 {
		cfg.HeapBytes = file.HeapBytes
	}
	if file.LogFile != "" {
		cfg.LogFile = file.LogFile
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if c.LoadCapacity < 0 || c.LoadCapacity > buffer.MaxLoadCapacity {
		return fmt.Errorf("load_capacity must be between 0 and %d, got %d", buffer.MaxLoadCapacity, c.LoadCapacity)
	}
	if c.CommandCapacity < 0 || c.CommandCapacity > editor.MaxCommandCapacity {
		return fmt.Errorf("command_capacity must be between 0 and %d, got %d", editor.MaxCommandCapacity, c.CommandCapacity)
	}
	if c.HeapBytes < 0 {
		return fmt.Errorf("heap_bytes must not be negative, got %d", c.HeapBytes)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", name)
}

// LogPath returns LogFile with a leading "~/" replaced by the home directory.
func (c Config) LogPath() string {
	if !strings.HasPrefix(c.LogFile, "~/") {
		return c.LogFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return strings.TrimPrefix(c.LogFile, "~/")
	}
	return filepath.Join(home, c.LogFile[2:])
}
