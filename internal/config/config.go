// Package config handles loading duchess config.toml files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hay-kot/criterio"
	"github.com/rs/zerolog"

	"github.com/amonks/duchess/internal/paths"
	"github.com/amonks/duchess/storage"
	"github.com/amonks/duchess/timeparse"
	"github.com/amonks/duchess/undo"
)

// EnvConfigPath names the environment variable that overrides the config file location.
const EnvConfigPath = "DUCHESS_CONFIG"

// Config represents the config.toml file.
type Config struct {
	Storage Storage `toml:"storage"`
	Undo    Undo    `toml:"undo"`
	Log     Log     `toml:"log"`
	Time    Time    `toml:"time"`
	UI      UI      `toml:"ui"`
}

// Storage contains persistence configuration.
type Storage struct {
	// Path is the task snapshot file. The extension selects the format.
	Path string `toml:"path"`
}

// Undo contains undo history configuration.
type Undo struct {
	// Depth is the number of commands that can be undone.
	Depth int `toml:"depth"`
}

// Log contains logging configuration.
type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Time contains date parsing configuration.
type Time struct {
	// Timezone is an IANA name used to read dates. Empty means local time.
	Timezone string `toml:"timezone"`
}

// UI contains presentation configuration.
type UI struct {
	// Width wraps output at this many columns. Zero uses the terminal width.
	Width int `toml:"width"`
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Undo: Undo{Depth: undo.DefaultDepth},
		Log:  Log{Level: "info"},
	}
}

// Load reads the config file at path. An empty path falls back to
// $DUCHESS_CONFIG and then to ~/.config/duchess/config.toml; a missing
// file at either default location yields Default(). An explicit path
// that does not exist is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = strings.TrimSpace(os.Getenv(EnvConfigPath))
	}
	if path == "" {
		globalPath, err := paths.DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		path = globalPath
	}

	fileCfg, meta, err := loadConfigFile(path, explicit)
	if err != nil {
		return nil, err
	}

	cfg := mergeConfigs(Default(), fileCfg, meta)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func loadConfigFile(path string, mustExist bool) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !mustExist {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %q", path, undecoded[0].String())
	}

	return &cfg, meta, nil
}

func mergeConfigs(base, file *Config, meta toml.MetaData) *Config {
	merged := *base
	merged.Storage.Path = mergeString(meta.IsDefined("storage", "path"), file.Storage.Path, base.Storage.Path)
	merged.Log.Level = mergeString(meta.IsDefined("log", "level"), file.Log.Level, base.Log.Level)
	merged.Log.File = mergeString(meta.IsDefined("log", "file"), file.Log.File, base.Log.File)
	merged.Time.Timezone = mergeString(meta.IsDefined("time", "timezone"), file.Time.Timezone, base.Time.Timezone)
	if meta.IsDefined("undo", "depth") {
		merged.Undo.Depth = file.Undo.Depth
	}
	if meta.IsDefined("ui", "width") {
		merged.UI.Width = file.UI.Width
	}
	return &merged
}

func mergeString(fileDefined bool, fileValue, baseValue string) string {
	value := baseValue
	if fileDefined {
		value = fileValue
	}
	return strings.TrimSpace(value)
}

// Validate checks field values. Errors are criterio.FieldErrors keyed by
// the dotted TOML key.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("storage.path", c.Storage.Path, validStoragePath),
		criterio.Run("undo.depth", c.Undo.Depth, positive),
		criterio.Run("log.level", c.Log.Level, validLogLevel),
		criterio.Run("time.timezone", c.Time.Timezone, validTimezone),
		criterio.Run("ui.width", c.UI.Width, nonNegative),
	)
}

func validStoragePath(path string) error {
	if path == "" {
		return nil
	}
	_, err := storage.FormatForPath(path)
	return err
}

func positive(value int) error {
	if value < 1 {
		return fmt.Errorf("must be at least 1, got %d", value)
	}
	return nil
}

func nonNegative(value int) error {
	if value < 0 {
		return fmt.Errorf("cannot be negative, got %d", value)
	}
	return nil
}

func validLogLevel(level string) error {
	if level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(level); err != nil {
		return fmt.Errorf("unknown level %q", level)
	}
	return nil
}

func validTimezone(name string) error {
	_, err := timeparse.NewParser(name)
	return err
}
