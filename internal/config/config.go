// Package config handles loading reiki.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bensonlsp/reiki-timer/internal/audio"
	"github.com/bensonlsp/reiki-timer/internal/paths"
	"github.com/bensonlsp/reiki-timer/internal/validation"
	"github.com/bensonlsp/reiki-timer/position"
	"github.com/caarlos0/env/v11"
)

// ProjectFile is the per-directory config file name.
const ProjectFile = "reiki.toml"

// Seconds are picked in SecondsStep increments from 0 to MaxSeconds.
const (
	SecondsStep = 10
	MaxSeconds  = 50
)

// ErrInvalidConfig indicates a config value is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// Config represents the reiki.toml configuration file.
type Config struct {
	Session Session `toml:"session"`
	Bell    Bell    `toml:"bell"`
	Music   Music   `toml:"music"`
}

// Session contains the setup defaults.
type Session struct {
	// Sequence names the position sequence ("full" or "chakra").
	Sequence string `toml:"sequence"`
	// Minutes and Seconds make up the hold for each position. Seconds is a
	// multiple of 10 up to 50.
	Minutes int `toml:"minutes"`
	Seconds int `toml:"seconds"`
}

// Bell contains transition bell settings.
type Bell struct {
	Enabled bool `toml:"enabled"`
	// Volume is 0-100.
	Volume int `toml:"volume"`
	// File replaces the built-in bowl bell.
	File string `toml:"file,omitempty"`
}

// Music contains background music settings.
type Music struct {
	Enabled bool `toml:"enabled"`
	// URL is opened in the browser when Files is empty.
	URL    string   `toml:"url"`
	Files  []string `toml:"files,omitempty"`
	Volume int      `toml:"volume"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Session: Session{Sequence: string(position.NameFull), Minutes: 0, Seconds: 30},
		Bell:    Bell{Enabled: true, Volume: 80},
		Music:   Music{Enabled: false, URL: audio.DefaultPlaylistURL, Volume: 50},
	}
}

// PositionSeconds returns the configured per-position hold in seconds.
func (c Config) PositionSeconds() int {
	return c.Session.Minutes*60 + c.Session.Seconds
}

// Load loads configuration from the global config file, then the project
// file in dir, then REIKI_* environment variables. Missing files are skipped.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFile))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	if err := applyEnv(merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
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

	return &cfg, meta, nil
}

// mergeConfigs layers defaults, then the global file, then the project
// file. A key only overrides when the file defines it.
func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Default()
	for _, layer := range []struct {
		cfg  *Config
		meta toml.MetaData
	}{
		{cfg: globalCfg, meta: globalMeta},
		{cfg: projectCfg, meta: projectMeta},
	} {
		cfg, meta := layer.cfg, layer.meta
		merged.Session.Sequence = mergeString(meta.IsDefined("session", "sequence"), cfg.Session.Sequence, merged.Session.Sequence)
		merged.Session.Minutes = mergeValue(meta.IsDefined("session", "minutes"), cfg.Session.Minutes, merged.Session.Minutes)
		merged.Session.Seconds = mergeValue(meta.IsDefined("session", "seconds"), cfg.Session.Seconds, merged.Session.Seconds)
		merged.Bell.Enabled = mergeValue(meta.IsDefined("bell", "enabled"), cfg.Bell.Enabled, merged.Bell.Enabled)
		merged.Bell.Volume = mergeValue(meta.IsDefined("bell", "volume"), cfg.Bell.Volume, merged.Bell.Volume)
		merged.Bell.File = mergeString(meta.IsDefined("bell", "file"), cfg.Bell.File, merged.Bell.File)
		merged.Music.Enabled = mergeValue(meta.IsDefined("music", "enabled"), cfg.Music.Enabled, merged.Music.Enabled)
		merged.Music.URL = mergeString(meta.IsDefined("music", "url"), cfg.Music.URL, merged.Music.URL)
		merged.Music.Volume = mergeValue(meta.IsDefined("music", "volume"), cfg.Music.Volume, merged.Music.Volume)
		if meta.IsDefined("music", "files") {
			merged.Music.Files = append([]string(nil), cfg.Music.Files...)
		}
	}

	return &merged
}

func mergeString(defined bool, value, fallback string) string {
	if !defined {
		return fallback
	}
	return strings.TrimSpace(value)
}

func mergeValue[T any](defined bool, value, fallback T) T {
	if !defined {
		return fallback
	}
	return value
}

// envOverrides maps REIKI_* variables onto config keys. Unset variables
// leave the pointer nil.
type envOverrides struct {
	Sequence     *string `env:"REIKI_SEQUENCE"`
	Minutes      *int    `env:"REIKI_MINUTES"`
	Seconds      *int    `env:"REIKI_SECONDS"`
	BellEnabled  *bool   `env:"REIKI_BELL_ENABLED"`
	BellVolume   *int    `env:"REIKI_BELL_VOLUME"`
	BellFile     *string `env:"REIKI_BELL_FILE"`
	MusicEnabled *bool   `env:"REIKI_MUSIC_ENABLED"`
	MusicURL     *string `env:"REIKI_MUSIC_URL"`
}

func applyEnv(cfg *Config) error {
	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if overrides.Sequence != nil {
		cfg.Session.Sequence = strings.TrimSpace(*overrides.Sequence)
	}
	if overrides.Minutes != nil {
		cfg.Session.Minutes = *overrides.Minutes
	}
	if overrides.Seconds != nil {
		cfg.Session.Seconds = *overrides.Seconds
	}
	if overrides.BellEnabled != nil {
		cfg.Bell.Enabled = *overrides.BellEnabled
	}
	if overrides.BellVolume != nil {
		cfg.Bell.Volume = *overrides.BellVolume
	}
	if overrides.BellFile != nil {
		cfg.Bell.File = strings.TrimSpace(*overrides.BellFile)
	}
	if overrides.MusicEnabled != nil {
		cfg.Music.Enabled = *overrides.MusicEnabled
	}
	if overrides.MusicURL != nil {
		cfg.Music.URL = strings.TrimSpace(*overrides.MusicURL)
	}
	return nil
}

// Validate checks that every value is in range. The minimum total duration
// is enforced by the session controller, not here.
func (c Config) Validate() error {
	if !position.Name(c.Session.Sequence).IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidConfig, position.Name(c.Session.Sequence), position.Names())
	}
	checks := []struct {
		field    string
		value    int
		min, max int
	}{
		{field: "session.minutes", value: c.Session.Minutes, min: 0, max: 10},
		{field: "session.seconds", value: c.Session.Seconds, min: 0, max: MaxSeconds},
		{field: "bell.volume", value: c.Bell.Volume, min: 0, max: 100},
		{field: "music.volume", value: c.Music.Volume, min: 0, max: 100},
	}
	for _, check := range checks {
		if check.value < check.min || check.value > check.max {
			return validation.FormatRangeError(ErrInvalidConfig, check.field, check.value, check.min, check.max)
		}
	}
	if c.Session.Seconds%SecondsStep != 0 {
		return validation.FormatStepError(ErrInvalidConfig, "session.seconds", c.Session.Seconds, SecondsStep)
	}
	return nil
}

// Write encodes the config as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
