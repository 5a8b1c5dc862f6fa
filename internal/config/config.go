// Package config provides the generation configuration: defaults, an
// optional TOML overlay, and validation of every field before any work
// starts.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/JolonB/TTS-Generator/internal/synth"
)

// Defaults, matching the historical behaviour of the generator.
const (
	DefaultOutputDir    = "output"
	DefaultFiletype     = "mp3"
	DefaultBitrate      = "16k"
	DefaultWorkers      = 4
	DefaultMaxPerSecond = 5.0
	DefaultLanguage     = "en"
	DefaultAccent       = "com"
)

// Static errors.
var (
	ErrOutputDirEmpty      = errors.New("output directory cannot be empty")
	ErrFiletypeEmpty       = errors.New("filetype cannot be empty")
	ErrBitrateEmpty        = errors.New("bitrate cannot be empty")
	ErrWorkersNotPositive  = errors.New("worker count must be positive")
	ErrRateNotPositive     = errors.New("max requests per second must be a positive finite number")
	ErrUnsupportedLanguage = errors.New("unsupported language code")
	ErrUnsupportedAccent   = errors.New("unsupported accent")
)

// Config holds every knob for one generation run. It is built once from
// defaults, the optional config file, and command-line flags, validated, and
// never mutated afterwards.
type Config struct {
	OutputDir    string  `toml:"output_dir"`
	Filetype     string  `toml:"filetype"`
	Bitrate      string  `toml:"bitrate"`
	Workers      int     `toml:"workers"`
	MaxPerSecond float64 `toml:"max_per_second"`
	Language     string  `toml:"language"`
	Accent       string  `toml:"accent"`
	Overwrite    bool    `toml:"overwrite"`
	Progress     bool    `toml:"progress"`
}

// Default returns a Config populated with the default values.
func Default() Config {
	return Config{
		OutputDir:    DefaultOutputDir,
		Filetype:     DefaultFiletype,
		Bitrate:      DefaultBitrate,
		Workers:      DefaultWorkers,
		MaxPerSecond: DefaultMaxPerSecond,
		Language:     DefaultLanguage,
		Accent:       DefaultAccent,
		Overwrite:    false,
		Progress:     false,
	}
}

// LoadFile overlays the TOML file at path onto cfg. Fields absent from the
// file keep their current values.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	err = toml.Unmarshal(data, cfg)
	if err != nil {
		return fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	return nil
}

// Validate checks every field, failing fast before any synthesis work.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return ErrOutputDirEmpty
	}

	if c.Filetype == "" {
		return ErrFiletypeEmpty
	}

	if c.Bitrate == "" {
		return ErrBitrateEmpty
	}

	if c.Workers <= 0 {
		return fmt.Errorf("%w: got %d", ErrWorkersNotPositive, c.Workers)
	}

	if c.MaxPerSecond <= 0 || math.IsInf(c.MaxPerSecond, 0) || math.IsNaN(c.MaxPerSecond) {
		return fmt.Errorf("%w: got %v", ErrRateNotPositive, c.MaxPerSecond)
	}

	if !synth.IsSupportedLanguage(c.Language) {
		return fmt.Errorf("%w: %q", ErrUnsupportedLanguage, c.Language)
	}

	if !synth.IsSupportedAccent(c.Accent) {
		return fmt.Errorf("%w: %q", ErrUnsupportedAccent, c.Accent)
	}

	return nil
}
