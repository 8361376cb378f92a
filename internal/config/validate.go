package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

var (
	minOvertime = 1 * time.Second
	maxOvertime = 30 * time.Minute

	minPOILength = 1 * time.Second
	maxPOILength = 5 * time.Minute

	validSoundExts = []string{".mp3", ".ogg", ".flac", ".wav"}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateOvertime(); err != nil {
		return err
	}

	if err := validateDuration("poi.length", c.POI.Length, minPOILength, maxPOILength); err != nil {
		return err
	}

	for i, b := range c.Prep.Bells {
		if err := b.Validate(); err != nil {
			return errInvalidPrepBell.Fmt(i + 1).Wrap(err)
		}
	}

	if err := validateSound(c.Sound.Bell); err != nil {
		return err
	}

	return validateLogLevel(c.Log.Level)
}

func (c *Config) validateOvertime() error {
	if !c.Overtime.Enabled {
		return nil
	}

	if err := validateDuration("overtime.first_bell", c.Overtime.FirstBell, minOvertime, maxOvertime); err != nil {
		return err
	}

	// a zero period rings the first overtime bell only
	if c.Overtime.Period == 0 {
		return nil
	}

	return validateDuration("overtime.period", c.Overtime.Period, minOvertime, maxOvertime)
}

func validateDuration(name string, d, lo, hi time.Duration) error {
	if d < lo || d > hi {
		return errInvalidRange.Fmt(name, lo, hi, d)
	}

	if d%time.Second != 0 {
		return errWholeSeconds.Fmt(name, d)
	}

	return nil
}

func validateSound(sound string) error {
	if sound == "" {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(sound))
	if !slices.Contains(validSoundExts, ext) {
		return errInvalidSoundFormat.Fmt(sound)
	}

	_, err := os.Stat(sound)
	if errors.Is(err, os.ErrNotExist) {
		return errSoundNotFound.Fmt(sound)
	}

	return nil
}

// LogLevel converts the configured level for slog.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level

	// validated already
	_ = level.UnmarshalText([]byte(c.Log.Level))

	return level
}

func validateLogLevel(level string) error {
	var l slog.Level

	if err := l.UnmarshalText([]byte(level)); err != nil {
		return errInvalidLogLevel.Fmt(level)
	}

	return nil
}
