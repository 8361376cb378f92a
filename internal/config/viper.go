package config

import (
	"errors"
	"os"

	"github.com/spf13/viper"

	"github.com/ayoisaiah/podium/internal/format"
)

const (
	keyOvertimeEnabled      = "overtime.enabled"
	keyOvertimeFirstBell    = "overtime.first_bell"
	keyOvertimePeriod       = "overtime.period"
	keyPrepEnabled          = "prep.enabled"
	keyPrepBells            = "prep.bells"
	keyPOILength            = "poi.length"
	keyNotificationsEnabled = "notifications.enabled"
	keySoundEnabled         = "sound.enabled"
	keySoundBell            = "sound.bell"
	keyBellCmd              = "settings.bell_cmd"
	keyFormatsDir           = "settings.formats_dir"
	keyDefaultFormat        = "settings.default_format"
	keyDarkTheme            = "display.dark_theme"
	keyCountDown            = "display.count_down"
	keyTwentyFourHour       = "display.24hr_clock"
	keyLogLevel             = "log.level"
)

// WithViperConfig returns an Option that loads configuration from the config
// file at configPath. The file is created with the defaults if it does not
// exist.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// setupViper configures Viper with defaults. Values already present in c,
// such as answers to the first-run prompt, take precedence over the
// defaults.
func setupViper(v *viper.Viper, c *Config) {
	prepBells := make([]map[string]any, 0, 1)
	for _, b := range format.DefaultPrepBells() {
		prepBells = append(prepBells, map[string]any{"type": string(b.Type)})
	}

	v.SetDefault(keyOvertimeEnabled, true)
	v.SetDefault(keyOvertimeFirstBell, "30s")
	v.SetDefault(keyOvertimePeriod, "20s")
	v.SetDefault(keyPrepEnabled, true)
	v.SetDefault(keyPrepBells, prepBells)
	v.SetDefault(keyPOILength, "15s")
	v.SetDefault(keyNotificationsEnabled, true)
	v.SetDefault(keySoundEnabled, true)
	v.SetDefault(keySoundBell, "")
	v.SetDefault(keyBellCmd, "")
	v.SetDefault(keyFormatsDir, c.System.formatsDir())
	v.SetDefault(keyDefaultFormat, "")
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyCountDown, false)
	v.SetDefault(keyTwentyFourHour, false)
	v.SetDefault(keyLogLevel, "info")

	if c.prompted {
		v.Set(keyPrepEnabled, c.Prep.Enabled)
		v.Set(keyCountDown, c.Display.CountDown)
		v.Set(keySoundEnabled, c.Sound.Enabled)
		v.Set(keyDefaultFormat, c.Settings.DefaultFormat)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	err := v.Unmarshal(c)
	if err != nil {
		return errReadConfig.Wrap(err)
	}

	// an empty list turns the prep bells off
	if c.Prep.Bells == nil {
		c.Prep.Bells = []format.PrepBellSpec{}
	}

	return nil
}
