// Package config assembles the podium configuration from the config file and
// command-line flags
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/format"
)

type (
	// Config holds all configuration settings
	Config struct {
		Overtime      OvertimeConfig     `mapstructure:"overtime"`
		Prep          PrepConfig         `mapstructure:"prep"`
		Notifications NotificationConfig `mapstructure:"notifications"`
		Settings      SettingsConfig     `mapstructure:"settings"`
		Sound         SoundConfig        `mapstructure:"sound"`
		Log           LogConfig          `mapstructure:"log"`
		System        SystemConfig       `mapstructure:"-"`
		CLI           CLIConfig          `mapstructure:"-"`
		POI           POIConfig          `mapstructure:"poi"`
		Display       DisplayConfig      `mapstructure:"display"`
		// prompted is set once the first-run questions were answered
		prompted bool
	}

	// OvertimeConfig controls the bells rung after a speech runs over
	OvertimeConfig struct {
		FirstBell time.Duration `mapstructure:"first_bell"`
		Period    time.Duration `mapstructure:"period"`
		Enabled   bool          `mapstructure:"enabled"`
	}

	// PrepConfig holds the bells generated for simple prep time
	PrepConfig struct {
		Bells   []format.PrepBellSpec `mapstructure:"bells"`
		Enabled bool                  `mapstructure:"enabled"`
	}

	// POIConfig holds points of information settings
	POIConfig struct {
		Length time.Duration `mapstructure:"length"`
	}

	// NotificationConfig holds notification settings
	NotificationConfig struct {
		Enabled bool `mapstructure:"enabled"`
	}

	// SoundConfig holds bell sound settings
	SoundConfig struct {
		// Bell is an audio file that replaces the built-in bell
		Bell    string `mapstructure:"bell"`
		Enabled bool   `mapstructure:"enabled"`
	}

	// SettingsConfig holds general settings
	SettingsConfig struct {
		BellCmd       string `mapstructure:"bell_cmd"`
		FormatsDir    string `mapstructure:"formats_dir"`
		DefaultFormat string `mapstructure:"default_format"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme      bool `mapstructure:"dark_theme"`
		CountDown      bool `mapstructure:"count_down"`
		TwentyFourHour bool `mapstructure:"24hr_clock"`
	}

	LogConfig struct {
		Level string `mapstructure:"level"`
	}

	// CLIConfig holds settings that only come from command-line flags
	CLIConfig struct {
		StartTime time.Time
		EndTime   time.Time
		Format    string
		Formats   []string
		Resume    bool
	}

	// SystemConfig holds the locations of podium's files
	SystemConfig struct {
		ConfigPath string
		DBPath     string
		StatusPath string
		LogPath    string
		DataDir    string
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

var (
	configDir      = "podium"
	configFileName = "config.yml"
	dbFileName     = "podium.db"
	statusFileName = "status.json"
	logFileName    = "podium.log"
	dbFilePath     string
	configFilePath string
	statusFilePath string
	logFilePath    string
	dataDir        string
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

func Dir() string {
	return configDir
}

func DBFilePath() string {
	return dbFilePath
}

func StatusFilePath() string {
	return statusFilePath
}

func LogFilePath() string {
	return logFilePath
}

func ConfigFilePath() string {
	return configFilePath
}

// DataDir is where format files, the database and logs are kept.
func DataDir() string {
	return dataDir
}

// FormatsDir is the default location of debate format files.
func FormatsDir() string {
	return filepath.Join(dataDir, "formats")
}

// InitializePaths works out where podium's files live. PODIUM_ENV keeps the
// files of separate environments apart.
func InitializePaths() error {
	podiumEnv := strings.TrimSpace(os.Getenv("PODIUM_ENV"))
	if podiumEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", podiumEnv)
		dbFileName = fmt.Sprintf("podium_%s.db", podiumEnv)
		statusFileName = fmt.Sprintf("status_%s.json", podiumEnv)
		logFileName = fmt.Sprintf("podium_%s.log", podiumEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	dataDir, err = xdg.DataFile(configDir)
	if err != nil {
		return err
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	statusFilePath = filepath.Join(dataDir, statusFileName)

	logFilePath = filepath.Join(dataDir, "log", logFileName)

	return nil
}

// New creates a new Config and applies options in order
func New(opts ...Option) (*Config, error) {
	cfg := &Config{
		System: SystemConfig{
			ConfigPath: configFilePath,
			DBPath:     dbFilePath,
			StatusPath: statusFilePath,
			LogPath:    logFilePath,
			DataDir:    dataDir,
		},
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

func (s SystemConfig) formatsDir() string {
	if s.DataDir == "" {
		return FormatsDir()
	}

	return filepath.Join(s.DataDir, "formats")
}

// EngineOvertime converts the overtime settings for the timer engine.
func (c *Config) EngineOvertime() engine.Overtime {
	if !c.Overtime.Enabled {
		return engine.Overtime{}
	}

	return engine.Overtime{
		First:  seconds(c.Overtime.FirstBell),
		Period: seconds(c.Overtime.Period),
	}
}

// POILength is the points of information countdown in whole seconds.
func (c *Config) POILength() uint64 {
	return seconds(c.POI.Length)
}

func seconds(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}

	return uint64(d / time.Second)
}
