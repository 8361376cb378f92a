package config

import (
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/podium/internal/timeutil"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Format        string
	Formats       string
	BellCmd       string
	Since         string
	Until         string
	DisableNotify bool
	NoSound       bool
	NoPrep        bool
	NoOvertime    bool
	CountDown     bool
	Resume        bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Format:        ctx.String("format"),
			Formats:       ctx.String("formats"),
			BellCmd:       ctx.String("bell-cmd"),
			Since:         ctx.String("since"),
			Until:         ctx.String("until"),
			DisableNotify: ctx.Bool("disable-notification"),
			NoSound:       ctx.Bool("no-sound"),
			NoPrep:        ctx.Bool("no-prep"),
			NoOvertime:    ctx.Bool("no-overtime"),
			CountDown:     ctx.Bool("count-down"),
			Resume:        ctx.Bool("resume"),
		}

		return applyCLIOptions(c, opts)
	}
}

// applyCLIOptions applies CLI options to the config. Flags override the
// config file.
func applyCLIOptions(c *Config, opts CLIOptions) error {
	c.CLI.Format = opts.Format
	if c.CLI.Format == "" {
		c.CLI.Format = c.Settings.DefaultFormat
	}

	c.CLI.Resume = opts.Resume

	if opts.Formats != "" {
		c.CLI.Formats = splitAndTrim(opts.Formats)
	}

	if opts.BellCmd != "" {
		c.Settings.BellCmd = opts.BellCmd
	}

	if opts.DisableNotify {
		c.Notifications.Enabled = false
	}

	if opts.NoSound {
		c.Sound.Enabled = false
	}

	if opts.NoPrep {
		c.Prep.Enabled = false
	}

	if opts.NoOvertime {
		c.Overtime.Enabled = false
	}

	if opts.CountDown {
		c.Display.CountDown = true
	}

	return applyCLITimes(c, opts)
}

// applyCLITimes parses the bounds used to filter the debate history. Without
// --since the history starts at the beginning of time; without --until it
// ends now.
func applyCLITimes(c *Config, opts CLIOptions) error {
	c.CLI.StartTime = time.Time{}
	c.CLI.EndTime = time.Now()

	if opts.Since != "" {
		t, err := timeutil.FromStr(opts.Since)
		if err != nil {
			return errInvalidCLITime.Fmt("since", opts.Since).Wrap(err)
		}

		c.CLI.StartTime = timeutil.RoundToStart(t)
	}

	if opts.Until != "" {
		t, err := timeutil.FromStr(opts.Until)
		if err != nil {
			return errInvalidCLITime.Fmt("until", opts.Until).Wrap(err)
		}

		c.CLI.EndTime = timeutil.RoundToEnd(t)
	}

	if c.CLI.EndTime.Before(c.CLI.StartTime) {
		return errTimeRange.Fmt(
			c.CLI.StartTime.Format(time.DateOnly),
			c.CLI.EndTime.Format(time.DateOnly),
		)
	}

	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(list string) []string {
	split := strings.Split(list, ",")

	trimmed := make([]string, 0, len(split))

	for _, s := range split {
		if s = strings.TrimSpace(s); s != "" {
			trimmed = append(trimmed, s)
		}
	}

	return trimmed
}
