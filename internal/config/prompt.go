package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
██████╗  ██████╗ ██████╗ ██╗██╗   ██╗███╗   ███╗
██╔══██╗██╔═══██╗██╔══██╗██║██║   ██║████╗ ████║
██████╔╝██║   ██║██║  ██║██║██║   ██║██╔████╔██║
██╔═══╝ ██║   ██║██║  ██║██║██║   ██║██║╚██╔╝██║
██║     ╚██████╔╝██████╔╝██║╚██████╔╝██║ ╚═╝ ██║
╚═╝      ╚═════╝ ╚═════╝ ╚═╝ ╚═════╝ ╚═╝     ╚═╝`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	PrepEnabled bool
	CountDown   bool
	Sound       bool
}

// WithPromptConfig returns an Option that asks for the main settings when
// podium runs for the first time. It must come before WithViperConfig.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return err
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	opts := PromptOptions{
		PrepEnabled: true,
		Sound:       true,
	}

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure Podium for the first time.
Select your preferred value, or press ENTER to accept the defaults.
Edit the config file with 'podium edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Offer preparation time before the first speech?").
				Value(&opts.PrepEnabled),
		),
		huh.NewGroup(
			huh.NewSelect[bool]().
				Title("How should the clock run?").
				Options(
					huh.NewOption("Count up from zero", false).Selected(true),
					huh.NewOption("Count down to the end of the speech", true),
				).
				Value(&opts.CountDown),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Ring bells through the speakers?").
				Value(&opts.Sound),
		),
	)

	err := form.Run()
	if err != nil {
		return opts, errPrompt.Wrap(err)
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the
// configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Prep.Enabled = opts.PrepEnabled
	c.Display.CountDown = opts.CountDown
	c.Sound.Enabled = opts.Sound
	c.prompted = true
}
