package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/podium/internal/config"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the podium app instance.
func Get() *cli.App {
	podiumApp := &cli.App{
		Name: "podium",
		Usage: `
		Podium is a debate timer for the command-line. It rings the bells of
		a debate format, keeps track of every speech and remembers debates
		that were left unfinished.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:    "formats",
				Aliases: []string{"ls"},
				Usage:   "List the available debate formats",
				Flags:   []cli.Flag{jsonFlag},
				Action:  formatsAction,
			},
			{
				Name:   "status",
				Usage:  "Print the status of the running debate",
				Action: statusAction,
			},
			{
				Name:  "history",
				Usage: "List the debates timed within a period",
				Flags: []cli.Flag{
					sinceFlag,
					untilFlag,
					formatsFlag,
					jsonFlag,
				},
				Action: historyAction,
				Subcommands: []*cli.Command{
					{
						Name:  "delete",
						Usage: "Delete the debates timed within a period",
						Flags: []cli.Flag{
							sinceFlag,
							untilFlag,
							formatsFlag,
							yesFlag,
						},
						Action: historyDeleteAction,
					},
				},
			},
			{
				Name:   "delete-state",
				Usage:  "Delete one or more saved debates",
				Flags:  []cli.Flag{allFlag},
				Action: deleteStateAction,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
			{
				Name:      "edit-format",
				Usage:     "Edit a debate format file",
				ArgsUsage: "<format>",
				Action:    editFormatAction,
			},
		},
		Flags: []cli.Flag{
			formatFlag,
			resumeFlag,
			bellCmdFlag,
			disableNotificationFlag,
			noSoundFlag,
			noPrepFlag,
			noOvertimeFlag,
			countDownFlag,
			noColorFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
		After:  afterAction,
	}

	return podiumApp
}
