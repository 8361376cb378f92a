package app

import "github.com/urfave/cli/v2"

var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "The debate format to time. Either a file name in the formats directory or a path",
	}

	resumeFlag = &cli.BoolFlag{
		Name:    "resume",
		Aliases: []string{"r"},
		Usage:   "Pick up the saved debate of the format where it was left. Without --format, the most recently saved debate is resumed",
	}

	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears when a speech starts",
	}

	bellCmdFlag = &cli.StringFlag{
		Name:    "bell-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command each time a bell rings",
	}

	noSoundFlag = &cli.BoolFlag{
		Name:  "no-sound",
		Usage: "Do not play bell sounds",
	}

	noPrepFlag = &cli.BoolFlag{
		Name:  "no-prep",
		Usage: "Skip the preparation time of the format",
	}

	noOvertimeFlag = &cli.BoolFlag{
		Name:  "no-overtime",
		Usage: "Do not ring bells once a speech runs over",
	}

	countDownFlag = &cli.BoolFlag{
		Name:    "count-down",
		Aliases: []string{"c"},
		Usage:   "Show the time left in a speech instead of the time elapsed",
	}

	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print the output as JSON",
	}

	sinceFlag = &cli.StringFlag{
		Name:    "since",
		Aliases: []string{"s"},
		Usage:   "Only include debates started on or after this date (e.g. '2 weeks ago', 'last monday')",
	}

	untilFlag = &cli.StringFlag{
		Name:    "until",
		Aliases: []string{"u"},
		Usage:   "Only include debates started on or before this date",
	}

	formatsFlag = &cli.StringFlag{
		Name:  "formats",
		Usage: "Only include debates of these comma-delimited formats",
	}

	allFlag = &cli.BoolFlag{
		Name:    "all",
		Aliases: []string{"a"},
		Usage:   "Delete every saved debate",
	}

	yesFlag = &cli.BoolFlag{
		Name:    "yes",
		Aliases: []string{"y"},
		Usage:   "Do not ask for confirmation",
	}
)
