package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/podium/internal/config"
	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/formatfile"
	"github.com/ayoisaiah/podium/internal/logging"
	"github.com/ayoisaiah/podium/internal/static"
	"github.com/ayoisaiah/podium/internal/ui"
	"github.com/ayoisaiah/podium/store"
	"github.com/ayoisaiah/podium/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envPodiumNoColor = "PODIUM_NO_COLOR"
)

var logCloser io.Closer

// loadConfig reads the config file and the command-line flags, then starts
// logging at the configured level.
func loadConfig(ctx *cli.Context, opts ...config.Option) (*config.Config, error) {
	opts = append(
		opts,
		config.WithViperConfig(config.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}

	logCloser, err = logging.Setup(cfg.System.LogPath, cfg.LogLevel())
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	return cfg, nil
}

// chooseFormat asks the user which of the valid formats in dir to time.
func chooseFormat(entries []formatfile.Entry) (string, error) {
	options := make([]huh.Option[string], 0, len(entries))

	for i := range entries {
		e := &entries[i]
		if !e.Valid() {
			continue
		}

		label := fmt.Sprintf("%s (%s)", e.Name, e.File)
		options = append(options, huh.NewOption(label, e.Path))
	}

	var path string

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which debate format?").
				Options(options...).
				Value(&path),
		),
	).Run()

	return path, err
}

// formatPath works out the format file to time. A saved debate is the
// fallback for --resume, and the user is asked when nothing else decides.
func formatPath(cfg *config.Config, db store.DB) (string, error) {
	dir := cfg.Settings.FormatsDir

	if cfg.CLI.Format != "" {
		return formatfile.Resolve(dir, cfg.CLI.Format)
	}

	if cfg.CLI.Resume {
		states, err := db.ListStates()
		if err != nil {
			return "", err
		}

		if len(states) == 0 {
			return "", errNoSavedDebate
		}

		return formatfile.Resolve(dir, states[0].Format)
	}

	entries, err := formatfile.List(dir)
	if err != nil {
		return "", err
	}

	if len(entries) == 0 {
		return "", errNoFormats.Fmt(dir)
	}

	return chooseFormat(entries)
}

// savedState returns the saved debate of the format, if any.
func savedState(db store.DB, name string) *debate.State {
	st, err := db.GetState(name)
	if err != nil {
		slog.Debug("no saved debate", slog.String("format", name), slog.Any("error", err))
		return nil
	}

	return st
}

// defaultAction times a debate.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(
		ctx,
		config.WithPromptConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return err
	}

	err = static.Install(cfg.System.DataDir)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.System.DBPath)
	if store.IsLocked(err) {
		pterm.Warning.Println(err)

		return timer.ReportStatus(os.Stdout, cfg.System.DBPath, cfg.System.StatusPath)
	}

	if err != nil {
		return err
	}

	defer db.Close()

	path, err := formatPath(cfg, db)
	if err != nil {
		return err
	}

	d, _, err := formatfile.Load(
		path,
		formatfile.WithPrepBells(cfg.Prep.Bells),
	)
	if err != nil {
		return err
	}

	name := filepath.Base(path)

	t, err := timer.New(db, cfg, d, name)
	if err != nil {
		return err
	}

	if st := savedState(db, name); st != nil {
		if cfg.CLI.Resume {
			t.Resume(st)
		} else {
			pterm.Info.Printfln(
				"A saved %s debate will be replaced. Use --resume to continue it instead",
				d.Name,
			)
		}
	}

	slog.Info("timing debate", slog.String("format", name), slog.Bool("resume", cfg.CLI.Resume))

	return t.Run()
}

// formatsAction lists the format files in the formats directory.
func formatsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	err = static.Install(cfg.System.DataDir)
	if err != nil {
		return err
	}

	entries, err := formatfile.List(
		cfg.Settings.FormatsDir,
		formatfile.WithPrepBells(cfg.Prep.Bells),
	)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(entries)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listFormats(os.Stdout, cfg.Settings.FormatsDir, entries)
}

// statusAction handles the status command and prints the status of the
// currently running debate.
func statusAction(_ *cli.Context) error {
	return timer.ReportStatus(
		os.Stdout,
		config.DBFilePath(),
		config.StatusFilePath(),
	)
}

// historyAction prints the debates timed within a period.
func historyAction(ctx *cli.Context) error {
	records, _, err := recordsHelper(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(records)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	return listRecords(os.Stdout, records)
}

// historyDeleteAction deletes the debates timed within a period.
func historyDeleteAction(ctx *cli.Context) error {
	records, db, err := recordsHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	return delRecords(os.Stdout, db, records, ctx.Bool("yes"))
}

// deleteStateAction deletes one or more saved debates.
func deleteStateAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	db, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return err
	}

	defer db.Close()

	if ctx.Bool("all") {
		return db.DeleteAllStates()
	}

	return delStates(os.Stdout, db)
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if PODIUM_NO_COLOR is set
	if _, exists := os.LookupEnv(envPodiumNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return config.InitializePaths()
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting podium")

	if logCloser == nil {
		return nil
	}

	err := logCloser.Close()
	if errors.Is(err, os.ErrClosed) {
		return nil
	}

	return err
}
