package app

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/podium/internal/formatfile"
	"github.com/ayoisaiah/podium/internal/osutil"
	"github.com/ayoisaiah/podium/internal/static"
)

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

func openEditor(path string) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, path)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// editConfigAction handles the edit-config command which opens the podium
// config file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	return openEditor(cfg.System.ConfigPath)
}

// editFormatAction opens a format file in the user's editor and reports the
// problems with it once the editor exits.
func editFormatAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errFormatArg
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	err = static.Install(cfg.System.DataDir)
	if err != nil {
		return err
	}

	path, err := formatfile.Resolve(cfg.Settings.FormatsDir, ctx.Args().First())
	if err != nil {
		return err
	}

	err = openEditor(path)
	if err != nil {
		return err
	}

	_, _, err = formatfile.Load(path, formatfile.WithPrepBells(cfg.Prep.Bells))
	if err != nil {
		return errFormatInvalid.Fmt(path).Wrap(err)
	}

	return nil
}
