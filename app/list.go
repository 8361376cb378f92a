package app

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/podium/internal/formatfile"
	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/internal/ui"
	"github.com/ayoisaiah/podium/store"
)

const (
	noRecordsMsg = "No debates found for the specified time range"
	dateFormat   = "Jan 02, 2006 03:04 PM"
)

// recordsHelper opens the database and retrieves the debates selected by the
// --since, --until and --formats flags.
func recordsHelper(ctx *cli.Context) ([]models.Record, store.DB, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.NewClient(cfg.System.DBPath)
	if err != nil {
		return nil, nil, err
	}

	records, err := db.GetRecords(cfg.CLI.StartTime, cfg.CLI.EndTime, cfg.CLI.Formats)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	return records, db, nil
}

// printFormatsTable prints a table of format files.
func printFormatsTable(w io.Writer, entries []formatfile.Entry) {
	tableBody := make([][]string, len(entries))

	for i := range entries {
		e := &entries[i]

		prep := ui.Faint("no")
		if e.HasPrep {
			prep = "yes"
		}

		status := ui.Green("ok")
		name := e.Name

		if !e.Valid() {
			status = ui.Red("invalid")
			name = ui.Faint(e.Err.Error())
			prep = ""
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			ui.Cyan(e.File),
			name,
			fmt.Sprintf("%d", e.Speeches),
			prep,
			status,
		}
	}

	tableBody = append([][]string{
		{"#", "FILE", "NAME", "SPEECHES", "PREP", "STATUS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listFormats prints the formats found in dir.
func listFormats(w io.Writer, dir string, entries []formatfile.Entry) error {
	if len(entries) == 0 {
		pterm.Info.Println(errNoFormats.Fmt(dir).Error())
		return nil
	}

	printFormatsTable(w, entries)

	return nil
}

// printRecordsTable prints a table of timed debates.
func printRecordsTable(w io.Writer, records []models.Record) {
	tableBody := make([][]string, len(records))

	for i := range records {
		rec := &records[i]

		var timed int

		for _, s := range rec.Segments {
			if s.Elapsed > 0 {
				timed++
			}
		}

		endDate := rec.EndTime.Format(dateFormat)
		if rec.EndTime.IsZero() {
			endDate = ""
		}

		overran := strings.Join(rec.Overran(), " · ")
		if overran != "" {
			overran = ui.Red(overran)
		}

		tableBody[i] = []string{
			fmt.Sprintf("%d", i+1),
			rec.StartTime.Format(dateFormat),
			endDate,
			ui.Highlight(rec.Debate),
			fmt.Sprintf("%d/%d", timed, len(rec.Segments)),
			rec.Total().Round(time.Second).String(),
			overran,
		}
	}

	tableBody = append([][]string{
		{"#", "START DATE", "END DATE", "DEBATE", "SPEECHES", "TOTAL", "OVERRAN"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// listRecords prints out a table of debates.
func listRecords(w io.Writer, records []models.Record) error {
	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	printRecordsTable(w, records)

	return nil
}
