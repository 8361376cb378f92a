package app

import (
	"fmt"
	"io"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/internal/ui"
	"github.com/ayoisaiah/podium/store"
)

const noStatesMsg = "There are no saved debates"

// confirm asks the user to approve a destructive operation.
func confirm(title string) (bool, error) {
	var ok bool

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&ok),
		),
	).Run()

	return ok, err
}

// delRecords deletes the specified debates from the history. It requests
// confirmation before proceeding unless yes is set.
func delRecords(
	w io.Writer,
	db store.DB,
	records []models.Record,
	yes bool,
) error {
	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	printRecordsTable(w, records)

	if !yes {
		ok, err := confirm(
			fmt.Sprintf("Delete the %d debates above permanently?", len(records)),
		)
		if err != nil || !ok {
			return err
		}
	}

	return db.DeleteRecords(records)
}

// delStates asks which saved debates to delete.
func delStates(w io.Writer, db store.DB) error {
	states, err := db.ListStates()
	if err != nil {
		return err
	}

	if len(states) == 0 {
		pterm.Info.Println(noStatesMsg)
		return nil
	}

	tableBody := [][]string{{"#", "FORMAT", "DATE SAVED", "POSITION"}}
	options := make([]huh.Option[string], 0, len(states))

	for i := range states {
		st := &states[i]

		tableBody = append(tableBody, []string{
			fmt.Sprintf("%d", i+1),
			ui.Cyan(st.Format),
			st.SavedAt.Format(dateFormat),
			fmt.Sprintf("%d", st.Position+1),
		})

		options = append(options, huh.NewOption(st.Format, st.Format))
	}

	ui.PrintTable(tableBody, w)

	var selected []string

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[string]().
				Title("Select the debates to delete").
				Options(options...).
				Value(&selected),
		),
	).Run()
	if err != nil {
		return err
	}

	for _, format := range selected {
		err = db.DeleteState(format)
		if err != nil {
			return err
		}
	}

	return nil
}
