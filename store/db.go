package store

import (
	"time"

	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveState stores the progress of a debate, replacing any earlier
	// state for the same format
	SaveState(st *debate.State) error
	// GetState returns the saved progress of a debate
	GetState(format string) (*debate.State, error)
	// ListStates returns all saved debates
	ListStates() ([]debate.State, error)
	DeleteState(format string) error
	DeleteAllStates() error
	// SaveRecord adds a debate to the history
	SaveRecord(rec *models.Record) error
	// GetRecords returns the debates in the history according to the time
	// and format constraints
	GetRecords(
		startTime, endTime time.Time,
		formats []string,
	) ([]models.Record, error)
	// DeleteRecords deletes one or more debates from the history
	DeleteRecords(records []models.Record) error
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}

var _ DB = (*Client)(nil)
