package timer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/osutil"
	"github.com/ayoisaiah/podium/internal/period"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

// Status is what the running timer reports to other podium commands.
type Status struct {
	UpdatedAt time.Time   `json:"updated_at"`
	Period    period.Info `json:"period"`
	Format    string      `json:"format"`
	Debate    string      `json:"debate"`
	Segment   string      `json:"segment"`
	State     string      `json:"state"`
	Position  int         `json:"position"`
	Count     int         `json:"count"`
	Elapsed   uint64      `json:"elapsed"`
	Length    uint64      `json:"length"`
}

func newStatus(formatName string, s *debate.Snapshot) Status {
	return Status{
		UpdatedAt: time.Now(),
		Period:    s.Period,
		Format:    formatName,
		Debate:    s.Debate,
		Segment:   s.Name,
		State:     s.State.String(),
		Position:  s.Position,
		Count:     s.Count,
		Elapsed:   s.Elapsed,
		Length:    s.Length,
	}
}

// String renders the status on one line.
func (s *Status) String() string {
	return fmt.Sprintf(
		"[%s %d/%d] %s: %s / %s (%s)",
		s.Debate,
		s.Position+1,
		s.Count,
		s.Segment,
		timeutil.FormatClock(s.Elapsed),
		timeutil.FormatClock(s.Length),
		s.Period.Text(),
	)
}

func (t *Timer) writeStatusFile() error {
	if t.statusPath == "" {
		return nil
	}

	snap := t.mgr.Snapshot()
	s := newStatus(t.format, &snap)

	b, err := json.Marshal(s)
	if err != nil {
		return errWriteStatus.Wrap(err)
	}

	err = os.WriteFile(t.statusPath, b, osutil.FilePermission)
	if err != nil {
		return errWriteStatus.Wrap(err)
	}

	return nil
}

func (t *Timer) removeStatusFile() {
	if t.statusPath != "" {
		_ = os.Remove(t.statusPath)
	}
}

// ReportStatus prints the status of the debate timed by another podium
// process. Nothing is printed if no timer is running.
func ReportStatus(w io.Writer, dbFilePath, statusFilePath string) error {
	fileMode := osutil.FilePermission

	db, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// This means podium is not running, so no status to report
	if err == nil {
		return db.Close()
	}

	if !errors.Is(err, bolt.ErrDatabaseOpen) &&
		!errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return errReadStatus.Wrap(err)
	}

	_, err = fmt.Fprintln(w, s.String())

	return err
}
