package debate

import (
	"errors"
	"log/slog"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/ayoisaiah/podium/internal/engine"
)

// State is everything needed to pick a debate up where it was left.
type State struct {
	SavedAt time.Time `json:"saved_at"`
	// StartedAt is when the debate was first started. The manager does not
	// track it; it is kept for the caller.
	StartedAt time.Time `json:"started_at"`
	// Format identifies the format file the debate was loaded from
	Format string `json:"format"`
	engine.State
	SegmentElapsed []uint64 `json:"segment_elapsed"`
	PrepElapsed    uint64   `json:"prep_elapsed"`
	Position       int      `json:"position"`
	PrepEnabled    bool     `json:"prep_enabled"`
}

// Started reports whether any time was recorded on any segment.
func (s *State) Started() bool {
	if s.Elapsed > 0 || s.PrepElapsed > 0 {
		return true
	}

	for _, e := range s.SegmentElapsed {
		if e > 0 {
			return true
		}
	}

	return false
}

// SaveState records the active segment's time and returns the state of the
// debate.
func (m *Manager) SaveState() State {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.saveActive()

	return State{
		State:          m.eng.SaveState(),
		Position:       m.position(),
		PrepEnabled:    m.prepEnabled,
		SegmentElapsed: append([]uint64(nil), m.segmentElapsed...),
		PrepElapsed:    m.prepElapsed,
		SavedAt:        time.Now(),
	}
}

// RestoreState replaces the debate's progress with st. Timers are stopped
// first and are not restarted. A restore never fails: anything that does not
// fit the debate is repaired, and the repairs are reported in an error that
// matches engine.ErrInconsistentState.
func (m *Manager) RestoreState(st *State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.Debug("restoring debate state", slog.String("state", spew.Sdump(st)))

	m.stopTimers()

	var problems []error

	n := len(m.debate.Speeches)
	if len(st.SegmentElapsed) != n {
		problems = append(problems, errSavedSegmentTimes.Fmt(len(st.SegmentElapsed), n))
	}

	m.segmentElapsed = make([]uint64, n)
	copy(m.segmentElapsed, st.SegmentElapsed)

	m.prepElapsed = st.PrepElapsed
	m.prepEnabled = st.PrepEnabled

	pos := st.Position
	if pos < 0 || pos >= m.count() {
		problems = append(problems, errSavedPosition.Fmt(pos))
		pos = 0
	}

	m.activePrep, m.activeSpeech = m.resolve(pos)

	if pos == st.Position {
		// the engine's time is authoritative for the active segment
		if m.activePrep {
			m.prepElapsed = st.Elapsed
		} else {
			m.segmentElapsed[m.activeSpeech] = st.Elapsed
		}
	}

	if err := m.loadActive(); err != nil {
		return err
	}

	if pos == st.Position {
		if err := m.eng.RestoreState(st.State); err != nil {
			problems = append(problems, err)
		}
	}

	return errors.Join(problems...)
}
