package timer

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/podium/internal/clock"
	"github.com/ayoisaiah/podium/internal/config"
	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/formatfile"
	"github.com/ayoisaiah/podium/store"
)

const testFormat = `
name: Test debate
short_name: Test
speech_types:
  - ref: main
    length: "2:00"
    first_period: normal
    bells:
      - time: "0:30"
        next_period: pois-allowed
      - time: "1:30"
        next_period: warning
      - time: finish
        number: 2
        next_period: overtime
prep_time:
  length: "5:00"
speeches:
  - {name: Opening, type: main}
  - {name: Closing, type: main}
`

type fixture struct {
	t     *Timer
	db    *store.Client
	ticks *clock.Manual
	poi   *clock.Manual
	dir   string
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Overtime: config.OvertimeConfig{
			Enabled:   true,
			FirstBell: 30 * time.Second,
			Period:    20 * time.Second,
		},
		Prep:    config.PrepConfig{Enabled: true},
		POI:     config.POIConfig{Length: 15 * time.Second},
		Display: config.DisplayConfig{DarkTheme: true},
		System: config.SystemConfig{
			DBPath:     filepath.Join(dir, "podium.db"),
			StatusPath: filepath.Join(dir, "status.json"),
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	cfg := testConfig(dir)

	db, err := store.NewClient(cfg.System.DBPath)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	d, _, err := formatfile.Parse([]byte(testFormat))
	require.NoError(t, err)

	f := &fixture{
		db:    db,
		ticks: clock.NewManual(),
		poi:   clock.NewManual(),
		dir:   dir,
	}

	f.t, err = build(db, cfg, d, "test.yml", f.ticks, f.poi, engine.NopAlerter{})
	require.NoError(t, err)

	t.Cleanup(f.t.Close)

	return f
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var space = runes(" ")

func (f *fixture) press(keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = f.t.Update(k)
	}

	return cmd
}

func TestStartStop(t *testing.T) {
	f := newFixture(t)

	f.press(space)
	assert.False(t, f.t.startTime.IsZero())
	require.True(t, f.ticks.Armed())

	f.ticks.Fire(5)
	assert.Equal(t, uint64(5), f.t.mgr.Snapshot().Elapsed)

	f.press(space)
	assert.Equal(t, engine.StoppedByUser, f.t.mgr.Snapshot().State)
	assert.False(t, f.ticks.Armed())
}

func TestNavigation(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, "Prep time", f.t.mgr.Snapshot().Name)

	f.press(runes("n"))
	assert.Equal(t, "Opening", f.t.mgr.Snapshot().Name)

	f.press(runes("n"), runes("n"))
	assert.Equal(t, "Closing", f.t.mgr.Snapshot().Name)

	f.press(runes("p"))
	assert.Equal(t, "Opening", f.t.mgr.Snapshot().Name)

	// turning prep off keeps the current speech
	f.press(runes("t"))
	s := f.t.mgr.Snapshot()
	assert.False(t, s.PrepEnabled)
	assert.Equal(t, "Opening", s.Name)
	assert.Equal(t, 2, s.Count)
}

func TestShiftTime(t *testing.T) {
	f := newFixture(t)

	f.press(runes("+"), runes("+"), runes("+"))
	assert.Equal(t, uint64(30), f.t.mgr.Snapshot().Elapsed)

	f.press(runes("-"))
	assert.Equal(t, uint64(20), f.t.mgr.Snapshot().Elapsed)

	f.press(runes("-"), runes("-"), runes("-"))
	assert.Equal(t, uint64(0), f.t.mgr.Snapshot().Elapsed)

	f.press(runes("+"), runes("r"))
	assert.Equal(t, uint64(0), f.t.mgr.Snapshot().Elapsed)
}

func TestPOIKey(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"), runes("+"), runes("+"), runes("+"), runes("+"))

	// POIs only start while running in a POI period
	f.press(runes("i"))
	assert.False(t, f.t.mgr.Snapshot().POIRunning)

	f.press(space, runes("i"))
	assert.True(t, f.t.mgr.Snapshot().POIRunning)
	assert.Contains(t, f.t.View(), "POI 0:15")

	f.press(runes("i"))
	assert.False(t, f.t.mgr.Snapshot().POIRunning)
}

func TestView(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"), space)
	f.ticks.Fire(35)

	view := f.t.View()
	assert.Contains(t, view, "Opening")
	assert.Contains(t, view, "(2/3)")
	assert.Contains(t, view, "POIs allowed")
	assert.Contains(t, view, "0:35")
	assert.Contains(t, view, "next bell at 1:30")

	f.press(runes("c"))
	assert.Contains(t, f.t.View(), "1:25")

	f.ticks.Fire(100)
	view = f.t.View()
	assert.Contains(t, view, "+0:15")
	assert.Contains(t, view, "overtime bell at 2:30")
}

func TestRefresh(t *testing.T) {
	f := newFixture(t)

	cmd := f.t.Init()
	require.NotNil(t, cmd)

	f.press(space)

	msg := cmd()
	assert.IsType(t, refreshMsg{}, msg)

	_, next := f.t.Update(msg)
	assert.NotNil(t, next)
	assert.FileExists(t, f.t.statusPath)

	// broadcasts never block even when nobody is listening
	for range 10 {
		f.t.broadcast()
	}
}

func TestQuitPersists(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"), space)
	f.ticks.Fire(42)

	cmd := f.press(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, f.t.quitting)
	assert.Empty(t, f.t.View())

	st, err := f.db.GetState("test.yml")
	require.NoError(t, err)
	assert.Equal(t, 1, st.Position)
	assert.Equal(t, uint64(42), st.Elapsed)
	assert.Equal(t, engine.StoppedByUser.String(), st.RunState)
	assert.False(t, st.StartedAt.IsZero())

	records, err := f.db.GetRecords(time.Time{}, time.Now().Add(time.Minute), nil)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Test debate", records[0].Debate)
	assert.Equal(t, uint64(42), records[0].Segments[1].Elapsed)
	assert.Equal(t, uint64(120), records[0].Segments[1].Length)
}

func TestQuitWithoutTimeSavesNothing(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"), runes("q"))

	_, err := f.db.GetState("test.yml")
	require.Error(t, err)

	records, err := f.db.GetRecords(time.Time{}, time.Now(), nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestResume(t *testing.T) {
	f := newFixture(t)

	started := time.Now().Add(-time.Hour)

	f.t.Resume(&debate.State{
		StartedAt:      started,
		Format:         "test.yml",
		State:          engine.State{RunState: "running", Elapsed: 95},
		SegmentElapsed: []uint64{120, 95},
		PrepElapsed:    300,
		Position:       2,
		PrepEnabled:    true,
	})

	s := f.t.mgr.Snapshot()
	assert.Equal(t, "Closing", s.Name)
	assert.Equal(t, uint64(95), s.Elapsed)
	assert.Equal(t, engine.StoppedByUser, s.State)
	assert.Equal(t, "Warning bell rung", s.Period.Text())
	assert.True(t, started.Equal(f.t.startTime))
}

func TestReportStatus(t *testing.T) {
	f := newFixture(t)

	f.press(runes("n"), space)
	f.ticks.Fire(65)
	require.NoError(t, f.t.writeStatusFile())

	var buf bytes.Buffer

	// the fixture holds the database, as a running timer would
	err := ReportStatus(&buf, filepath.Join(f.dir, "podium.db"), f.t.statusPath)
	require.NoError(t, err)
	assert.Equal(t, "[Test debate 2/3] Opening: 1:05 / 2:00 (POIs allowed)\n", buf.String())

	require.NoError(t, f.db.Close())

	buf.Reset()
	require.NoError(t, ReportStatus(&buf, filepath.Join(f.dir, "podium.db"), f.t.statusPath))
	assert.Empty(t, buf.String())
}
