// Package timer runs a debate interactively in the terminal and keeps the
// status file of the running debate up to date
package timer

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/podium/internal/alert"
	"github.com/ayoisaiah/podium/internal/clock"
	"github.com/ayoisaiah/podium/internal/config"
	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/models"
	"github.com/ayoisaiah/podium/store"
)

// timeStep is how far the clock moves when the user adjusts it.
const timeStep = 10

type (
	// Timer is the interactive debate timer.
	Timer struct {
		db         store.DB
		mgr        *debate.Manager
		player     *alert.Player
		updates    chan struct{}
		startTime  time.Time
		format     string
		statusPath string
		help       help.Model
		style      styles
		progress   progress.Model
		countDown  bool
		clock24    bool
		quitting   bool
	}

	// refreshMsg is delivered whenever the engine changes state.
	refreshMsg struct{}
)

// New prepares a timer for the debate d loaded from the format file
// formatName.
func New(
	db store.DB,
	cfg *config.Config,
	d *format.Debate,
	formatName string,
) (*Timer, error) {
	player := alert.New(alert.Options{
		BellFile:      cfg.Sound.Bell,
		BellCmd:       cfg.Settings.BellCmd,
		Sound:         cfg.Sound.Enabled,
		Notifications: cfg.Notifications.Enabled,
	})

	t, err := build(db, cfg, d, formatName, clock.NewTicker(), clock.NewTicker(), player)
	if err != nil {
		return nil, err
	}

	t.player = player

	return t, nil
}

// build wires a timer to the given tick sources and alerter.
func build(
	db store.DB,
	cfg *config.Config,
	d *format.Debate,
	formatName string,
	ticks, poiTicks engine.TickSource,
	alerter engine.Alerter,
) (*Timer, error) {
	t := newTimer(db, cfg, formatName)

	eng := engine.New(
		ticks,
		alerter,
		engine.WithOvertime(cfg.EngineOvertime()),
		engine.WithBroadcast(t.broadcast),
	)

	poi := engine.NewPOITimer(poiTicks, alerter, cfg.POILength(), t.broadcast)

	opts := []debate.Option{
		debate.WithPrepEnabled(cfg.Prep.Enabled),
		debate.WithPOITimer(poi),
	}

	if d.PrepName != "" {
		opts = append(opts, debate.WithPrepName(d.PrepName))
	}

	mgr, err := debate.New(d, eng, opts...)
	if err != nil {
		return nil, err
	}

	t.mgr = mgr

	return t, nil
}

func newTimer(db store.DB, cfg *config.Config, formatName string) *Timer {
	t := &Timer{
		db:         db,
		format:     formatName,
		statusPath: cfg.System.StatusPath,
		updates:    make(chan struct{}, 1),
		help:       help.New(),
		style:      newStyles(cfg.Display.DarkTheme),
		countDown:  cfg.Display.CountDown,
		clock24:    cfg.Display.TwentyFourHour,
		progress: progress.New(
			progress.WithDefaultGradient(),
			progress.WithoutPercentage(),
		),
	}

	t.progress.Width = maxWidth - padding*2 - 4

	return t
}

// broadcast is called by the engine on every tick and transition. It never
// blocks: one pending refresh is enough to redraw the latest state.
func (t *Timer) broadcast() {
	select {
	case t.updates <- struct{}{}:
	default:
	}
}

func (t *Timer) waitForRefresh() tea.Cmd {
	return func() tea.Msg {
		<-t.updates
		return refreshMsg{}
	}
}

// Resume restores a saved debate. Problems with the saved state are
// repaired and logged.
func (t *Timer) Resume(st *debate.State) {
	err := t.mgr.RestoreState(st)
	if errors.Is(err, engine.ErrInconsistentState) {
		slog.Warn("saved debate was repaired", slog.Any("error", err))
	} else if err != nil {
		slog.Error("unable to restore debate", slog.Any("error", err))
	}

	t.startTime = st.StartedAt
}

func (t *Timer) Init() tea.Cmd {
	_ = t.writeStatusFile()

	return t.waitForRefresh()
}

// record summarises the debate for the history.
func (t *Timer) record() models.Record {
	names := t.mgr.Names()
	rec := models.Record{
		StartTime: t.startTime,
		EndTime:   time.Now(),
		Format:    t.format,
		Debate:    t.mgr.Debate().Name,
		Segments:  make([]models.SegmentRecord, 0, len(names)),
	}

	for i, name := range names {
		elapsed, _ := t.mgr.Elapsed(i)

		var length uint64
		if seg, err := t.mgr.Segment(i); err == nil {
			length = seg.Length()
		}

		rec.Segments = append(rec.Segments, models.SegmentRecord{
			Name:    name,
			Elapsed: elapsed,
			Length:  length,
		})
	}

	return rec
}

// persist stops the timers and saves the debate so that it can be resumed.
// A debate on which time was recorded is added to the history.
func (t *Timer) persist() error {
	t.mgr.Stop()

	st := t.mgr.SaveState()
	st.Format = t.format
	st.StartedAt = t.startTime

	if !st.Started() {
		return nil
	}

	err := t.db.SaveState(&st)
	if err != nil {
		return errPersist.Wrap(err)
	}

	if t.startTime.IsZero() {
		return nil
	}

	rec := t.record()

	err = t.db.SaveRecord(&rec)
	if err != nil {
		return errPersist.Wrap(err)
	}

	return nil
}

// Close releases the timers, waits for pending alerts and removes the
// status file.
func (t *Timer) Close() {
	t.mgr.Release()

	if t.player != nil {
		t.player.Close()
	}

	t.removeStatusFile()
}

// Run starts the interactive timer and blocks until the user quits.
func (t *Timer) Run() error {
	defer t.Close()

	_, err := tea.NewProgram(t).Run()

	return err
}
