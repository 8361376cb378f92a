// Package engine implements the per-second timer that plays one segment at a
// time: it advances the clock, rings scheduled and overtime bells and keeps
// the displayed period up to date.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
)

// TickInterval is the resolution of the timer.
const TickInterval = time.Second

// overtimeBells is the number of bells in an overtime bell.
const overtimeBells = 3

type (
	// Engine times one segment at a time. All methods are safe for
	// concurrent use. Alerts and broadcasts are delivered after the engine
	// lock is released, so callbacks may call back into the engine.
	Engine struct {
		ticks     TickSource
		alerter   Alerter
		broadcast func()
		seg       *format.Segment
		current   period.Info
		name      string
		overtime  Overtime
		elapsed   uint64
		gen       uint64
		mu        sync.Mutex
		state     RunState
		released  bool
	}

	// Option configures an Engine.
	Option func(*Engine)

	// Snapshot is a consistent read of the engine for presentation.
	Snapshot struct {
		Period       period.Info
		Name         string
		Kind         format.Kind
		State        RunState
		Elapsed      uint64
		Length       uint64
		NextBell     uint64
		NextOvertime uint64
		HasNextBell  bool
		HasOvertime  bool
		Loaded       bool
	}

	// State is the persisted form of the engine.
	State struct {
		Period   period.Info `json:"period"`
		RunState string      `json:"run_state"`
		Elapsed  uint64      `json:"elapsed"`
	}

	effects []func()
)

func (fx *effects) add(fn func()) {
	*fx = append(*fx, fn)
}

func (fx effects) run() {
	for _, fn := range fx {
		fn()
	}
}

// WithOvertime sets the overtime bell schedule.
func WithOvertime(o Overtime) Option {
	return func(e *Engine) {
		e.overtime = o
	}
}

// WithBroadcast registers a hook called on every tick and state transition.
func WithBroadcast(fn func()) Option {
	return func(e *Engine) {
		e.broadcast = fn
	}
}

// New returns an engine with nothing loaded.
func New(ticks TickSource, alerter Alerter, opts ...Option) *Engine {
	if alerter == nil {
		alerter = NopAlerter{}
	}

	e := &Engine{
		ticks:    ticks,
		alerter:  alerter,
		overtime: DefaultOvertime(),
		current:  period.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) notify(fx *effects) {
	if e.broadcast != nil {
		fx.add(e.broadcast)
	}
}

// cancelLocked disarms the tick source and invalidates any callback that
// is already in flight.
func (e *Engine) cancelLocked() {
	e.gen++
	e.ticks.Cancel()
}

// LoadSegment makes seg the active segment at the given elapsed time.
func (e *Engine) LoadSegment(
	seg *format.Segment,
	name string,
	elapsed uint64,
) error {
	var fx effects

	e.mu.Lock()

	if e.state == Running {
		e.mu.Unlock()
		return errLoadWhileRunning.Fmt(name)
	}

	e.seg = seg
	e.name = name
	e.elapsed = elapsed
	e.current = seg.PeriodInfoForTime(elapsed)
	e.state = stoppedStateFor(elapsed)
	e.notify(&fx)

	e.mu.Unlock()

	fx.run()

	return nil
}

// Start starts or resumes the timer. It does nothing if the timer is
// already running or no segment is loaded.
func (e *Engine) Start() {
	var fx effects

	e.mu.Lock()

	if e.state == Running || e.seg == nil || e.released {
		e.mu.Unlock()
		return
	}

	e.gen++
	gen := e.gen

	e.ticks.Arm(TickInterval, func() {
		e.tick(gen)
	})

	e.state = Running

	name, info := e.name, e.current.Clone()
	fx.add(func() {
		e.alerter.MakeActive(name, info)
	})
	e.notify(&fx)

	slog.Debug("timer started", slog.String("segment", name), slog.Uint64("elapsed", e.elapsed))

	e.mu.Unlock()

	fx.run()
}

// Tick advances a running timer by one second. It is what the tick source
// calls. Ticks received while not running are ignored.
func (e *Engine) Tick() {
	e.mu.Lock()
	gen := e.gen
	e.mu.Unlock()

	e.tick(gen)
}

func (e *Engine) tick(gen uint64) {
	var fx effects

	e.mu.Lock()

	if gen != e.gen || e.state != Running {
		e.mu.Unlock()
		return
	}

	e.elapsed++

	if bell, ok := e.seg.BellAtTime(e.elapsed); ok {
		slog.Debug(
			"bell",
			slog.String("segment", e.name),
			slog.Uint64("elapsed", e.elapsed),
			slog.Bool("pause", bell.PauseOnFire),
		)

		if bell.PauseOnFire {
			e.cancelLocked()
			e.state = StoppedByBell

			fx.add(e.alerter.AttractAttention)
		}

		// the period must be updated before the sound is queued
		e.current = e.current.Overlay(bell.NextPeriod)

		sound := bell.Sound
		fx.add(func() {
			e.alerter.PlayBell(sound)
		})
	}

	if e.overtime.IsInstant(e.elapsed, e.seg.Length()) {
		slog.Debug(
			"overtime bell",
			slog.String("segment", e.name),
			slog.Uint64("elapsed", e.elapsed),
		)

		fx.add(func() {
			e.alerter.PlayBell(format.NewSound(overtimeBells))
		})
	}

	e.notify(&fx)

	e.mu.Unlock()

	fx.run()
}

// Stop pauses the timer.
func (e *Engine) Stop() {
	var fx effects

	e.mu.Lock()
	e.stopLocked(&fx)
	e.mu.Unlock()

	fx.run()
}

func (e *Engine) stopLocked(fx *effects) {
	e.cancelLocked()
	e.state = StoppedByUser

	fx.add(e.alerter.MakeInactive)
	e.notify(fx)
}

// Reset stops the timer and rewinds it to zero.
func (e *Engine) Reset() {
	var fx effects

	e.mu.Lock()

	e.stopLocked(&fx)

	e.elapsed = 0
	e.state = NotStarted

	if e.seg != nil {
		e.current = e.seg.PeriodInfoForTime(0)
	}

	e.mu.Unlock()

	fx.run()
}

// SetCurrentTime moves the clock to secs. It is allowed in every state. A
// stopped timer is considered stopped by the user afterwards.
func (e *Engine) SetCurrentTime(secs uint64) {
	var fx effects

	e.mu.Lock()

	if e.seg == nil {
		e.mu.Unlock()
		return
	}

	e.elapsed = secs

	if e.state != Running {
		e.state = stoppedStateFor(secs)
	}

	e.current = e.seg.PeriodInfoForTime(secs)
	e.notify(&fx)

	e.mu.Unlock()

	fx.run()
}

// IsOvertimeInstant reports whether an overtime bell rings at t in the
// loaded segment.
func (e *Engine) IsOvertimeInstant(t uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seg == nil {
		return false
	}

	return e.overtime.IsInstant(t, e.seg.Length())
}

// NextOvertimeBellTime returns the next overtime bell after the current
// time.
func (e *Engine) NextOvertimeBellTime() (uint64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.seg == nil {
		return 0, false
	}

	return e.overtime.NextAfter(e.elapsed, e.seg.Length())
}

// Overtime returns the overtime bell schedule.
func (e *Engine) Overtime() Overtime {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.overtime
}

// Elapsed returns the current time in seconds.
func (e *Engine) Elapsed() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.elapsed
}

// State returns the run state.
func (e *Engine) State() RunState {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Running reports whether the timer is running.
func (e *Engine) Running() bool {
	return e.State() == Running
}

// Period returns the period currently displayed.
func (e *Engine) Period() period.Info {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.current.Clone()
}

// Snapshot returns a consistent view of the engine.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		Name:    e.name,
		State:   e.state,
		Elapsed: e.elapsed,
		Period:  e.current.Clone(),
	}

	if e.seg == nil {
		return s
	}

	s.Loaded = true
	s.Kind = e.seg.Kind()
	s.Length = e.seg.Length()

	// the bell at the current time has already rung
	if b, ok := e.seg.FirstBellFromTime(e.elapsed + 1); ok {
		s.NextBell, s.HasNextBell = b.Offset, true
	}

	s.NextOvertime, s.HasOvertime = e.overtime.NextAfter(e.elapsed, s.Length)

	return s
}

// SaveState returns the persisted form of the engine.
func (e *Engine) SaveState() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return State{
		Elapsed:  e.elapsed,
		RunState: e.state.String(),
		Period:   e.current.Clone(),
	}
}

// RestoreState applies a saved state to the loaded segment. The engine is
// always left consistent: a malformed state is repaired and the repair is
// reported with an error matching ErrInconsistentState. A state saved while
// running is restored as stopped by the user.
func (e *Engine) RestoreState(st State) error {
	var fx effects

	e.mu.Lock()

	if e.state == Running {
		e.mu.Unlock()
		return errRestoreWhileRunning
	}

	if e.seg == nil {
		e.mu.Unlock()
		return errNothingLoaded
	}

	var advisory error

	state, ok := ParseRunState(st.RunState)

	switch {
	case !ok:
		state = stoppedStateFor(st.Elapsed)
		advisory = errUnknownRunState.Fmt(st.RunState, state)
	case state == Running:
		state = stoppedStateFor(st.Elapsed)
	case state == NotStarted && st.Elapsed > 0:
		state = StoppedByUser
		advisory = errStartedWithTime.Fmt(NotStarted, st.Elapsed, state)
	}

	e.elapsed = st.Elapsed
	e.state = state
	e.current = e.seg.PeriodInfoForTime(st.Elapsed).Overlay(st.Period)
	e.notify(&fx)

	e.mu.Unlock()

	fx.run()

	return advisory
}

// Release stops the timer for good. The engine ignores Start afterwards.
// It is safe to call more than once.
func (e *Engine) Release() {
	var fx effects

	e.mu.Lock()

	if e.state == Running {
		e.stopLocked(&fx)
	} else {
		e.cancelLocked()
	}

	e.released = true
	e.mu.Unlock()

	fx.run()
}
