// Package debate runs a whole debate on a single timer engine. It tracks
// which segment is active and remembers the elapsed time of every segment so
// that the user can move back and forth between them.
package debate

import (
	"log/slog"
	"sync"

	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/format"
)

// DefaultPrepName is the name shown for preparation time.
const DefaultPrepName = "Prep time"

type (
	// Manager multiplexes one engine across the segments of a debate. Its
	// methods are safe for concurrent use. The engine's alerter and broadcast
	// hook run while the manager is locked, so they must not call back into
	// it.
	Manager struct {
		debate         *format.Debate
		eng            *engine.Engine
		poi            *engine.POITimer
		prepName       string
		segmentElapsed []uint64
		prepElapsed    uint64
		activeSpeech   int
		mu             sync.Mutex
		activePrep     bool
		prepEnabled    bool
	}

	// Option configures a Manager.
	Option func(*Manager)

	// Snapshot is a consistent view of the debate for presentation.
	Snapshot struct {
		engine.Snapshot
		Debate       string
		Position     int
		Count        int
		POIRemaining uint64
		POIRunning   bool
		PrepEnabled  bool
		HasPrep      bool
	}
)

// WithPrepEnabled sets whether the preparation segment, if the debate has
// one, is offered. It is enabled by default.
func WithPrepEnabled(enabled bool) Option {
	return func(m *Manager) {
		m.prepEnabled = enabled
	}
}

// WithPOITimer attaches a points of information countdown.
func WithPOITimer(p *engine.POITimer) Option {
	return func(m *Manager) {
		m.poi = p
	}
}

// WithPrepName changes the name of the preparation segment.
func WithPrepName(name string) Option {
	return func(m *Manager) {
		m.prepName = name
	}
}

// New returns a manager positioned on the first segment of d.
func New(d *format.Debate, eng *engine.Engine, opts ...Option) (*Manager, error) {
	m := &Manager{
		debate:         d,
		eng:            eng,
		prepName:       DefaultPrepName,
		prepEnabled:    true,
		segmentElapsed: make([]uint64, len(d.Speeches)),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.activePrep = m.hasPrep()

	if err := m.loadActive(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manager) hasPrep() bool {
	return m.prepEnabled && m.debate.HasPrep()
}

func (m *Manager) offset() int {
	if m.hasPrep() {
		return 1
	}

	return 0
}

func (m *Manager) count() int {
	return len(m.debate.Speeches) + m.offset()
}

func (m *Manager) position() int {
	if m.activePrep {
		return 0
	}

	return m.activeSpeech + m.offset()
}

// resolve maps a position to prep time or a speech index. The position must
// be in range.
func (m *Manager) resolve(p int) (bool, int) {
	if m.hasPrep() {
		if p == 0 {
			return true, 0
		}

		return false, p - 1
	}

	return false, p
}

func (m *Manager) validate(p int) error {
	if p < 0 || p >= m.count() {
		return errPositionOutOfRange.Fmt(p, m.count()-1)
	}

	return nil
}

func (m *Manager) segmentFor(prep bool, i int) (*format.Segment, string) {
	if prep {
		return m.debate.Prep, m.prepName
	}

	s := m.debate.Speeches[i]

	return s.Segment, s.Name
}

func (m *Manager) storedElapsed(prep bool, i int) uint64 {
	if prep {
		return m.prepElapsed
	}

	return m.segmentElapsed[i]
}

func (m *Manager) loadActive() error {
	seg, name := m.segmentFor(m.activePrep, m.activeSpeech)

	return m.eng.LoadSegment(seg, name, m.storedElapsed(m.activePrep, m.activeSpeech))
}

// saveActive stores the engine's time in the active segment's slot.
func (m *Manager) saveActive() {
	elapsed := m.eng.Elapsed()

	if m.activePrep {
		m.prepElapsed = elapsed
		return
	}

	m.segmentElapsed[m.activeSpeech] = elapsed
}

func (m *Manager) stopTimers() {
	m.eng.Stop()

	if m.poi != nil {
		m.poi.Stop()
	}
}

// switchTo makes the given segment active, keeping the outgoing time.
func (m *Manager) switchTo(prep bool, i int) error {
	// stop before saving so that no tick lands after the save
	m.stopTimers()
	m.saveActive()

	m.activePrep, m.activeSpeech = prep, i

	slog.Debug(
		"switching segment",
		slog.Bool("prep", prep),
		slog.Int("speech", i),
	)

	return m.loadActive()
}

// SetPosition makes segment p active.
func (m *Manager) SetPosition(p int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.setPosition(p)
}

func (m *Manager) setPosition(p int) error {
	if p == m.position() {
		return nil
	}

	if err := m.validate(p); err != nil {
		return err
	}

	prep, i := m.resolve(p)

	return m.switchTo(prep, i)
}

// GoNext moves to the next segment. It does nothing on the last one.
func (m *Manager) GoNext() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.position() >= m.count()-1 {
		return nil
	}

	return m.setPosition(m.position() + 1)
}

// GoPrevious moves to the previous segment. It does nothing on the first
// one.
func (m *Manager) GoPrevious() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.position() == 0 {
		return nil
	}

	return m.setPosition(m.position() - 1)
}

// SetPrepEnabled turns the preparation segment on or off. Turning it off
// while it is active moves to the first speech. The prep time already used
// is kept for when it is turned back on.
func (m *Manager) SetPrepEnabled(enabled bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if enabled == m.prepEnabled {
		return nil
	}

	if !enabled && m.activePrep {
		m.stopTimers()
		m.saveActive()

		m.prepEnabled = false
		m.activePrep, m.activeSpeech = false, 0

		return m.loadActive()
	}

	m.prepEnabled = enabled

	return nil
}

// PrepEnabled reports whether the user wants prep time.
func (m *Manager) PrepEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.prepEnabled
}

// HasPrep reports whether position 0 is prep time.
func (m *Manager) HasPrep() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.hasPrep()
}

// Position returns the active position.
func (m *Manager) Position() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.position()
}

// Count returns the number of segments currently offered.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.count()
}

// Debate returns the debate being run.
func (m *Manager) Debate() *format.Debate {
	return m.debate
}

// Name returns the name of segment p.
func (m *Manager) Name(p int) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(p); err != nil {
		return "", err
	}

	_, name := m.segmentFor(m.resolve(p))

	return name, nil
}

// Names returns the names of all segments in order.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, m.count())
	for p := range names {
		_, names[p] = m.segmentFor(m.resolve(p))
	}

	return names
}

// Segment returns the format of segment p.
func (m *Manager) Segment(p int) (*format.Segment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(p); err != nil {
		return nil, err
	}

	seg, _ := m.segmentFor(m.resolve(p))

	return seg, nil
}

// Kind returns the kind of segment p.
func (m *Manager) Kind(p int) (format.Kind, error) {
	seg, err := m.Segment(p)
	if err != nil {
		return 0, err
	}

	return seg.Kind(), nil
}

// Elapsed returns the time on segment p. For the active segment this is the
// live engine time.
func (m *Manager) Elapsed(p int) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(p); err != nil {
		return 0, err
	}

	if p == m.position() {
		return m.eng.Elapsed(), nil
	}

	return m.storedElapsed(m.resolve(p)), nil
}

// NextOvertimeBellTime returns the next overtime bell of segment p given
// its current time.
func (m *Manager) NextOvertimeBellTime(p int) (uint64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validate(p); err != nil {
		return 0, false, err
	}

	if p == m.position() {
		next, ok := m.eng.NextOvertimeBellTime()
		return next, ok, nil
	}

	prep, i := m.resolve(p)
	seg, _ := m.segmentFor(prep, i)

	next, ok := m.eng.Overtime().NextAfter(m.storedElapsed(prep, i), seg.Length())

	return next, ok, nil
}

// Start starts or resumes the active segment.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eng.Start()
}

// Stop pauses the active segment and any POI countdown.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimers()
}

// Toggle starts a stopped timer or stops a running one.
func (m *Manager) Toggle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.eng.Running() {
		m.stopTimers()
		return
	}

	m.eng.Start()
}

// Reset rewinds the active segment to zero.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poi != nil {
		m.poi.Stop()
	}

	m.eng.Reset()
}

// SetCurrentTime moves the active segment's clock.
func (m *Manager) SetCurrentTime(secs uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.eng.SetCurrentTime(secs)
}

// StartPOI starts the points of information countdown. It only starts while
// the timer is running and the current period allows POIs.
func (m *Manager) StartPOI() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poi == nil || !m.eng.Running() || !m.eng.Period().POIs() {
		return false
	}

	m.poi.Start()

	return true
}

// StopPOI cancels the points of information countdown.
func (m *Manager) StopPOI() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.poi != nil {
		m.poi.Stop()
	}
}

// Snapshot returns a consistent view of the debate.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := Snapshot{
		Debate:      m.debate.Name,
		Snapshot:    m.eng.Snapshot(),
		Position:    m.position(),
		Count:       m.count(),
		PrepEnabled: m.prepEnabled,
		HasPrep:     m.hasPrep(),
	}

	if m.poi != nil {
		s.POIRemaining, s.POIRunning = m.poi.Remaining()
	}

	return s
}

// Release stops every timer. The manager must not be used afterwards.
func (m *Manager) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopTimers()
	m.eng.Release()
}
