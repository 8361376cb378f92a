package debate

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayoisaiah/podium/internal/clock"
	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
)

func speech(t *testing.T, length uint64) *format.Segment {
	t.Helper()

	pois := format.NewBell(60, 1)
	pois.NextPeriod = period.New("POIs allowed", period.Transparent, true)

	closing := format.NewBell(length-60, 1)
	closing.NextPeriod = period.Info{
		Description: period.Ptr("Warning"),
		POIsAllowed: period.Ptr(false),
	}

	finish := format.NewBell(length, 2)
	finish.NextPeriod = period.Info{Description: period.Ptr("Overtime")}

	seg, err := format.NewSegment(format.KindSpeech, length, period.Info{}, pois, closing, finish)
	require.NoError(t, err)

	return seg
}

func testDebate(t *testing.T, withPrep bool) *format.Debate {
	t.Helper()

	var prep *format.Segment

	if withPrep {
		var err error

		prep, err = format.NewSegment(
			format.KindPrep,
			900,
			period.Info{},
			format.PrepBells(nil, 900)...,
		)
		require.NoError(t, err)
	}

	d, err := format.NewDebate("Test debate", "Test", prep,
		format.Speech{Name: "First", Segment: speech(t, 420)},
		format.Speech{Name: "Second", Segment: speech(t, 420)},
		format.Speech{Name: "Reply", Segment: speech(t, 240)},
	)
	require.NoError(t, err)

	return d
}

type fixture struct {
	m     *Manager
	eng   *engine.Engine
	ticks *clock.Manual
	poi   *clock.Manual
}

func newFixture(t *testing.T, withPrep bool, opts ...Option) fixture {
	t.Helper()

	ticks := clock.NewManual()
	poiTicks := clock.NewManual()
	eng := engine.New(ticks, nil)

	opts = append(opts, WithPOITimer(engine.NewPOITimer(poiTicks, nil, 15, nil)))

	m, err := New(testDebate(t, withPrep), eng, opts...)
	require.NoError(t, err)

	return fixture{m: m, eng: eng, ticks: ticks, poi: poiTicks}
}

func TestNewStartsOnFirstSegment(t *testing.T) {
	f := newFixture(t, true)

	assert.Equal(t, 0, f.m.Position())
	assert.Equal(t, 4, f.m.Count())
	assert.True(t, f.m.HasPrep())
	assert.Equal(t, []string{DefaultPrepName, "First", "Second", "Reply"}, f.m.Names())

	kind, err := f.m.Kind(0)
	require.NoError(t, err)
	assert.Equal(t, format.KindPrep, kind)

	f = newFixture(t, true, WithPrepEnabled(false))

	assert.Equal(t, 3, f.m.Count())
	assert.False(t, f.m.HasPrep())

	name, err := f.m.Name(0)
	require.NoError(t, err)
	assert.Equal(t, "First", name)

	f = newFixture(t, false)
	assert.Equal(t, 3, f.m.Count())
	assert.True(t, f.m.PrepEnabled())
	assert.False(t, f.m.HasPrep())
}

func TestSetPositionRoundTrip(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.m.SetPosition(1))
	f.m.Start()
	f.ticks.Fire(42)

	before := f.eng.Period()
	require.Equal(t, uint64(42), f.eng.Elapsed())

	require.NoError(t, f.m.SetPosition(2))
	assert.False(t, f.ticks.Armed())
	assert.Equal(t, uint64(0), f.eng.Elapsed())

	f.m.Start()
	f.ticks.Fire(7)

	require.NoError(t, f.m.SetPosition(1))

	assert.Equal(t, uint64(42), f.eng.Elapsed())
	assert.Equal(t, engine.StoppedByUser, f.eng.State())

	if diff := cmp.Diff(before, f.eng.Period()); diff != "" {
		t.Fatalf("period changed across navigation (-before +after):\n%s", diff)
	}

	elapsed, err := f.m.Elapsed(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), elapsed)
}

func TestSetPositionSameIsNoop(t *testing.T) {
	f := newFixture(t, true)

	f.m.Start()
	f.ticks.Fire(3)

	require.NoError(t, f.m.SetPosition(0))
	assert.True(t, f.eng.Running())
	assert.Equal(t, uint64(3), f.eng.Elapsed())
}

func TestSetPositionOutOfRange(t *testing.T) {
	f := newFixture(t, true)

	for _, p := range []int{-1, 4, 100} {
		err := f.m.SetPosition(p)
		require.Error(t, err)
		assert.ErrorIs(t, err, engine.ErrOutOfRange)
	}

	_, err := f.m.Elapsed(4)
	assert.ErrorIs(t, err, engine.ErrOutOfRange)

	_, err = f.m.Segment(-1)
	assert.ErrorIs(t, err, engine.ErrOutOfRange)

	assert.Equal(t, 0, f.m.Position())
}

func TestGoNextAndPrevious(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.m.GoPrevious())
	assert.Equal(t, 0, f.m.Position())

	for range 10 {
		require.NoError(t, f.m.GoNext())
	}

	assert.Equal(t, 3, f.m.Position())

	require.NoError(t, f.m.GoPrevious())
	assert.Equal(t, 2, f.m.Position())
}

func TestDisablePrepKeepsPrepTime(t *testing.T) {
	f := newFixture(t, true)

	f.m.Start()
	f.ticks.Fire(12)

	require.NoError(t, f.m.SetPrepEnabled(false))

	assert.False(t, f.ticks.Armed())
	assert.Equal(t, 3, f.m.Count())
	assert.Equal(t, 0, f.m.Position())

	name, err := f.m.Name(0)
	require.NoError(t, err)
	assert.Equal(t, "First", name)
	assert.Equal(t, uint64(0), f.eng.Elapsed())

	require.NoError(t, f.m.SetPrepEnabled(true))

	assert.Equal(t, 4, f.m.Count())
	assert.Equal(t, 1, f.m.Position())

	elapsed, err := f.m.Elapsed(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), elapsed)

	require.NoError(t, f.m.SetPosition(0))
	assert.Equal(t, uint64(12), f.eng.Elapsed())
	assert.Equal(t, engine.StoppedByUser, f.eng.State())
}

func TestDisablePrepOnSpeechKeepsPosition(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.m.SetPosition(2))
	require.NoError(t, f.m.SetPrepEnabled(false))

	assert.Equal(t, 1, f.m.Position())

	name, err := f.m.Name(f.m.Position())
	require.NoError(t, err)
	assert.Equal(t, "Second", name)
}

func TestNextOvertimeBellTimeForInactiveSegment(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.m.SetPosition(3))
	f.m.SetCurrentTime(275)
	require.NoError(t, f.m.SetPosition(1))

	next, ok, err := f.m.NextOvertimeBellTime(3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(290), next)

	next, ok, err = f.m.NextOvertimeBellTime(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(450), next)
}

func TestStartPOI(t *testing.T) {
	f := newFixture(t, false)

	assert.False(t, f.m.StartPOI(), "timer is not running")

	f.m.Start()
	assert.False(t, f.m.StartPOI(), "POIs are not allowed yet")

	f.ticks.Fire(60)
	assert.True(t, f.m.StartPOI())

	f.poi.Fire(5)

	s := f.m.Snapshot()
	assert.True(t, s.POIRunning)
	assert.Equal(t, uint64(10), s.POIRemaining)

	f.m.Stop()
	assert.False(t, f.poi.Armed())
	assert.False(t, f.m.Snapshot().POIRunning)
}

func TestToggleAndReset(t *testing.T) {
	f := newFixture(t, false)

	f.m.Toggle()
	assert.True(t, f.eng.Running())

	f.ticks.Fire(30)
	f.m.Toggle()
	assert.Equal(t, engine.StoppedByUser, f.eng.State())

	f.m.Reset()
	assert.Equal(t, engine.NotStarted, f.eng.State())
	assert.Equal(t, uint64(0), f.eng.Elapsed())
}

func TestConcurrentToggle(t *testing.T) {
	f := newFixture(t, false)

	var wg sync.WaitGroup

	for range 100 {
		wg.Add(1)

		go func() {
			defer wg.Done()
			f.m.Toggle()
		}()
	}

	wg.Wait()

	assert.False(t, f.eng.Running())
	assert.False(t, f.ticks.Armed())
}

// bellCounter counts how often each bell sound has rung.
type bellCounter struct {
	engine.NopAlerter
	rung map[string]int
	mu   sync.Mutex
}

func (b *bellCounter) PlayBell(s format.Sound) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rung[s.Resource]++
}

// everySecond returns a segment with a uniquely named bell on every second.
func everySecond(t *testing.T, name string, length uint64) *format.Segment {
	t.Helper()

	bells := make([]format.Bell, 0, length)
	for i := uint64(1); i <= length; i++ {
		b := format.NewBell(i, 1)
		b.Sound.Resource = fmt.Sprintf("%s/%d", name, i)
		bells = append(bells, b)
	}

	seg, err := format.NewSegment(format.KindSpeech, length, period.Info{}, bells...)
	require.NoError(t, err)

	return seg
}

func TestSwitchingWhileTicking(t *testing.T) {
	const (
		length   = 2000
		maxTicks = 1500
	)

	d, err := format.NewDebate("Test debate", "Test", nil,
		format.Speech{Name: "First", Segment: everySecond(t, "First", length)},
		format.Speech{Name: "Second", Segment: everySecond(t, "Second", length)},
	)
	require.NoError(t, err)

	alerts := &bellCounter{rung: make(map[string]int)}
	ticks := clock.NewManual()
	eng := engine.New(ticks, alerts)

	m, err := New(d, eng)
	require.NoError(t, err)

	done := make(chan struct{})
	ticked := make(chan struct{})

	go func() {
		defer close(ticked)

		var delivered int

		for {
			select {
			case <-done:
				return
			default:
			}

			if delivered < maxTicks {
				delivered += ticks.Fire(1)
			}
		}
	}()

	for range 300 {
		m.Start()
		require.NoError(t, m.GoNext())
		m.Start()
		require.NoError(t, m.GoPrevious())
	}

	close(done)
	<-ticked

	m.Stop()

	first, err := m.Elapsed(0)
	require.NoError(t, err)

	second, err := m.Elapsed(1)
	require.NoError(t, err)

	alerts.mu.Lock()
	defer alerts.mu.Unlock()

	for resource, n := range alerts.rung {
		assert.Equal(t, 1, n, "bell %s rang more than once", resource)
	}

	// every second kept is a second that rang its bell exactly once
	assert.Len(t, alerts.rung, int(first+second))
}

func TestSnapshot(t *testing.T) {
	f := newFixture(t, true)

	require.NoError(t, f.m.SetPosition(1))
	f.m.SetCurrentTime(61)

	s := f.m.Snapshot()

	assert.Equal(t, "Test debate", s.Debate)
	assert.Equal(t, 1, s.Position)
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, "First", s.Name)
	assert.Equal(t, uint64(61), s.Elapsed)
	assert.Equal(t, "POIs allowed", s.Period.Text())
	assert.Equal(t, uint64(360), s.NextBell)
}

func TestRelease(t *testing.T) {
	f := newFixture(t, false)

	f.m.Start()
	f.ticks.Fire(10)
	f.m.Release()

	assert.Equal(t, 0, f.ticks.Fire(1000))

	f.m.Start()
	assert.Equal(t, 0, f.ticks.Fire(1000))
	assert.Equal(t, uint64(10), f.eng.Elapsed())
}

func TestSaveAndRestoreState(t *testing.T) {
	f := newFixture(t, true)

	f.m.Start()
	f.ticks.Fire(30)
	require.NoError(t, f.m.SetPosition(2))
	f.m.Start()
	f.ticks.Fire(100)

	st := f.m.SaveState()

	assert.Equal(t, 2, st.Position)
	assert.Equal(t, uint64(30), st.PrepElapsed)
	assert.Equal(t, []uint64{0, 100, 0}, st.SegmentElapsed)
	assert.Equal(t, uint64(100), st.Elapsed)
	assert.Equal(t, "running", st.RunState)
	assert.True(t, st.Started())

	b, err := json.Marshal(st)
	require.NoError(t, err)

	var decoded State
	require.NoError(t, json.Unmarshal(b, &decoded))

	g := newFixture(t, true)
	require.NoError(t, g.m.RestoreState(&decoded))

	assert.Equal(t, 2, g.m.Position())
	assert.Equal(t, uint64(100), g.eng.Elapsed())
	assert.Equal(t, engine.StoppedByUser, g.eng.State())
	assert.False(t, g.ticks.Armed())
	assert.True(t, f.eng.Period().Equal(g.eng.Period()))

	elapsed, err := g.m.Elapsed(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(30), elapsed)
}

func TestRestoreStateRepairs(t *testing.T) {
	f := newFixture(t, true)

	err := f.m.RestoreState(&State{
		State: engine.State{
			RunState: "bogus",
			Elapsed:  50,
		},
		Position:       9,
		PrepEnabled:    true,
		PrepElapsed:    20,
		SegmentElapsed: []uint64{5},
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrInconsistentState)

	assert.Equal(t, 0, f.m.Position())
	assert.Equal(t, uint64(20), f.eng.Elapsed())
	assert.Equal(t, engine.StoppedByUser, f.eng.State())

	for p, want := range []uint64{20, 5, 0, 0} {
		got, err := f.m.Elapsed(p)
		require.NoError(t, err)
		assert.Equal(t, want, got, "position %d", p)
	}
}

func TestRestoreStateUnknownRunState(t *testing.T) {
	f := newFixture(t, false)

	err := f.m.RestoreState(&State{
		State:          engine.State{RunState: "", Elapsed: 0},
		SegmentElapsed: []uint64{0, 0, 0},
	})

	assert.ErrorIs(t, err, engine.ErrInconsistentState)
	assert.Equal(t, engine.NotStarted, f.eng.State())
	st := f.m.SaveState()
	assert.False(t, st.Started())
}
