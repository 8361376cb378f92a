// Package clock provides the tick sources that drive the timer engine: a
// real one backed by time.Ticker and a manual one for tests.
package clock

import (
	"sync"
	"time"
)

// Ticker calls a function at a fixed interval from its own goroutine.
// Arming again replaces the previous schedule.
type Ticker struct {
	stop chan struct{}
	mu   sync.Mutex
	gen  uint64
}

// NewTicker returns an unarmed ticker.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Arm starts calling fn every interval until Cancel or the next Arm.
func (t *Ticker) Arm(interval time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()

	t.gen++
	gen := t.gen
	stop := make(chan struct{})
	t.stop = stop

	go t.run(interval, fn, stop, gen)
}

// Cancel stops the current schedule. It never waits for the ticker
// goroutine, so it is safe to call from inside fn.
func (t *Ticker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cancelLocked()
}

func (t *Ticker) cancelLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
		t.gen++
	}
}

func (t *Ticker) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.gen == gen
}

func (t *Ticker) run(
	interval time.Duration,
	fn func(),
	stop <-chan struct{},
	gen uint64,
) {
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case <-tk.C:
			if !t.current(gen) {
				return
			}

			fn()
		}
	}
}

// Manual is a tick source driven by hand. Nothing happens until Fire is
// called, which makes timer behaviour deterministic in tests.
type Manual struct {
	fn        func()
	mu        sync.Mutex
	interval  time.Duration
	delivered int
	arms      int
}

// NewManual returns an unarmed manual tick source.
func NewManual() *Manual {
	return &Manual{}
}

// Arm records fn as the tick callback.
func (m *Manual) Arm(interval time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fn = fn
	m.interval = interval
	m.arms++
}

// Cancel disarms the source.
func (m *Manual) Cancel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fn = nil
}

// Fire delivers up to n ticks, stopping early if the callback disarms the
// source. It returns the number of ticks delivered.
func (m *Manual) Fire(n int) int {
	var count int

	for range n {
		m.mu.Lock()
		fn := m.fn

		if fn != nil {
			m.delivered++
		}
		m.mu.Unlock()

		if fn == nil {
			break
		}

		fn()

		count++
	}

	return count
}

// Armed reports whether a callback is currently scheduled.
func (m *Manual) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.fn != nil
}

// Delivered returns the total number of ticks delivered since creation.
func (m *Manual) Delivered() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.delivered
}

// Arms returns how many times the source has been armed.
func (m *Manual) Arms() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.arms
}

// Interval returns the interval of the most recent Arm.
func (m *Manual) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.interval
}
