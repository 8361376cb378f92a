package timer

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayoisaiah/podium/internal/engine"
)

// handleRefresh redraws after the engine changed and waits for the next
// change.
func (t *Timer) handleRefresh() (tea.Model, tea.Cmd) {
	err := t.writeStatusFile()
	if err != nil {
		slog.Error("status file", slog.Any("error", err))
	}

	return t, t.waitForRefresh()
}

func (t *Timer) togglePlay() {
	t.mgr.Toggle()

	if t.startTime.IsZero() && t.mgr.Snapshot().State == engine.Running {
		t.startTime = time.Now()
	}
}

// shiftTime moves the clock of the active segment by delta seconds without
// going below zero.
func (t *Timer) shiftTime(delta int) {
	elapsed := int(t.mgr.Snapshot().Elapsed) + delta
	if elapsed < 0 {
		elapsed = 0
	}

	t.mgr.SetCurrentTime(uint64(elapsed))
}

func (t *Timer) quit() (tea.Model, tea.Cmd) {
	t.quitting = true

	err := t.persist()
	if err != nil {
		slog.Error("quitting", slog.Any("error", err))
	}

	return t, tea.Batch(tea.ClearScreen, tea.Quit)
}

func (t *Timer) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var err error

	switch {
	case key.Matches(msg, defaultKeymap.quit):
		return t.quit()

	case key.Matches(msg, defaultKeymap.togglePlay):
		t.togglePlay()

	case key.Matches(msg, defaultKeymap.next):
		err = t.mgr.GoNext()

	case key.Matches(msg, defaultKeymap.previous):
		err = t.mgr.GoPrevious()

	case key.Matches(msg, defaultKeymap.reset):
		t.mgr.Reset()

	case key.Matches(msg, defaultKeymap.poi):
		if !t.mgr.StartPOI() {
			t.mgr.StopPOI()
		}

	case key.Matches(msg, defaultKeymap.prep):
		err = t.mgr.SetPrepEnabled(!t.mgr.PrepEnabled())

	case key.Matches(msg, defaultKeymap.forward):
		t.shiftTime(timeStep)

	case key.Matches(msg, defaultKeymap.back):
		t.shiftTime(-timeStep)

	case key.Matches(msg, defaultKeymap.countDown):
		t.countDown = !t.countDown
	}

	if err != nil {
		slog.Error("key press", slog.String("key", msg.String()), slog.Any("error", err))
	}

	return t, nil
}

func (t *Timer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case refreshMsg:
		return t.handleRefresh()

	case tea.KeyMsg:
		return t.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		t.progress.Width = msg.Width - padding*2 - 4
		if t.progress.Width > maxWidth {
			t.progress.Width = maxWidth
		}

		t.help.Width = msg.Width - padding*2

		return t, nil

		// FrameMsg is sent when the progress bar wants to animate itself
	case progress.FrameMsg:
		var progressModel tea.Model

		progressModel, cmd = t.progress.Update(msg)
		t.progress, _ = progressModel.(progress.Model)

		return t, cmd
	}

	return t, nil
}
