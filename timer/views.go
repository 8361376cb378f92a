package timer

import (
	"fmt"
	"strings"
	"time"

	"github.com/ayoisaiah/podium/internal/debate"
	"github.com/ayoisaiah/podium/internal/engine"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

// clockText shows the elapsed time, or the time left when counting down.
func (t *Timer) clockText(s *debate.Snapshot) string {
	if t.countDown {
		return timeutil.FormatRemaining(s.Elapsed, s.Length)
	}

	return timeutil.FormatClock(s.Elapsed)
}

func (t *Timer) stateText(s *debate.Snapshot) string {
	switch s.State {
	case engine.NotStarted:
		return t.style.secondary.Render("[Not started]")
	case engine.StoppedByUser:
		return t.style.secondary.Render("[Paused]")
	case engine.StoppedByBell:
		return t.style.alert.Render("[Stopped by bell]")
	}

	timeFormat := "03:04:05 PM"
	if t.clock24 {
		timeFormat = "15:04:05"
	}

	if s.Elapsed >= s.Length {
		return t.style.alert.Render("[Overtime]")
	}

	end := time.Now().Add(time.Duration(s.Length-s.Elapsed) * time.Second)

	return t.style.hint.Render("until " + end.Format(timeFormat))
}

func (t *Timer) headerView(s *debate.Snapshot) string {
	title := t.style.title.Render(s.Name)
	counter := t.style.secondary.Render(
		fmt.Sprintf(" (%d/%d) · %s", s.Position+1, s.Count, s.Debate),
	)

	return title + counter
}

// hintsView lists the next bell, the next overtime bell and the POI
// countdown.
func (t *Timer) hintsView(s *debate.Snapshot) string {
	var hints []string

	if s.HasNextBell {
		hints = append(hints, "next bell at "+timeutil.FormatClock(s.NextBell))
	} else if s.HasOvertime {
		hints = append(hints, "overtime bell at "+timeutil.FormatClock(s.NextOvertime))
	}

	if s.HasPrep && !s.PrepEnabled {
		hints = append(hints, "prep time off")
	}

	line := t.style.hint.Render(strings.Join(hints, " · "))

	if s.POIRunning {
		poi := fmt.Sprintf("POI %s", timeutil.FormatClock(s.POIRemaining))
		line = t.style.alert.Render(poi) + "  " + line
	}

	return line
}

func (t *Timer) timerView() string {
	s := t.mgr.Snapshot()

	var b strings.Builder

	b.WriteString(t.headerView(&s))
	b.WriteString("\n\n")
	b.WriteString(t.style.periodStyle(s.Period).Render(s.Period.Text()))

	if s.Period.POIs() {
		b.WriteString(t.style.secondary.Render(" POIs allowed"))
	}

	b.WriteString("\n\n")
	b.WriteString(t.style.main.Render(t.clockText(&s)))
	b.WriteString(t.style.secondary.Render(" / " + timeutil.FormatClock(s.Length)))
	b.WriteString("  ")
	b.WriteString(t.stateText(&s))
	b.WriteString("\n\n")

	var percent float64
	if s.Length > 0 {
		percent = min(float64(s.Elapsed)/float64(s.Length), 1)
	}

	b.WriteString(t.progress.ViewAs(percent))
	b.WriteString("\n\n")
	b.WriteString(t.hintsView(&s))
	b.WriteString("\n\n")
	b.WriteString(t.help.View(defaultKeymap))

	return b.String()
}

func (t *Timer) View() string {
	if t.quitting {
		return ""
	}

	return t.style.base.Render(t.timerView())
}
