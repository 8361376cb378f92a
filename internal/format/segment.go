// Package format holds the immutable description of a debate: its segments,
// the bells that ring in each segment and the periods those bells introduce.
package format

import (
	"cmp"
	"slices"

	"github.com/ayoisaiah/podium/internal/period"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

// Kind distinguishes segments for presentation purposes.
type Kind int

const (
	KindSpeech Kind = iota
	// KindPrep is preparation time whose bells are generated from the user's
	// prep bell settings.
	KindPrep
	// KindControlledPrep is preparation time with bells fixed by the format.
	KindControlledPrep
)

func (k Kind) String() string {
	switch k {
	case KindSpeech:
		return "speech"
	case KindPrep:
		return "prep"
	case KindControlledPrep:
		return "controlled-prep"
	}

	return "unknown"
}

// IsPrep reports whether k is one of the preparation kinds.
func (k Kind) IsPrep() bool {
	return k == KindPrep || k == KindControlledPrep
}

// Segment is one timed unit with its bell schedule. It is immutable once
// constructed and safe to share.
type Segment struct {
	first  period.Info
	bells  []Bell
	length uint64
	kind   Kind
}

// NewSegment builds a segment of the given length in seconds. Bells may be
// passed in any order but no two may share an offset.
func NewSegment(
	kind Kind,
	length uint64,
	first period.Info,
	bells ...Bell,
) (*Segment, error) {
	sorted := make([]Bell, len(bells))
	for i := range bells {
		sorted[i] = bells[i]
		sorted[i].NextPeriod = bells[i].NextPeriod.Clone()
	}

	slices.SortStableFunc(sorted, func(a, b Bell) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Offset == sorted[i-1].Offset {
			return nil, ErrDuplicateBell.Fmt(timeutil.FormatClock(sorted[i].Offset))
		}
	}

	return &Segment{
		kind:   kind,
		length: length,
		first:  first.Clone(),
		bells:  sorted,
	}, nil
}

// Kind returns the segment kind.
func (s *Segment) Kind() Kind {
	return s.kind
}

// Length returns the nominal length in seconds.
func (s *Segment) Length() uint64 {
	return s.length
}

// FirstPeriod returns the period in force from the start of the segment.
func (s *Segment) FirstPeriod() period.Info {
	return s.first.Clone()
}

// Bells returns the bells in increasing offset order.
func (s *Segment) Bells() []Bell {
	out := make([]Bell, len(s.bells))
	for i := range s.bells {
		out[i] = s.bells[i]
		out[i].NextPeriod = s.bells[i].NextPeriod.Clone()
	}

	return out
}

// PeriodInfoForTime reconstructs the period that would be displayed at
// elapsed time t had the segment been played from zero. The most recent bell
// at or before t decides every field it sets; older bells may only fill the
// fields it leaves unset.
func (s *Segment) PeriodInfoForTime(t uint64) period.Info {
	working := period.Default().Overlay(s.first)

	var latest uint64

	for i := range s.bells {
		b := &s.bells[i]
		if b.Offset > t {
			break
		}

		if b.Offset > latest {
			working = working.Overlay(b.NextPeriod)
			latest = b.Offset

			continue
		}

		working = working.FillGaps(b.NextPeriod)
	}

	return working
}

// BellAtTime returns the bell ringing exactly at t.
func (s *Segment) BellAtTime(t uint64) (Bell, bool) {
	i, found := slices.BinarySearchFunc(s.bells, t, func(b Bell, t uint64) int {
		return cmp.Compare(b.Offset, t)
	})
	if !found {
		return Bell{}, false
	}

	return s.bells[i], true
}

// FirstBellFromTime returns the earliest bell at or after t.
func (s *Segment) FirstBellFromTime(t uint64) (Bell, bool) {
	i, _ := slices.BinarySearchFunc(s.bells, t, func(b Bell, t uint64) int {
		return cmp.Compare(b.Offset, t)
	})
	if i >= len(s.bells) {
		return Bell{}, false
	}

	return s.bells[i], true
}
