package format

import (
	"cmp"
	"math"
	"slices"

	"gopkg.in/yaml.v3"
)

// minPrepBellGap is the smallest distance in seconds between two generated
// prep time bells. A bell closer than this to a higher priority bell is
// dropped.
const minPrepBellGap = 15

// PrepBellType selects how a prep bell offset is derived from the length of
// the prep segment.
type PrepBellType string

const (
	PrepBellStart        PrepBellType = "start"
	PrepBellFinish       PrepBellType = "finish"
	PrepBellProportional PrepBellType = "proportional"
)

// PrepBellSpec is one user-defined prep time bell.
type PrepBellSpec struct {
	Type PrepBellType `json:"type"                 yaml:"type"                 mapstructure:"type"`
	// Time is measured from the start or back from the finish
	Time       uint64  `json:"time,omitempty"       yaml:"time,omitempty"       mapstructure:"time"`
	Proportion float64 `json:"proportion,omitempty" yaml:"proportion,omitempty" mapstructure:"proportion"`
}

// DefaultPrepBells is a single double bell at the end of prep time.
func DefaultPrepBells() []PrepBellSpec {
	return []PrepBellSpec{{Type: PrepBellFinish}}
}

// Validate checks the bell type and proportion.
func (p PrepBellSpec) Validate() error {
	switch p.Type {
	case PrepBellStart, PrepBellFinish:
		return nil
	case PrepBellProportional:
		if p.Proportion < 0 || p.Proportion > 1 {
			return errInvalidProportion.Fmt(p.Proportion)
		}

		return nil
	}

	return errUnknownPrepBellType.Fmt(p.Type)
}

// UnmarshalYAML validates specs read from format files.
func (p *PrepBellSpec) UnmarshalYAML(node *yaml.Node) error {
	type plain PrepBellSpec

	var v plain
	if err := node.Decode(&v); err != nil {
		return err
	}

	if err := PrepBellSpec(v).Validate(); err != nil {
		return err
	}

	*p = PrepBellSpec(v)

	return nil
}

// bell returns the bell p implies for a prep segment of the given
// length.
func (p PrepBellSpec) bell(length uint64) (Bell, bool) {
	switch p.Type {
	case PrepBellStart:
		if length > p.Time {
			return NewBell(p.Time, 1), true
		}
	case PrepBellFinish:
		if length > p.Time {
			b := NewBell(length-p.Time, 1)
			if p.Time == 0 {
				b.Sound.Bells = 2
			}

			return b, true
		}
	case PrepBellProportional:
		offset := uint64(math.Round(float64(length) * p.Proportion))

		b := NewBell(offset, 1)
		if p.Proportion == 1 {
			b.Sound.Bells = 2
		}

		return b, true
	}

	return Bell{}, false
}

// PrepBells generates the bells for preparation time of the given length.
// Finish bells ring twice and win over any bell within fifteen seconds of
// them. A nil specs gives a single double bell at the end; an empty one
// gives no bells at all.
func PrepBells(specs []PrepBellSpec, length uint64) []Bell {
	if specs == nil {
		return []Bell{NewBell(length, 2)}
	}

	all := make([]Bell, 0, len(specs))

	for _, spec := range specs {
		if b, ok := spec.bell(length); ok {
			all = append(all, b)
		}
	}

	slices.SortStableFunc(all, func(a, b Bell) int {
		return cmp.Compare(b.Sound.Bells, a.Sound.Bells)
	})

	kept := make([]Bell, 0, len(all))

outer:
	for _, b := range all {
		for _, k := range kept {
			if absDiff(k.Offset, b.Offset) < minPrepBellGap {
				continue outer
			}
		}

		kept = append(kept, b)
	}

	slices.SortFunc(kept, func(a, b Bell) int {
		return cmp.Compare(a.Offset, b.Offset)
	})

	return kept
}

func absDiff(a, b uint64) uint64 {
	if a > b {
		return a - b
	}

	return b - a
}
