package formatfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/podium/internal/format"
	"github.com/ayoisaiah/podium/internal/period"
	"github.com/ayoisaiah/podium/internal/timeutil"
)

// Built-in period types. A format file may redefine them.
var builtinPeriods = map[string]period.Info{
	"normal":       period.New("Normal", period.Transparent, false),
	"pois-allowed": period.New("POIs allowed", 0xff2e7d32, true),
	"warning":      period.New("Warning bell rung", 0xfff9a825, false),
	"overtime":     period.New("Overtime", 0xffc62828, false),
}

type (
	// Option configures how format files are turned into debates.
	Option func(*builder)

	builder struct {
		periods   map[string]period.Info
		segments  map[string]*format.Segment
		prepBells []format.PrepBellSpec
		problems  []error
	}
)

// WithPrepBells sets the bells used for prep time that does not list its
// own.
func WithPrepBells(specs []format.PrepBellSpec) Option {
	return func(b *builder) {
		b.prepBells = specs
	}
}

func (b *builder) fail(err error) {
	b.problems = append(b.problems, err)
}

func (b *builder) buildPeriods(types []PeriodType) {
	b.periods = make(map[string]period.Info, len(builtinPeriods)+len(types))
	for ref, info := range builtinPeriods {
		b.periods[ref] = info
	}

	seen := make(map[string]bool, len(types))

	for _, pt := range types {
		if seen[pt.Ref] {
			b.fail(errDuplicateRef.Fmt("period type", pt.Ref))
			continue
		}

		seen[pt.Ref] = true

		info := period.Info{
			Description: period.Ptr(pt.Name),
			POIsAllowed: period.Ptr(pt.POIsAllowed),
		}

		// without a colour the background is left as it is
		if pt.Color != "" {
			c, err := period.ParseColor(pt.Color)
			if err != nil {
				b.fail(errInvalid.Fmt(fmt.Sprintf("period type %q", pt.Ref)).Wrap(err))
				continue
			}

			info.Color = &c
		}

		b.periods[pt.Ref] = info
	}
}

// periodRef looks up a period type. The empty reference and "#stay" change
// nothing.
func (b *builder) periodRef(ref string) (period.Info, bool) {
	if ref == "" || ref == stay {
		return period.Info{}, true
	}

	info, ok := b.periods[ref]
	if !ok {
		b.fail(errUnknownPeriod.Fmt(ref))
		return period.Info{}, false
	}

	return info.Clone(), true
}

func (b *builder) bells(context string, length uint64, defs []Bell) []format.Bell {
	bells := make([]format.Bell, 0, len(defs))

	for i := range defs {
		def := &defs[i]

		offset, err := def.offset(length)
		if err != nil {
			b.fail(errBellTime.Fmt(context, def.Time).Wrap(err))
			continue
		}

		if offset > length {
			b.fail(errBellAfterFinish.Fmt(
				context,
				timeutil.FormatClock(offset),
				timeutil.FormatClock(length),
			))

			continue
		}

		n := 1
		if def.Number != nil {
			n = *def.Number
		}

		bell := format.NewBell(offset, n)
		bell.PauseOnFire = def.PauseOnBell
		bell.Sound.Resource = def.Sound

		if def.TimesToPlay > 0 {
			bell.Sound.TimesToPlay = def.TimesToPlay
		}

		next, ok := b.periodRef(def.NextPeriod)
		if !ok {
			continue
		}

		bell.NextPeriod = next

		bells = append(bells, bell)
	}

	return bells
}

func (b *builder) buildSpeechTypes(types []SpeechType) {
	b.segments = make(map[string]*format.Segment, len(types))

	for _, st := range types {
		context := fmt.Sprintf("speech type %q", st.Ref)

		if _, ok := b.segments[st.Ref]; ok {
			b.fail(errDuplicateRef.Fmt("speech type", st.Ref))
			continue
		}

		if st.Length == 0 {
			b.fail(errNoLength.Fmt(context))
			continue
		}

		first, ok := b.periodRef(st.FirstPeriod)
		if !ok {
			continue
		}

		length := uint64(st.Length)

		seg, err := format.NewSegment(
			format.KindSpeech,
			length,
			first,
			b.bells(context, length, st.Bells)...,
		)
		if err != nil {
			b.fail(errInvalid.Fmt(context).Wrap(err))
			continue
		}

		b.segments[st.Ref] = seg
	}
}

func (b *builder) buildPrep(pt *PrepTime) *format.Segment {
	if pt == nil {
		return nil
	}

	const context = "prep time"

	if pt.Length == 0 {
		b.fail(errNoLength.Fmt(context))
		return nil
	}

	first, ok := b.periodRef(pt.FirstPeriod)
	if !ok {
		return nil
	}

	length := uint64(pt.Length)
	kind := format.KindPrep

	var bells []format.Bell

	if pt.Controlled {
		kind = format.KindControlledPrep
		bells = b.bells(context, length, pt.Bells)
	} else {
		bells = format.PrepBells(b.prepBells, length)
	}

	seg, err := format.NewSegment(kind, length, first, bells...)
	if err != nil {
		b.fail(errInvalid.Fmt(context).Wrap(err))
		return nil
	}

	return seg
}

func (b *builder) build(f *File) (*format.Debate, error) {
	if f.Name == "" {
		b.fail(errNoName)
	}

	b.buildPeriods(f.PeriodTypes)
	b.buildSpeechTypes(f.SpeechTypes)

	prep := b.buildPrep(f.PrepTime)

	speeches := make([]format.Speech, 0, len(f.Speeches))

	for _, s := range f.Speeches {
		seg, ok := b.segments[s.Type]
		if !ok {
			b.fail(errUnknownSpeechType.Fmt(s.Name, s.Type))
			continue
		}

		speeches = append(speeches, format.Speech{Name: s.Name, Segment: seg})
	}

	if len(b.problems) > 0 {
		return nil, errors.Join(b.problems...)
	}

	d, err := format.NewDebate(f.Name, f.ShortName, prep, speeches...)
	if err != nil {
		return nil, err
	}

	if f.PrepTime != nil {
		d.PrepName = f.PrepTime.Name
	}

	return d, nil
}

// Parse reads a debate format from YAML. Every problem found in the file is
// reported, not only the first.
func Parse(data []byte, opts ...Option) (*format.Debate, *File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, nil, err
	}

	b := &builder{
		prepBells: format.DefaultPrepBells(),
	}

	for _, opt := range opts {
		opt(b)
	}

	d, err := b.build(&f)
	if err != nil {
		return nil, &f, err
	}

	return d, &f, nil
}

// Load reads the debate format file at path.
func Load(path string, opts ...Option) (*format.Debate, *File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	d, f, err := Parse(data, opts...)
	if err != nil {
		return nil, f, errParse.Fmt(filepath.Base(path)).Wrap(err)
	}

	return d, f, nil
}
