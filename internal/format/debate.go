package format

// Speech is a named main segment of a debate.
type Speech struct {
	Segment *Segment
	Name    string
}

// Debate is the ordered list of segments that make up one debate, with an
// optional preparation segment before the first speech.
type Debate struct {
	Prep      *Segment
	Name      string
	ShortName string
	// PrepName is the label of the preparation segment, if the format
	// names it
	PrepName string
	Speeches []Speech
}

// NewDebate validates and returns a debate.
func NewDebate(
	name, shortName string,
	prep *Segment,
	speeches ...Speech,
) (*Debate, error) {
	if len(speeches) == 0 {
		return nil, errNoSpeeches
	}

	if prep != nil && !prep.Kind().IsPrep() {
		return nil, errNotPrep.Fmt(prep.Kind())
	}

	for _, s := range speeches {
		if s.Segment == nil {
			return nil, errNilSegment.Fmt(s.Name)
		}

		if s.Segment.Kind().IsPrep() {
			return nil, errPrepAsSpeech.Fmt(s.Name)
		}
	}

	if shortName == "" {
		shortName = name
	}

	return &Debate{
		Name:      name,
		ShortName: shortName,
		Prep:      prep,
		Speeches:  speeches,
	}, nil
}

// HasPrep reports whether the debate starts with preparation time.
func (d *Debate) HasPrep() bool {
	return d.Prep != nil
}
