package engine

// Overtime describes the recurring bells rung after a segment's nominal
// length. A zero First disables overtime bells. A zero Period rings only the
// first one.
type Overtime struct {
	First  uint64 `json:"first_bell"`
	Period uint64 `json:"period"`
}

// DefaultOvertime rings thirty seconds over time and every twenty seconds
// after that.
func DefaultOvertime() Overtime {
	return Overtime{First: 30, Period: 20}
}

// IsInstant reports whether an overtime bell rings at elapsed time t in a
// segment of the given length.
func (o Overtime) IsInstant(t, length uint64) bool {
	if t < length || o.First == 0 {
		return false
	}

	over := t - length

	switch {
	case over < o.First:
		return false
	case over == o.First:
		return true
	case o.Period == 0:
		return false
	}

	return (over-o.First)%o.Period == 0
}

// NextAfter returns the first overtime bell strictly after elapsed.
func (o Overtime) NextAfter(elapsed, length uint64) (uint64, bool) {
	if o.First == 0 {
		return 0, false
	}

	var over uint64
	if elapsed > length {
		over = elapsed - length
	}

	if over < o.First {
		return length + o.First, true
	}

	if o.Period == 0 {
		return 0, false
	}

	k := (over-o.First)/o.Period + 1

	return length + o.First + k*o.Period, true
}
