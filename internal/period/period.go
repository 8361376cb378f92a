// Package period describes what is happening within a segment at a point in
// time: a label, a background colour and whether points of information may
// be offered. An Info is a sparse overlay: a nil field leaves the currently
// displayed value alone.
package period

// DefaultDescription is the label shown before any period sets one.
const DefaultDescription = "Initial"

// Info is a partially specified period descriptor.
type Info struct {
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Color       *Color  `json:"color,omitempty"       yaml:"color,omitempty"`
	POIsAllowed *bool   `json:"pois_allowed,omitempty" yaml:"pois_allowed,omitempty"`
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// Default returns a fully specified Info that every working copy starts from.
func Default() Info {
	return Info{
		Description: Ptr(DefaultDescription),
		Color:       Ptr(Transparent),
		POIsAllowed: Ptr(false),
	}
}

// New returns a fully specified Info.
func New(description string, color Color, poisAllowed bool) Info {
	return Info{
		Description: Ptr(description),
		Color:       Ptr(color),
		POIsAllowed: Ptr(poisAllowed),
	}
}

// Overlay returns a copy of i in which every field set in other replaces the
// corresponding field of i.
func (i Info) Overlay(other Info) Info {
	out := i.Clone()

	if other.Description != nil {
		out.Description = Ptr(*other.Description)
	}

	if other.Color != nil {
		out.Color = Ptr(*other.Color)
	}

	if other.POIsAllowed != nil {
		out.POIsAllowed = Ptr(*other.POIsAllowed)
	}

	return out
}

// FillGaps returns a copy of i in which only the fields unset in i are taken
// from other. Fields already set in i are never replaced.
func (i Info) FillGaps(other Info) Info {
	out := i.Clone()

	if out.Description == nil && other.Description != nil {
		out.Description = Ptr(*other.Description)
	}

	if out.Color == nil && other.Color != nil {
		out.Color = Ptr(*other.Color)
	}

	if out.POIsAllowed == nil && other.POIsAllowed != nil {
		out.POIsAllowed = Ptr(*other.POIsAllowed)
	}

	return out
}

// Clone returns a deep copy so that no pointer is shared with i.
func (i Info) Clone() Info {
	var out Info

	if i.Description != nil {
		out.Description = Ptr(*i.Description)
	}

	if i.Color != nil {
		out.Color = Ptr(*i.Color)
	}

	if i.POIsAllowed != nil {
		out.POIsAllowed = Ptr(*i.POIsAllowed)
	}

	return out
}

// Resolved reports whether every field is set.
func (i Info) Resolved() bool {
	return i.Description != nil && i.Color != nil && i.POIsAllowed != nil
}

// IsZero reports whether no field is set, i.e. applying i changes nothing.
func (i Info) IsZero() bool {
	return i.Description == nil && i.Color == nil && i.POIsAllowed == nil
}

// Equal reports whether i and other set the same fields to the same values.
func (i Info) Equal(other Info) bool {
	return equalPtr(i.Description, other.Description) &&
		equalPtr(i.Color, other.Color) &&
		equalPtr(i.POIsAllowed, other.POIsAllowed)
}

// Text returns the description or "" when unset.
func (i Info) Text() string {
	if i.Description == nil {
		return ""
	}

	return *i.Description
}

// Background returns the colour or Transparent when unset.
func (i Info) Background() Color {
	if i.Color == nil {
		return Transparent
	}

	return *i.Color
}

// POIs reports whether points of information are allowed.
func (i Info) POIs() bool {
	return i.POIsAllowed != nil && *i.POIsAllowed
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}

	return *a == *b
}
