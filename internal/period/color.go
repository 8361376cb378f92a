package period

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ayoisaiah/podium/internal/apperr"
)

var errInvalidColor = &apperr.Error{
	Message: "colour must be a hex code in the form #RRGGBB or #AARRGGBB, got %q",
}

// Color is a 32-bit ARGB colour. The zero value is fully transparent, which
// the presentation layer renders as the terminal's own background.
type Color uint32

const (
	Transparent Color = 0
	opaque      Color = 0xff000000
)

// ParseColor parses "#RRGGBB" (fully opaque) or "#AARRGGBB".
func ParseColor(s string) (Color, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return 0, errInvalidColor.Fmt(s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, errInvalidColor.Fmt(s)
	}

	c := Color(v)
	if len(hex) == 6 {
		c |= opaque
	}

	return c, nil
}

// Alpha returns the alpha channel.
func (c Color) Alpha() uint8 {
	return uint8(c >> 24)
}

// RGB returns the colour as "#RRGGBB", dropping the alpha channel.
func (c Color) RGB() string {
	return fmt.Sprintf("#%06X", uint32(c)&0xffffff)
}

// String returns "#RRGGBB" for opaque colours and "#AARRGGBB" otherwise.
func (c Color) String() string {
	if c&opaque == opaque {
		return c.RGB()
	}

	return fmt.Sprintf("#%08X", uint32(c))
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseColor(string(text))
	if err != nil {
		return err
	}

	*c = v

	return nil
}
