package proportion

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/message"

	"ruleofthree/internal/i18n"
)

// Mode selects the formula used to find X.
type Mode int

const (
	// Direct: A/B = C/X.
	Direct Mode = iota
	// Inverse: A*B = C*X.
	Inverse
)

// ErrUnknownMode is returned for any value other than direct or inverse.
var ErrUnknownMode = errors.New("unknown mode")

// Modes lists every mode in display order.
var Modes = []Mode{Direct, Inverse}

func (m Mode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Inverse:
		return "inverse"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is Direct or Inverse.
func (m Mode) Valid() bool {
	return m == Direct || m == Inverse
}

// ParseMode accepts "direct" or "inverse", ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return Direct, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Label is the localized display name of the mode.
func (m Mode) Label(p *message.Printer) string {
	if m == Inverse {
		return p.Sprintf(i18n.MsgLabelInverse)
	}
	return p.Sprintf(i18n.MsgLabelDirect)
}

// Describe returns the text shown when the user switches to mode m.
func Describe(p *message.Printer, m Mode) string {
	desc := i18n.MsgDescribeDirect
	if m == Inverse {
		desc = i18n.MsgDescribeInverse
	}
	return p.Sprintf(i18n.MsgModeHeading, m.Label(p), p.Sprintf(desc))
}
