package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for values that name no mode.
var ErrUnknownMode = errors.New("unknown conversion mode")

// Mode selects one of the two conversion strategies.
type Mode string

const (
	// ModeTextPreserving rebuilds editable text from the PDF text layer.
	ModeTextPreserving Mode = "text"
	// ModeImageFallback embeds every page as a picture for exact visual fidelity.
	ModeImageFallback Mode = "image"
)

// Modes lists the available modes in the order they are offered to users.
var Modes = []Mode{ModeTextPreserving, ModeImageFallback}

var modeLabels = map[Mode]string{
	ModeTextPreserving: "Preserve editable text (recommended)",
	ModeImageFallback:  "Exact layout as images (fallback)",
}

// Label returns the user-facing option text.
func (m Mode) Label() string {
	return modeLabels[m]
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

// ParseMode accepts a mode key or its label, case-insensitively.
// An empty value selects the text-preserving mode.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ModeTextPreserving, nil
	}
	for _, m := range Modes {
		if strings.EqualFold(s, string(m)) || strings.EqualFold(s, m.Label()) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownMode, s)
}
