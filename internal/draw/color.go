package draw

import (
	"strings"

	"github.com/muesli/termenv"
)

// ColorProfile guesses the colour support of a remote terminal from its TERM
// name and environment, since a network session cannot be probed like a local tty.
func ColorProfile(term string, environ []string) termenv.Profile {
	for _, kv := range environ {
		key, value, _ := strings.Cut(kv, "=")
		if key == "COLORTERM" && (value == "truecolor" || value == "24bit") {
			return termenv.TrueColor
		}
	}

	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "truecolor") || strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	default:
		return termenv.ANSI
	}
}
