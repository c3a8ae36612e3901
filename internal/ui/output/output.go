// Package output constructs termenv outputs with the color handling the
// CLI uses for interactive and CI streams.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Profile returns the color profile detected from the environment.
// NO_COLOR forces Ascii.
func Profile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ProfileANSI caps the profile at plain ANSI for CI and piped streams.
// NO_COLOR forces Ascii.
func ProfileANSI() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// New wraps w in a termenv.Output using the detected profile. A nil
// writer defaults to stderr.
func New(w io.Writer) *termenv.Output {
	return wrap(w, Profile())
}

// NewANSI wraps w in a termenv.Output capped at the ANSI profile. A nil
// writer defaults to stderr.
func NewANSI(w io.Writer) *termenv.Output {
	return wrap(w, ProfileANSI())
}

func wrap(w io.Writer, profile termenv.Profile) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}
	return termenv.NewOutput(w, termenv.WithProfile(profile), termenv.WithTTY(true))
}
