// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for the application.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeVerbose enables colored output with per-path detail lines.
	ModeVerbose
	// ModePlain forces compact single-line output for CI logs.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the
// environment. Interactive terminals get verbose output; CI gets plain.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeVerbose
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "verbose", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "verbose":
		return ModeVerbose
	case "plain", "ci":
		return ModePlain
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
