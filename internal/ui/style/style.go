// Package style defines the color palette and status icons shared by the
// CLI renderer and the log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Violet = lipgloss.Color("#7C3AED")
	Slate  = lipgloss.Color("#64748B")
	Green  = lipgloss.Color("#16A34A")
	Red    = lipgloss.Color("#DC2626")
	Yellow = lipgloss.Color("#D97706")
)

// Status icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)
