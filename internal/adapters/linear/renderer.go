// Package linear provides a synchronous, line-oriented renderer for engine
// events, suitable for CI and non-interactive terminals.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mrcacomacaco/zodkit-sub002/internal/core/domain"
	"github.com/mrcacomacaco/zodkit-sub002/internal/core/ports"
	"github.com/mrcacomacaco/zodkit-sub002/internal/ui/output"
	"github.com/mrcacomacaco/zodkit-sub002/internal/ui/style"
)

var _ ports.EventSink = (*Renderer)(nil)

// Renderer prints engine events chronologically, one line each.
type Renderer struct {
	mu      sync.Mutex
	stdout  io.Writer
	stderr  io.Writer
	verbose bool

	faint  lipgloss.Style
	good   lipgloss.Style
	bad    lipgloss.Style
	warn   lipgloss.Style
	accent lipgloss.Style
}

// NewRenderer creates a Renderer. Nil writers default to the process
// streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	r := &Renderer{
		stdout: stdout,
		stderr: stderr,
	}

	// No styling when the environment cannot render color.
	if output.ProfileANSI() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		r.faint, r.good, r.bad, r.warn, r.accent = plain, plain, plain, plain, plain
		return r
	}

	r.faint = lipgloss.NewStyle().Foreground(style.Slate)
	r.good = lipgloss.NewStyle().Foreground(style.Green)
	r.bad = lipgloss.NewStyle().Foreground(style.Red)
	r.warn = lipgloss.NewStyle().Foreground(style.Yellow)
	r.accent = lipgloss.NewStyle().Foreground(style.Violet)
	return r
}

// WithVerbose enables per-path detail lines for cascade and invalidation
// events.
func (r *Renderer) WithVerbose() *Renderer {
	r.verbose = true
	return r
}

// Emit implements ports.EventSink.
func (r *Renderer) Emit(event domain.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Kind {
	case domain.EventStarted:
		fmt.Fprintf(r.stderr, "%s watching %s\n", r.accent.Render(style.Dot), first(event.Paths))
	case domain.EventStopped:
		fmt.Fprintf(r.stderr, "%s stopped\n", r.faint.Render(style.Circle))
	case domain.EventFileChanged:
		fmt.Fprintf(r.stderr, "%s %s\n", r.faint.Render("[changed]"), first(event.Paths))
	case domain.EventCacheInvalidated:
		fmt.Fprintf(r.stderr, "%s %d entr%s\n",
			r.warn.Render("[invalidated]"), len(event.Paths), plural(len(event.Paths), "y", "ies"))
		r.detail(event.Paths)
	case domain.EventDependencyUpdated:
		fmt.Fprintf(r.stderr, "%s %d dependent%s\n",
			r.warn.Render("[cascade]"), len(event.Paths), plural(len(event.Paths), "", "s"))
		r.detail(event.Paths)
	case domain.EventReloadComplete:
		fmt.Fprintf(r.stdout, "%s reloaded %d unit%s in %s\n",
			r.good.Render(style.Check), len(event.Paths), plural(len(event.Paths), "", "s"), event.Elapsed)
	case domain.EventError:
		fmt.Fprintf(r.stderr, "%s %s: %v\n", r.bad.Render(style.Cross), first(event.Paths), event.Err)
	}
}

// detail prints one faint line per path in verbose mode.
func (r *Renderer) detail(paths []string) {
	if !r.verbose {
		return
	}
	for _, path := range paths {
		fmt.Fprintf(r.stderr, "  %s\n", r.faint.Render(path))
	}
}

func first(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
