// Package progress writes human-readable run progress and sets up the
// diagnostic logger.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Reporter prints one line per progress update. It is safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	out    io.Writer
	styled bool
}

// NewReporter writes to out. Styling is applied only when styled is true.
func NewReporter(out io.Writer, styled bool) *Reporter {
	if out == nil {
		out = io.Discard
	}
	return &Reporter{out: out, styled: styled}
}

// NewStdoutReporter writes to stdout, styled when stdout is a terminal.
func NewStdoutReporter() *Reporter {
	return NewReporter(os.Stdout, IsTerminal(os.Stdout))
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Step announces the start of a unit of work.
func (r *Reporter) Step(format string, args ...any) {
	r.line(StepStyle, stepMark, format, args...)
}

// Success reports a finished unit of work.
func (r *Reporter) Success(format string, args ...any) {
	r.line(OKStyle, checkMark, format, args...)
}

// Failure reports a failed unit of work.
func (r *Reporter) Failure(format string, args ...any) {
	r.line(FailedStyle, crossMark, format, args...)
}

// Warn reports a non-fatal problem.
func (r *Reporter) Warn(format string, args ...any) {
	r.line(WarningStyle, warnMark, format, args...)
}

// Skip reports work that was not needed.
func (r *Reporter) Skip(format string, args ...any) {
	r.line(DimStyle, skipMark, format, args...)
}

func (r *Reporter) line(style lipgloss.Style, mark, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if r.styled {
		mark = style.Render(mark)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, "%s %s\n", mark, msg)
}
