// ABOUTME: Logger construction for the marksweep command
// ABOUTME: Text slog handler writing to a colour-capable terminal when one is attached

// Package logging builds the structured logger used by the command.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"golang.org/x/exp/slog"
)

// New returns a text logger writing records at or above level to w
func New(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return (isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) && os.Getenv("TERM") != "dumb"
}

// Stderr returns the writer log output should go to. On terminals it goes
// through go-colorable so escape sequences also work on Windows consoles.
func Stderr() io.Writer {
	if IsTerminal(os.Stderr) {
		return colorable.NewColorableStderr()
	}
	return os.Stderr
}
