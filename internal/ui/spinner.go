package ui

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// Spinner shows activity on a terminal while files are being processed.
// A nil *Spinner is valid and does nothing.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner starts a spinner on out with the given message.
// It returns nil when disabled or when out is not a terminal.
func StartSpinner(out *os.File, message string, enabled bool) *Spinner {
	if !enabled || out == nil || !term.IsTerminal(int(out.Fd())) { //nolint:gosec
		return nil
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message
	s.Start()

	return &Spinner{s: s}
}

// Stop halts the spinner and clears its line.
func (s *Spinner) Stop() {
	if s == nil {
		return
	}

	s.s.Stop()
}
