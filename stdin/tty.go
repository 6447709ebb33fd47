package stdin

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Mode classifies how standard input is attached to the process.
type Mode int

const (
	// ModePiped means input is redirected from a file, pipe, or another
	// process; bytes may arrive over time and blocking reads are meaningful.
	ModePiped Mode = iota
	// ModeInteractive means input is attached to a terminal; no piped data
	// will ever arrive and nothing should wait for it.
	ModeInteractive
)

func (m Mode) String() string {
	if m == ModeInteractive {
		return "interactive"
	}
	return "piped"
}

// IsInteractive reports whether the process's standard input is attached to
// an interactive terminal. The descriptor is queried fresh on every call;
// nothing is cached, since test harnesses and process supervisors may swap
// the attachment between calls.
func IsInteractive() bool {
	return IsInteractiveTerminal(os.Stdin)
}

// IsInteractiveTerminal reports whether the provided file is connected to an
// interactive terminal.
//
// This delegates to golang.org/x/term.IsTerminal and returns true when the
// file descriptor refers to a terminal device (TTY). Pass os.Stdin to check
// the program's standard input. Pipes, redirected files, and failed queries
// all report false.
func IsInteractiveTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// IsPiped reports whether the provided file appears to be receiving piped or
// redirected input (for example: `echo hi | myprog` or `myprog < file.txt`).
//
// The implementation performs a lightweight metadata check: it returns true
// when the file is not a character device (that is, not a terminal).
//
// Notes:
//   - The check does not attempt to read from the file; it only inspects the
//     mode returned by Stat(). An open pipe may still be empty.
//   - If Stat() fails the function conservatively returns false.
func IsPiped(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) == 0
}

// DetectMode classifies an input source. Files attached to a terminal are
// interactive; everything else, including non-file readers and failed
// queries, is treated as piped so a read is attempted rather than assumed
// away.
func DetectMode(r io.Reader) Mode {
	if f, ok := r.(*os.File); ok && IsInteractiveTerminal(f) {
		return ModeInteractive
	}
	return ModePiped
}
