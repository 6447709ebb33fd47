// Package sandbox provides testing.T-bound fixtures for code that consumes
// standard input: file-backed stdin, pipe-backed stdin with a paced feeder,
// and PTY-backed stdin for interactive scenarios.
package sandbox

import (
	"os"
	"testing"

	"github.com/creack/pty"
)

// StdinFile returns an open file seeded with content and seeked to the
// beginning, suitable as a stand-in for redirected standard input
// (`myprog < file`). The file lives in the test temp dir and is cleaned up
// with the test.
func StdinFile(t *testing.T, content []byte) *os.File {
	t.Helper()

	f, err := os.CreateTemp(t.TempDir(), "stdin-*")
	if err != nil {
		t.Fatalf("StdinFile: create temp file failed: %v", err)
	}
	if _, err := f.Write(content); err != nil {
		t.Fatalf("StdinFile: seed content failed: %v", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatalf("StdinFile: seek failed: %v", err)
	}

	t.Cleanup(func() { _ = f.Close() })
	return f
}

// StdinPipe returns both ends of an OS pipe, modeling piped standard input
// (`producer | myprog`). The caller reads from r and writes to w; closing w
// delivers end-of-file to the reader. Both ends are closed with the test,
// so tests only close w themselves when they need the reader to observe
// end-of-file early.
func StdinPipe(t *testing.T) (r, w *os.File) {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("StdinPipe: pipe failed: %v", err)
	}

	t.Cleanup(func() {
		_ = r.Close()
		_ = w.Close()
	})
	return r, w
}

// StdinTTY returns a connected PTY pair, modeling interactive standard
// input: the tty end looks like a terminal to detection code, while the pty
// end plays the role of the user's keyboard. Tests are skipped on platforms
// where no PTY can be allocated.
func StdinTTY(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("StdinTTY: pty unavailable: %v", err)
	}

	t.Cleanup(func() {
		_ = ptmx.Close()
		_ = tty.Close()
	})
	return ptmx, tty
}
