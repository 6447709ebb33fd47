package stdin_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/jlrickert/go-stdin/sandbox"
	"github.com/jlrickert/go-stdin/stdin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the real process boundary: the test binary re-runs
// itself with stdin attached to a pipe, the null device, or a PTY, and the
// helper below consumes it through the public API.

// TestHelperProcess is not a test; it is the body of the re-executed child.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	switch os.Getenv("GO_STDIN_HELPER_MODE") {
	case "oneshot":
		out := stdin.ReadOrDefault([]byte(os.Getenv("GO_STDIN_HELPER_DEFAULT")))
		_, _ = os.Stdout.Write(out)

	case "stream":
		s := stdin.NewStream()
		for {
			chunk, err := s.TryRecv()
			switch {
			case err == nil:
				_, _ = os.Stdout.Write(chunk)
			case errors.Is(err, stdin.ErrEmpty):
				time.Sleep(time.Millisecond)
			case errors.Is(err, stdin.ErrDisconnected):
				return
			}
		}

	case "stream-first-poll":
		_, err := stdin.NewStream().TryRecv()
		switch {
		case errors.Is(err, stdin.ErrDisconnected):
			fmt.Print("disconnected")
		case errors.Is(err, stdin.ErrEmpty):
			fmt.Print("empty")
		default:
			fmt.Print("data")
		}

	case "mode":
		fmt.Print(stdin.DetectMode(os.Stdin).String())
	}
}

func helperCommand(t *testing.T, mode string, env ...string) *exec.Cmd {
	t.Helper()

	cmd := exec.Command(os.Args[0], "-test.run=^TestHelperProcess$")
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"GO_STDIN_HELPER_MODE="+mode,
	)
	cmd.Env = append(cmd.Env, env...)
	return cmd
}

func TestSubprocess_OneShotPiped(t *testing.T) {
	t.Parallel()

	cmd := helperCommand(t, "oneshot", "GO_STDIN_HELPER_DEFAULT=unused")
	cmd.Stdin = strings.NewReader("hello\nworld")

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "hello\nworld", string(out))
}

func TestSubprocess_OneShotNullStdin(t *testing.T) {
	t.Parallel()

	// A nil Stdin hands the child the null device: piped classification,
	// immediate end-of-file, so the default comes back.
	cmd := helperCommand(t, "oneshot", "GO_STDIN_HELPER_DEFAULT=default_response")

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "default_response", string(out))
}

func TestSubprocess_OneShotOpenPipeTimesOut(t *testing.T) {
	t.Parallel()

	r, _ := sandbox.StdinPipe(t)

	// The write end stays open in the parent, so the child sees piped
	// input that never produces and must fall back after its grace period.
	cmd := helperCommand(t, "oneshot", "GO_STDIN_HELPER_DEFAULT=fallback")
	cmd.Stdin = r

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "fallback", string(out))
}

func TestSubprocess_StreamEchoesPipe(t *testing.T) {
	t.Parallel()

	cmd := helperCommand(t, "stream")
	cmd.Stdin = strings.NewReader("line one\nline two\n")

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\n", string(out))
}

func TestSubprocess_InteractiveOneShot(t *testing.T) {
	t.Parallel()

	cmd := helperCommand(t, "oneshot", "GO_STDIN_HELPER_DEFAULT=fallback")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer func() { _ = ptmx.Close() }()

	// Reading the master fails once the child exits; whatever was
	// collected by then is the child's output.
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, ptmx)
	require.NoError(t, cmd.Wait())

	assert.Contains(t, buf.String(), "fallback")
}

func TestSubprocess_InteractiveStreamFirstPoll(t *testing.T) {
	t.Parallel()

	cmd := helperCommand(t, "stream-first-poll")

	ptmx, err := pty.Start(cmd)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer func() { _ = ptmx.Close() }()

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, ptmx)
	require.NoError(t, cmd.Wait())

	assert.Contains(t, buf.String(), "disconnected")
}

func TestSubprocess_ModeDetection(t *testing.T) {
	t.Parallel()

	cmd := helperCommand(t, "mode")
	cmd.Stdin = strings.NewReader("anything")

	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Equal(t, "piped", string(out))
}
