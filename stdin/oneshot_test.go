package stdin_test

import (
	"testing"
	"time"

	"github.com/jlrickert/go-stdin/clock"
	"github.com/jlrickert/go-stdin/sandbox"
	"github.com/jlrickert/go-stdin/stdin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOrDefault_PipedData(t *testing.T) {
	t.Parallel()

	r, w := sandbox.StdinPipe(t)
	_, err := w.Write([]byte("hello\nworld"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// The closed pipe ends the read loop, so the result arrives well
	// before the generous grace period could expire.
	got := stdin.ReadOrDefault(nil,
		stdin.WithSource(r),
		stdin.WithGracePeriod(5*time.Second),
	)
	assert.Equal(t, []byte("hello\nworld"), got)
}

func TestReadOrDefault_BinaryData(t *testing.T) {
	t.Parallel()

	payload := []byte{0x00, 0x01, 0xff, 'o', 'k', 0x00}

	r, w := sandbox.StdinPipe(t)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got := stdin.ReadOrDefault([]byte("unused"),
		stdin.WithSource(r),
		stdin.WithGracePeriod(5*time.Second),
	)
	assert.Equal(t, payload, got)
}

func TestReadOrDefault_EmptyPipeFallsBack(t *testing.T) {
	t.Parallel()

	r, w := sandbox.StdinPipe(t)
	require.NoError(t, w.Close())

	got := stdin.ReadOrDefault([]byte("fallback"), stdin.WithSource(r))
	assert.Equal(t, []byte("fallback"), got)
}

func TestReadOrDefault_NilDefaultYieldsEmptyBytes(t *testing.T) {
	t.Parallel()

	r, w := sandbox.StdinPipe(t)
	require.NoError(t, w.Close())

	got := stdin.ReadOrDefault(nil, stdin.WithSource(r))
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadOrDefault_SlowInputFallsBack(t *testing.T) {
	t.Parallel()

	// The pipe stays open and never produces, so only the grace period can
	// end the call. The test clock drives it deterministically.
	r, _ := sandbox.StdinPipe(t)
	tc := clock.NewTestClock(time.Date(2025, 10, 15, 12, 30, 0, 0, time.UTC))

	resultCh := make(chan []byte, 1)
	go func() {
		resultCh <- stdin.ReadOrDefault([]byte("fallback"),
			stdin.WithSource(r),
			stdin.WithClock(tc),
			stdin.WithGracePeriod(stdin.DefaultGracePeriod),
		)
	}()

	var got []byte
	require.Eventually(t, func() bool {
		tc.Advance(stdin.DefaultGracePeriod)
		select {
		case got = <-resultCh:
			return true
		default:
			return false
		}
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, []byte("fallback"), got)
}

func TestReadOrDefault_ChunksWithinGraceAccumulate(t *testing.T) {
	t.Parallel()

	r, w := sandbox.StdinPipe(t)

	feeder := sandbox.NewFeeder(t, w, 20*time.Millisecond)
	feeder.Feed([]byte("he"), []byte("llo"))
	go feeder.Close()

	got := stdin.ReadOrDefault([]byte("fallback"),
		stdin.WithSource(r),
		stdin.WithGracePeriod(5*time.Second),
	)
	assert.Equal(t, []byte("hello"), got)
}

func TestReadOrDefault_Interactive(t *testing.T) {
	t.Parallel()

	_, tty := sandbox.StdinTTY(t)

	// Nobody ever types on this terminal: if a read were attempted the
	// call would hang forever. Returning at all proves the short-circuit.
	start := time.Now()
	got := stdin.ReadOrDefault([]byte("fallback"), stdin.WithSource(tty))
	elapsed := time.Since(start)

	assert.Equal(t, []byte("fallback"), got)
	assert.Less(t, elapsed, time.Second, "interactive fallback must not wait on input")
}

func TestReadOrDefault_InteractiveNilDefault(t *testing.T) {
	t.Parallel()

	_, tty := sandbox.StdinTTY(t)

	got := stdin.ReadOrDefault(nil, stdin.WithSource(tty))
	require.NotNil(t, got)
	assert.Empty(t, got)
}
