package sandbox_test

import (
	"io"
	"testing"
	"time"

	tu "github.com/jlrickert/go-stdin/sandbox"
	"github.com/jlrickert/go-stdin/stdin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdinFile_SeededContent(t *testing.T) {
	t.Parallel()

	content := []byte("hello\nworld")
	f := tu.StdinFile(t, content)

	got, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestStdinFile_LooksPiped(t *testing.T) {
	t.Parallel()

	f := tu.StdinFile(t, []byte("data"))

	assert.True(t, stdin.IsPiped(f))
	assert.False(t, stdin.IsInteractiveTerminal(f))
	assert.Equal(t, stdin.ModePiped, stdin.DetectMode(f))
}

func TestStdinPipe_DeliversWritesThenEOF(t *testing.T) {
	t.Parallel()

	r, w := tu.StdinPipe(t)

	_, err := w.Write([]byte("chunk"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("chunk"), got)
}

func TestStdinPipe_LooksPiped(t *testing.T) {
	t.Parallel()

	r, _ := tu.StdinPipe(t)

	assert.True(t, stdin.IsPiped(r))
	assert.Equal(t, stdin.ModePiped, stdin.DetectMode(r))
}

func TestStdinTTY_LooksInteractive(t *testing.T) {
	t.Parallel()

	_, tty := tu.StdinTTY(t)

	assert.True(t, stdin.IsInteractiveTerminal(tty))
	assert.False(t, stdin.IsPiped(tty))
	assert.Equal(t, stdin.ModeInteractive, stdin.DetectMode(tty))
}

func TestFeeder_WritesInOrder(t *testing.T) {
	t.Parallel()

	r, w := tu.StdinPipe(t)

	feeder := tu.NewFeeder(t, w, time.Millisecond)
	feeder.Feed([]byte("one "), []byte("two "), []byte("three"))
	feeder.Close()

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "one two three", string(got))
}
