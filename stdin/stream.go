// Package stdin provides non-blocking access to a process's standard input.
//
// Standard input reads normally block: a program started without piped input
// hangs on its first read, waiting for terminal input that may never come.
// This package moves every blocking read onto a background goroutine and
// hands the caller either a one-shot result (ReadOrDefault) or a live
// receive handle (NewStream) that can be polled without ever blocking.
//
// Whether input is interactive (a terminal) or piped is detected fresh on
// every facade call; in interactive mode no read is attempted at all, so the
// calling goroutine can never hang.
package stdin

import (
	"context"
	"sync"
)

// Stream is the consumer-side handle to a background input reader. It owns
// the receive capability only; the producing goroutine runs until the
// underlying stream closes, fails, or Close cancels it. Once the producer
// exits and every buffered chunk has been drained the handle is permanently
// disconnected.
type Stream struct {
	mode   Mode
	out    <-chan []byte
	cancel func() bool

	closeOnce sync.Once
}

// NewStream spawns a background reader for standard input and returns its
// receive handle immediately; construction never blocks.
//
// When input is interactive the handle is born disconnected: no goroutine is
// spawned and the first poll already reports ErrDisconnected, signaling "no
// input will ever arrive" rather than "wait longer". When input is piped the
// caller polls at its own cadence; polling faster than data arrives yields
// ErrEmpty, and after the writing side closes the handle drains and then
// disconnects for good.
func NewStream(opts ...Option) *Stream {
	cfg := newConfig(opts...)
	mode := DetectMode(cfg.source)

	if mode == ModeInteractive {
		closed := make(chan []byte)
		close(closed)
		cfg.logger.Debug("input is interactive, stream starts disconnected")
		return &Stream{
			mode:   mode,
			out:    closed,
			cancel: func() bool { return false },
		}
	}

	w := newWorker(cfg.source, cfg.chunkSize, cfg.logger)
	b := newBridge(cfg)
	go w.run(b.in)

	return &Stream{
		mode:   mode,
		out:    b.out,
		cancel: w.cancel,
	}
}

// TryRecv polls for the next chunk without blocking. It returns the chunk
// in read order, ErrEmpty while the producer is alive but has nothing
// buffered, or ErrDisconnected once the producer has exited and the buffer
// is drained. ErrDisconnected is permanent: later polls never revert to
// data or empty.
func (s *Stream) TryRecv() ([]byte, error) {
	select {
	case chunk, ok := <-s.out:
		if !ok {
			return nil, ErrDisconnected
		}
		return chunk, nil
	default:
		return nil, ErrEmpty
	}
}

// Recv waits for the next chunk. It returns ErrDisconnected once the stream
// is drained, or the context error if ctx ends first.
func (s *Stream) Recv(ctx context.Context) ([]byte, error) {
	select {
	case chunk, ok := <-s.out:
		if !ok {
			return nil, ErrDisconnected
		}
		return chunk, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Chunks exposes the receive channel directly for select-based consumers.
// The channel carries chunks in read order and closes when the stream
// disconnects.
func (s *Stream) Chunks() <-chan []byte {
	return s.out
}

// Mode reports how input was attached when the stream was created.
func (s *Stream) Mode() Mode {
	return s.mode
}

// Close delivers a stop signal to the background reader. When the platform
// supports it the in-flight read is interrupted; otherwise the reader stops
// after its current read returns. Chunks already buffered remain available:
// consumers may keep draining until the handle reports ErrDisconnected.
// Close is idempotent and always returns nil.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.cancel()
	})
	return nil
}
