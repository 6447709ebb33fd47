package stdin

import (
	"errors"
	"io"
	"log/slog"

	"github.com/muesli/cancelreader"
)

// worker owns the blocking read loop. It runs on its own goroutine, one per
// facade call, and is never reused. The send side of the bridge belongs to
// it: the channel closes exactly once, when the loop exits on end-of-file or
// a read error.
type worker struct {
	r      io.Reader
	size   int
	logger *slog.Logger
	cancel func() bool
}

// newWorker wraps src in a cancelable reader when the platform supports it.
// The cancel func unblocks an in-flight read and reports whether it
// succeeded; when the source cannot be wrapped the worker only stops after
// its current read returns, since a blocking read cannot be interrupted
// mid-flight on every platform.
func newWorker(src io.Reader, size int, logger *slog.Logger) *worker {
	w := &worker{
		r:      src,
		size:   size,
		logger: logger,
		cancel: func() bool { return false },
	}
	if cr, err := cancelreader.NewReader(src); err == nil {
		w.r = cr
		w.cancel = cr.Cancel
	}
	return w
}

// run performs one blocking read per iteration and forwards each chunk to
// ch. Chunks are copied out of the read buffer, so the consumer owns what it
// receives. Sends are fire-and-forget from the worker's point of view: the
// bridge pump takes every chunk immediately unless a bounded buffer is full
// under OverflowBlock.
//
// Read errors are folded into end-of-file: either way the loop exits and ch
// closes, and the consumer observes an ordinary disconnect after draining.
func (w *worker) run(ch chan<- []byte) {
	defer close(ch)

	buf := make([]byte, w.size)
	for {
		n, err := w.r.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			ch <- chunk
		}
		if err != nil {
			switch {
			case err == io.EOF:
				w.logger.Debug("input closed")
			case errors.Is(err, cancelreader.ErrCanceled):
				w.logger.Debug("read canceled")
			default:
				w.logger.Debug("read failed, treating as end of input",
					slog.String("error", err.Error()))
			}
			return
		}
	}
}
