package sandbox

import (
	"io"
	"testing"
	"time"

	"github.com/sourcegraph/conc"
)

// Feeder writes chunks to the producer end of a pipe on a background
// goroutine, modeling an upstream process that emits data over time. Chunks
// within one Feed call are written in order; the pause between writes gives
// the consumer a chance to observe each chunk separately.
type Feeder struct {
	tb    testing.TB
	w     io.WriteCloser
	delay time.Duration
	wg    conc.WaitGroup
}

// NewFeeder returns a Feeder writing to w, pausing delay between chunks.
func NewFeeder(tb testing.TB, w io.WriteCloser, delay time.Duration) *Feeder {
	tb.Helper()
	return &Feeder{tb: tb, w: w, delay: delay}
}

// Feed starts writing the chunks in order on a background goroutine and
// returns immediately.
func (f *Feeder) Feed(chunks ...[]byte) *Feeder {
	f.wg.Go(func() {
		for i, chunk := range chunks {
			if i > 0 && f.delay > 0 {
				time.Sleep(f.delay)
			}
			if _, err := f.w.Write(chunk); err != nil {
				f.tb.Errorf("Feeder: write chunk %d failed: %v", i, err)
				return
			}
		}
	})
	return f
}

// Close waits for pending writes to finish and then closes the write end,
// delivering end-of-file to the consumer.
func (f *Feeder) Close() {
	f.wg.Wait()
	_ = f.w.Close()
}
