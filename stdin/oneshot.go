package stdin

// ReadOrDefault returns whatever standard input delivers within a short
// grace period, falling back to def when input is interactive or nothing
// arrives in time. A nil def falls back to empty bytes.
//
// Interactive input returns immediately: no goroutine is spawned and no wait
// occurs. Piped input gets up to the grace period (DefaultGracePeriod unless
// WithGracePeriod overrides it) for chunks to arrive; everything received
// inside the window is accumulated. The accumulation is returned as soon as
// the stream closes, or when the window expires with at least one byte read.
// An empty or too-slow stream yields def.
//
// The spawned reader is not cancelled when the call returns early; it exits
// on its own once the input stream closes, and anything it reads after the
// window is discarded.
func ReadOrDefault(def []byte, opts ...Option) []byte {
	cfg := newConfig(opts...)
	if DetectMode(cfg.source) == ModeInteractive {
		cfg.logger.Debug("input is interactive, returning default")
		return orEmpty(def)
	}

	w := newWorker(cfg.source, cfg.chunkSize, cfg.logger)
	b := newBridge(cfg)
	go w.run(b.in)

	deadline := cfg.clock.After(cfg.grace)

	var acc []byte
	for {
		select {
		case chunk, ok := <-b.out:
			if !ok {
				if len(acc) > 0 {
					return acc
				}
				return orEmpty(def)
			}
			acc = append(acc, chunk...)
		case <-deadline:
			// Detach: discard whatever still arrives so the reader can run
			// to end-of-file on its own.
			go drain(b.out)
			if len(acc) > 0 {
				return acc
			}
			cfg.logger.Debug("grace period expired with no data")
			return orEmpty(def)
		}
	}
}

func drain(ch <-chan []byte) {
	for range ch {
	}
}

func orEmpty(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
