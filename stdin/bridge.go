package stdin

import "log/slog"

// bridge is the ordered handoff queue between the worker and the consumer.
// Go channels are bounded, so the unbounded queue the handoff needs is built
// the usual way: the worker feeds an unbuffered in channel, a pump goroutine
// owns a FIFO slice, and the consumer receives from an unbuffered out
// channel. After in closes the pump drains the FIFO and then closes out,
// which is what makes disconnection observable only after every buffered
// chunk has been taken.
type bridge struct {
	in  chan []byte
	out chan []byte

	max    int
	policy OverflowPolicy
	logger *slog.Logger
}

func newBridge(cfg *config) *bridge {
	b := &bridge{
		in:     make(chan []byte),
		out:    make(chan []byte),
		max:    cfg.maxBuffered,
		policy: cfg.overflow,
		logger: cfg.logger,
	}
	go b.pump()
	return b
}

func (b *bridge) pump() {
	defer close(b.out)

	var queue [][]byte
	in := b.in
	for in != nil || len(queue) > 0 {
		var (
			sendCh chan<- []byte
			next   []byte
		)
		if len(queue) > 0 {
			sendCh = b.out
			next = queue[0]
		}

		recvCh := in
		if b.max > 0 && len(queue) >= b.max && b.policy == OverflowBlock {
			// Full under the blocking policy: stop taking from the worker
			// until the consumer makes room.
			recvCh = nil
		}

		select {
		case chunk, ok := <-recvCh:
			if !ok {
				in = nil
				continue
			}
			queue = b.enqueue(queue, chunk)
		case sendCh <- next:
			queue[0] = nil
			queue = queue[1:]
		}
	}
}

func (b *bridge) enqueue(queue [][]byte, chunk []byte) [][]byte {
	if b.max <= 0 || len(queue) < b.max {
		return append(queue, chunk)
	}
	switch b.policy {
	case OverflowDropOldest:
		b.logger.Debug("buffer full, dropping oldest chunk",
			slog.Int("buffered", len(queue)))
		queue[0] = nil
		queue = queue[1:]
		return append(queue, chunk)
	default:
		// OverflowDropNewest. OverflowBlock never reaches here because the
		// pump stops receiving while full.
		b.logger.Debug("buffer full, dropping newest chunk",
			slog.Int("buffered", len(queue)))
		return queue
	}
}
