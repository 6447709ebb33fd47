package stdin

import "errors"

var (
	// ErrEmpty reports that no chunk is buffered right now; the producer is
	// still alive and more data may arrive.
	ErrEmpty = errors.New("no data available")

	// ErrDisconnected reports that the producer has exited and every
	// buffered chunk has been drained. The state is terminal: once
	// observed, no further data will ever arrive.
	ErrDisconnected = errors.New("input stream disconnected")
)
