package stdin

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jlrickert/go-stdin/clock"
	"github.com/jlrickert/go-stdin/mylog"
)

const (
	// DefaultChunkSize is the buffer size handed to each blocking read. A
	// chunk may split or merge whatever the writing side considers logical
	// lines; it is simply what one read call returned.
	DefaultChunkSize = 4096

	// DefaultGracePeriod is how long ReadOrDefault waits for piped data
	// before falling back to the caller's default.
	DefaultGracePeriod = 100 * time.Millisecond
)

// OverflowPolicy selects what happens to new chunks once a bounded stream's
// buffer is full. The zero value blocks the producer.
type OverflowPolicy int

const (
	// OverflowBlock pauses the worker until the consumer makes room.
	OverflowBlock OverflowPolicy = iota
	// OverflowDropOldest evicts the oldest buffered chunk to admit the new
	// one.
	OverflowDropOldest
	// OverflowDropNewest discards the incoming chunk and keeps the buffer
	// as-is.
	OverflowDropNewest
)

func (p OverflowPolicy) String() string {
	switch p {
	case OverflowDropOldest:
		return "drop-oldest"
	case OverflowDropNewest:
		return "drop-newest"
	default:
		return "block"
	}
}

// Option adjusts how a facade call sets up its reader. Invalid values are
// normalized rather than reported: the facades deliberately have no error
// path.
type Option func(*config)

type config struct {
	source      io.Reader
	chunkSize   int
	grace       time.Duration
	clock       clock.Clock
	logger      *slog.Logger
	maxBuffered int
	overflow    OverflowPolicy
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		source:    os.Stdin,
		chunkSize: DefaultChunkSize,
		grace:     DefaultGracePeriod,
		clock:     &clock.OsClock{},
		logger:    mylog.NewDiscardLogger(),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return cfg
}

// WithSource substitutes the input source, which defaults to os.Stdin.
// *os.File sources get real terminal detection; any other reader is treated
// as piped. A nil source is ignored.
func WithSource(r io.Reader) Option {
	return func(cfg *config) {
		if r != nil {
			cfg.source = r
		}
	}
}

// WithChunkSize sets the read buffer size. Non-positive values keep
// DefaultChunkSize.
func WithChunkSize(n int) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.chunkSize = n
		}
	}
}

// WithGracePeriod sets how long the one-shot read waits for piped data.
// Negative values are clamped to zero, which means a single immediate poll.
func WithGracePeriod(d time.Duration) Option {
	return func(cfg *config) {
		if d < 0 {
			d = 0
		}
		cfg.grace = d
	}
}

// WithClock substitutes the clock used for grace-period timing. Tests pass a
// clock.TestClock to drive the wait deterministically. A nil clock falls
// back to the wall clock.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) {
		cfg.clock = clock.OrDefault(c)
	}
}

// WithLogger enables debug logging of worker lifecycle and buffer events. A
// nil logger falls back to the default, which discards everything.
func WithLogger(lg *slog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = mylog.OrDefault(lg)
	}
}

// WithMaxBuffered bounds the number of chunks the stream will hold for a
// slow consumer, with policy deciding how overflow is resolved. By default
// buffering is unbounded and the worker's read cadence is the only
// throttle. Non-positive n keeps the unbounded behavior.
func WithMaxBuffered(n int, policy OverflowPolicy) Option {
	return func(cfg *config) {
		if n > 0 {
			cfg.maxBuffered = n
			cfg.overflow = policy
		}
	}
}
