package mylog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// LoggedEntry is one record captured by a TestHandler.
type LoggedEntry struct {
	Level slog.Level
	Msg   string
	Attrs map[string]slog.Value
}

// TestHandler is a slog.Handler that records every entry and mirrors it to
// the test log. Records are safe to inspect while other goroutines are still
// logging. Handlers derived through WithAttrs or WithGroup record into the
// same store as the root handler.
type TestHandler struct {
	tb    testing.TB
	level slog.Level
	rec   *recorder

	attrs []slog.Attr
	group string
}

type recorder struct {
	mu      sync.Mutex
	entries []LoggedEntry
}

// NewTestLogger returns a logger wired to a TestHandler at the given level.
// Entries end up in the test output via tb.Log and in the returned handler
// for assertions.
func NewTestLogger(tb testing.TB, level slog.Level) (*slog.Logger, *TestHandler) {
	tb.Helper()
	h := &TestHandler{tb: tb, level: level, rec: &recorder{}}
	return slog.New(h), h
}

func (h *TestHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *TestHandler) Handle(_ context.Context, r slog.Record) error {
	entry := LoggedEntry{
		Level: r.Level,
		Msg:   r.Message,
		Attrs: make(map[string]slog.Value),
	}
	for _, a := range h.attrs {
		entry.Attrs[h.attrKey(a.Key)] = a.Value
	}
	r.Attrs(func(a slog.Attr) bool {
		entry.Attrs[h.attrKey(a.Key)] = a.Value
		return true
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", r.Level, r.Message)
	for k, v := range entry.Attrs {
		fmt.Fprintf(&sb, " %s=%v", k, v)
	}

	h.rec.mu.Lock()
	h.rec.entries = append(h.rec.entries, entry)
	h.rec.mu.Unlock()

	h.tb.Log(sb.String())
	return nil
}

func (h *TestHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := h.clone()
	clone.attrs = append(clone.attrs, attrs...)
	return clone
}

func (h *TestHandler) WithGroup(name string) slog.Handler {
	clone := h.clone()
	if clone.group == "" {
		clone.group = name
	} else {
		clone.group = clone.group + "." + name
	}
	return clone
}

// Entries returns a copy of the captured records.
func (h *TestHandler) Entries() []LoggedEntry {
	h.rec.mu.Lock()
	defer h.rec.mu.Unlock()
	out := make([]LoggedEntry, len(h.rec.entries))
	copy(out, h.rec.entries)
	return out
}

// FindEntries returns the captured entries of th matching pred.
func FindEntries(th *TestHandler, pred func(e LoggedEntry) bool) []LoggedEntry {
	var out []LoggedEntry
	for _, e := range th.Entries() {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

func (h *TestHandler) attrKey(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *TestHandler) clone() *TestHandler {
	attrs := make([]slog.Attr, len(h.attrs))
	copy(attrs, h.attrs)
	return &TestHandler{
		tb:    h.tb,
		level: h.level,
		rec:   h.rec,
		attrs: attrs,
		group: h.group,
	}
}
