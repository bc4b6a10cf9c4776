package rowcast

// sink.go is the out-of-band channel for row failures in forgiving mode.

import (
	"log/slog"
	"sync"
)

// RowFailure describes one dropped row: its ordinal, the column and raw
// value that failed (when the error identifies them), the original line,
// and the underlying error.
type RowFailure struct {
	Ordinal int
	Column  string
	Raw     string
	Line    string
	Err     error
}

// FailureSink receives one entry per row failure during a forgiving parse.
// Implementations must be safe for use from a single parsing goroutine;
// the assembler never calls a sink concurrently.
type FailureSink interface {
	RowFailed(f RowFailure)
}

// slogSink logs each failure as one structured entry.
type slogSink struct {
	log *slog.Logger
}

// NewSlogSink returns a FailureSink that logs one structured warning per
// dropped row. A nil logger uses slog.Default.
func NewSlogSink(log *slog.Logger) FailureSink {
	if log == nil {
		log = slog.Default()
	}
	return slogSink{log: log}
}

func (s slogSink) RowFailed(f RowFailure) {
	s.log.Warn("row dropped",
		"row", f.Ordinal,
		"column", f.Column,
		"raw", f.Raw,
		"err", f.Err,
	)
}

// CollectSink accumulates failures in memory. Useful in tests and for
// callers that render their own failure reports.
type CollectSink struct {
	mu       sync.Mutex
	failures []RowFailure
}

// RowFailed implements FailureSink.
func (c *CollectSink) RowFailed(f RowFailure) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures = append(c.failures, f)
}

// Failures returns a copy of the collected failures in arrival order.
func (c *CollectSink) Failures() []RowFailure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]RowFailure(nil), c.failures...)
}

// Len returns the number of collected failures.
func (c *CollectSink) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.failures)
}
