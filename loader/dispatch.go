package loader

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/metric"
)

// Dispatcher serializes cross-tab join queries. The sidebar fires a query on
// every checkbox change; while one is outstanding, new ones are dropped
// rather than queued, because the next selection change would obsolete them
// anyway.
type Dispatcher struct {
	logger  *slog.Logger
	metrics *metric.Metrics
	busy    atomic.Bool
}

// DispatcherOption configures a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithDispatcherLogger sets the structured logger.
func WithDispatcherLogger(logger *slog.Logger) DispatcherOption {
	return func(d *Dispatcher) { d.logger = logger }
}

// WithDispatcherMetrics enables prometheus instrumentation.
func WithDispatcherMetrics(m *metric.Metrics) DispatcherOption {
	return func(d *Dispatcher) { d.metrics = m }
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Do runs one named query on the calling goroutine. If another query is
// outstanding, fn never runs and Do fails with ErrQueryBusy.
func (d *Dispatcher) Do(name string, fn func() error) error {
	if !d.busy.CompareAndSwap(false, true) {
		if d.metrics != nil {
			d.metrics.RecordQueryDropped()
		}
		d.logger.Debug("query dropped, another outstanding", "query", name)
		return errors.Wrap(errors.ErrQueryBusy, "Dispatcher", "Do", "dispatch query "+name)
	}
	defer d.busy.Store(false)

	start := time.Now()
	err := fn()
	if d.metrics != nil {
		d.metrics.RecordQuery(name, time.Since(start))
	}
	return err
}

// Outstanding reports whether a query is currently running.
func (d *Dispatcher) Outstanding() bool { return d.busy.Load() }
