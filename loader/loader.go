// Package loader orchestrates bulk reloads of the warehouse snapshot. A
// reload replaces every entity table, re-attaches coordinates, rebuilds the
// relation index and refreshes the frequency engine, then reports completion
// through ordered ready events. Only one reload runs at a time; overlapping
// requests are rejected, not queued.
package loader

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/frequency"
	"github.com/c360/warescene/metric"
	"github.com/c360/warescene/relindex"
	"github.com/c360/warescene/store"
	"github.com/c360/warescene/warehouse"
)

// Snapshot carries the raw parsed sheets of one reload. Parsing itself is
// external; the loader consumes records only.
type Snapshot struct {
	Locations   []warehouse.LocationRecord
	Coordinates []warehouse.CoordinateRecord
	Items       []warehouse.ItemRecord
	Inventory   []warehouse.InventoryRecord
	Orders      []warehouse.OrderRecord
}

// EventKind labels one ready event of a reload. Events of one job are always
// delivered in the order the constants are declared.
type EventKind string

const (
	EventLocationsReady   EventKind = "locations_ready"
	EventItemsReady       EventKind = "items_ready"
	EventInventoryReady   EventKind = "inventory_ready"
	EventOrdersReady      EventKind = "orders_ready"
	EventFrequenciesReady EventKind = "frequencies_ready"
)

// Event reports one completed stage of a reload job.
type Event struct {
	JobID string
	Kind  EventKind
	Count int
}

// Progress is a throttled liveness notification for long reloads.
type Progress struct {
	JobID string
	Stage string
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *metric.Metrics) Option {
	return func(l *Loader) { l.metrics = m }
}

// WithProgressLimit overrides the progress notification rate.
func WithProgressLimit(limit rate.Limit) Option {
	return func(l *Loader) { l.limiter = rate.NewLimiter(limit, 1) }
}

// Loader owns reload orchestration for one store/index/engine triple.
type Loader struct {
	logger  *slog.Logger
	metrics *metric.Metrics

	store  *store.Store
	index  *relindex.Index
	engine *frequency.Engine

	busy     atomic.Bool
	events   chan Event
	progress chan Progress
	limiter  *rate.Limiter
}

// New creates a Loader. The engine may be nil when no frequency strategies
// are registered; the frequencies-ready event still fires so consumers see a
// complete sequence.
func New(s *store.Store, idx *relindex.Index, engine *frequency.Engine, opts ...Option) *Loader {
	l := &Loader{
		store:    s,
		index:    idx,
		engine:   engine,
		events:   make(chan Event, 16),
		progress: make(chan Progress, 16),
		limiter:  rate.NewLimiter(rate.Limit(20), 1),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	return l
}

// Events returns the ready-event channel. Events are dropped, with a log
// line, when the consumer falls 16 events behind.
func (l *Loader) Events() <-chan Event { return l.events }

// ProgressEvents returns the throttled progress channel.
func (l *Loader) ProgressEvents() <-chan Progress { return l.progress }

// Reload runs one bulk reload and returns its job id. A reload already in
// flight rejects the call with ErrReloadInFlight; the caller retries after
// the running job's events arrive. Location, item and inventory staging runs
// concurrently; installs that depend on other tables (coordinates on
// locations, orders on items) follow, and ready events fire strictly in
// locations, items, inventory, orders, frequencies order.
func (l *Loader) Reload(ctx context.Context, snap Snapshot) (string, error) {
	if !l.busy.CompareAndSwap(false, true) {
		return "", errors.Wrap(errors.ErrReloadInFlight, "Loader", "Reload", "start reload")
	}
	defer l.busy.Store(false)

	jobID := uuid.NewString()
	start := time.Now()
	l.logger.Info("reload started", "job", jobID,
		"locations", len(snap.Locations), "items", len(snap.Items),
		"inventory", len(snap.Inventory), "orders", len(snap.Orders))

	if err := l.load(ctx, jobID, snap); err != nil {
		if l.metrics != nil {
			l.metrics.RecordReload("failure", time.Since(start))
		}
		l.logger.Error("reload failed", "job", jobID, "error", err)
		return jobID, err
	}

	if l.metrics != nil {
		l.metrics.RecordReload("success", time.Since(start))
		locations, items, inventoryRows, orders := l.store.Counts()
		l.metrics.RecordEntityCount("locations", locations)
		l.metrics.RecordEntityCount("items", items)
		l.metrics.RecordEntityCount("inventory_rows", inventoryRows)
		l.metrics.RecordEntityCount("orders", orders)
	}
	l.logger.Info("reload finished", "job", jobID, "duration", time.Since(start))
	return jobID, nil
}

// Busy reports whether a reload is currently in flight.
func (l *Loader) Busy() bool { return l.busy.Load() }

func (l *Loader) load(ctx context.Context, jobID string, snap Snapshot) error {
	var g errgroup.Group
	g.Go(func() error {
		l.notifyProgress(jobID, "locations")
		if err := l.store.ReplaceLocations(snap.Locations); err != nil {
			return err
		}
		l.notifyProgress(jobID, "coordinates")
		return l.store.AttachCoordinates(snap.Coordinates)
	})
	g.Go(func() error {
		l.notifyProgress(jobID, "items")
		return l.store.ReplaceItems(snap.Items)
	})
	g.Go(func() error {
		l.notifyProgress(jobID, "inventory")
		return l.store.ReplaceInventory(snap.Inventory)
	})
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// orders resolve item ids, so they stage only after items installed
	l.notifyProgress(jobID, "orders")
	if err := l.store.ReplaceOrders(snap.Orders); err != nil {
		return err
	}

	l.notifyProgress(jobID, "index")
	l.index.Rebuild(l.store)
	l.notifyProgress(jobID, "frequencies")
	if l.engine != nil {
		l.engine.Refresh()
	}

	locations, items, inventoryRows, orders := l.store.Counts()
	l.emit(Event{JobID: jobID, Kind: EventLocationsReady, Count: locations})
	l.emit(Event{JobID: jobID, Kind: EventItemsReady, Count: items})
	l.emit(Event{JobID: jobID, Kind: EventInventoryReady, Count: inventoryRows})
	l.emit(Event{JobID: jobID, Kind: EventOrdersReady, Count: orders})
	l.emit(Event{JobID: jobID, Kind: EventFrequenciesReady, Count: locations})
	return nil
}

func (l *Loader) emit(ev Event) {
	select {
	case l.events <- ev:
	default:
		l.logger.Warn("ready event dropped, consumer behind", "job", ev.JobID, "kind", ev.Kind)
	}
}

// notifyProgress sends a progress notification unless the rate limiter or a
// slow consumer says otherwise. Progress is advisory; dropping it is fine.
func (l *Loader) notifyProgress(jobID, stage string) {
	if !l.limiter.Allow() {
		return
	}
	select {
	case l.progress <- Progress{JobID: jobID, Stage: stage}:
	default:
	}
}
