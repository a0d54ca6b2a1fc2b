package frequency

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/metric"
	"github.com/c360/warescene/selection"
	"github.com/c360/warescene/store"
	"github.com/c360/warescene/warehouse"
)

// Engine owns the registered strategies and keeps location frequencies in
// sync with the selection state. At most one strategy is active; switching
// strategies always forces a full recompute because the accumulated
// frequencies are strategy-specific and deltas do not port across.
type Engine struct {
	mu      sync.Mutex
	logger  *slog.Logger
	metrics *metric.Metrics

	store     *store.Store
	sel       *selection.State
	locations map[string]*warehouse.Location

	strategies map[string]Strategy
	order      []string // registration order for stable menus
	active     Strategy
}

// Option configures the engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics records recompute durations and delta counts.
func WithMetrics(m *metric.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine creates an engine over the store and selection state and
// subscribes it to selection changes. Deltas are applied synchronously on
// the goroutine firing the selection event.
func NewEngine(s *store.Store, sel *selection.State, opts ...Option) *Engine {
	e := &Engine{
		logger:     slog.Default(),
		store:      s,
		sel:        sel,
		locations:  s.Locations(),
		strategies: make(map[string]Strategy),
	}
	for _, opt := range opts {
		opt(e)
	}
	sel.Subscribe(e.handleSelection)
	return e
}

// Register adds a strategy under its name.
func (e *Engine) Register(st Strategy) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.strategies[st.Name()]; exists {
		return errors.WrapInvalid(
			fmt.Errorf("strategy %q already registered", st.Name()),
			"Engine", "Register", "register strategy")
	}
	e.strategies[st.Name()] = st
	e.order = append(e.order, st.Name())
	return nil
}

// Strategies lists registered strategies with their display names, in
// registration order, for the statistics menu.
func (e *Engine) Strategies() []Info {
	e.mu.Lock()
	defer e.mu.Unlock()

	infos := make([]Info, 0, len(e.order))
	for _, name := range e.order {
		st := e.strategies[name]
		infos = append(infos, Info{
			Name:        name,
			DisplayName: st.DisplayName(),
			Active:      e.active == st,
		})
	}
	return infos
}

// ActiveStrategy returns the name of the active strategy, empty when heat
// display is off.
func (e *Engine) ActiveStrategy() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active == nil {
		return ""
	}
	return e.active.Name()
}

// Activate switches the active strategy: frequencies are cleared, the
// strategy prepares its snapshot state and a full recompute runs over the
// current selection. An empty name deactivates heat computation entirely,
// leaving all frequencies 0.
func (e *Engine) Activate(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if name == "" {
		e.active = nil
		e.clearLocked()
		return nil
	}

	st, ok := e.strategies[name]
	if !ok {
		return fmt.Errorf("strategy %q: %w", name, errors.ErrNotFound)
	}
	e.active = st
	st.Prepare(e.store)
	e.recomputeLocked()
	return nil
}

// Refresh re-reads the store after a bulk reload: location references and
// the active strategy's snapshot state are rebuilt, then a full recompute
// runs over the current selection.
func (e *Engine) Refresh() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.locations = e.store.Locations()
	if e.active == nil {
		e.clearLocked()
		return
	}
	e.active.Prepare(e.store)
	e.recomputeLocked()
}

// FullRecompute clears all frequencies and recomputes them from scratch
// over the current selection.
func (e *Engine) FullRecompute() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.recomputeLocked()
}

// ApplyDelta incrementally applies a selection change: contributions of
// added ids are added, of removed ids subtracted. Facets the active
// strategy does not react to are a cheap no-op.
func (e *Engine) ApplyDelta(facet selection.Facet, added, removed []string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil || !e.active.ReactsTo(facet) {
		return
	}
	for _, id := range added {
		e.active.Contribute(id, 1, e.addLocked)
	}
	for _, id := range removed {
		e.active.Contribute(id, -1, e.addLocked)
	}
	if e.metrics != nil {
		e.metrics.RecordDelta(e.active.Name(), string(facet))
	}
}

// MaxHeat returns the maximum frequency across all locations, 0 when no
// location carries heat.
func (e *Engine) MaxHeat() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	var max float64
	for _, loc := range e.locations {
		if loc.Freq > max {
			max = loc.Freq
		}
	}
	return max
}

// handleSelection adapts selection events onto delta application. A clear
// event wipes the facet's accumulated contributions, which for a
// single-facet strategy means wiping all frequencies and re-adding the
// replacement ids.
func (e *Engine) handleSelection(ev selection.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil || !e.active.ReactsTo(ev.Facet) {
		return
	}

	if ev.IsClear {
		e.clearLocked()
	}
	sign := float64(1)
	if !ev.IsAdd {
		sign = -1
	}
	for _, id := range ev.IDs {
		e.active.Contribute(id, sign, e.addLocked)
	}
	if e.metrics != nil {
		e.metrics.RecordDelta(e.active.Name(), string(ev.Facet))
	}
}

func (e *Engine) addLocked(locationID string, amount float64) {
	if loc, ok := e.locations[locationID]; ok {
		loc.Freq += amount
	}
}

func (e *Engine) clearLocked() {
	for _, loc := range e.locations {
		loc.Freq = 0
	}
}

func (e *Engine) recomputeLocked() {
	start := time.Now()
	e.clearLocked()
	if e.active == nil {
		return
	}

	for _, facet := range selection.Facets() {
		if !e.active.ReactsTo(facet) {
			continue
		}
		for _, id := range e.sel.Checked(facet) {
			e.active.Contribute(id, 1, e.addLocked)
		}
	}

	if e.metrics != nil {
		e.metrics.RecordRecompute(e.active.Name(), time.Since(start))
	}
	e.logger.Debug("frequencies recomputed",
		"strategy", e.active.Name(),
		"duration", time.Since(start))
}
