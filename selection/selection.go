// Package selection tracks which entity ids are checked in the three
// independent facets of the UI: locations, items and orders. Every mutation
// emits a change event describing the minimal delta, so the frequency engine
// can update incrementally instead of rescanning on each checkbox toggle.
// Filtering views are pure projections and never mutate the sets.
package selection

import (
	"strings"
	"sync"
)

// Facet is one of the three independent selection dimensions.
type Facet string

const (
	FacetLocations Facet = "locations"
	FacetItems     Facet = "items"
	FacetOrders    Facet = "orders"
)

// Facets lists all facets in a stable order.
func Facets() []Facet {
	return []Facet{FacetLocations, FacetItems, FacetOrders}
}

// Event describes one selection change. IsClear means the facet's previous
// selection was dropped before IDs were applied; IsAdd tells whether IDs
// were checked or unchecked. IDs carries only ids whose state actually
// changed (plus the replacement set on a clearing Set call).
type Event struct {
	Facet   Facet
	IsClear bool
	IsAdd   bool
	IDs     []string
}

// Subscriber receives selection change events. Subscribers are invoked
// synchronously on the goroutine performing the mutation.
type Subscriber func(Event)

// State holds the three checked-id sets.
type State struct {
	mu   sync.RWMutex
	sets map[Facet]map[string]struct{}
	subs []Subscriber
}

// New creates an empty selection state.
func New() *State {
	sets := make(map[Facet]map[string]struct{}, 3)
	for _, f := range Facets() {
		sets[f] = make(map[string]struct{})
	}
	return &State{sets: sets}
}

// Subscribe registers a change subscriber. Not safe to call concurrently
// with mutations; wire subscribers up during assembly.
func (st *State) Subscribe(fn Subscriber) {
	st.subs = append(st.subs, fn)
}

func (st *State) emit(ev Event) {
	for _, fn := range st.subs {
		fn(ev)
	}
}

// Set checks the given ids in a facet. When additive is false the facet's
// previous selection is cleared first and the event carries IsClear. When
// additive, only ids not already checked appear in the event; a call that
// changes nothing emits nothing.
func (st *State) Set(facet Facet, ids []string, additive bool) {
	st.mu.Lock()
	set := st.sets[facet]

	if !additive {
		st.sets[facet] = make(map[string]struct{}, len(ids))
		for _, id := range ids {
			st.sets[facet][id] = struct{}{}
		}
		st.mu.Unlock()
		st.emit(Event{Facet: facet, IsClear: true, IsAdd: true, IDs: ids})
		return
	}

	added := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := set[id]; !ok {
			set[id] = struct{}{}
			added = append(added, id)
		}
	}
	st.mu.Unlock()

	if len(added) > 0 {
		st.emit(Event{Facet: facet, IsAdd: true, IDs: added})
	}
}

// Toggle checks or unchecks a single id. Toggling to the state the id is
// already in changes nothing and emits nothing.
func (st *State) Toggle(facet Facet, id string, on bool) {
	st.mu.Lock()
	set := st.sets[facet]
	_, checked := set[id]

	if on == checked {
		st.mu.Unlock()
		return
	}
	if on {
		set[id] = struct{}{}
	} else {
		delete(set, id)
	}
	st.mu.Unlock()

	st.emit(Event{Facet: facet, IsAdd: on, IDs: []string{id}})
}

// Clear unchecks everything in a facet.
func (st *State) Clear(facet Facet) {
	st.mu.Lock()
	st.sets[facet] = make(map[string]struct{})
	st.mu.Unlock()

	st.emit(Event{Facet: facet, IsClear: true})
}

// Checked returns the checked ids of a facet, in no particular order.
func (st *State) Checked(facet Facet) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]string, 0, len(st.sets[facet]))
	for id := range st.sets[facet] {
		out = append(out, id)
	}
	return out
}

// IsChecked reports whether an id is checked in a facet.
func (st *State) IsChecked(facet Facet, id string) bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	_, ok := st.sets[facet][id]
	return ok
}

// Count returns the number of checked ids in a facet.
func (st *State) Count(facet Facet) int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sets[facet])
}

// FilterMode selects which subset of a facet's universe a view shows.
type FilterMode int

const (
	// FilterAll shows every id.
	FilterAll FilterMode = iota
	// FilterChecked shows only checked ids.
	FilterChecked
	// FilterUnchecked shows only unchecked ids.
	FilterUnchecked
)

// Filter projects a facet's universe of ids through a mode and an optional
// case-insensitive substring search. It reads the selection but never
// mutates it.
func (st *State) Filter(facet Facet, universe []string, mode FilterMode, search string) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	set := st.sets[facet]
	search = strings.ToLower(search)

	out := make([]string, 0, len(universe))
	for _, id := range universe {
		_, checked := set[id]
		switch mode {
		case FilterChecked:
			if !checked {
				continue
			}
		case FilterUnchecked:
			if checked {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(id), search) {
			continue
		}
		out = append(out, id)
	}
	return out
}
