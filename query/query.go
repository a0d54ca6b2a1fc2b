// Package query is a typed query builder over the entity store. A query
// names one of the closed entity kinds and an expression tree of boolean
// combinators, field predicates and relation predicates; evaluation walks
// the store and the relation index directly. There is no query language and
// no reasoner: expressions are plain Go values built by the caller.
package query

import (
	"sort"
	"strings"

	"github.com/c360/warescene/errors"
	"github.com/c360/warescene/relindex"
	"github.com/c360/warescene/store"
	"github.com/c360/warescene/warehouse"
)

// Kind selects which entity table a query runs against.
type Kind string

const (
	KindLocations Kind = "locations"
	KindItems     Kind = "items"
	KindOrders    Kind = "orders"
)

// Env is the read-only evaluation environment.
type Env struct {
	Store *store.Store
	Index *relindex.Index
}

// Expr is one node of a query expression tree. Evaluation returns the
// matching id set drawn from the kind's universe.
type Expr interface {
	eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error)
}

// Query pairs an entity kind with an expression tree.
type Query struct {
	Kind Kind
	Expr Expr
}

// New builds a query. A nil expression matches the whole table.
func New(kind Kind, expr Expr) Query {
	return Query{Kind: kind, Expr: expr}
}

// Evaluate runs the query and returns matching ids in sorted order.
func (q Query) Evaluate(env Env) ([]string, error) {
	universe, err := universeFor(env, q.Kind)
	if err != nil {
		return nil, err
	}
	result := universe
	if q.Expr != nil {
		result, err = q.Expr.eval(env, q.Kind, universe)
		if err != nil {
			return nil, errors.WrapInvalid(err, "query", "Evaluate", "evaluate expression")
		}
	}
	ids := result.IDs()
	sort.Strings(ids)
	return ids, nil
}

func universeFor(env Env, kind Kind) (relindex.Set, error) {
	set := relindex.NewSet()
	switch kind {
	case KindLocations:
		for id := range env.Store.Locations() {
			set.Add(id)
		}
	case KindItems:
		for id := range env.Store.Items() {
			set.Add(id)
		}
	case KindOrders:
		for id := range env.Store.Orders() {
			set.Add(id)
		}
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "query", "Evaluate", "unknown entity kind "+string(kind))
	}
	return set, nil
}

// ---- boolean combinators ----

type andExpr struct{ exprs []Expr }

// And matches entities satisfying every sub-expression.
func And(exprs ...Expr) Expr { return andExpr{exprs: exprs} }

func (e andExpr) eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error) {
	result := universe
	for _, sub := range e.exprs {
		matched, err := sub.eval(env, kind, universe)
		if err != nil {
			return nil, err
		}
		next := relindex.NewSet()
		for id := range result {
			if matched.Has(id) {
				next.Add(id)
			}
		}
		result = next
	}
	return result, nil
}

type orExpr struct{ exprs []Expr }

// Or matches entities satisfying at least one sub-expression.
func Or(exprs ...Expr) Expr { return orExpr{exprs: exprs} }

func (e orExpr) eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error) {
	result := relindex.NewSet()
	for _, sub := range e.exprs {
		matched, err := sub.eval(env, kind, universe)
		if err != nil {
			return nil, err
		}
		for id := range matched {
			result.Add(id)
		}
	}
	return result, nil
}

type notExpr struct{ expr Expr }

// Not matches the kind's universe minus the sub-expression's matches.
func Not(expr Expr) Expr { return notExpr{expr: expr} }

func (e notExpr) eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error) {
	matched, err := e.expr.eval(env, kind, universe)
	if err != nil {
		return nil, err
	}
	result := relindex.NewSet()
	for id := range universe {
		if !matched.Has(id) {
			result.Add(id)
		}
	}
	return result, nil
}

// ---- field predicates ----

type fieldExpr struct {
	kind  Kind
	match func(env Env, id string) bool
}

func (e fieldExpr) eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error) {
	if e.kind != kind {
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "query", "Evaluate",
			"predicate over "+string(e.kind)+" used in a "+string(kind)+" query")
	}
	result := relindex.NewSet()
	for id := range universe {
		if e.match(env, id) {
			result.Add(id)
		}
	}
	return result, nil
}

// LocationWhere matches locations by an arbitrary predicate.
func LocationWhere(fn func(*warehouse.Location) bool) Expr {
	return fieldExpr{kind: KindLocations, match: func(env Env, id string) bool {
		loc, err := env.Store.Location(id)
		return err == nil && fn(loc)
	}}
}

// ItemWhere matches items by an arbitrary predicate.
func ItemWhere(fn func(*warehouse.Item) bool) Expr {
	return fieldExpr{kind: KindItems, match: func(env Env, id string) bool {
		item, err := env.Store.Item(id)
		return err == nil && fn(item)
	}}
}

// OrderWhere matches orders by an arbitrary predicate.
func OrderWhere(fn func(*warehouse.Order) bool) Expr {
	return fieldExpr{kind: KindOrders, match: func(env Env, id string) bool {
		order, err := env.Store.Order(id)
		return err == nil && fn(order)
	}}
}

// LocationTypeIs matches locations of the given normalized type.
func LocationTypeIs(t warehouse.LocationType) Expr {
	return LocationWhere(func(l *warehouse.Location) bool { return l.Type == t })
}

// LocationZoneIs matches locations in the given zone.
func LocationZoneIs(zone string) Expr {
	return LocationWhere(func(l *warehouse.Location) bool { return l.Zone == zone })
}

// LocationHasCoords matches locations with coordinates attached.
func LocationHasCoords() Expr {
	return LocationWhere(func(l *warehouse.Location) bool { return l.Coords != nil })
}

// ItemZoneIs matches items requiring the given zone.
func ItemZoneIs(zone string) Expr {
	return ItemWhere(func(i *warehouse.Item) bool { return i.RequiredZone == zone })
}

// IDContains matches any kind by case-insensitive id substring, mirroring
// the sidebar search box.
func IDContains(needle string) Expr {
	needle = strings.ToLower(needle)
	return idExpr{needle: needle}
}

type idExpr struct{ needle string }

func (e idExpr) eval(_ Env, _ Kind, universe relindex.Set) (relindex.Set, error) {
	result := relindex.NewSet()
	for id := range universe {
		if strings.Contains(strings.ToLower(id), e.needle) {
			result.Add(id)
		}
	}
	return result, nil
}

// OrderDirectionIs matches orders with the given direction.
func OrderDirectionIs(d warehouse.Direction) Expr {
	return OrderWhere(func(o *warehouse.Order) bool { return o.Direction == d })
}

// ---- relation predicates ----

type relationExpr struct {
	to  Kind
	ids []string
}

// RelatedTo matches entities of the query's kind related (through the
// relation index) to any of the given ids of another kind. Valid pairs are
// the six index joins; a query over the wrong kind fails.
func RelatedTo(to Kind, ids ...string) Expr { return relationExpr{to: to, ids: ids} }

func (e relationExpr) eval(env Env, kind Kind, universe relindex.Set) (relindex.Set, error) {
	var related relindex.Set
	switch {
	case kind == KindLocations && e.to == KindItems:
		related = env.Index.LocationsForItems(e.ids)
	case kind == KindLocations && e.to == KindOrders:
		related = env.Index.LocationsForOrders(e.ids)
	case kind == KindItems && e.to == KindLocations:
		related = env.Index.ItemsForLocations(e.ids)
	case kind == KindItems && e.to == KindOrders:
		related = env.Index.ItemsForOrders(e.ids)
	case kind == KindOrders && e.to == KindItems:
		related = env.Index.OrdersForItems(e.ids)
	case kind == KindOrders && e.to == KindLocations:
		related = env.Index.OrdersForLocations(e.ids)
	default:
		return nil, errors.WrapInvalid(errors.ErrInvalidData, "query", "Evaluate",
			"no relation from "+string(kind)+" to "+string(e.to))
	}

	// stale index entries may reference ids evicted by a reload; clamp to
	// the current universe
	result := relindex.NewSet()
	for id := range related {
		if universe.Has(id) {
			result.Add(id)
		}
	}
	return result, nil
}
