package frequency

import (
	"github.com/c360/warescene/selection"
	"github.com/c360/warescene/store"
	"github.com/c360/warescene/warehouse"
)

// OrderStrategy weights locations by order activity: for every selected
// order, each ordered item resolves to the locations storing it in the
// latest inventory snapshot, and the line's total quantity is added to each
// such location.
type OrderStrategy struct {
	orders map[string]*warehouse.Order

	// itemLocs maps item id to the location ids storing it at the latest
	// date. Duplicate balance rows keep their duplicate entries: each row
	// counts, contributions sum.
	itemLocs map[string][]string
}

// NewOrderStrategy creates an unprepared order-frequency strategy.
func NewOrderStrategy() *OrderStrategy {
	return &OrderStrategy{}
}

// Name implements Strategy.
func (st *OrderStrategy) Name() string { return "order_frequencies" }

// DisplayName implements Strategy.
func (st *OrderStrategy) DisplayName() string { return "&Order Histogram" }

// ReactsTo implements Strategy; only order selections matter.
func (st *OrderStrategy) ReactsTo(facet selection.Facet) bool {
	return facet == selection.FacetOrders
}

// Prepare implements Strategy.
func (st *OrderStrategy) Prepare(s *store.Store) {
	st.orders = s.Orders()
	st.itemLocs = make(map[string][]string)
	for locID, rows := range s.LatestSnapshot() {
		for _, inv := range rows {
			st.itemLocs[inv.ItemID] = append(st.itemLocs[inv.ItemID], locID)
		}
	}
}

// Contribute implements Strategy.
func (st *OrderStrategy) Contribute(orderID string, sign float64, add func(string, float64)) {
	order, ok := st.orders[orderID]
	if !ok {
		return
	}
	for _, line := range order.Items {
		for _, locID := range st.itemLocs[line.ItemID] {
			add(locID, sign*float64(line.TotalQty))
		}
	}
}
