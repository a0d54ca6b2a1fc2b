package frequency

import (
	"github.com/c360/warescene/selection"
	"github.com/c360/warescene/store"
	"github.com/c360/warescene/warehouse"
)

// ItemStrategy weights locations by stock of the selected items: every
// latest-snapshot balance row of a selected item adds its on-hand quantity
// to the row's location.
type ItemStrategy struct {
	// itemRows maps item id to its balance rows at the latest date.
	itemRows map[string][]*warehouse.Inventory
}

// NewItemStrategy creates an unprepared item-frequency strategy.
func NewItemStrategy() *ItemStrategy {
	return &ItemStrategy{}
}

// Name implements Strategy.
func (st *ItemStrategy) Name() string { return "item_frequencies" }

// DisplayName implements Strategy.
func (st *ItemStrategy) DisplayName() string { return "&Item Histogram" }

// ReactsTo implements Strategy; only item selections matter.
func (st *ItemStrategy) ReactsTo(facet selection.Facet) bool {
	return facet == selection.FacetItems
}

// Prepare implements Strategy.
func (st *ItemStrategy) Prepare(s *store.Store) {
	st.itemRows = make(map[string][]*warehouse.Inventory)
	for _, rows := range s.LatestSnapshot() {
		for _, inv := range rows {
			st.itemRows[inv.ItemID] = append(st.itemRows[inv.ItemID], inv)
		}
	}
}

// Contribute implements Strategy.
func (st *ItemStrategy) Contribute(itemID string, sign float64, add func(string, float64)) {
	for _, inv := range st.itemRows[itemID] {
		add(inv.LocationID, sign*float64(inv.OnhandQty))
	}
}
