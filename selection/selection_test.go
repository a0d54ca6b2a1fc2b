package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectEvents(st *State) *[]Event {
	events := &[]Event{}
	st.Subscribe(func(ev Event) { *events = append(*events, ev) })
	return events
}

func TestSet_Replacing(t *testing.T) {
	st := New()
	events := collectEvents(st)

	st.Set(FacetItems, []string{"I1", "I2"}, false)
	assert.ElementsMatch(t, []string{"I1", "I2"}, st.Checked(FacetItems))

	st.Set(FacetItems, []string{"I3"}, false)
	assert.ElementsMatch(t, []string{"I3"}, st.Checked(FacetItems))

	require.Len(t, *events, 2)
	assert.True(t, (*events)[1].IsClear)
	assert.True(t, (*events)[1].IsAdd)
	assert.Equal(t, []string{"I3"}, (*events)[1].IDs)
}

func TestSet_Additive(t *testing.T) {
	st := New()
	events := collectEvents(st)

	st.Set(FacetItems, []string{"I1"}, false)
	st.Set(FacetItems, []string{"I1", "I2"}, true)

	assert.ElementsMatch(t, []string{"I1", "I2"}, st.Checked(FacetItems))
	require.Len(t, *events, 2)
	assert.False(t, (*events)[1].IsClear)
	assert.Equal(t, []string{"I2"}, (*events)[1].IDs, "only genuinely new ids appear in the delta")

	// nothing new, nothing emitted
	st.Set(FacetItems, []string{"I1"}, true)
	assert.Len(t, *events, 2)
}

func TestToggle(t *testing.T) {
	st := New()
	events := collectEvents(st)

	st.Toggle(FacetOrders, "O1", true)
	assert.True(t, st.IsChecked(FacetOrders, "O1"))

	st.Toggle(FacetOrders, "O1", true) // no-op
	st.Toggle(FacetOrders, "O1", false)
	assert.False(t, st.IsChecked(FacetOrders, "O1"))

	require.Len(t, *events, 2)
	assert.True(t, (*events)[0].IsAdd)
	assert.False(t, (*events)[1].IsAdd)
	assert.Equal(t, []string{"O1"}, (*events)[1].IDs)
}

func TestClear(t *testing.T) {
	st := New()
	events := collectEvents(st)

	st.Set(FacetLocations, []string{"L1", "L2"}, false)
	st.Clear(FacetLocations)

	assert.Empty(t, st.Checked(FacetLocations))
	assert.Zero(t, st.Count(FacetLocations))
	require.Len(t, *events, 2)
	assert.True(t, (*events)[1].IsClear)
	assert.Empty(t, (*events)[1].IDs)
}

func TestFacetsIndependent(t *testing.T) {
	st := New()
	st.Set(FacetLocations, []string{"L1"}, false)
	st.Set(FacetItems, []string{"I1"}, false)
	st.Clear(FacetLocations)

	assert.Empty(t, st.Checked(FacetLocations))
	assert.ElementsMatch(t, []string{"I1"}, st.Checked(FacetItems))
}

func TestFilter(t *testing.T) {
	st := New()
	st.Set(FacetItems, []string{"bolt-m8", "nut-m8"}, false)
	universe := []string{"bolt-m8", "nut-m8", "washer-m8", "screw-m4"}

	tests := []struct {
		name     string
		mode     FilterMode
		search   string
		expected []string
	}{
		{"all", FilterAll, "", universe},
		{"checked", FilterChecked, "", []string{"bolt-m8", "nut-m8"}},
		{"unchecked", FilterUnchecked, "", []string{"washer-m8", "screw-m4"}},
		{"search all", FilterAll, "M8", []string{"bolt-m8", "nut-m8", "washer-m8"}},
		{"search checked", FilterChecked, "bolt", []string{"bolt-m8"}},
		{"search no match", FilterAll, "zzz", []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := st.Filter(FacetItems, universe, test.mode, test.search)
			assert.Equal(t, test.expected, got)
		})
	}

	// projection must not mutate the selection
	assert.Equal(t, 2, st.Count(FacetItems))
}
