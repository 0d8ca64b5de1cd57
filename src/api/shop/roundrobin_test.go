package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkResults(pairs ...[2]uint64) []Result {
	out := make([]Result, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, Result{Item: Candidate{ID: p[0], BoutiqueID: p[1]}})
	}
	return out
}

func selectedIDs(results []Result) []uint64 {
	ids := make([]uint64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.Item.ID)
	}
	return ids
}

func TestGroupByBoutiquePreservesFirstSeenOrder(t *testing.T) {
	items := mkResults([2]uint64{10, 2}, [2]uint64{11, 1}, [2]uint64{12, 2}, [2]uint64{13, 3})

	groups := groupByBoutique(items)
	require.Len(t, groups, 3)
	assert.Equal(t, uint64(2), groups[0].boutiqueID)
	assert.Equal(t, uint64(1), groups[1].boutiqueID)
	assert.Equal(t, uint64(3), groups[2].boutiqueID)
	assert.Len(t, groups[0].items, 2)
}

func TestRoundRobinOneItemPerBoutiquePerRound(t *testing.T) {
	// Three boutiques with multiple items each: the first round must take
	// exactly one item from each before any boutique repeats.
	items := mkResults(
		[2]uint64{1, 100}, [2]uint64{2, 100}, [2]uint64{3, 100},
		[2]uint64{4, 200}, [2]uint64{5, 200},
		[2]uint64{6, 300},
	)

	got := roundRobinSelect(groupByBoutique(items), 3)
	assert.Equal(t, []uint64{1, 4, 6}, selectedIDs(got))
}

func TestRoundRobinContinuesAfterExhaustedBoutique(t *testing.T) {
	items := mkResults(
		[2]uint64{1, 100}, [2]uint64{2, 100},
		[2]uint64{3, 200},
	)

	got := roundRobinSelect(groupByBoutique(items), 3)
	assert.Equal(t, []uint64{1, 3, 2}, selectedIDs(got))
}

func TestRoundRobinStopsAtLimit(t *testing.T) {
	items := mkResults(
		[2]uint64{1, 100}, [2]uint64{2, 100}, [2]uint64{3, 100},
		[2]uint64{4, 200}, [2]uint64{5, 200}, [2]uint64{6, 200},
	)

	got := roundRobinSelect(groupByBoutique(items), 3)
	assert.Equal(t, []uint64{1, 4, 2}, selectedIDs(got))
}

func TestRoundRobinFewerItemsThanLimit(t *testing.T) {
	items := mkResults([2]uint64{1, 100}, [2]uint64{2, 200})

	got := roundRobinSelect(groupByBoutique(items), 50)
	assert.Len(t, got, 2)
}

func TestRoundRobinSingleBoutiqueKeepsOrder(t *testing.T) {
	items := mkResults([2]uint64{1, 100}, [2]uint64{2, 100}, [2]uint64{3, 100})

	got := roundRobinSelect(groupByBoutique(items), 10)
	assert.Equal(t, []uint64{1, 2, 3}, selectedIDs(got))
}

func TestRoundRobinEmptyAndZeroLimit(t *testing.T) {
	assert.Nil(t, roundRobinSelect(nil, 5))
	assert.Nil(t, roundRobinSelect(groupByBoutique(mkResults([2]uint64{1, 1})), 0))
}
