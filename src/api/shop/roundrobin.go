package shop

// boutiqueGroup is one bucket of the ordered grouping used by round-robin
// selection. Groups are held in a slice, not a map, so the boutique
// iteration order is exactly first-seen order of the scanned items.
type boutiqueGroup struct {
	boutiqueID uint64
	items      []Result
}

// groupByBoutique partitions items into per-boutique buckets in a single
// linear scan. Bucket order is the order each boutique first appears, which
// follows the upstream fetch order (newest item first).
func groupByBoutique(items []Result) []boutiqueGroup {
	groups := make([]boutiqueGroup, 0)
	index := make(map[uint64]int)
	for _, it := range items {
		id := it.Item.BoutiqueID
		gi, ok := index[id]
		if !ok {
			gi = len(groups)
			index[id] = gi
			groups = append(groups, boutiqueGroup{boutiqueID: id})
		}
		groups[gi].items = append(groups[gi].items, it)
	}
	return groups
}

// roundRobinSelect interleaves the groups one item per boutique per round,
// so no boutique places its second item before every boutique with stock has
// placed its first. Output length is min(limit, total items).
func roundRobinSelect(groups []boutiqueGroup, limit int) []Result {
	if limit <= 0 || len(groups) == 0 {
		return nil
	}

	maxRounds := 0
	for _, g := range groups {
		if len(g.items) > maxRounds {
			maxRounds = len(g.items)
		}
	}

	selected := make([]Result, 0, limit)
	for round := 0; round < maxRounds; round++ {
		if len(selected) >= limit {
			break
		}
		for _, g := range groups {
			if len(selected) >= limit {
				break
			}
			if round < len(g.items) {
				selected = append(selected, g.items[round])
			}
		}
	}

	if len(selected) > limit {
		selected = selected[:limit]
	}
	return selected
}
