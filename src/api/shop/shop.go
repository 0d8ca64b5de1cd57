// Package shop implements the boutique discovery engine: proximity
// filtering by haversine distance and round-robin selection across
// boutiques so a single large catalog cannot dominate a results page.
package shop

import (
	"context"
	"log"
)

// Candidate is the slice of a catalog item the engine works on. Location is
// the boutique's coordinates, nil when the boutique never supplied them.
type Candidate struct {
	ID         uint64
	Category   string
	BoutiqueID uint64
	Location   *GeoPoint
}

// Display is the boutique metadata attached to results.
type Display struct {
	Name    string
	LogoURL string
}

// Result is one selected item plus its boutique decoration. DistanceMiles
// is nil when the request carried no user location.
type Result struct {
	Item            Candidate
	BoutiqueName    string
	BoutiqueLogoURL string
	DistanceMiles   *float64
}

// ItemSource fetches active catalog candidates, newest first, optionally
// restricted to one category.
type ItemSource interface {
	FetchActiveItems(ctx context.Context, category string) ([]Candidate, error)
}

// BoutiqueDirectory resolves display metadata for a boutique.
type BoutiqueDirectory interface {
	ResolveDisplay(ctx context.Context, boutiqueID uint64) (Display, error)
}

type Service struct {
	items     ItemSource
	boutiques BoutiqueDirectory
}

func NewService(items ItemSource, boutiques BoutiqueDirectory) Service {
	return Service{items: items, boutiques: boutiques}
}

// GetShopItems returns up to limit active items selected round-robin across
// boutiques, restricted to radiusMiles of userLoc when a location is given.
// The returned float64 echoes the radius actually applied. An empty result
// is a normal outcome, never an error.
//
// Callers validate the inputs: radiusMiles in (0, 10000], limit in [1, 200],
// and userLoc either fully present or nil (a lone latitude never gets here).
func (s Service) GetShopItems(ctx context.Context, category string, radiusMiles float64, userLoc *GeoPoint, limit int) ([]Result, float64, error) {
	candidates, err := s.items.FetchActiveItems(ctx, category)
	if err != nil {
		return nil, radiusMiles, err
	}

	var results []Result
	if userLoc != nil {
		results = filterByProximity(candidates, *userLoc, radiusMiles)
	} else {
		results = make([]Result, 0, len(candidates))
		for _, c := range candidates {
			results = append(results, Result{Item: c})
		}
	}

	groups := groupByBoutique(results)
	selected := roundRobinSelect(groups, limit)

	// Resolve each distinct boutique's display metadata once.
	displays := make(map[uint64]Display)
	for i := range selected {
		id := selected[i].Item.BoutiqueID
		d, ok := displays[id]
		if !ok {
			d, err = s.boutiques.ResolveDisplay(ctx, id)
			if err != nil {
				return nil, radiusMiles, err
			}
			displays[id] = d
		}
		selected[i].BoutiqueName = d.Name
		selected[i].BoutiqueLogoURL = d.LogoURL
	}

	log.Printf("shop: %d candidates, selected %d from %d boutiques (radius %.1f mi)",
		len(results), len(selected), len(groups), radiusMiles)

	return selected, radiusMiles, nil
}

// filterByProximity keeps candidates whose boutique sits within radiusMiles
// of the user (inclusive boundary), computing the distance for each. Items
// without a resolvable boutique location are dropped: their distance cannot
// be computed, so no radius admits them. Input order is preserved.
func filterByProximity(candidates []Candidate, userLoc GeoPoint, radiusMiles float64) []Result {
	kept := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		if c.Location == nil {
			continue
		}
		d := HaversineDistance(userLoc.Latitude, userLoc.Longitude, c.Location.Latitude, c.Location.Longitude)
		if d <= radiusMiles {
			dist := d
			kept = append(kept, Result{Item: c, DistanceMiles: &dist})
		}
	}
	return kept
}
