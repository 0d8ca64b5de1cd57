package shop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	items []Candidate
	err   error
}

func (s stubSource) FetchActiveItems(ctx context.Context, category string) ([]Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	if category == "" {
		return s.items, nil
	}
	var out []Candidate
	for _, c := range s.items {
		if c.Category == category {
			out = append(out, c)
		}
	}
	return out, nil
}

type stubDirectory struct {
	displays map[uint64]Display
	calls    int
}

func (d *stubDirectory) ResolveDisplay(ctx context.Context, boutiqueID uint64) (Display, error) {
	d.calls++
	return d.displays[boutiqueID], nil
}

func loc(lat, lon float64) *GeoPoint {
	return &GeoPoint{Latitude: lat, Longitude: lon}
}

func TestFilterByProximityInclusiveBoundary(t *testing.T) {
	user := GeoPoint{Latitude: 40, Longitude: -74}
	at := loc(40, -74)
	candidates := []Candidate{{ID: 1, BoutiqueID: 1, Location: at}}

	d := HaversineDistance(40, -74, 40, -74)
	kept := filterByProximity(candidates, user, d)
	require.Len(t, kept, 1)
	assert.Equal(t, 0.0, *kept[0].DistanceMiles)

	// Just outside the radius is excluded.
	far := []Candidate{{ID: 2, BoutiqueID: 1, Location: loc(41, -74)}}
	kept = filterByProximity(far, user, 50)
	assert.Empty(t, kept)
}

func TestFilterByProximityDropsUnlocatedBoutiques(t *testing.T) {
	user := GeoPoint{Latitude: 40, Longitude: -74}
	candidates := []Candidate{
		{ID: 1, BoutiqueID: 1, Location: loc(40.01, -74)},
		{ID: 2, BoutiqueID: 2, Location: nil},
		{ID: 3, BoutiqueID: 3, Location: loc(40.02, -74)},
	}

	kept := filterByProximity(candidates, user, 100)
	require.Len(t, kept, 2)
	assert.Equal(t, uint64(1), kept[0].Item.ID)
	assert.Equal(t, uint64(3), kept[1].Item.ID)
}

func TestGetShopItemsNoLocationSkipsFiltering(t *testing.T) {
	src := stubSource{items: []Candidate{
		{ID: 1, BoutiqueID: 1, Location: nil},
		{ID: 2, BoutiqueID: 2, Location: loc(40, -74)},
	}}
	dir := &stubDirectory{displays: map[uint64]Display{}}

	got, radius, err := NewService(src, dir).GetShopItems(context.Background(), "", 100, nil, 50)
	require.NoError(t, err)
	assert.Equal(t, 100.0, radius)
	require.Len(t, got, 2)
	assert.Nil(t, got[0].DistanceMiles)
}

// Two boutiques about 69 miles apart with a 50 mile radius from the first:
// only the nearby boutique's items survive, in fetch order, even though the
// request could hold more.
func TestGetShopItemsRadiusExcludesFarBoutique(t *testing.T) {
	near := loc(40, -74)
	far := loc(41, -74)
	src := stubSource{items: []Candidate{
		{ID: 1, BoutiqueID: 1, Location: near},
		{ID: 2, BoutiqueID: 1, Location: near},
		{ID: 3, BoutiqueID: 2, Location: far},
		{ID: 4, BoutiqueID: 1, Location: near},
		{ID: 5, BoutiqueID: 2, Location: far},
		{ID: 6, BoutiqueID: 1, Location: near},
	}}
	dir := &stubDirectory{displays: map[uint64]Display{
		1: {Name: "Near & Co", LogoURL: "https://cdn.example.com/near.png"},
	}}

	user := &GeoPoint{Latitude: 40, Longitude: -74}
	got, radius, err := NewService(src, dir).GetShopItems(context.Background(), "", 50, user, 4)
	require.NoError(t, err)
	assert.Equal(t, 50.0, radius)

	require.Len(t, got, 4)
	assert.Equal(t, []uint64{1, 2, 4, 6}, selectedIDs(got))
	for _, r := range got {
		assert.Equal(t, "Near & Co", r.BoutiqueName)
		require.NotNil(t, r.DistanceMiles)
		assert.InDelta(t, 0, *r.DistanceMiles, 0.001)
	}
	// One boutique in the result means one directory lookup.
	assert.Equal(t, 1, dir.calls)
}

func TestGetShopItemsInterleavesBoutiques(t *testing.T) {
	src := stubSource{items: []Candidate{
		{ID: 1, BoutiqueID: 10},
		{ID: 2, BoutiqueID: 10},
		{ID: 3, BoutiqueID: 20},
		{ID: 4, BoutiqueID: 30},
	}}
	dir := &stubDirectory{displays: map[uint64]Display{
		10: {Name: "A"}, 20: {Name: "B"}, 30: {Name: "C"},
	}}

	got, _, err := NewService(src, dir).GetShopItems(context.Background(), "", 100, nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 3, 4}, selectedIDs(got))
	assert.Equal(t, []string{"A", "B", "C"}, []string{got[0].BoutiqueName, got[1].BoutiqueName, got[2].BoutiqueName})
}

func TestGetShopItemsCategoryFilter(t *testing.T) {
	src := stubSource{items: []Candidate{
		{ID: 1, BoutiqueID: 1, Category: "dresses"},
		{ID: 2, BoutiqueID: 1, Category: "shoes"},
	}}
	dir := &stubDirectory{displays: map[uint64]Display{}}

	got, _, err := NewService(src, dir).GetShopItems(context.Background(), "shoes", 100, nil, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, uint64(2), got[0].Item.ID)
}

func TestGetShopItemsEmptyResultIsNotAnError(t *testing.T) {
	dir := &stubDirectory{displays: map[uint64]Display{}}
	got, _, err := NewService(stubSource{}, dir).GetShopItems(context.Background(), "", 100, nil, 50)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetShopItemsSourceErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	dir := &stubDirectory{}
	_, _, err := NewService(stubSource{err: boom}, dir).GetShopItems(context.Background(), "", 100, nil, 50)
	assert.ErrorIs(t, err, boom)
}
