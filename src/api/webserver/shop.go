package webserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/shop"
	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Shop struct {
	db     *gorm.DB
	engine shop.Service
}

func NewShop(db *gorm.DB) Shop {
	src := catalogSource{db: db}
	dir := boutiqueDirectory{db: db}
	return Shop{db: db, engine: shop.NewService(src, dir)}
}

// catalogSource feeds the discovery engine: active items newest first, each
// joined to its boutique's coordinates.
type catalogSource struct{ db *gorm.DB }

func (s catalogSource) FetchActiveItems(ctx context.Context, category string) ([]shop.Candidate, error) {
	type row struct {
		ID         uint64
		Category   string
		BoutiqueID uint64
		Latitude   *float64
		Longitude  *float64
	}

	q := s.db.WithContext(ctx).Table("catalog_items").
		Select("catalog_items.id, catalog_items.category, catalog_items.boutique_id, boutique_profiles.latitude, boutique_profiles.longitude").
		Joins("LEFT JOIN boutique_profiles ON boutique_profiles.boutique_id = catalog_items.boutique_id").
		Where("catalog_items.status = ?", types.ItemStatusActive).
		Order("catalog_items.created_at DESC")
	if category != "" {
		q = q.Where("catalog_items.category = ?", category)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	candidates := make([]shop.Candidate, 0, len(rows))
	for _, r := range rows {
		c := shop.Candidate{ID: r.ID, Category: r.Category, BoutiqueID: r.BoutiqueID}
		if r.Latitude != nil && r.Longitude != nil {
			c.Location = &shop.GeoPoint{Latitude: *r.Latitude, Longitude: *r.Longitude}
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

type boutiqueDirectory struct{ db *gorm.DB }

func (d boutiqueDirectory) ResolveDisplay(ctx context.Context, boutiqueID uint64) (shop.Display, error) {
	var profile types.BoutiqueProfile
	err := d.db.WithContext(ctx).First(&profile, "boutique_id = ?", boutiqueID).Error
	if err == gorm.ErrRecordNotFound {
		return shop.Display{}, nil
	} else if err != nil {
		return shop.Display{}, err
	}
	return shop.Display{Name: profile.BusinessName, LogoURL: profile.LogoURL}, nil
}

type shopItemResponse struct {
	types.CatalogItem
	BoutiqueName          string   `json:"boutique_name,omitempty"`
	BoutiqueLogoURL       string   `json:"boutique_logo_url,omitempty"`
	BoutiqueDistanceMiles *float64 `json:"boutique_distance_miles,omitempty"`
}

// List handles GET /shop: distance-filtered, round-robin-diverse catalog
// browsing. Latitude and longitude must come together or not at all.
func (h Shop) List(c *gin.Context) {
	category := c.Query("category")

	radius := 100.0
	if raw := c.Query("radius_miles"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 || v > 10000 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "radius_miles must be in (0, 10000]"})
			return
		}
		radius = v
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 200 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "limit must be in [1, 200]"})
			return
		}
		limit = v
	}

	latRaw, lonRaw := c.Query("latitude"), c.Query("longitude")
	if (latRaw == "") != (lonRaw == "") {
		c.JSON(http.StatusBadRequest, gin.H{"err": "latitude and longitude must be provided together, or both omitted"})
		return
	}

	var userLoc *shop.GeoPoint
	if latRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil || lat < -90 || lat > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "latitude must be in [-90, 90]"})
			return
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil || lon < -180 || lon > 180 {
			c.JSON(http.StatusBadRequest, gin.H{"err": "longitude must be in [-180, 180]"})
			return
		}
		userLoc = &shop.GeoPoint{Latitude: lat, Longitude: lon}
	}

	selected, radiusUsed, err := h.engine.GetShopItems(c, category, radius, userLoc, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	// One fetch for the selected items' full rows, reassembled in engine order.
	ids := make([]uint64, 0, len(selected))
	for _, r := range selected {
		ids = append(ids, r.Item.ID)
	}
	byID := make(map[uint64]types.CatalogItem, len(ids))
	if len(ids) > 0 {
		var items []types.CatalogItem
		if err := h.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
			return
		}
		for _, it := range items {
			byID[it.ID] = it
		}
	}

	out := make([]shopItemResponse, 0, len(selected))
	for _, r := range selected {
		item, ok := byID[r.Item.ID]
		if !ok {
			continue
		}
		out = append(out, shopItemResponse{
			CatalogItem:           item,
			BoutiqueName:          r.BoutiqueName,
			BoutiqueLogoURL:       r.BoutiqueLogoURL,
			BoutiqueDistanceMiles: r.DistanceMiles,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        out,
		"total":        len(out),
		"radius_miles": radiusUsed,
	})
}
