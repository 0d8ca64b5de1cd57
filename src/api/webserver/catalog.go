package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Catalog struct{ db *gorm.DB }

func NewCatalog(db *gorm.DB) Catalog { return Catalog{db: db} }

func validItemStatus(s string) bool {
	switch s {
	case types.ItemStatusActive, types.ItemStatusInactive, types.ItemStatusOutOfStock, types.ItemStatusDiscontinued:
		return true
	}
	return false
}

// ownBoutique resolves the caller's boutique or writes the error response.
func ownBoutique(c *gin.Context, db *gorm.DB) (types.Boutique, bool) {
	var boutique types.Boutique
	if err := db.First(&boutique, "owner_id = ?", c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"err": "boutique onboarding required"})
		return boutique, false
	}
	return boutique, true
}

type catalogItemRequest struct {
	Name          string `json:"name" binding:"required,min=1,max=200"`
	Category      string `json:"category" binding:"required,min=1,max=50"`
	Brand         string `json:"brand" binding:"max=100"`
	Price         int64  `json:"price" binding:"required,gt=0"`
	DiscountPrice *int64 `json:"discountPrice" binding:"omitempty,gt=0"`
	CostPrice     *int64 `json:"costPrice" binding:"omitempty,gt=0"`
	ImageURL      string `json:"imageUrl" binding:"required,url,max=500"`
	Description   string `json:"description" binding:"max=5000"`
	Stock         int    `json:"stock" binding:"gte=0"`
	Status        string `json:"status" binding:"omitempty"`
	Tags          string `json:"tags" binding:"max=500"`
	Colors        string `json:"colors" binding:"max=300"`
}

func (h Catalog) Create(c *gin.Context) {
	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.Status == "" {
		req.Status = types.ItemStatusActive
	}
	if !validItemStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid status"})
		return
	}

	boutique, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	item := types.CatalogItem{
		BoutiqueID:    boutique.ID,
		Name:          req.Name,
		Category:      req.Category,
		Brand:         req.Brand,
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		CostPrice:     req.CostPrice,
		ImageURL:      req.ImageURL,
		Description:   req.Description,
		Stock:         req.Stock,
		Status:        req.Status,
		Tags:          req.Tags,
		Colors:        req.Colors,
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("catalog: boutique %d created item %d (%s)", boutique.ID, item.ID, item.Name)
	c.JSON(http.StatusCreated, item)
}

func (h Catalog) ListMine(c *gin.Context) {
	boutique, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	q := h.db.Where("boutique_id = ?", boutique.ID)
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}
	if st := c.Query("status"); st != "" {
		if !validItemStatus(st) {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid status"})
			return
		}
		q = q.Where("status = ?", st)
	}

	var items []types.CatalogItem
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

// Get is public and counts a product view.
func (h Catalog) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid item id"})
		return
	}

	var item types.CatalogItem
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "item not found"})
		return
	}

	h.db.Model(&item).UpdateColumn("views", gorm.Expr("views + 1"))
	item.Views++

	c.JSON(http.StatusOK, item)
}

func (h Catalog) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid item id"})
		return
	}

	var req catalogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.Status != "" && !validItemStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid status"})
		return
	}

	boutique, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	var item types.CatalogItem
	if err := h.db.First(&item, "id = ? AND boutique_id = ?", id, boutique.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "item not found"})
		return
	}

	item.Name = req.Name
	item.Category = req.Category
	item.Brand = req.Brand
	item.Price = req.Price
	item.DiscountPrice = req.DiscountPrice
	item.CostPrice = req.CostPrice
	item.ImageURL = req.ImageURL
	item.Description = req.Description
	item.Stock = req.Stock
	if req.Status != "" {
		item.Status = req.Status
	}
	item.Tags = req.Tags
	item.Colors = req.Colors

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h Catalog) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid item id"})
		return
	}

	boutique, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	res := h.db.Where("id = ? AND boutique_id = ?", id, boutique.ID).Delete(&types.CatalogItem{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "item not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
