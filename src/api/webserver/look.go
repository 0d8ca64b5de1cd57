package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Looks struct {
	db *gorm.DB
}

func NewLooks(db *gorm.DB) Looks {
	return Looks{db: db}
}

type lookRequest struct {
	Title       string   `json:"title" binding:"required,max=200"`
	Description string   `json:"description" binding:"max=2000"`
	Style       string   `json:"style" binding:"required,max=50"`
	ImageURL    string   `json:"imageUrl" binding:"omitempty,url,max=500"`
	IsFeatured  bool     `json:"isFeatured"`
	ProductIDs  []uint64 `json:"productIds" binding:"required,min=2,max=5"`
}

// verifyProducts checks that every product in the look belongs to the
// boutique curating it.
func (h Looks) verifyProducts(boutiqueID uint64, productIDs []uint64) bool {
	var n int64
	h.db.Model(&types.CatalogItem{}).
		Where("boutique_id = ? AND id IN ?", boutiqueID, productIDs).
		Count(&n)
	return n == int64(len(productIDs))
}

func (h Looks) Create(c *gin.Context) {
	b, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	var req lookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if !h.verifyProducts(b.ID, req.ProductIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "all products must belong to your boutique"})
		return
	}

	look := types.BoutiqueLook{
		BoutiqueID:  b.ID,
		Title:       req.Title,
		Description: req.Description,
		Style:       req.Style,
		ImageURL:    req.ImageURL,
		IsFeatured:  req.IsFeatured,
	}
	for i, pid := range req.ProductIDs {
		look.Products = append(look.Products, types.LookProduct{CatalogItemID: pid, Position: i})
	}

	if err := h.db.Create(&look).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, look)
}

func (h Looks) ListMine(c *gin.Context) {
	b, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}

	var looks []types.BoutiqueLook
	if err := h.db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("boutique_id = ?", b.ID).Order("created_at desc").Find(&looks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"looks": looks})
}

// Featured is the public storefront feed of curated looks.
func (h Looks) Featured(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 50 {
		limit = 20
	}

	var looks []types.BoutiqueLook
	if err := h.db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Where("is_featured = ?", true).Order("created_at desc").Limit(limit).Find(&looks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"looks": looks})
}

func (h Looks) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid look id"})
		return
	}

	var look types.BoutiqueLook
	if err := h.db.Preload("Products", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).First(&look, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "look not found"})
		return
	}
	c.JSON(http.StatusOK, look)
}

func (h Looks) Update(c *gin.Context) {
	b, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid look id"})
		return
	}

	var req lookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var look types.BoutiqueLook
	if err := h.db.First(&look, "id = ? AND boutique_id = ?", id, b.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "look not found"})
		return
	}
	if !h.verifyProducts(b.ID, req.ProductIDs) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "all products must belong to your boutique"})
		return
	}

	look.Title = req.Title
	look.Description = req.Description
	look.Style = req.Style
	look.ImageURL = req.ImageURL
	look.IsFeatured = req.IsFeatured

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("look_id = ?", look.ID).Delete(&types.LookProduct{}).Error; err != nil {
			return err
		}
		look.Products = nil
		for i, pid := range req.ProductIDs {
			look.Products = append(look.Products, types.LookProduct{LookID: look.ID, CatalogItemID: pid, Position: i})
		}
		return tx.Save(&look).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, look)
}

func (h Looks) Delete(c *gin.Context) {
	b, ok := ownBoutique(c, h.db)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid look id"})
		return
	}

	var look types.BoutiqueLook
	if err := h.db.First(&look, "id = ? AND boutique_id = ?", id, b.ID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "look not found"})
		return
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("look_id = ?", look.ID).Delete(&types.LookProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&look).Error
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
