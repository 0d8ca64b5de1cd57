package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type TryOn struct {
	db *gorm.DB
}

func NewTryOn(db *gorm.DB) TryOn {
	return TryOn{db: db}
}

func (h TryOn) Create(c *gin.Context) {
	var req struct {
		FullBodyImageURI   string `json:"fullBodyImageUri" binding:"required,url,max=500"`
		GeneratedImageURI  string `json:"generatedImageUri" binding:"required,url,max=500"`
		CleanBackground    *bool  `json:"cleanBackground"`
		CustomInstructions string `json:"customInstructions" binding:"max=500"`
		Items              []struct {
			Source         string  `json:"source" binding:"required,oneof=boutique wardrobe"`
			CatalogItemID  *uint64 `json:"catalogItemId"`
			WardrobeItemID *uint64 `json:"wardrobeItemId"`
		} `json:"items" binding:"required,min=1,max=10"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	uid := c.GetString("uid")
	session := types.TryOnSession{
		UserID:             uid,
		FullBodyImageURI:   req.FullBodyImageURI,
		GeneratedImageURI:  req.GeneratedImageURI,
		CleanBackground:    req.CleanBackground == nil || *req.CleanBackground,
		CustomInstructions: req.CustomInstructions,
	}
	for _, it := range req.Items {
		// Each item must reference exactly the table its source names.
		if it.Source == types.TryOnSourceBoutique {
			if it.CatalogItemID == nil {
				c.JSON(http.StatusBadRequest, gin.H{"err": "boutique items require catalogItemId"})
				return
			}
			if err := h.db.First(&types.CatalogItem{}, "id = ?", *it.CatalogItemID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"err": "catalog item not found"})
				return
			}
		} else {
			if it.WardrobeItemID == nil {
				c.JSON(http.StatusBadRequest, gin.H{"err": "wardrobe items require wardrobeItemId"})
				return
			}
			if err := h.db.First(&types.WardrobeItem{}, "id = ? AND user_id = ?", *it.WardrobeItemID, uid).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"err": "wardrobe item not found"})
				return
			}
		}
		session.Items = append(session.Items, types.TryOnItem{
			Source:         it.Source,
			CatalogItemID:  it.CatalogItemID,
			WardrobeItemID: it.WardrobeItemID,
		})
	}

	if err := h.db.Create(&session).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (h TryOn) ListMine(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 100 {
		limit = 50
	}
	if skip < 0 {
		skip = 0
	}

	var sessions []types.TryOnSession
	if err := h.db.Preload("Items").
		Where("user_id = ?", c.GetString("uid")).
		Order("created_at desc").Offset(skip).Limit(limit).
		Find(&sessions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}
