package webserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Wardrobe struct {
	db *gorm.DB
}

func NewWardrobe(db *gorm.DB) Wardrobe {
	return Wardrobe{db: db}
}

type wardrobeItemRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Category string `json:"category" binding:"required,max=50"`
	Colors   string `json:"colors" binding:"max=300"`
	Tags     string `json:"tags" binding:"max=500"`
	ImageURL string `json:"imageUrl" binding:"required,url,max=500"`
}

func (h Wardrobe) Create(c *gin.Context) {
	var req wardrobeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	item := types.WardrobeItem{
		UserID:   c.GetString("uid"),
		Title:    req.Title,
		Category: req.Category,
		Colors:   req.Colors,
		Tags:     req.Tags,
		ImageURL: req.ImageURL,
		Status:   types.WardrobeStatusActive,
	}
	if err := h.db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h Wardrobe) ListMine(c *gin.Context) {
	q := h.db.Where("user_id = ?", c.GetString("uid"))
	if cat := c.Query("category"); cat != "" {
		q = q.Where("category = ?", cat)
	}

	var items []types.WardrobeItem
	if err := q.Order("created_at desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h Wardrobe) find(c *gin.Context) (types.WardrobeItem, bool) {
	var item types.WardrobeItem
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid wardrobe item id"})
		return item, false
	}
	if err := h.db.First(&item, "id = ? AND user_id = ?", id, c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "wardrobe item not found"})
		return item, false
	}
	return item, true
}

func (h Wardrobe) Get(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h Wardrobe) Update(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}

	var req wardrobeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	item.Title = req.Title
	item.Category = req.Category
	item.Colors = req.Colors
	item.Tags = req.Tags
	item.ImageURL = req.ImageURL

	if err := h.db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h Wardrobe) Delete(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}
	if err := h.db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkWorn bumps the wear counter and stamps the time. Used by outfit
// history on the client.
func (h Wardrobe) MarkWorn(c *gin.Context) {
	item, ok := h.find(c)
	if !ok {
		return
	}

	now := time.Now()
	if err := h.db.Model(&item).Updates(map[string]interface{}{
		"wear_count":   gorm.Expr("wear_count + 1"),
		"last_worn_at": now,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	item.WearCount++
	item.LastWornAt = &now
	c.JSON(http.StatusOK, item)
}
