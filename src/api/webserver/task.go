package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Tasks struct {
	db *gorm.DB
}

func NewTasks(db *gorm.DB) Tasks {
	return Tasks{db: db}
}

func (h Tasks) Create(c *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required,max=200"`
		Description string `json:"description" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	t := types.Task{
		UserID:      c.GetString("uid"),
		Title:       req.Title,
		Description: req.Description,
	}
	if err := h.db.Create(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h Tasks) ListMine(c *gin.Context) {
	q := h.db.Where("user_id = ?", c.GetString("uid"))
	if raw := c.Query("completed"); raw != "" {
		done, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"err": "invalid completed filter"})
			return
		}
		q = q.Where("completed = ?", done)
	}

	var tasks []types.Task
	if err := q.Order("created_at desc").Find(&tasks).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks})
}

func (h Tasks) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid task id"})
		return
	}

	var req struct {
		Title       string `json:"title" binding:"required,max=200"`
		Description string `json:"description" binding:"max=1000"`
		Completed   bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	var t types.Task
	if err := h.db.First(&t, "id = ? AND user_id = ?", id, c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "task not found"})
		return
	}

	t.Title = req.Title
	t.Description = req.Description
	t.Completed = req.Completed
	if err := h.db.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h Tasks) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid task id"})
		return
	}

	res := h.db.Where("id = ? AND user_id = ?", id, c.GetString("uid")).Delete(&types.Task{})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": res.Error.Error()})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"err": "task not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
