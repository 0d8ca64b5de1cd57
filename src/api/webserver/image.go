package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/splenwilz/tryrack-api/src/api/storage"
)

type Images struct {
	store *storage.Service
}

func NewImages(store *storage.Service) Images {
	return Images{store: store}
}

func (h Images) Presign(c *gin.Context) {
	var req struct {
		Folder      string `json:"folder" binding:"required,oneof=catalog looks wardrobe tryon logos"`
		ContentType string `json:"contentType" binding:"required,oneof=image/jpeg image/png image/webp"`
		Extension   string `json:"extension" binding:"required,oneof=jpg jpeg png webp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	up, err := h.store.PresignUpload(c.Request.Context(), req.Folder, req.ContentType, req.Extension)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, up)
}

func (h Images) Delete(c *gin.Context) {
	var req struct {
		URL string `json:"url" binding:"required,url,max=500"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	if err := h.store.Delete(c.Request.Context(), req.URL); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
