package webserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Boutiques struct{ db *gorm.DB }

func NewBoutiques(db *gorm.DB) Boutiques { return Boutiques{db: db} }

type boutiqueProfileRequest struct {
	BusinessName    string   `json:"businessName" binding:"required,min=1,max=200"`
	BusinessAddress string   `json:"businessAddress" binding:"max=500"`
	BusinessCity    string   `json:"businessCity" binding:"max=100"`
	BusinessState   string   `json:"businessState" binding:"max=100"`
	BusinessZip     string   `json:"businessZip" binding:"max=20"`
	BusinessCountry string   `json:"businessCountry" binding:"max=100"`
	BusinessPhone   string   `json:"businessPhone" binding:"max=32"`
	BusinessEmail   string   `json:"businessEmail" binding:"omitempty,email,max=256"`
	BusinessWebsite string   `json:"businessWebsite" binding:"omitempty,url,max=256"`
	LogoURL         string   `json:"logoUrl" binding:"omitempty,url,max=500"`
	Latitude        *float64 `json:"latitude" binding:"omitempty,gte=-90,lte=90"`
	Longitude       *float64 `json:"longitude" binding:"omitempty,gte=-180,lte=180"`
	Currency        string   `json:"currency" binding:"max=8"`
	Timezone        string   `json:"timezone" binding:"max=64"`
}

func applyBoutiqueProfile(p *types.BoutiqueProfile, req boutiqueProfileRequest) {
	p.BusinessName = req.BusinessName
	p.BusinessAddress = req.BusinessAddress
	p.BusinessCity = req.BusinessCity
	p.BusinessState = req.BusinessState
	p.BusinessZip = req.BusinessZip
	p.BusinessCountry = req.BusinessCountry
	p.BusinessPhone = req.BusinessPhone
	p.BusinessEmail = req.BusinessEmail
	p.BusinessWebsite = req.BusinessWebsite
	p.LogoURL = req.LogoURL
	p.Latitude = req.Latitude
	p.Longitude = req.Longitude
	p.Currency = req.Currency
	p.Timezone = req.Timezone
}

// Onboard creates the boutique entity and its profile for the current user.
// A location needs both coordinates; one without the other is rejected so
// proximity search never sees a half-set location.
func (b Boutiques) Onboard(c *gin.Context) {
	var req boutiqueProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "latitude and longitude must be provided together"})
		return
	}

	uid := c.GetString("uid")
	var existing types.Boutique
	if err := b.db.First(&existing, "owner_id = ?", uid).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"err": "boutique already exists"})
		return
	}

	boutique := types.Boutique{OwnerID: uid}
	profile := types.BoutiqueProfile{}
	applyBoutiqueProfile(&profile, req)

	err := b.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&boutique).Error; err != nil {
			return err
		}
		profile.BoutiqueID = boutique.ID
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Model(&types.User{}).Where("id = ?", uid).Update("is_onboarded", true).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	log.Printf("boutique %d onboarded by user %s", boutique.ID, uid)
	c.JSON(http.StatusCreated, gin.H{"boutique": boutique, "profile": profile})
}

func (b Boutiques) Mine(c *gin.Context) {
	var boutique types.Boutique
	if err := b.db.First(&boutique, "owner_id = ?", c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "no boutique for this user"})
		return
	}
	var profile types.BoutiqueProfile
	b.db.First(&profile, "boutique_id = ?", boutique.ID)
	c.JSON(http.StatusOK, gin.H{"boutique": boutique, "profile": profile})
}

func (b Boutiques) UpdateProfile(c *gin.Context) {
	var req boutiqueProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"err": "latitude and longitude must be provided together"})
		return
	}

	var boutique types.Boutique
	if err := b.db.First(&boutique, "owner_id = ?", c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "no boutique for this user"})
		return
	}

	var profile types.BoutiqueProfile
	if err := b.db.First(&profile, "boutique_id = ?", boutique.ID).Error; err != nil {
		profile = types.BoutiqueProfile{BoutiqueID: boutique.ID}
	}
	applyBoutiqueProfile(&profile, req)

	if err := b.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Get is the public boutique page: profile plus aggregate review stats.
func (b Boutiques) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": "invalid boutique id"})
		return
	}

	var boutique types.Boutique
	if err := b.db.First(&boutique, "id = ?", id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "boutique not found"})
		return
	}
	var profile types.BoutiqueProfile
	b.db.First(&profile, "boutique_id = ?", id)

	var stats struct {
		AvgRating   float64
		ReviewCount int64
	}
	b.db.Model(&types.Review{}).
		Select("COALESCE(AVG(rating),0) as avg_rating, COUNT(*) as review_count").
		Where("item_type = ? AND item_id = ? AND is_approved = ?", types.ReviewItemBoutique, id, true).
		Scan(&stats)

	c.JSON(http.StatusOK, gin.H{
		"boutique":     boutique,
		"profile":      profile,
		"avg_rating":   stats.AvgRating,
		"review_count": stats.ReviewCount,
	})
}
