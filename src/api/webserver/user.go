package webserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Users struct{ db *gorm.DB }

func NewUsers(db *gorm.DB) Users { return Users{db: db} }

func (u Users) GetProfile(c *gin.Context) {
	var profile types.UserProfile
	err := u.db.First(&profile, "user_id = ?", c.GetString("uid")).Error
	if err == gorm.ErrRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"err": "profile not set up"})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (u Users) UpdateProfile(c *gin.Context) {
	var req struct {
		Gender       string   `json:"gender" binding:"omitempty,oneof=MALE FEMALE"`
		HeightCm     *float64 `json:"heightCm" binding:"omitempty,gt=0,lt=300"`
		WaistCm      *float64 `json:"waistCm" binding:"omitempty,gt=0,lt=300"`
		ShoeSize     string   `json:"shoeSize" binding:"max=20"`
		ShirtSize    string   `json:"shirtSize" binding:"max=20"`
		PantsSize    string   `json:"pantsSize" binding:"max=20"`
		SizeStandard string   `json:"sizeStandard" binding:"omitempty,oneof=US UK EU JP AU OTHER"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	uid := c.GetString("uid")
	var profile types.UserProfile
	err := u.db.First(&profile, "user_id = ?", uid).Error
	if err == gorm.ErrRecordNotFound {
		profile = types.UserProfile{UserID: uid}
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	profile.Gender = req.Gender
	profile.HeightCm = req.HeightCm
	profile.WaistCm = req.WaistCm
	profile.ShoeSize = req.ShoeSize
	profile.ShirtSize = req.ShirtSize
	profile.PantsSize = req.PantsSize
	profile.SizeStandard = req.SizeStandard

	if err := u.db.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	// First completed profile flips the onboarding flag.
	u.db.Model(&types.User{}).Where("id = ? AND is_onboarded = ?", uid, false).Update("is_onboarded", true)

	c.JSON(http.StatusOK, profile)
}
