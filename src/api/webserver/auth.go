package webserver

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/data"
	"github.com/splenwilz/tryrack-api/src/api/identity"
	"github.com/splenwilz/tryrack-api/src/api/types"
)

type Auth struct {
	db           *gorm.DB
	rdb          *redis.Client
	idc          *identity.Client
	redirectURIs []string
	jwtSecret    []byte
}

func NewAuth(db *gorm.DB, rdb *redis.Client, idc *identity.Client, redirectURIs []string, secret []byte) Auth {
	return Auth{db: db, rdb: rdb, idc: idc, redirectURIs: redirectURIs, jwtSecret: secret}
}

// LoginURL hands the frontend the hosted-login redirect. Only allow-listed
// redirect URIs are accepted; everything else is a misconfigured or hostile
// client.
func (a Auth) LoginURL(c *gin.Context) {
	redirectURI := c.Query("redirect_uri")
	allowed := false
	for _, uri := range a.redirectURIs {
		if uri == redirectURI {
			allowed = true
			break
		}
	}
	if !allowed {
		c.JSON(http.StatusBadRequest, gin.H{"err": "redirect_uri not allowed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": a.idc.AuthorizationURL(redirectURI, c.Query("state"))})
}

// Callback exchanges the OAuth code, mirrors the provider account into our
// users table and issues a session token.
func (a Auth) Callback(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required,min=8,max=256"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}

	idUser, err := a.idc.AuthenticateWithCode(req.Code)
	if err != nil {
		log.Printf("auth: code exchange failed: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"err": "authentication failed"})
		return
	}

	var user types.User
	err = a.db.First(&user, "id = ?", idUser.ID).Error
	if err == gorm.ErrRecordNotFound {
		user = types.User{
			ID:        idUser.ID,
			Email:     idUser.Email,
			FirstName: idUser.FirstName,
			LastName:  idUser.LastName,
		}
		if err := a.db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
			return
		}
		log.Printf("auth: created user %s", user.ID)
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	} else {
		// Keep the mirrored fields fresh on every login.
		a.db.Model(&user).Updates(map[string]interface{}{
			"email":      idUser.Email,
			"first_name": idUser.FirstName,
			"last_name":  idUser.LastName,
		})
	}

	token, err := issueJWT(user.ID, a.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// Logout blacklists the presented token until its natural expiry.
func (a Auth) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	ttl := sessionTTL
	if exp, ok := c.Get("exp"); ok {
		if t, ok := exp.(time.Time); ok {
			ttl = time.Until(t)
		}
	}
	if err := data.RevokeToken(c, a.rdb, jti, ttl); err != nil {
		log.Printf("auth: failed to revoke token %s: %v", jti, err)
		c.JSON(http.StatusInternalServerError, gin.H{"err": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (a Auth) Me(c *gin.Context) {
	var user types.User
	if err := a.db.First(&user, "id = ?", c.GetString("uid")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"err": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
