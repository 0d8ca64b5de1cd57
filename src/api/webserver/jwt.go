package webserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/data"
	"github.com/splenwilz/tryrack-api/src/api/types"
)

const sessionTTL = 24 * time.Hour

func issueJWT(userID string, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"exp": time.Now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(secret)
}

func JWTMiddleware(secret []byte, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		tok, err := jwt.Parse(h[7:], func(t *jwt.Token) (interface{}, error) { return secret, nil })
		if err != nil || !tok.Valid {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims := tok.Claims.(jwt.MapClaims)
		if jti, _ := claims["jti"].(string); jti != "" && data.IsTokenRevoked(c, rdb, jti) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set("uid", claims["sub"])
		c.Set("jti", claims["jti"])
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			c.Set("exp", exp.Time)
		}
		c.Next()
	}
}

func AdminMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user types.User
		if err := db.First(&user, "id = ?", c.GetString("uid")).Error; err != nil || !user.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"err": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
