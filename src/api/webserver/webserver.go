package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/config"
	"github.com/splenwilz/tryrack-api/src/api/identity"
	"github.com/splenwilz/tryrack-api/src/api/storage"
)

func New(cfg config.Config, db *gorm.DB, rdb *redis.Client, idc *identity.Client, store *storage.Service) *gin.Engine {
	g := gin.New()
	g.Use(gin.Logger(), gin.Recovery())
	attachRoutes(g, cfg, db, rdb, idc, store)
	return g
}
