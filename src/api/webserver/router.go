package webserver

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/config"
	"github.com/splenwilz/tryrack-api/src/api/identity"
	"github.com/splenwilz/tryrack-api/src/api/storage"
)

func attachRoutes(r *gin.Engine, cfg config.Config, db *gorm.DB, rdb *redis.Client, idc *identity.Client, store *storage.Service) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	secret := []byte(cfg.JWTSecret)
	authed := JWTMiddleware(secret, rdb)
	admin := AdminMiddleware(db)

	authH := NewAuth(db, rdb, idc, cfg.AllowedRedirectURIs, secret)
	userH := NewUsers(db)
	boutiqueH := NewBoutiques(db)
	catalogH := NewCatalog(db)
	lookH := NewLooks(db)
	shopH := NewShop(db)
	userCache := identity.NewCache(10 * time.Minute)
	go func() {
		for range time.Tick(10 * time.Minute) {
			userCache.Sweep()
		}
	}()
	reviewH := NewReviews(db, idc, userCache)
	tryOnH := NewTryOn(db)
	wardrobeH := NewWardrobe(db)
	taskH := NewTasks(db)
	imageH := NewImages(store)
	healthH := NewHealth(db)

	writeLimiter := NewRateLimiter(30, time.Minute)

	v1 := r.Group("/v1")
	{
		v1.GET("/health", healthH.Check)

		v1.GET("/auth/login", authH.LoginURL)
		v1.POST("/auth/callback", authH.Callback)
		v1.POST("/auth/logout", authed, authH.Logout)
		v1.GET("/auth/me", authed, authH.Me)

		v1.GET("/users/me/profile", authed, userH.GetProfile)
		v1.PUT("/users/me/profile", authed, userH.UpdateProfile)

		v1.POST("/boutiques/onboard", authed, boutiqueH.Onboard)
		v1.GET("/boutiques/me", authed, boutiqueH.Mine)
		v1.PUT("/boutiques/me/profile", authed, boutiqueH.UpdateProfile)
		v1.GET("/boutiques/:id", boutiqueH.Get)

		v1.POST("/catalog", authed, catalogH.Create)
		v1.GET("/catalog", authed, catalogH.ListMine)
		v1.GET("/catalog/:id", catalogH.Get)
		v1.PUT("/catalog/:id", authed, catalogH.Update)
		v1.DELETE("/catalog/:id", authed, catalogH.Delete)

		v1.POST("/looks", authed, lookH.Create)
		v1.GET("/looks", authed, lookH.ListMine)
		v1.GET("/looks/featured", lookH.Featured)
		v1.GET("/looks/:id", lookH.Get)
		v1.PUT("/looks/:id", authed, lookH.Update)
		v1.DELETE("/looks/:id", authed, lookH.Delete)

		v1.GET("/shop", shopH.List)

		v1.GET("/reviews", reviewH.List)
		v1.POST("/reviews", authed, RateLimitMiddleware(writeLimiter), reviewH.Create)
		v1.GET("/reviews/mine", authed, reviewH.ListMine)
		v1.PUT("/reviews/:id", authed, reviewH.Update)
		v1.DELETE("/reviews/:id", authed, reviewH.Delete)
		v1.POST("/reviews/:id/like", authed, RateLimitMiddleware(writeLimiter), reviewH.Like)
		v1.DELETE("/reviews/:id/like", authed, reviewH.Unlike)

		v1.POST("/try-on", authed, tryOnH.Create)
		v1.GET("/try-on", authed, tryOnH.ListMine)

		v1.POST("/wardrobe", authed, wardrobeH.Create)
		v1.GET("/wardrobe", authed, wardrobeH.ListMine)
		v1.GET("/wardrobe/:id", authed, wardrobeH.Get)
		v1.PUT("/wardrobe/:id", authed, wardrobeH.Update)
		v1.DELETE("/wardrobe/:id", authed, wardrobeH.Delete)
		v1.POST("/wardrobe/:id/worn", authed, wardrobeH.MarkWorn)

		v1.POST("/tasks", authed, taskH.Create)
		v1.GET("/tasks", authed, taskH.ListMine)
		v1.PUT("/tasks/:id", authed, taskH.Update)
		v1.DELETE("/tasks/:id", authed, taskH.Delete)

		v1.POST("/images/presign", authed, imageH.Presign)
		v1.DELETE("/images", authed, imageH.Delete)
	}

	adm := v1.Group("/admin")
	adm.Use(authed, admin)
	{
		adm.GET("/reviews", reviewH.ListPending)
		adm.POST("/reviews/:id/approve", reviewH.Approve)
		adm.POST("/reviews/:id/reject", reviewH.Reject)
	}
}
