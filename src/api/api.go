package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/splenwilz/tryrack-api/src/api/config"
	"github.com/splenwilz/tryrack-api/src/api/data"
	"github.com/splenwilz/tryrack-api/src/api/identity"
	"github.com/splenwilz/tryrack-api/src/api/storage"
	"github.com/splenwilz/tryrack-api/src/api/types"
	"github.com/splenwilz/tryrack-api/src/api/webserver"
)

var allModels = []interface{}{
	&types.User{}, &types.UserProfile{},
	&types.Boutique{}, &types.BoutiqueProfile{},
	&types.CatalogItem{}, &types.BoutiqueLook{}, &types.LookProduct{},
	&types.Review{}, &types.ReviewLike{},
	&types.TryOnSession{}, &types.TryOnItem{},
	&types.WardrobeItem{}, &types.Task{},
}

func migrate(db *gorm.DB) {
	if err := db.AutoMigrate(allModels...); err != nil {
		log.Fatalf("migrate: %v", err)
	}
}

func main() {
	cfg := config.Load()

	db := data.MustMySQL(cfg.MySQLDSN)
	migrate(db)

	rdb := data.MustRedis(cfg.RedisURL)

	idc := identity.NewClient(cfg.IdentityAPIKey, cfg.IdentityClientID, cfg.IdentityBaseURL)

	store, err := storage.New(context.Background(), storage.Config{
		AccessKeyID:     cfg.AWSAccessKeyID,
		SecretAccessKey: cfg.AWSSecretAccessKey,
		Region:          cfg.AWSRegion,
		Bucket:          cfg.S3Bucket,
		BaseURL:         cfg.S3BaseURL,
	})
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	router := webserver.New(cfg, db, rdb, idc, store)
	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http: %v", err)
		}
	}()
	log.Printf("Tryrack API listening on %s", cfg.Port)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutCtx, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()
	_ = httpSrv.Shutdown(shutCtx)
}
