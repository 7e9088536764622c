package main

import (
	"log"

	"github.com/RKMF/kammerfest/internal/config"
	"github.com/RKMF/kammerfest/internal/db"
	"github.com/RKMF/kammerfest/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if cfg.SuperRootUserName != "" && cfg.SuperRootPassword != "" {
		if err := db.EnsureEditor(cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
			log.Fatalf("failed to ensure editor account: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to parse REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(redisOpts)
	}

	r := router.SetupRouter(router.Options{
		SessionSecret:   cfg.SessionSecret,
		UploadDir:       cfg.UploadDir,
		UploadURLPath:   cfg.UploadURLPath,
		SiteBaseURL:     cfg.SiteBaseURL,
		RateLimitMax:    cfg.RateLimitMax,
		RateLimitWindow: cfg.RateLimitWindow,
		RedisClient:     redisClient,
	})

	log.Printf("listening on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
