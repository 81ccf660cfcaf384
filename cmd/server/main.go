package main

import (
	"log"

	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"

	"miniblog/internal/bootstrap"
	"miniblog/internal/config"
	"miniblog/internal/server"
	"miniblog/internal/service"
	"miniblog/pkg/database"
	"miniblog/pkg/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(database.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting disabled")
	}

	var searchSvc service.SearchService
	if cfg.MeiliSearchHost != "" {
		meiliClient := meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		searchSvc = service.NewMeiliSearchService(meiliClient)
	} else {
		log.Println("MEILISEARCH_HOST not set, search disabled")
	}

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryURL != "" {
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, avatar uploads disabled")
	}

	srv := server.New(cfg, db, redisClient, searchSvc, imageStorage)

	if err := srv.Run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
