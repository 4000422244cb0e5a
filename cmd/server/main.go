package main

import (
	"context"
	"log"

	"event-gallery-api/config"
	"event-gallery-api/internal/access"
	"event-gallery-api/internal/cache"
	"event-gallery-api/internal/database"
	"event-gallery-api/internal/handler"
	"event-gallery-api/internal/queue"
	"event-gallery-api/internal/repository"
	"event-gallery-api/internal/service"
	"event-gallery-api/internal/storage"
	"event-gallery-api/internal/worker"
	"event-gallery-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	defer logger.L.Sync()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	blobStorage, err := storage.NewDiskStorage(cfg.Storage.BaseDir, cfg.Storage.PublicURL)
	if err != nil {
		log.Fatalf("Failed to initialize blob storage: %v", err)
	}

	eventRepo := repository.NewEventRepository(pool)
	participantRepo := repository.NewParticipantRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	imageRepo := repository.NewImageRepository(pool)
	likeRepo := repository.NewLikeRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	galleryRepo := repository.NewGalleryRepository(pool)

	gate := access.NewGate(participantRepo)
	statsCache := cache.NewEventStatsCache(rdb)

	cleanupQueue, err := queue.NewRedisStreamCleanupQueue(rdb, "", nil)
	if err != nil {
		log.Fatalf("Failed to initialize cleanup queue: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cleanupWorker := worker.NewCleanupWorker(blobStorage, cleanupQueue)
	if err := cleanupWorker.Start(ctx); err != nil {
		log.Fatalf("Failed to start cleanup worker: %v", err)
	}

	eventService := service.NewEventService(pool, eventRepo, participantRepo, userRepo, imageRepo, gate, statsCache, cleanupQueue)
	imageService := service.NewImageService(imageRepo, eventRepo, userRepo, likeRepo, gate, blobStorage, statsCache, cleanupQueue)
	commentService := service.NewCommentService(commentRepo, imageRepo, eventRepo, gate)
	searchService := service.NewSearchService(eventRepo, imageRepo, userRepo)
	galleryService := service.NewGalleryService(imageRepo, galleryRepo)
	userService := service.NewUserService(userRepo, eventRepo, imageRepo)

	auth := handler.NewAuthMiddleware(cfg.Auth.JWTSecret)

	router := gin.Default()
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.Static("/uploads", cfg.Storage.BaseDir)

	handler.NewEventHandler(eventService).RegisterRoutes(router, auth)
	handler.NewImageHandler(imageService).RegisterRoutes(router, auth)
	handler.NewCommentHandler(commentService).RegisterRoutes(router, auth)
	handler.NewSearchHandler(searchService).RegisterRoutes(router, auth)
	handler.NewGalleryHandler(galleryService).RegisterRoutes(router)
	handler.NewUserHandler(userService).RegisterRoutes(router, auth)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
