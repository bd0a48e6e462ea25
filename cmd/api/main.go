package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/scheduler"
	"github.com/pageza/dietwise/backend/internal/server"
	"github.com/pageza/dietwise/backend/internal/service"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(config.GinMode())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	store := database.NewDocumentStore(db)

	// Redis backs conversation memory and rate limiting when it is reachable
	var memory service.ConversationMemory
	redisClient, err := database.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Printf("Redis unavailable, using in-process conversation memory: %v", err)
		memory = service.NewInMemoryConversationMemory(cfg.MemoryMaxTurns, cfg.MemoryMaxUsers)
	} else {
		memory = service.NewRedisConversationMemory(redisClient, cfg.MemoryMaxTurns, cfg.MemoryTTL)
	}

	model, err := service.NewGeminiService(cfg)
	if err != nil {
		log.Fatalf("Failed to create generative model client: %v", err)
	}

	s3Config, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to create S3 client: %v", err)
	}

	auth := service.NewAuthService(cfg.JWTSecret)
	profiles := service.NewProfileService(store)
	meals := service.NewMealService(store)
	adjustments := service.NewAdjustmentService(store, profiles, meals, memory, model, service.NewArchiver(s3Config))

	hour, minute := cfg.DailyRunTime()
	pipeline := scheduler.NewDailyPipeline(meals, profiles, adjustments, scheduler.Options{
		Delay:     cfg.AdjustmentDelay,
		Hour:      hour,
		Minute:    minute,
		Scheduled: cfg.SchedulerEnabled,
	})
	go pipeline.Start(ctx)

	srv := server.New(cfg, server.Dependencies{
		DB:          db,
		Redis:       redisClient,
		Auth:        auth,
		Profiles:    profiles,
		Meals:       meals,
		Adjustments: adjustments,
		Pipeline:    pipeline,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		log.Println("Starting server...")
		errChan <- srv.Start()
	}()

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case <-ctx.Done():
		log.Println("Received shutdown signal")
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	closeRedis(redisClient)
	log.Println("Server stopped")
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Printf("Failed to close Redis client: %v", err)
	}
}
