package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"engagepulse/internal/cache"
	"engagepulse/internal/config"
	"engagepulse/internal/repository"
	"engagepulse/internal/service"
	"engagepulse/internal/transport/rest"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	aiConfig := config.DefaultAIConfig()
	log.Printf("Insight strategy: %s", cfg.InsightStrategy)
	if cfg.InsightStrategy == config.InsightStrategyOpenRouter {
		log.Printf("  Model: %s", aiConfig.Model)
		if aiConfig.IsEnabled() {
			log.Println("  API Key: configured")
		} else {
			log.Println("  API Key: NOT SET (analysis will degrade to Neutral)")
		}
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.MongoDatabase)

	// Redis connection
	redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr: redisAddr,
	})
	defer rdb.Close()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	employeeRepo := repository.NewEmployeeRepo(db)

	if err := tokenRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create token indexes:", err)
	}

	// Initialize caches
	sentimentCache := cache.NewSentimentCache(rdb)

	// Initialize services
	tokenSvc := service.NewTokenService(tokenRepo)
	surveySvc := service.NewSurveyService(surveyRepo, employeeRepo, responseRepo, tokenSvc)
	responseSvc := service.NewResponseService(tokenSvc, responseRepo, surveyRepo, sentimentCache)
	resultsSvc := service.NewResultsService(surveyRepo, responseRepo, sentimentCache)

	var analyzer service.Analyzer
	if cfg.InsightStrategy == config.InsightStrategyOpenRouter {
		analyzer = service.NewOpenRouterAnalyzer(aiConfig)
	} else {
		analyzer = service.NewKeywordAnalyzer()
	}

	// Create router with container
	container := &rest.Container{
		SurveyService:   surveySvc,
		TokenService:    tokenSvc,
		ResponseService: responseSvc,
		ResultsService:  resultsSvc,
		Analyzer:        analyzer,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  GET/DELETE /v1/surveys/{surveyId}")
		log.Println("  POST /v1/surveys/{surveyId}/launch|close|simulate|analyze")
		log.Println("  GET  /v1/surveys/{surveyId}/results")
		log.Println("  GET  /v1/sentiment")
		log.Println("  GET  /v1/public/surveys/{token}")
		log.Println("  POST /v1/public/surveys/{token}/submit")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
