package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	opensearchclient "github.com/opensearch-project/opensearch-go/v2"
	"github.com/redis/go-redis/v9"

	"github.com/kingrain94/support-desk-api/internal/api"
	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/middleware"
	"github.com/kingrain94/support-desk-api/internal/repository/composite"
	"github.com/kingrain94/support-desk-api/internal/repository/postgres"
	"github.com/kingrain94/support-desk-api/internal/service"
	"github.com/kingrain94/support-desk-api/internal/service/pubsub"
	"github.com/kingrain94/support-desk-api/internal/service/queue"
	"github.com/kingrain94/support-desk-api/internal/service/storage"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		appLogger.Fatal("Failed to load config", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	dbConnections, err := config.NewDatabaseConnections(cfg.AppEnv)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	if err := postgres.Migrate(dbConnections.Writer); err != nil {
		appLogger.Fatal("Failed to migrate database", err)
	}
	appLogger.Info("Database connections established - writer and reader connected")

	var (
		osClient *opensearchclient.Client
		osConfig = config.DefaultOpenSearchConfig()
	)
	if cfg.SearchEnabled {
		osClient, err = osConfig.GetClient()
		if err != nil {
			appLogger.Fatal("Failed to connect to OpenSearch", err)
		}
	}

	repo := composite.NewCompositeRepository(dbConnections, osClient, osConfig)

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher, cfg.BcryptCost, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to create password hasher", err)
	}
	tokens, err := auth.NewTokenIssuer(auth.TokenConfig{
		SecretKey: cfg.JWTSecretKey,
		Issuer:    cfg.JWTIssuer,
		Audience:  cfg.JWTAudience,
		Expiry:    cfg.JWTExpiry(),
	})
	if err != nil {
		appLogger.Fatal("Failed to create token issuer", err)
	}

	attachments := newAttachmentStore(startupCtx, cfg, appLogger)

	ticketService := service.NewTicketService(repo, attachments, cfg.Upload, appLogger)
	services := api.Services{
		Auth:      service.NewAuthService(repo, hasher, tokens, appLogger),
		Tickets:   ticketService,
		Users:     service.NewUserService(repo),
		Bookings:  service.NewBookingService(repo),
		Dashboard: service.NewDashboardService(repo),
		Tenants:   service.NewTenantService(repo),
	}

	if cfg.SearchEnabled {
		sqsConfig := config.DefaultSQSConfig()
		sqsClient, err := sqsConfig.GetClient(startupCtx)
		if err != nil {
			appLogger.Fatal("Failed to connect to SQS", err)
		}
		ticketService.SetIndexQueue(queue.NewSQSService(sqsClient, sqsConfig))
	}

	var redisClient *redis.Client
	if cfg.RateLimitEnabled || cfg.TicketEventsEnabled {
		redisClient, err = config.DefaultRedisConfig().GetClient(startupCtx)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", err)
		}
		defer redisClient.Close()
	}

	var rateLimitMiddleware *middleware.RateLimitMiddleware
	if cfg.RateLimitEnabled {
		rateLimitMiddleware = middleware.NewRateLimitMiddleware(redisClient, cfg, appLogger)
	}

	var events *pubsub.RedisPubSub
	if cfg.TicketEventsEnabled {
		events = pubsub.NewRedisPubSub(redisClient, appLogger)
		ticketService.SetEventPublisher(events)
	}

	server := api.NewServer(
		cfg,
		services,
		middleware.NewAuthMiddleware(tokens, appLogger),
		rateLimitMiddleware,
		middleware.NewValidationMiddleware(appLogger),
		appLogger,
		events,
	)
	server.StartWebSocketHub()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(appLogger))
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	if cfg.Upload.Storage == config.StorageLocal {
		router.Static(storage.URLPrefix, cfg.Upload.Dir)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	server.SetupRoutes(router.Group("/api"))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	go func() {
		appLogger.Infof("Listening on :%d", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	server.StopWebSocketHub()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", err)
	}

	appLogger.Info("Server exiting")
	appLogger.Sync()
}

func newAttachmentStore(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) storage.AttachmentStore {
	if cfg.Upload.Storage != config.StorageS3 {
		return storage.NewLocalStore(cfg.Upload.Dir)
	}

	s3Config := config.DefaultS3Config()
	client, err := s3Config.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to create S3 client", err)
	}
	appLogger.Infof("Storing attachments in S3 bucket %s", s3Config.BucketName)
	return storage.NewS3Store(client, s3Config)
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
