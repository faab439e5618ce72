package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/repository/opensearch"
	"github.com/kingrain94/support-desk-api/internal/repository/postgres"
	"github.com/kingrain94/support-desk-api/internal/service/queue"
	"github.com/kingrain94/support-desk-api/internal/worker"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

func main() {
	reindex := flag.String("reindex", "", "queue every ticket of the tenant with this subdomain for indexing, then exit")
	workers := flag.Int("workers", 1, "number of polling goroutines")
	pollInterval := flag.Duration("poll", 5*time.Second, "delay between receive calls")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	appLogger := logger.NewLogger(os.Getenv("APP_ENV"))

	ctx := context.Background()
	sqsConfig := config.DefaultSQSConfig()
	sqsClient, err := sqsConfig.GetClient(ctx)
	if err != nil {
		appLogger.Fatal("Failed to connect to SQS", err)
	}
	sqsService := queue.NewSQSService(sqsClient, sqsConfig)

	if *reindex != "" {
		enqueueTenant(ctx, appLogger, sqsService, *reindex)
		return
	}

	osConfig := config.DefaultOpenSearchConfig()
	osClient, err := osConfig.GetClient()
	if err != nil {
		appLogger.Fatal("Failed to connect to OpenSearch", err)
	}
	index := opensearch.NewRepository(osClient, osConfig)

	indexWorker := worker.NewIndexWorker(sqsService, index, appLogger.Named("index-worker"), *workers, *pollInterval)
	indexWorker.Start()
	appLogger.Info("Index worker started")

	// Wait for interrupt signal to gracefully shutdown the worker
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down worker...")
	indexWorker.Stop()
	appLogger.Info("Worker stopped")
	appLogger.Sync()
}

func enqueueTenant(ctx context.Context, appLogger *logger.Logger, q worker.BulkIndexQueue, subdomain string) {
	dbConnections, err := config.NewDatabaseConnections(os.Getenv("APP_ENV"))
	if err != nil {
		appLogger.Fatal("Failed to connect to database", err)
	}
	defer dbConnections.Close()

	repo := postgres.NewPostgresRepository(dbConnections)
	tenant, err := repo.Tenant().GetBySubdomain(ctx, subdomain)
	if err != nil {
		appLogger.Fatal("Failed to load tenant", err, zap.String("subdomain", subdomain))
	}

	queued, err := worker.EnqueueTenantTickets(ctx, repo.Ticket(), q, tenant.ID, 0)
	if err != nil {
		appLogger.Fatal("Failed to queue tickets", err, zap.Int("queued", queued))
	}
	appLogger.Info("Queued tickets for indexing", zap.String("tenant_id", tenant.ID), zap.Int("count", queued))
}
