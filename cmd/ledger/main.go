package main

import (
	"context"
	"database/sql"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	_ "github.com/stokq/stock-ledger/docs"
	"github.com/stokq/stock-ledger/internal/ledger"
	httpDelivery "github.com/stokq/stock-ledger/internal/ledger/delivery/http"
	"github.com/stokq/stock-ledger/internal/ledger/domain"
	"github.com/stokq/stock-ledger/internal/ledger/usecase/command"
	"github.com/stokq/stock-ledger/kafka"
	"github.com/stokq/stock-ledger/pkg/database"
	"github.com/stokq/stock-ledger/pkg/logger"
	"github.com/stokq/stock-ledger/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "ledger-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)
	logger.SetLevel(getEnv("LOG_LEVEL", "info"))

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting ledger service")

	// Initialize tracing
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to initialize tracer, continuing without tracing")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
			}
		}()
	}

	// Connect to database
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "ledgerdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Dedicated database/sql connection for the health check, separate
	// from gorm's pool so liveness stays answerable when the pool is
	// saturated by movement traffic.
	healthDB, err := database.NewPostgresConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open health check connection")
	}
	defer healthDB.Close()

	// Run migrations
	if err := db.AutoMigrate(&domain.Item{}, &domain.Movement{}); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Kafka publisher (optional: the service runs without a broker)
	var publisher *kafka.Publisher
	brokers := strings.Split(getEnv("KAFKA_BROKERS", ""), ",")
	if brokers[0] != "" {
		publisher, err = kafka.NewPublisher(brokers)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Failed to create Kafka publisher, movement events disabled")
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	// Initialize handler with Wire DI
	handler, err := ledger.InitializeHTTPHandler(db, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	// Kafka consumer: sale.completed events become OUT movements
	consumerCtx, cancelConsumer := context.WithCancel(context.Background())
	defer cancelConsumer()
	if publisher != nil {
		startSaleConsumer(consumerCtx, brokers, ledger.ProvideLedgerRepository(db))
	}

	// Start gRPC health server (for orchestrator probes)
	grpcPort := getEnv("GRPC_PORT", "9092")
	go startGRPCHealthServer(grpcPort)

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8082")
	go startHTTPServer(handler, healthDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

func startHTTPServer(handler *httpDelivery.LedgerHandler, db *sql.DB, port string) {
	router := mux.NewRouter()

	middlewareConfig := httpDelivery.DefaultMiddlewareConfig()
	httpDelivery.RegisterMiddlewares(router, middlewareConfig)

	handler.RegisterRoutes(router)
	handler.RegisterHealthCheck(router, db)
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	corsHandler := httpDelivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func startGRPCHealthServer(port string) {
	grpcServer := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)

	// Register reflection service (for grpcurl and grpc tools)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen for gRPC")
	}

	logger.Logger.Info().Str("port", port).Msg("gRPC health server started")

	if err := grpcServer.Serve(lis); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start gRPC server")
	}
}

// startSaleConsumer applies completed sales as outbound ledger movements.
func startSaleConsumer(ctx context.Context, brokers []string, repo domain.LedgerRepository) {
	groupID := getEnv("KAFKA_GROUP_ID", "ledger-service")
	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicSaleCompleted})
	if err != nil {
		logger.Logger.Warn().Err(err).Msg("Failed to create Kafka consumer, sale events disabled")
		return
	}

	recordHandler := command.NewRecordMovementHandler(repo)
	consumer.RegisterHandler(kafka.EventTypeSaleCompleted, func(ctx context.Context, event kafka.SaleCompletedEvent) error {
		reference := event.SaleID
		_, err := recordHandler.Handle(ctx, command.RecordMovementCommand{
			ItemID:     event.ItemID,
			Direction:  domain.DirectionOut,
			Quantity:   event.Quantity,
			Reference:  &reference,
			OccurredAt: event.Timestamp,
		})
		return err
	})

	if err := consumer.Start(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
