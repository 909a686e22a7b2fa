package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/openorigin/traceability/docs"
	"github.com/openorigin/traceability/internal/traceability"
	delivery "github.com/openorigin/traceability/internal/traceability/delivery/http"
	"github.com/openorigin/traceability/internal/traceability/domain"
	"github.com/openorigin/traceability/internal/traceability/repository"
	"github.com/openorigin/traceability/internal/traceability/usecase/command"
	"github.com/openorigin/traceability/kafka"
	"github.com/openorigin/traceability/pkg/database"
	"github.com/openorigin/traceability/pkg/logger"
	"github.com/openorigin/traceability/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "traceability-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, isDevelopment)

	logLevel := getEnv("LOG_LEVEL", "info")
	logger.SetLevel(logLevel)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Str("log_level", logLevel).
		Msg("Starting traceability service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	// Load database configuration
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "traceabilitydb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Connect to database
	db, err := database.NewGormConnection(dbConfig)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := repository.AutoMigrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}

	logger.Logger.Info().Msg("Database initialized successfully")

	// Initialize Kafka publisher for event notifications
	var publisher *kafka.Publisher
	kafkaBrokers := getEnv("KAFKA_BROKERS", "")
	if kafkaBrokers != "" {
		publisher, err = kafka.NewPublisher(strings.Split(kafkaBrokers, ","))
		if err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("brokers", kafkaBrokers).
				Msg("Failed to connect to Kafka - event publishing will be disabled")
			publisher = nil
		} else {
			logger.Logger.Info().
				Str("brokers", kafkaBrokers).
				Msg("Connected to Kafka for event publishing")
			defer publisher.Close()
		}
	}

	// Initialize Redis for trace report caching
	var redisClient *redis.Client
	redisAddr := getEnv("REDIS_ADDR", "")
	if redisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("redis_addr", redisAddr).
				Msg("Failed to connect to Redis - trace caching will be disabled")
			redisClient = nil
		} else {
			logger.Logger.Info().
				Str("redis_addr", redisAddr).
				Msg("Connected to Redis for trace caching")
		}
	}

	// Initialize handler with Wire DI
	traceHandler, err := traceability.InitializeHandler(db, publisher, redisClient)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().Msg("Traceability handler initialized")

	// Start Kafka consumer for event submissions
	if kafkaBrokers != "" {
		consumer := startEventConsumer(db, strings.Split(kafkaBrokers, ","))
		if consumer != nil {
			defer consumer.Close()
		}
	}

	// Middleware configuration
	middlewareConfig := delivery.DefaultMiddlewareConfig()
	middlewareConfig.EnableAuth = getEnv("AUTH_ENABLED", "false") == "true"

	// Start HTTP server in a goroutine
	httpPort := getEnv("HTTP_PORT", "8084")
	go startHTTPServer(traceHandler, middlewareConfig, sqlDB, httpPort)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")
}

// startEventConsumer wires submitted event documents into the same write path
// the HTTP API uses. Malformed documents are rejected by the command handler
// and logged by the consumer; the offset is committed either way.
func startEventConsumer(db *gorm.DB, brokers []string) *kafka.Consumer {
	groupID := getEnv("KAFKA_CONSUMER_GROUP", "traceability-service")
	consumer, err := kafka.NewConsumer(brokers, groupID, []string{kafka.TopicEventSubmissions})
	if err != nil {
		logger.Logger.Warn().
			Err(err).
			Str("group_id", groupID).
			Msg("Failed to create Kafka consumer - event ingestion will be disabled")
		return nil
	}

	recordEvent := traceability.ProvideRecordEventHandler(
		traceability.ProvideEventRepository(db),
		traceability.ProvideTxManager(db),
	)

	consumer.RegisterHandler(kafka.MessageTypeEventSubmitted, func(ctx context.Context, msg kafka.EventSubmittedMessage) error {
		var event domain.Event
		if err := json.Unmarshal(msg.Document, &event); err != nil {
			return fmt.Errorf("decoding submitted event document: %w", err)
		}
		// The producing actor owns the submission regardless of what the
		// document claims.
		event.ActorID = msg.ActorID

		_, err := recordEvent.Handle(ctx, command.RecordEventCommand{Event: event})
		return err
	})

	if err := consumer.Start(context.Background()); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to start Kafka consumer")
		consumer.Close()
		return nil
	}

	logger.Logger.Info().
		Str("group_id", groupID).
		Str("topic", kafka.TopicEventSubmissions).
		Msg("Kafka consumer started for event submissions")

	return consumer
}

func startHTTPServer(handler *delivery.TraceabilityHandler, middlewareConfig *delivery.MiddlewareConfig, db *sql.DB, port string) {
	// Setup router
	router := mux.NewRouter()

	// Register all middlewares using middleware registration system
	delivery.RegisterMiddlewares(router, middlewareConfig)

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Swagger documentation
	delivery.RegisterSwaggerDocs(router, httpSwagger.Handler())

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// CORS middleware
	corsHandler := delivery.SetupCORS(middlewareConfig)

	logger.Logger.Info().
		Str("port", port).
		Str("metrics_endpoint", "/metrics").
		Str("swagger_endpoint", "/swagger/index.html").
		Msg("HTTP server started")

	if err := http.ListenAndServe(":"+port, corsHandler(router)); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
