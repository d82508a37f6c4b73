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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/johnquangdev/interview-realtime/pkg/validator"

	_ "github.com/johnquangdev/interview-realtime/docs"
	"github.com/johnquangdev/interview-realtime/internal/adapter/handler"
	"github.com/johnquangdev/interview-realtime/internal/adapter/repository"
	"github.com/johnquangdev/interview-realtime/internal/domain/entities"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/cache"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/database"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/external/livekit"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/queue"
	"github.com/johnquangdev/interview-realtime/internal/infrastructure/storage"
	"github.com/johnquangdev/interview-realtime/internal/usecase/archive"
	"github.com/johnquangdev/interview-realtime/internal/usecase/authz"
	"github.com/johnquangdev/interview-realtime/internal/usecase/capture"
	"github.com/johnquangdev/interview-realtime/internal/usecase/persistence"
	"github.com/johnquangdev/interview-realtime/internal/usecase/session"
	"github.com/johnquangdev/interview-realtime/pkg/config"
	"github.com/johnquangdev/interview-realtime/pkg/jwt"
)

// @title           Interview Realtime API
// @version         1.0
// @description     Realtime interview rooms over WebSocket: signaling relay, chat, file sharing and recording coordination.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	validator := pkgvalidator.New()
	e.Validator = validator

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("🔧 Initializing dependencies...")

	// Initialize Database
	logger.Info("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			logger.Fatal("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or run cmd/migrate.")
		}
		if err := database.AutoMigrate(db, logger); err != nil {
			logger.Fatal("Failed to run AutoMigrate", zap.Error(err))
		}
	} else {
		logger.Info("🔄 Skipping GORM AutoMigrate; use cmd/migrate for schema migrations")
	}

	// Authorization cache: Redis when enabled, in-process otherwise
	var authzCache cache.Store
	var redisStore *cache.RedisStore
	if cfg.Redis.Enabled {
		logger.Info("📦 Connecting to Redis...")
		redisStore, err = cache.NewRedisStore(ctx, cfg.GetRedisAddr(), cfg.Redis.Password, cfg.Redis.DB, "interview-realtime:")
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisStore.Close()
		authzCache = redisStore
	} else {
		memoryStore := cache.NewMemoryStore()
		defer memoryStore.Close()
		authzCache = memoryStore
	}

	// Initialize object storage for shared files
	logger.Info("🗄️  Connecting to object storage...")
	fileStorage, err := storage.NewMinIOClient(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Initialize repositories
	logger.Info("⚙️  Initializing repositories...")
	chatRepo := repository.NewChatMessageRepository(db)
	fileRepo := repository.NewFileShareRepository(db)
	recordingRepo := repository.NewRecordingRepository(db)
	metricsRepo := repository.NewMetricsRepository(db)
	memberRepo := repository.NewInterviewParticipantRepository(db)

	// Background persistence workers
	queueCfg := queue.Config{
		Workers:    cfg.Queue.Workers,
		Capacity:   cfg.Queue.Capacity,
		JobTimeout: cfg.Queue.JobTimeout,
		MaxElapsed: cfg.Queue.MaxElapsed,
	}
	// workers outlive the signal context so queued writes drain on shutdown
	persistQueue := queue.New(queueCfg, logger.Named("persistence"))
	persistQueue.Start(context.Background())

	// Capture calls for one recording must not overtake each other
	captureCfg := queueCfg
	captureCfg.Workers = 1
	captureQueue := queue.New(captureCfg, logger.Named("capture"))
	captureQueue.Start(context.Background())

	gateway := persistence.NewGateway(persistQueue, chatRepo, fileRepo, fileStorage, recordingRepo, metricsRepo, logger.Named("persistence"))
	authzService := authz.NewService(memberRepo, authzCache, cfg.Authz.CacheTTL, logger.Named("authz"))

	// Initialize LiveKit recorder
	logger.Info("🎥 Initializing LiveKit recorder...")
	recorder := livekit.NewRecorder(
		cfg.LiveKit.URL,
		cfg.LiveKit.APIKey,
		cfg.LiveKit.APISecret,
		recordingOutput(cfg),
		cfg.LiveKit.UseMock,
	)
	if cfg.LiveKit.UseMock {
		logger.Warn("⚠️  LiveKit running in MOCK mode (no real server needed)")
	} else {
		logger.Info("✅ LiveKit egress configured", zap.String("url", cfg.LiveKit.URL))
	}
	captureService := capture.NewService(recorder, recordingRepo, captureQueue, cfg.LiveKit.OutputPath, logger.Named("capture"))

	// Session hub
	hub := session.NewHub(authzService, gateway, captureService, session.Options{
		ChatHistoryLimit: cfg.Realtime.ChatHistoryLimit,
		JoinHistorySize:  cfg.Realtime.JoinHistorySize,
		HealthInterval:   cfg.Realtime.HealthInterval,
		Thresholds: entities.QualityThresholds{
			MaxPacketLoss: cfg.Realtime.QualityMaxPacketLoss,
			MaxLatency:    cfg.Realtime.QualityMaxLatency,
		},
	}, logger.Named("session"))
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go hub.Run(hubCtx)

	// Handlers
	verifier := jwt.NewVerifier(cfg.JWT.AccessSecret, cfg.JWT.Issuer)
	realtimeHandler := handler.NewRealtime(hub, validator, cfg.Realtime, cfg.Server.AllowedOrigins, logger.Named("realtime"))
	adminHandler := handler.NewAdminHandler(hub, cfg.Server.Environment, logger.Named("admin")).
		WithDependency("storage", fileStorage).
		WithMembershipCache(authzService)
	if redisStore != nil {
		adminHandler.WithDependency("redis", redisStore)
	}
	archiveHandler := handler.NewArchiveHandler(
		archive.NewService(chatRepo, fileRepo, recordingRepo, metricsRepo, logger.Named("archive")),
		logger.Named("archive"),
	)
	webhookHandler := handler.NewWebhookHandler(
		livekit.NewWebhookReceiver(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret),
		captureService,
		logger.Named("webhook"),
	)

	logger.Info("🛣️  Setting up routes...")
	router := handler.NewRouter(verifier, realtimeHandler, adminHandler, archiveHandler, webhookHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		logger.Info("🚀 Starting server",
			zap.String("addr", addr),
			zap.String("environment", cfg.Server.Environment),
		)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	logger.Info("🛑 Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("❌ Server forced to shutdown", zap.Error(err))
	}

	// hijacked WebSocket connections outlive e.Shutdown
	if err := realtimeHandler.Shutdown(shutdownCtx); err != nil {
		logger.Warn("⚠️ Realtime connections did not drain", zap.Error(err))
	}

	stopHub()
	<-hub.Done()

	captureQueue.Stop()
	persistQueue.Stop()

	logger.Info("✅ Server stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// recordingOutput points egress uploads at the shared object storage
func recordingOutput(cfg *config.Config) *livekit.S3Output {
	scheme := "http"
	if cfg.Storage.UseSSL {
		scheme = "https"
	}
	return &livekit.S3Output{
		AccessKey:      cfg.Storage.AccessKeyID,
		Secret:         cfg.Storage.SecretAccessKey,
		Bucket:         cfg.Storage.BucketName,
		Endpoint:       fmt.Sprintf("%s://%s", scheme, cfg.Storage.Endpoint),
		Region:         "us-east-1",
		ForcePathStyle: true,
	}
}
