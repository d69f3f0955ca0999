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

	pkgvalidator "github.com/sehatsaathi/voicecare/pkg/validator"

	"github.com/sehatsaathi/voicecare/internal/adapter/handler"
	"github.com/sehatsaathi/voicecare/internal/adapter/repository"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/cache"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/database"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/notify"
	"github.com/sehatsaathi/voicecare/internal/infrastructure/storage"
	"github.com/sehatsaathi/voicecare/internal/usecase/alert"
	"github.com/sehatsaathi/voicecare/internal/usecase/asr"
	"github.com/sehatsaathi/voicecare/internal/usecase/asr/google"
	"github.com/sehatsaathi/voicecare/internal/usecase/audio"
	"github.com/sehatsaathi/voicecare/internal/usecase/pipeline"
	"github.com/sehatsaathi/voicecare/internal/usecase/risk"
	"github.com/sehatsaathi/voicecare/internal/usecase/visit"
	pkgai "github.com/sehatsaathi/voicecare/pkg/ai"
	"github.com/sehatsaathi/voicecare/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.NewValidator()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "X-User-ID"},
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations at boot only when explicitly enabled in config.
	// Production deployments run the migrate script instead.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with the migrate script.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db, logger); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping boot-time migrations; use the migrate script in CI/CD/production")
	}

	// Initialize alert deduplication store. Redis backs it in deployments,
	// the in-memory store keeps single-node development working without one.
	var deduper cache.Deduper
	if cfg.Redis.Enabled {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		deduper = redisStore
	} else {
		log.Println("⚠️  Redis disabled, using in-memory alert deduplication")
		deduper = cache.NewMemoryStore()
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	workerRepo := repository.NewWorkerRepository(db)
	beneficiaryRepo := repository.NewBeneficiaryRepository(db)
	healthLogRepo := repository.NewHealthLogRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	alertRepo := repository.NewAlertRepository(db)

	// Initialize clip archive
	var archive pipeline.ClipArchiver
	if cfg.Storage.Enabled {
		log.Println("🗄️  Connecting to object storage...")
		minioClient, err := storage.NewMinIOClient(&cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to connect to object storage: %v", err)
		}
		archive = minioClient
	} else {
		log.Println("⚠️  Object storage disabled, voice clips will not be archived")
	}

	// Initialize notify intent publisher
	var notifier notify.Notifier
	if cfg.Kafka.Enabled {
		log.Println("📣 Connecting to Kafka...")
		kafkaNotifier := notify.NewKafkaNotifier(&cfg.Kafka, logger)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	} else {
		notifier = notify.NewLogNotifier(logger)
	}

	// Initialize AI components
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	extractor := visit.NewExtractor(groqClient, logger)
	classifier := risk.NewClassifier(groqClient, logger)

	// Initialize speech recognition. The recognizer loads lazily on the
	// first transcription request, not at startup.
	log.Println("🎙️  Initializing speech engine...")
	loader := func(ctx context.Context) (asr.Recognizer, error) {
		return google.New(ctx, cfg.Speech.DefaultLanguage)
	}
	engine := asr.NewEngine(loader, cfg.Speech.LoadTimeout, cfg.Speech.Timeout, logger)

	transcoder := audio.NewTranscoder(&cfg.FFmpeg, logger)
	resolver := visit.NewResolver(beneficiaryRepo, visit.NewSubstringMatcher(), logger)
	riskEngine := risk.NewEngine()

	// Initialize escalation manager
	log.Println("🚨 Initializing escalation manager...")
	escalation := alert.NewManager(alertRepo, deduper, notifier, cfg.Alerts.DedupWindow, logger)

	// Initialize pipeline service
	log.Println("🔗 Initializing voice pipeline...")
	pipelineService := pipeline.NewService(
		transcoder,
		engine,
		extractor,
		resolver,
		riskEngine,
		classifier,
		escalation,
		workerRepo,
		beneficiaryRepo,
		healthLogRepo,
		visitRepo,
		pipeline.Options{
			Archive:         archive,
			DefaultLanguage: cfg.Speech.DefaultLanguage,
			Threshold:       cfg.Alerts.EscalationThreshold,
		},
		logger,
	)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	dev := cfg.IsDevelopment()
	voiceHandler := handler.NewVoice(pipelineService, logger, dev)
	riskHandler := handler.NewRisk(pipelineService, logger, dev)
	alertHandler := handler.NewAlert(escalation, workerRepo, beneficiaryRepo, logger, dev)
	log.Println("✅ Handlers initialized successfully")

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, voiceHandler, riskHandler, alertHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
