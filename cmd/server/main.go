package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	accountingapp "github.com/simpleaccounting/backend/internal/application/accounting"
	workspaceapp "github.com/simpleaccounting/backend/internal/application/workspace"
	"github.com/simpleaccounting/backend/internal/domain/accounting"
	"github.com/simpleaccounting/backend/internal/domain/shared"
	"github.com/simpleaccounting/backend/internal/domain/shared/valueobject"
	"github.com/simpleaccounting/backend/internal/infrastructure/auth"
	"github.com/simpleaccounting/backend/internal/infrastructure/cache"
	"github.com/simpleaccounting/backend/internal/infrastructure/config"
	"github.com/simpleaccounting/backend/internal/infrastructure/logger"
	"github.com/simpleaccounting/backend/internal/infrastructure/persistence"
	"github.com/simpleaccounting/backend/internal/infrastructure/storage"
	"github.com/simpleaccounting/backend/internal/infrastructure/telemetry"
	"github.com/simpleaccounting/backend/internal/interfaces/http/handler"
	"github.com/simpleaccounting/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting accounting backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	// Initialize tracing
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracing", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed GORM logger
	gormLog := logger.NewDBLogger(log, logger.DBLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbTracingCfg := telemetry.DefaultDBTracingConfig()
		dbTracingCfg.Enabled = true
		dbTracing := telemetry.NewDBTracingPlugin(dbTracingCfg, log)
		if err := dbTracing.Register(db.DB); err != nil {
			log.Fatal("Failed to register database tracing", zap.Error(err))
		}
	}

	// Repositories
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	incomeRepo := persistence.NewGormIncomeRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	taxRepo := persistence.NewGormTaxRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	workspaceRepo := persistence.NewGormWorkspaceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Workspace settings cache backed by redis, falling back to the
	// repository when redis is unavailable
	settingsCache, err := cache.NewWorkspaceSettingsCache(cfg.Redis, workspaceRepo)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := settingsCache.Close(); err != nil {
			log.Error("Error closing redis client", zap.Error(err))
		}
	}()

	// Object storage
	var objectStorage accountingapp.ObjectStorageService
	switch cfg.Storage.Provider {
	case "s3":
		s3Storage, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		if err := s3Storage.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		objectStorage = s3Storage
	default:
		log.Warn("Using stub object storage; presigned URLs are not real",
			zap.String("provider", cfg.Storage.Provider))
		objectStorage = storage.NewStubObjectStorage()
	}

	// Domain services
	catalog := valueobject.NewISOCurrencyCatalog()
	engine := accounting.NewAmountsEngine(catalog)
	clock := shared.SystemClock{}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := workspaceapp.NewAuthService(userRepo, workspaceRepo, jwtService, catalog, log)
	workspaceService := workspaceapp.NewWorkspaceService(workspaceRepo, userRepo, catalog, settingsCache, log)
	expenseService := accountingapp.NewExpenseService(expenseRepo, taxRepo, settingsCache, engine, catalog)
	incomeService := accountingapp.NewIncomeService(incomeRepo, invoiceRepo, taxRepo, settingsCache, engine, catalog)
	invoiceService := accountingapp.NewInvoiceService(invoiceRepo, customerRepo, catalog, clock)
	referenceService := accountingapp.NewReferenceService(customerRepo, categoryRepo, taxRepo)
	documentService := accountingapp.NewDocumentService(documentRepo, objectStorage)
	statisticsService := accountingapp.NewStatisticsService(expenseRepo, incomeRepo, settingsCache, catalog)

	// HTTP layer
	engineHTTP := router.NewEngine(cfg, log, jwtService)
	r := router.NewRouter(engineHTTP, router.WithAPIVersion("v1"))
	r.RegisterPublic(handler.NewSystemHandler(db.DB, log))
	r.Register(handler.NewAuthHandler(authService, cfg.Cookie, log)).
		Register(handler.NewWorkspaceHandler(workspaceService, log)).
		Register(handler.NewExpenseHandler(expenseService, log)).
		Register(handler.NewIncomeHandler(incomeService, log)).
		Register(handler.NewInvoiceHandler(invoiceService, log)).
		Register(handler.NewReferenceHandler(referenceService, log)).
		Register(handler.NewDocumentHandler(documentService, log)).
		Register(handler.NewStatisticsHandler(statisticsService, log))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engineHTTP,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
