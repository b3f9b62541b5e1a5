package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apprates "github.com/ratehub/backend/internal/application/rates"
	"github.com/ratehub/backend/internal/infrastructure/cache"
	"github.com/ratehub/backend/internal/infrastructure/config"
	"github.com/ratehub/backend/internal/infrastructure/logger"
	"github.com/ratehub/backend/internal/infrastructure/persistence"
	"github.com/ratehub/backend/internal/infrastructure/telemetry"
	"github.com/ratehub/backend/internal/interfaces/http/handler"
	"github.com/ratehub/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting rate engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing is optional; a disabled provider installs a no-op tracer
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
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
	if tracerProvider.IsEnabled() {
		log.Info("Tracing enabled",
			zap.String("collector", cfg.Telemetry.CollectorEndpoint),
			zap.Float64("sampling_ratio", cfg.Telemetry.SamplingRatio),
		)
	}

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
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

	// Redis backs bulk edit idempotency; without it retried edits can
	// fan out twice across instances, so the fallback is logged loudly
	idemStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idemStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Repositories
	roomRepo := persistence.NewGormRoomTypeRepository(db.DB)
	mealRepo := persistence.NewGormMealPlanRepository(db.DB)
	marketRepo := persistence.NewGormMarketRepository(db.DB)
	seasonRepo := persistence.NewGormSeasonRepository(db.DB)
	rateRepo := persistence.NewGormRateRepository(db.DB)

	// Application services
	sheetService := apprates.NewRateSheetService(roomRepo, mealRepo, marketRepo, seasonRepo, rateRepo)
	bulkService := apprates.NewBulkEditService(roomRepo, marketRepo, seasonRepo, rateRepo, idemStore, log)
	roomTypeService := apprates.NewRoomTypeService(roomRepo)
	mealPlanService := apprates.NewMealPlanService(mealRepo)
	marketService := apprates.NewMarketService(marketRepo)
	seasonService := apprates.NewSeasonService(seasonRepo)

	engine := router.NewEngine(cfg, log)
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewSystemHandler(db)).
		Register(handler.NewRateSheetHandler(sheetService)).
		Register(handler.NewBulkEditHandler(bulkService)).
		Register(handler.NewRoomTypeHandler(roomTypeService)).
		Register(handler.NewSettingsHandler(mealPlanService, marketService, seasonService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
