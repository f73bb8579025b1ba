package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	"github.com/mamadbah2/tco/internal/config"
	"github.com/mamadbah2/tco/internal/repository"
	"github.com/mamadbah2/tco/internal/repository/cache"
	"github.com/mamadbah2/tco/internal/repository/memory"
	"github.com/mamadbah2/tco/internal/repository/mongodb"
	"github.com/mamadbah2/tco/internal/repository/sheets"
	"github.com/mamadbah2/tco/internal/repository/sqlite"
	"github.com/mamadbah2/tco/internal/scheduler"
	"github.com/mamadbah2/tco/internal/server/handlers"
	"github.com/mamadbah2/tco/internal/server/router"
	calculatorsvc "github.com/mamadbah2/tco/internal/service/calculator"
	reportingsvc "github.com/mamadbah2/tco/internal/service/reporting"
	scenariosvc "github.com/mamadbah2/tco/internal/service/scenarios"
	"github.com/mamadbah2/tco/pkg/logger"
	"github.com/mamadbah2/tco/pkg/tco"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx := context.Background()

	scenarioRepo, err := openRepository(ctx, cfg)
	if err != nil {
		baseLogger.Fatal("failed to init scenario repository", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := scenarioRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close scenario repository", zap.Error(err))
		}
	}()
	baseLogger.Info("scenario repository ready", zap.String("driver", cfg.Storage.Driver))

	calcCache := openCache(ctx, cfg.Cache, baseLogger.Named("repo.cache"))
	defer func() { _ = calcCache.Close() }()

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets credentials missing, export disabled")
	}

	search := tco.DefaultSearchConfig()
	search.HorizonYears = cfg.Engine.BreakevenHorizonYears

	calculatorSvc := calculatorsvc.NewService(calcCache, cfg.Cache.TTL, search, baseLogger.Named("svc.calculator"))
	scenarioSvc := scenariosvc.NewService(scenarioRepo, baseLogger.Named("svc.scenarios"))
	reportingSvc := reportingsvc.NewService(scenarioSvc, sheetsRepo, baseLogger.Named("svc.reporting"))

	tcoHandler := handlers.NewTCOHandler(calculatorSvc, baseLogger.Named("handlers.tco"))
	scenarioHandler := handlers.NewScenarioHandler(scenarioSvc, reportingSvc, baseLogger.Named("handlers.scenarios"))
	engine := router.New(tcoHandler, scenarioHandler, baseLogger.Named("router"))

	sched, err := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openRepository(ctx context.Context, cfg *config.Config) (repository.ScenarioRepository, error) {
	switch cfg.Storage.Driver {
	case config.StorageSQLite:
		return sqlite.NewRepository(ctx, cfg.Storage.SQLitePath)
	case config.StorageMongoDB:
		return mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
	case config.StorageMemory:
		return memory.NewRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

// openCache connects to Redis when configured and falls back to an
// in-process cache otherwise.
func openCache(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryCache()
	}

	redisCache, err := cache.NewRedisCache(ctx, cfg.RedisAddr, log)
	if err != nil {
		log.Warn("redis unavailable, using in-memory cache", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		return cache.NewMemoryCache()
	}
	log.Info("redis cache enabled", zap.String("addr", cfg.RedisAddr))
	return redisCache
}
