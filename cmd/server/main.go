// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	checkinRouter "github.com/festy23/event_checkin/internal/checkin/router"
	appConfig "github.com/festy23/event_checkin/internal/config"
	dbConfig "github.com/festy23/event_checkin/internal/database/config"
	"github.com/festy23/event_checkin/internal/database/database"
	"github.com/festy23/event_checkin/internal/database/migrate"
	"github.com/festy23/event_checkin/internal/health"
	"github.com/festy23/event_checkin/internal/metrics"
	"github.com/festy23/event_checkin/internal/middleware"
	rosterRepository "github.com/festy23/event_checkin/internal/roster/repository"
	rosterService "github.com/festy23/event_checkin/internal/roster/service"
	statisticsRouter "github.com/festy23/event_checkin/internal/statistics/router"
	"github.com/festy23/event_checkin/pkg/logger"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := appConfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, sugar); err != nil {
		sugar.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg appConfig.Config, sugar *zap.SugaredLogger) error {
	gin.SetMode(cfg.GinMode)

	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			sugar.Warnw("failed to close database", "error", err)
		}
	}()

	if err := migrate.Migrate(ctx, db, dbCfg.Driver); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	sugar.Infow("database ready", "driver", dbCfg.Driver)

	m := metrics.New()

	if cfg.Roster.ImportOnStart {
		importer := rosterService.New(rosterRepository.New(db, sugar), db, cfg.Roster, m, sugar)
		if _, err := importer.ImportIfEmpty(ctx); err != nil {
			sugar.Errorw("roster import failed, serving existing data", "error", err)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.GetAddress(),
		Handler:      newRouter(db, dbCfg.Driver, cfg.Roster, m, sugar),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		sugar.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	sugar.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// newRouter assembles middleware and every module's routes.
func newRouter(
	db *gorm.DB,
	driver string,
	roster appConfig.RosterConfig,
	m *metrics.Metrics,
	sugar *zap.SugaredLogger,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(sugar, m), middleware.Recovery(sugar))

	checkinRouter.RegisterRoutes(r, db, roster, m, sugar)
	statisticsRouter.RegisterRoutes(r, db, sugar)

	r.GET("/health", health.New(db, driver, sugar).Check)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	return r
}
