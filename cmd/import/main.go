// Package main provides a one-shot roster import command.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	appConfig "github.com/festy23/event_checkin/internal/config"
	dbConfig "github.com/festy23/event_checkin/internal/database/config"
	"github.com/festy23/event_checkin/internal/database/database"
	"github.com/festy23/event_checkin/internal/database/migrate"
	"github.com/festy23/event_checkin/internal/metrics"
	rosterRepository "github.com/festy23/event_checkin/internal/roster/repository"
	rosterService "github.com/festy23/event_checkin/internal/roster/service"
	"github.com/festy23/event_checkin/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", "", "directory holding the room spreadsheets and CSV (overrides ROSTER_DIR)")
	csvFile := flag.String("csv", "", "fallback roster CSV (overrides ROSTER_CSV)")
	ifEmpty := flag.Bool("if-empty", false, "import only when no students are stored")
	flag.Parse()

	cfg, err := appConfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *dir != "" {
		cfg.Roster.Dir = *dir
	}
	if *csvFile != "" {
		cfg.Roster.CSVFile = *csvFile
	}
	if err := cfg.Roster.Validate(); err != nil {
		log.Fatalf("invalid roster config: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg.Roster, *ifEmpty, sugar); err != nil {
		sugar.Errorw("import failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, roster appConfig.RosterConfig, ifEmpty bool, sugar *zap.SugaredLogger) error {
	dbCfg := dbConfig.LoadConfigFromEnv()
	db, err := database.NewWithConfig(ctx, dbCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(db) }()

	if err := migrate.Migrate(ctx, db, dbCfg.Driver); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	svc := rosterService.New(rosterRepository.New(db, sugar), db, roster, metrics.New(), sugar)
	importFn := svc.Import
	if ifEmpty {
		importFn = svc.ImportIfEmpty
	}

	summary, err := importFn(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("source=%s teams=%d students=%d rows=%d skipped=%d\n",
		summary.Source, summary.TeamsInserted, summary.StudentsInserted, summary.RowsRead, summary.RowsSkipped)
	return nil
}
