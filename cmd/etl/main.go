package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dwh/etl/internal/application/cleanse"
	"github.com/dwh/etl/internal/domain/bronze"
	"github.com/dwh/etl/internal/infrastructure/config"
	"github.com/dwh/etl/internal/infrastructure/extract"
	"github.com/dwh/etl/internal/infrastructure/logger"
	"github.com/dwh/etl/internal/infrastructure/persistence"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting warehouse ETL",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("source", cfg.Pipeline.Source),
	)

	// Database connection with a zap-backed GORM logger
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to migrate warehouse schema", zap.Error(err))
	}

	var source bronze.Source
	switch cfg.Pipeline.Source {
	case "csv":
		source = extract.NewCSVSource(cfg.Extract.Dir, rune(cfg.Extract.Delimiter[0]), cfg.Extract.MaxFileSize, log)
	default:
		source = persistence.NewGormBronzeSource(db.DB)
	}
	sink := persistence.NewGormSilverSink(db.DB)

	pipeline := cleanse.NewPipeline(source, sink, log, cleanse.Config{
		MinDate:         cfg.Pipeline.MinDate,
		MaxDate:         cfg.Pipeline.MaxDate,
		MaxReportIssues: cfg.Pipeline.MaxReportIssues,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := pipeline.Run(ctx)
	if err != nil {
		log.Fatal("Pipeline run failed", zap.Error(err))
	}

	if result.Report.HasIssues() {
		log.Warn("Pipeline finished with data quality issues",
			zap.Int("total_issues", result.Report.TotalIssues()))
		os.Exit(0)
	}
	log.Info("Pipeline finished clean")
}
