package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"
	"trip-planner-service/internal/adapters/repositories"
	"trip-planner-service/internal/config"
	"trip-planner-service/internal/platform/db"
	"trip-planner-service/internal/platform/logging"

	"go.uber.org/zap"
)

// dbtool prepares the plan archive schema and optionally prunes old plans.
func main() {
	retention := flag.Duration("prune-older-than", 0, "delete archived plans older than this duration (0 keeps everything)")
	flag.Parse()

	cfg, loadedDotEnv, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel, "console")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	if !loadedDotEnv {
		logger.Info("no .env file found, using environment variables")
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		logger.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	logger.Info("initializing plan archive schema")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		logger.Fatal("schema initialization failed", zap.Error(err))
	}
	logger.Info("schema ready")

	if *retention > 0 {
		cutoff := time.Now().Add(-*retention)
		n, err := repositories.NewPostgresPlanArchive(conn).DeleteBefore(ctx, cutoff)
		if err != nil {
			logger.Fatal("prune failed", zap.Error(err))
		}
		logger.Info("pruned archived plans", zap.Int64("deleted", n), zap.Time("cutoff", cutoff))
	}
}
