package main

import (
	"context"
	"flag"
	"log"

	"classics-study/internal/config"
	"classics-study/internal/database"
	"classics-study/internal/logger"

	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back the latest migration instead of applying")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	if !cfg.HistoryEnabled() {
		l.Fatal("db.path is not set; nothing to migrate")
	}

	db, err := database.NewSQLXSQLiteDB(context.Background(), cfg.DB.Path)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *down {
		if err := database.RollbackMigrations(db.DB); err != nil {
			l.Fatal("Failed to roll back migration", zap.Error(err))
		}
		l.Info("Rolled back latest migration", zap.String("path", cfg.DB.Path))
		return
	}

	if err := database.RunMigrations(db.DB); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations applied", zap.String("path", cfg.DB.Path))
}
