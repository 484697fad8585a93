package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"luxelush/internal/config"
	"luxelush/internal/db"
	"luxelush/internal/logger"
	"luxelush/internal/seed"
)

func main() {
	config.Load()
	cfg := config.FromEnv()

	log, err := logger.New(cfg.Env)
	if err != nil {
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := seed.Apply(ctx, pool, log); err != nil {
		log.Fatal("seed apply", zap.Error(err))
	}

	log.Info("seed applied")
}
