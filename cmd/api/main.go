package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Recipe-Box-Backend/cmd/config"
	migration "Recipe-Box-Backend/cmd/database/migrate"
	"Recipe-Box-Backend/internal/utils"
	"Recipe-Box-Backend/internal/utils/logger"
	"Recipe-Box-Backend/pkg/ingredient"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	configPath  = flag.String("config", envOr("CONFIG_PATH", "config.yaml"), "path to the YAML config file")
	migrateOnly = flag.Bool("migrate-only", false, "run migrations and the catalog seed, then exit")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		logger.L.Error("server stopped", zap.Error(err))
		logger.Sync()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	if err := migration.Migrate(db); err != nil {
		return err
	}

	if err := seedIngredients(ctx, db, cfg.PredefinedIngredientsPath); err != nil {
		return err
	}

	if *migrateOnly {
		return nil
	}

	app, accessLog, err := config.NewApp(ctx, db, cfg)
	if err != nil {
		return err
	}
	defer accessLog.Close()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.L.Warn("shutdown", zap.Error(err))
		}
	}()

	logger.L.Info("listening", zap.String("port", cfg.AppPort), zap.String("db_driver", cfg.DBDriver))
	return app.Listen(":" + cfg.AppPort)
}

// seedIngredients loads the predefined catalog when a path is configured.
// SeedPredefined reports the result.
func seedIngredients(ctx context.Context, db *gorm.DB, path string) error {
	if path == "" {
		return nil
	}
	service := ingredient.NewIngredientService(ingredient.NewIngredientRepository(db))
	_, err := service.SeedPredefined(ctx, path)
	return err
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
