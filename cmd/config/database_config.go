package config

import (
	"fmt"

	"Recipe-Box-Backend/internal/utils"
	"Recipe-Box-Backend/internal/utils/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func ConnectDB(config utils.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case utils.DBDriverSQLite:
		dialector = sqlite.Open(config.DBPath + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
			config.DBHost,
			config.DBUser,
			config.DBPassword,
			config.DBName,
			config.DBPort,
			config.DBTimeZone,
		)
		dialector = postgres.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		logger.L.Error("database connection failed", zap.String("driver", config.DBDriver), zap.Error(err))
		return nil, err
	}
	return db, nil
}
