package persistence

import (
	"context"
	"fmt"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/spec-kit/ticket-tracker/internal/config"
)

// OpenGorm opens a GORM handle for the sqlite and mysql store drivers.
func OpenGorm(cfg config.StoreConfig, logger *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case config.StoreDriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	case config.StoreDriverMySQL:
		if cfg.MySQLDSN == "" {
			return nil, fmt.Errorf("MYSQL_DSN not provided")
		}
		dialector = mysql.Open(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("store driver %q is not served by gorm", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.StoreDriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// One connection keeps ":memory:" databases shared and the
		// foreign_keys pragma in effect for every statement.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}

	logger.Info("connected to gorm store", zap.String("driver", cfg.Driver))
	return db, nil
}

// CloseGorm releases the connection pool behind db.
func CloseGorm(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// PingGorm verifies the connection behind db.
func PingGorm(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("gorm store not configured")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
