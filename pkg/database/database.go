package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type PoolOptions struct {
	MaxOpenConnections int
	MaxIdleConnections int
	ConnMaxLife        time.Duration
}

func GormOpen(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

// ConfigurePool applies connection pool limits; zero values keep the driver defaults.
func ConfigurePool(db *gorm.DB, options PoolOptions) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access sql.DB: %w", err)
	}

	if options.MaxOpenConnections > 0 {
		sqlDB.SetMaxOpenConns(options.MaxOpenConnections)
	}
	if options.MaxIdleConnections > 0 {
		sqlDB.SetMaxIdleConns(options.MaxIdleConnections)
	}
	if options.ConnMaxLife > 0 {
		sqlDB.SetConnMaxLifetime(options.ConnMaxLife)
	}
	return nil
}

func RunMigrations(db *gorm.DB, entities ...interface{}) error {
	if err := db.AutoMigrate(entities...); err != nil {
		return err
	}
	return nil
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
