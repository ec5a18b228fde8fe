package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"catalog-sync-service/internal/logging"
	"catalog-sync-service/internal/models"
)

// Connect opens the catalog database. Postgres URLs/DSNs go through the pgx
// driver; "sqlite:" or "file:" URLs open a local SQLite database, which is
// only meant for development and tests.
func Connect(databaseURL, environment string) (*gorm.DB, error) {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Error
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		// the mirror receives brands, categories and products in any order
		DisableForeignKeyConstraintWhenMigrating: true,
	}

	if isSQLite(databaseURL) {
		return ConnectSQLite(strings.TrimPrefix(databaseURL, "sqlite:"), gormConfig)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	logging.Base().Info("database connected")
	return db, nil
}

// ConnectSQLite opens a SQLite database. SQLite allows a single writer, so
// the pool is pinned to one connection.
func ConnectSQLite(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	if gormConfig == nil {
		gormConfig = &gorm.Config{
			Logger:                                   logger.Default.LogMode(logger.Silent),
			DisableForeignKeyConstraintWhenMigrating: true,
		}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func isSQLite(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "sqlite:") || strings.HasPrefix(databaseURL, "file:")
}

// Migrate creates or updates the catalog schema
func Migrate(db *gorm.DB) error {
	log := logging.Base()
	log.Info("starting database migrations")

	modelsToMigrate := []struct {
		name  string
		model interface{}
	}{
		{"Brand", &models.Brand{}},
		{"Category", &models.Category{}},
		{"Product", &models.Product{}},
		{"Variant", &models.Variant{}},
		{"Channel", &models.Channel{}},
		{"ChannelProduct", &models.ChannelProduct{}},
		{"CategoryProduct", &models.CategoryProduct{}},
		{"FiltersProduct", &models.FiltersProduct{}},
	}
	for _, m := range modelsToMigrate {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("failed to auto-migrate %s: %w", m.name, err)
		}
		log.WithField("model", m.name).Debug("model migrated")
	}

	// AutoMigrate does not add indexes to existing tables and the upserts
	// need them as ON CONFLICT targets.
	if err := ensureUniqueIndexes(db); err != nil {
		return fmt.Errorf("failed to create unique indexes: %w", err)
	}

	log.Info("database migrations complete")
	return nil
}

func ensureUniqueIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_channel_products_pair ON channel_products (channel_id, product_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_category_products_pair ON category_products (product_id, category_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_filters_products_pair ON filters_products (product_id, category_id)",
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
