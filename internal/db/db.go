package db

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"miniinventory/internal/config"
	"miniinventory/internal/model"
)

// Open connects to the backend selected by cfg.DBDriver.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel(cfg.DBLogLevel))}

	switch cfg.DBDriver {
	case "", "sqlite":
		return NewSQLite(cfg.SQLitePath, gcfg)
	case "mysql":
		return NewMySQL(cfg.MySQLDSN, gcfg)
	case "postgres":
		return NewPostgres(cfg.PostgresDSN, gcfg)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// NewSQLite opens (creating if absent) the store file at path.
func NewSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=busy_timeout(5000)"), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return singleConn(db)
}

// NewMySQL returns a connected GORM DB instance.
func NewMySQL(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect mysql: %w", err)
	}
	return singleConn(db)
}

// NewPostgres returns a connected GORM DB instance.
func NewPostgres(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return singleConn(db)
}

// Migrate creates the products and users tables when missing.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Product{}, &model.User{}); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// The store is used by one process at a time; one connection keeps
// statements strictly sequential against the backing file.
func singleConn(db *gorm.DB) (*gorm.DB, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
