/*
 * Database Adapter
 *
 * This package is responsible for establishing and configuring the connection
 * to the PostgreSQL database used by the match-history sink. It includes
 * connection pooling settings for performance and resilience; schema
 * migration is done by the repository, not here. Live game state is never
 * read from or written here.
 */
package db

import (
	"fmt"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitializeDatabase configures and returns a GORM DB instance for the
// match-history sink. Connection parameters come from DB_HOST/DB_USER/
// DB_PASSWORD/DB_NAME/DB_PORT; callers should treat a non-nil error as
// "run without persistence" rather than fatal, since live game state never
// depends on it.
func InitializeDatabase() (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return gdb, nil
}
