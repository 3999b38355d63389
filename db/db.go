package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the Postgres connection with a retry loop so the service
// can start before the database container is ready. TranslateError is on
// so unique-constraint violations surface as gorm.ErrDuplicatedKey, which
// the completion uniqueness handling depends on.
func Connect(dsn string) error {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	maxRetries := 10
	var err error

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormLogger,
			NowFunc: func() time.Time {
				return time.Now().UTC()
			},
			PrepareStmt:    true,
			TranslateError: true,
		})

		if err == nil {
			sqlDB, dbErr := DB.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					sqlDB.SetMaxIdleConns(10)
					sqlDB.SetMaxOpenConns(100)
					sqlDB.SetConnMaxLifetime(time.Hour)
					return nil
				}
			}
		}

		fmt.Printf("Waiting for database connection... (attempt %d/%d)\n", i+1, maxRetries)
		time.Sleep(2 * time.Second)
	}

	return fmt.Errorf("connect to database after %d attempts: %w", maxRetries, err)
}
