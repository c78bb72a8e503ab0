package database

import (
	"fmt"

	"mughal/internal/config"
)

// postgresDSN returns the key/value connection string used by the gorm driver.
func postgresDSN(cfg *config.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

// sqliteDSN enables foreign keys and a busy timeout so concurrent requests
// wait for the write lock instead of failing.
func sqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
}
