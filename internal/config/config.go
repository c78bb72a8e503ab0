package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends understood by Load.
const (
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageGCS      = "gcs"
	StorageMemory   = "memory"
)

// Config holds application configuration
type Config struct {
	// Server
	Port         string
	Env          string
	BusinessName string
	Location     *time.Location
	NodeID       int64

	// Storage
	StorageBackend string
	SQLitePath     string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	GCSBucket      string
	GCSPrefix      string
	MigrationsDir  string

	// Ledger
	AllowNegativeStock bool
	ResetState         bool

	// Auth
	JWTSecret           string
	JWTExpirationDur    time.Duration
	AuthAccounts        string
	DevAdminPassword    string
	DevCashierPassword  string
	DevSalesmanPassword string
	BackupAPIKey        string

	// Insights
	GeminiAPIKey    string
	GeminiModel     string
	InsightsTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("ENV", "development"),
		BusinessName: getEnv("BUSINESS_NAME", "Mughal Enterprise"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", StorageSQLite)),
		SQLitePath:     getEnv("SQLITE_PATH", "mughal.db"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "mughal"),
		DBPassword:     getEnv("DB_PASSWORD", "mughal"),
		DBName:         getEnv("DB_NAME", "mughal"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
		GCSPrefix:      getEnv("GCS_PREFIX", "mughal/"),
		MigrationsDir:  getEnv("MIGRATIONS_DIR", "migrations"),

		JWTSecret:    getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		AuthAccounts: os.Getenv("AUTH_ACCOUNTS"),
		BackupAPIKey: os.Getenv("BACKUP_API_KEY"),

		DevAdminPassword:    os.Getenv("DEV_ADMIN_PASSWORD"),
		DevCashierPassword:  os.Getenv("DEV_CASHIER_PASSWORD"),
		DevSalesmanPassword: os.Getenv("DEV_SALESMAN_PASSWORD"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}

	switch config.StorageBackend {
	case StorageSQLite, StoragePostgres, StorageMemory:
	case StorageGCS:
		if config.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when STORAGE_BACKEND=gcs")
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_BACKEND %q: must be sqlite, postgres, gcs, or memory", config.StorageBackend)
	}

	allowNegative, err := parseBool(os.Getenv("ALLOW_NEGATIVE_STOCK"), true)
	if err != nil {
		return nil, fmt.Errorf("invalid ALLOW_NEGATIVE_STOCK value: %w", err)
	}
	config.AllowNegativeStock = allowNegative

	resetState, err := parseBool(os.Getenv("RESET_STATE"), false)
	if err != nil {
		return nil, fmt.Errorf("invalid RESET_STATE value: %w", err)
	}
	config.ResetState = resetState

	expStr := getEnv("JWT_EXPIRES_IN", "12h")
	expDur, err := time.ParseDuration(expStr)
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRES_IN value '%s', falling back to 12h\n", expStr)
		expDur = 12 * time.Hour
	}
	config.JWTExpirationDur = expDur

	timeout, err := parseTimeout(os.Getenv("INSIGHTS_TIMEOUT"), 15*time.Second)
	if err != nil {
		return nil, err
	}
	config.InsightsTimeout = timeout

	nodeID, err := strconv.ParseInt(getEnv("NODE_ID", "1"), 10, 64)
	if err != nil || nodeID < 0 || nodeID > 1023 {
		return nil, fmt.Errorf("invalid NODE_ID %q: must be 0-1023", os.Getenv("NODE_ID"))
	}
	config.NodeID = nodeID

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	config.Location = loc

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// PostgresURL returns the migrate-style connection URL for the postgres backend.
func (c *Config) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseTimeout(s string, defaultVal time.Duration) (time.Duration, error) {
	if s == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid INSIGHTS_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("INSIGHTS_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseBool(s string, defaultVal bool) (bool, error) {
	if s == "" {
		return defaultVal, nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}
