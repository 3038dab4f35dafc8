package config

import (
	"os"
	"strconv"
	"strings"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	DBDriver    string
	SQLitePath  string
	MySQLDSN    string
	PostgresDSN string
	DBLogLevel  string

	RedisAddr string
	RedisDB   int
	RedisPass string

	JWTSecret string

	DefaultAdminUsername string
	DefaultAdminPassword string

	ExportXLSXEnabled bool

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:           getEnv("SERVER_PORT", "8080"),
		DBDriver:             strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		SQLitePath:           getEnv("SQLITE_PATH", "mini_inventory.db"),
		MySQLDSN:             getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/inventory?charset=utf8mb4&parseTime=True&loc=Local&clientFoundRows=true"),
		PostgresDSN:          getEnv("POSTGRES_DSN", "host=localhost user=postgres password=postgres dbname=inventory port=5432 sslmode=disable"),
		DBLogLevel:           strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		RedisAddr:            os.Getenv("REDIS_ADDR"),
		RedisDB:              getEnvInt("REDIS_DB", 0),
		RedisPass:            os.Getenv("REDIS_PASSWORD"),
		JWTSecret:            getEnv("JWT_SECRET", "change-me"),
		DefaultAdminUsername: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
		DefaultAdminPassword: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
		ExportXLSXEnabled:    getEnvBool("EXPORT_XLSX_ENABLED", true),
		SwaggerHost:          os.Getenv("SWAGGER_HOST"),
	}
}

// CacheEnabled reports whether a Redis address was configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
