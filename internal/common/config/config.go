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

// ============================================================
// Configuration
// ============================================================

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreNone   = "none"
)

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	// Хранилище документов
	StoreDriver   string
	DBPath        string
	FileStoreRoot string
	RedisAddr     string
	RedisTTLHours int

	// Редактор
	HistoryLimit       int
	PageWidth          float64
	PageHeight         float64
	SessionIdleMinutes int

	// Адреса сервисов
	DesignerURL   string
	ExporterURL   string
	ExportTimeout int
	CORSOrigins   []string
}

// Load загружает конфигурацию из .env (если есть) и переменных окружения
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:         getEnv("PORT", "3000"),
		Environment:  getEnv("ENV", "development"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),

		StoreDriver:   getEnv("STORE_DRIVER", StoreSQLite),
		DBPath:        getEnv("DB_PATH", "data/db/designer.db"),
		FileStoreRoot: getEnv("FILE_STORE_ROOT", "data/documents"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisTTLHours: getEnvAsInt("REDIS_TTL_HOURS", 24),

		HistoryLimit:       getEnvAsInt("HISTORY_LIMIT", 50),
		PageWidth:          getEnvAsFloat("PAGE_WIDTH", 794),
		PageHeight:         getEnvAsFloat("PAGE_HEIGHT", 1123),
		SessionIdleMinutes: getEnvAsInt("SESSION_IDLE_MINUTES", 120),

		DesignerURL:   getEnv("DESIGNER_URL", "http://localhost:3001"),
		ExporterURL:   getEnv("EXPORTER_URL", "http://localhost:3002"),
		ExportTimeout: getEnvAsInt("EXPORT_TIMEOUT", 30),
		CORSOrigins:   getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.StoreDriver {
	case StoreSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for sqlite store")
		}
	case StoreFile:
		if c.FileStoreRoot == "" {
			return fmt.Errorf("FILE_STORE_ROOT is required for file store")
		}
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for redis store")
		}
	case StoreNone:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.PageWidth <= 0 || c.PageHeight <= 0 {
		return fmt.Errorf("PAGE_WIDTH and PAGE_HEIGHT must be positive")
	}
	if c.ExportTimeout <= 0 {
		return fmt.Errorf("EXPORT_TIMEOUT must be positive")
	}
	if c.HistoryLimit < 2 {
		return fmt.Errorf("HISTORY_LIMIT must be at least 2")
	}
	return nil
}

func (c *Config) RedisTTL() time.Duration {
	return time.Duration(c.RedisTTLHours) * time.Hour
}

func (c *Config) ExportTimeoutDuration() time.Duration {
	return time.Duration(c.ExportTimeout) * time.Second
}

func (c *Config) SessionIdle() time.Duration {
	return time.Duration(c.SessionIdleMinutes) * time.Minute
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultVal)
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: Invalid number for %s, using default: %v", key, defaultVal)
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
