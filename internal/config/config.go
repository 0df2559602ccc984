// internal/config/config.go
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Compliance ComplianceConfig
	Cache      CacheConfig
}

type AppConfig struct {
	LogLevel  string
	ExportDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ComplianceConfig carries the regulatory parameters for Law 69-21 late
// payment penalties. They are read once here and passed explicitly to the
// derivation engine; nothing else hardcodes them.
type ComplianceConfig struct {
	StandardDelayDays int
	InterestRate      float64
}

type CacheConfig struct {
	Enabled           bool
	RedisURL          string
	RedisHost         string
	RedisPort         string
	RedisPassword     string
	RedisDB           int
	SummaryTTLSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("APP_LOG_LEVEL", "info")
		viper.SetDefault("APP_EXPORT_DIR", "./data/exports")
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "paywatch")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("COMPLIANCE_STANDARD_DELAY_DAYS", 60)
		viper.SetDefault("COMPLIANCE_INTEREST_RATE", 0.03)
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_SUMMARY_TTL_SECONDS", 60)

		// Read from environment variables
		viper.AutomaticEnv()

		ensureDir(viper.GetString("APP_EXPORT_DIR"))

		instance = &Config{
			App: AppConfig{
				LogLevel:  viper.GetString("APP_LOG_LEVEL"),
				ExportDir: viper.GetString("APP_EXPORT_DIR"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Compliance: ComplianceConfig{
				StandardDelayDays: viper.GetInt("COMPLIANCE_STANDARD_DELAY_DAYS"),
				InterestRate:      viper.GetFloat64("COMPLIANCE_INTEREST_RATE"),
			},
			Cache: CacheConfig{
				Enabled:           viper.GetBool("CACHE_ENABLED"),
				RedisURL:          viper.GetString("REDIS_URL"),
				RedisHost:         viper.GetString("REDIS_HOST"),
				RedisPort:         viper.GetString("REDIS_PORT"),
				RedisPassword:     viper.GetString("REDIS_PASSWORD"),
				RedisDB:           viper.GetInt("REDIS_DB"),
				SummaryTTLSeconds: viper.GetInt("CACHE_SUMMARY_TTL_SECONDS"),
			},
		}
	})

	return instance
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
