package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// MongoDB holds the GridFS media store
	MongoDB MongoDBConfig `json:"mongodb"`

	Redis RedisConfig `json:"redis"`

	Auth AuthConfig `json:"auth"`

	Cache CacheConfig `json:"cache"`

	Feed FeedConfig `json:"feed"`

	// Email Configuration (optional)
	Email EmailConfig `json:"email"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	GRPCPort     string `json:"grpc_port"`
	MediaPort    string `json:"media_port"`
	MediaBaseURL string `json:"media_base_url"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver       string `json:"driver"` // mysql or sqlite
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	SQLitePath   string `json:"sqlite_path"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type MongoDBConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
	Enabled  bool   `json:"enabled"`
}

type RedisConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Password string `json:"password"`
}

// AuthConfig drives token signing and the OTP policy.
type AuthConfig struct {
	JWTSecret         string        `json:"-"`
	TokenTTL          time.Duration `json:"token_ttl"`
	OTPExpiry         time.Duration `json:"otp_expiry"`
	OTPResendCooldown time.Duration `json:"otp_resend_cooldown"`
	MaxOTPAttempts    int           `json:"max_otp_attempts"`
}

type CacheConfig struct {
	StatsTTL   time.Duration `json:"stats_ttl"`
	MemorySize int           `json:"memory_size"`
}

type FeedConfig struct {
	DefaultPageSize int `json:"default_page_size"`
	MaxPageSize     int `json:"max_page_size"`
}

// EmailConfig contains email service configuration (optional)
type EmailConfig struct {
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	Enabled   bool   `json:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	OutputPath string `json:"output_path"` // log file path
}

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvOrDefault("SERVER_PORT", "8080"),
			GRPCPort:     getEnvOrDefault("GRPC_PORT", "7001"),
			MediaPort:    getEnvOrDefault("MEDIA_PORT", "8081"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnvOrDefault("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:       getEnvOrDefault("DB_DRIVER", "mysql"),
			Host:         getEnvOrDefault("MYSQL_HOST", "localhost"),
			Port:         getEnvOrDefault("MYSQL_PORT", "3306"),
			Username:     getEnvOrDefault("MYSQL_USERNAME", "socialhub"),
			Password:     getEnvOrDefault("MYSQL_PASSWORD", "socialhub123"),
			DatabaseName: getEnvOrDefault("MYSQL_DATABASE", "socialhub"),
			SQLitePath:   getEnvOrDefault("SQLITE_PATH", "socialhub.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		MongoDB: MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: getEnvOrDefault("MONGO_USERNAME", ""),
			Password: getEnvOrDefault("MONGO_PASSWORD", ""),
			Database: getEnvOrDefault("MONGO_DATABASE", "socialhub"),
			Enabled:  getEnvOrDefault("MONGO_ENABLED", "false") == "true",
		},
		Redis: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", ""),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		},
		Auth: AuthConfig{
			JWTSecret:         getEnvOrDefault("JWT_SECRET", "change-me"),
			TokenTTL:          getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
			OTPExpiry:         getEnvAsDuration("OTP_EXPIRY", 10*time.Minute),
			OTPResendCooldown: getEnvAsDuration("OTP_RESEND_COOLDOWN", time.Minute),
			MaxOTPAttempts:    getEnvAsInt("OTP_MAX_ATTEMPTS", 5),
		},
		Cache: CacheConfig{
			StatsTTL:   getEnvAsDuration("CACHE_STATS_TTL", 5*time.Minute),
			MemorySize: getEnvAsInt("CACHE_MEMORY_SIZE", 4096),
		},
		Feed: FeedConfig{
			DefaultPageSize: getEnvAsInt("FEED_PAGE_SIZE", 20),
			MaxPageSize:     getEnvAsInt("FEED_MAX_PAGE_SIZE", 100),
		},
		Email: EmailConfig{
			FromEmail: getEnvOrDefault("FROM_EMAIL", "no-reply@socialhub.local"),
			FromName:  getEnvOrDefault("FROM_NAME", "SocialHub"),
			Enabled:   getEnvOrDefault("EMAIL_ENABLED", "false") == "true",
		},
		Logging: LoggingConfig{
			Level:      getEnvOrDefault("LOG_LEVEL", "info"),
			OutputPath: getEnvOrDefault("LOG_FILE", "server.log"),
		},
	}

	cfg.Server.MediaBaseURL = getEnvOrDefault("MEDIA_BASE_URL",
		fmt.Sprintf("http://localhost:%s/media/", cfg.Server.MediaPort))

	return cfg
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username == "" {
		return fmt.Sprintf("mongodb://%s:%s", cfg.MongoDB.Host, cfg.MongoDB.Port)
	}
	return fmt.Sprintf("mongodb://%s:%s@%s:%s/?authSource=admin",
		cfg.MongoDB.Username,
		cfg.MongoDB.Password,
		cfg.MongoDB.Host,
		cfg.MongoDB.Port,
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("invalid integer for %s: %q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid duration for %s: %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
