package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultBehavior(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	createTestEnvFile(t)
	defer removeTestEnvFile()

	config := LoadConfig()
	require.NotNil(t, config)

	assert.Equal(t, "mysql", config.Database.Driver)
	assert.Equal(t, "localhost", config.Database.Host)
	assert.Equal(t, "3306", config.Database.Port)
	assert.Equal(t, "socialhub", config.Database.Username)
	assert.Equal(t, "socialhub", config.Database.DatabaseName)
	assert.Equal(t, 25, config.Database.MaxOpenConns)
	assert.Equal(t, 5, config.Database.MaxIdleConns)

	assert.Equal(t, "localhost", config.MongoDB.Host)
	assert.Equal(t, "27017", config.MongoDB.Port)
	assert.False(t, config.MongoDB.Enabled)

	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, "7001", config.Server.GRPCPort)
	assert.Equal(t, "8081", config.Server.MediaPort)
	assert.Contains(t, config.Server.MediaBaseURL, "/media/")

	assert.Equal(t, 10*time.Minute, config.Auth.OTPExpiry)
	assert.Equal(t, time.Minute, config.Auth.OTPResendCooldown)
	assert.Equal(t, 5, config.Auth.MaxOTPAttempts)
	assert.Equal(t, 24*time.Hour, config.Auth.TokenTTL)

	assert.Equal(t, 5*time.Minute, config.Cache.StatsTTL)
	assert.Equal(t, 20, config.Feed.DefaultPageSize)
	assert.Equal(t, 100, config.Feed.MaxPageSize)
	assert.Empty(t, config.Redis.Host)
}

func TestLoadConfig_WithEnvironmentOverrides(t *testing.T) {
	clearTestEnvVars()
	defer clearTestEnvVars()

	testEnvVars := map[string]string{
		"DB_DRIVER":       "sqlite",
		"MYSQL_HOST":      "test-db-host",
		"MYSQL_PORT":      "3307",
		"MYSQL_USERNAME":  "test-user",
		"MONGO_HOST":      "test-mongo",
		"MONGO_PORT":      "27018",
		"MONGO_ENABLED":   "true",
		"REDIS_HOST":      "cache",
		"GRPC_PORT":       "7010",
		"OTP_EXPIRY":      "5m",
		"CACHE_STATS_TTL": "30s",
		"FEED_PAGE_SIZE":  "10",
		"EMAIL_ENABLED":   "true",
		"LOG_LEVEL":       "debug",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	createTestEnvFile(t)
	defer removeTestEnvFile()

	config := LoadConfig()

	assert.Equal(t, "sqlite", config.Database.Driver)
	assert.Equal(t, "test-db-host", config.Database.Host)
	assert.Equal(t, "3307", config.Database.Port)
	assert.Equal(t, "test-user", config.Database.Username)
	assert.Equal(t, "test-mongo", config.MongoDB.Host)
	assert.Equal(t, "27018", config.MongoDB.Port)
	assert.True(t, config.MongoDB.Enabled)
	assert.Equal(t, "cache", config.Redis.Host)
	assert.Equal(t, "7010", config.Server.GRPCPort)
	assert.Equal(t, 5*time.Minute, config.Auth.OTPExpiry)
	assert.Equal(t, 30*time.Second, config.Cache.StatsTTL)
	assert.Equal(t, 10, config.Feed.DefaultPageSize)
	assert.True(t, config.Email.Enabled)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestDSN_Generation(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Host:         "test-host",
			Port:         "3307",
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	expected := "testuser:testpass@tcp(test-host:3307)/testdb?charset=utf8mb4&parseTime=True&loc=UTC"
	assert.Equal(t, expected, config.DSN())
}

func TestDSN_WithEmptyHostPort(t *testing.T) {
	config := &Config{
		Database: DatabaseConfig{
			Username:     "testuser",
			Password:     "testpass",
			DatabaseName: "testdb",
		},
	}

	expected := "testuser:testpass@tcp(localhost:3306)/testdb?charset=utf8mb4&parseTime=True&loc=UTC"
	assert.Equal(t, expected, config.DSN())
}

func TestGetMongoURI(t *testing.T) {
	withAuth := &Config{MongoDB: MongoDBConfig{Host: "mongo-host", Port: "27017", Username: "u", Password: "p"}}
	assert.Equal(t, "mongodb://u:p@mongo-host:27017/?authSource=admin", withAuth.GetMongoURI())

	withoutAuth := &Config{MongoDB: MongoDBConfig{Host: "mongo-host", Port: "27017"}}
	assert.Equal(t, "mongodb://mongo-host:27017", withoutAuth.GetMongoURI())
}

func TestGetEnvAsInt_HelperFunction(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	assert.Equal(t, 42, getEnvAsInt("TEST_INT", 10))

	t.Setenv("INVALID_INT", "not-a-number")
	assert.Equal(t, 10, getEnvAsInt("INVALID_INT", 10))

	assert.Equal(t, 100, getEnvAsInt("NON_EXISTENT_INT", 100))
}

func TestGetEnvAsDuration_HelperFunction(t *testing.T) {
	t.Setenv("TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("TEST_DURATION", time.Second))

	t.Setenv("BAD_DURATION", "ninety")
	assert.Equal(t, time.Second, getEnvAsDuration("BAD_DURATION", time.Second))
}

// Test helper functions
func createTestEnvFile(t *testing.T) {
	content := `# Test .env file
MONGO_HOST=localhost
MYSQL_HOST=localhost
`
	err := os.WriteFile(".env", []byte(content), 0644)
	require.NoError(t, err)
}

func removeTestEnvFile() {
	os.Remove(".env")
}

func clearTestEnvVars() {
	envKeys := []string{
		"DB_DRIVER", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_USERNAME", "MYSQL_PASSWORD", "MYSQL_DATABASE",
		"MONGO_HOST", "MONGO_PORT", "MONGO_USERNAME", "MONGO_PASSWORD", "MONGO_DATABASE", "MONGO_ENABLED",
		"REDIS_HOST", "REDIS_PORT", "SERVER_PORT", "GRPC_PORT", "MEDIA_PORT", "MEDIA_BASE_URL",
		"OTP_EXPIRY", "OTP_RESEND_COOLDOWN", "OTP_MAX_ATTEMPTS", "TOKEN_TTL",
		"CACHE_STATS_TTL", "FEED_PAGE_SIZE", "FEED_MAX_PAGE_SIZE", "EMAIL_ENABLED", "LOG_LEVEL", "LOG_FILE",
	}

	for _, key := range envKeys {
		os.Unsetenv(key)
	}
}
