package dbmongo

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialhub/internal/common"
	"socialhub/internal/config"
)

// mongoTestConfig returns a config pointing at the MongoDB from
// docker-compose, or skips when MONGO_INTEGRATION is unset.
func mongoTestConfig(t *testing.T) *config.Config {
	t.Helper()
	if os.Getenv("MONGO_INTEGRATION") == "" {
		t.Skip("set MONGO_INTEGRATION=1 to run against a live MongoDB")
	}
	return &config.Config{
		MongoDB: config.MongoDBConfig{
			Host:     getEnvOrDefault("MONGO_HOST", "localhost"),
			Port:     getEnvOrDefault("MONGO_PORT", "27017"),
			Username: os.Getenv("MONGO_USERNAME"),
			Password: os.Getenv("MONGO_PASSWORD"),
			Database: getEnvOrDefault("MONGO_DATABASE", "socialhub_test"),
			Enabled:  true,
		},
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func TestMediaStorage_Integration(t *testing.T) {
	cfg := mongoTestConfig(t)
	ctx := context.Background()

	client, err := NewMongoConnection(cfg)
	require.NoError(t, err)
	defer client.Close(ctx)

	storage := NewMediaStorage(client)

	t.Run("upload_and_download", func(t *testing.T) {
		content := "fake-png-bytes"
		uploaded, err := storage.UploadFile(ctx, "avatar.png", "image/png", 42, strings.NewReader(content))
		require.NoError(t, err)
		assert.NotEmpty(t, uploaded.ID)
		assert.Equal(t, int64(len(content)), uploaded.Size)
		assert.Equal(t, common.MediaFileTypeImage, uploaded.FileType)

		reader, file, err := storage.DownloadFile(ctx, uploaded.ID)
		require.NoError(t, err)
		defer reader.Close()
		assert.Equal(t, "avatar.png", file.Filename)
		assert.Equal(t, "image/png", file.MimeType)
		assert.Equal(t, uint64(42), file.UploadedBy)

		info, err := storage.FileInfo(ctx, uploaded.ID)
		require.NoError(t, err)
		assert.Equal(t, uint64(42), info.UploadedBy)
		assert.Equal(t, int64(len(content)), info.Size)

		body, err := io.ReadAll(reader)
		require.NoError(t, err)
		assert.Equal(t, content, string(body))

		require.NoError(t, storage.DeleteFile(ctx, uploaded.ID))
		_, _, err = storage.DownloadFile(ctx, uploaded.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("missing_file", func(t *testing.T) {
		_, _, err := storage.DownloadFile(ctx, "507f1f77bcf86cd799439011")
		assert.ErrorIs(t, err, common.ErrNotFound)
		_, err = storage.FileInfo(ctx, "507f1f77bcf86cd799439011")
		assert.ErrorIs(t, err, common.ErrNotFound)
		assert.ErrorIs(t, storage.DeleteFile(ctx, "507f1f77bcf86cd799439011"), common.ErrNotFound)
	})
}
