package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JOURNAL_TOKEN_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "journal.db", cfg.DatabaseFile)
	require.Equal(t, 72*time.Hour, cfg.TokenTTL)
	require.Equal(t, StorageDriverDisk, cfg.StorageDriver)
	require.Equal(t, "http://localhost:8080/assets/placeholder.png", cfg.PlaceholderImageURL)
}

func TestLoadConfig_RequiresTokenSecret(t *testing.T) {
	t.Setenv("JOURNAL_TOKEN_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_S3RequiresEndpoint(t *testing.T) {
	t.Setenv("JOURNAL_TOKEN_SECRET", "test-secret")
	t.Setenv("JOURNAL_STORAGE_DRIVER", "s3")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("JOURNAL_S3_ENDPOINT", "minio:9000")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "wayfarer-images", cfg.S3Bucket)
}

func TestLoadConfig_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("JOURNAL_TOKEN_SECRET", "test-secret")
	t.Setenv("JOURNAL_STORAGE_DRIVER", "carrier-pigeon")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_TrimsBaseURL(t *testing.T) {
	t.Setenv("JOURNAL_TOKEN_SECRET", "test-secret")
	t.Setenv("JOURNAL_PUBLIC_BASE_URL", "https://journal.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "https://journal.example.com", cfg.PublicBaseURL)
	require.Equal(t, "https://journal.example.com/assets/placeholder.png", cfg.PlaceholderImageURL)
}
