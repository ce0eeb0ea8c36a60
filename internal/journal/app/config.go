package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	StorageDriverDisk = "disk"
	StorageDriverS3   = "s3"
)

// Config holds the runtime configuration, populated from the
// environment.
type Config struct {
	Env       string `env:"ENV" envDefault:"dev"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	Port                int           `env:"PORT" envDefault:"8080"`
	ShutdownGracePeriod time.Duration `env:"SHUTDOWN_GRACE_PERIOD" envDefault:"10s"`

	// DatabaseFile is the path to the SQLite database file.
	DatabaseFile string `env:"JOURNAL_DATABASE_FILE" envDefault:"journal.db"`

	// TokenSecret signs and verifies access tokens. It has no default;
	// the service refuses to start without one.
	TokenSecret string        `env:"JOURNAL_TOKEN_SECRET,notEmpty"`
	Issuer      string        `env:"JOURNAL_ISSUER" envDefault:"wayfarer-journal"`
	TokenTTL    time.Duration `env:"JOURNAL_TOKEN_TTL" envDefault:"72h"`

	// PublicBaseURL is the externally reachable base URL, used to build
	// the image URLs handed back to clients.
	PublicBaseURL string `env:"JOURNAL_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// PlaceholderImageURL replaces a cleared story image. Empty means
	// PublicBaseURL + "/assets/placeholder.png".
	PlaceholderImageURL string `env:"JOURNAL_PLACEHOLDER_IMAGE_URL"`

	// AssetsDir holds bundled static files served under /assets/.
	AssetsDir string `env:"JOURNAL_ASSETS_DIR" envDefault:"assets"`

	// StorageDriver selects where uploaded images live: "disk" or "s3".
	StorageDriver string `env:"JOURNAL_STORAGE_DRIVER" envDefault:"disk"`
	UploadsDir    string `env:"JOURNAL_UPLOADS_DIR" envDefault:"uploads"`

	S3Endpoint  string `env:"JOURNAL_S3_ENDPOINT"`
	S3AccessKey string `env:"JOURNAL_S3_ACCESS_KEY"`
	S3SecretKey string `env:"JOURNAL_S3_SECRET_KEY"`
	S3Bucket    string `env:"JOURNAL_S3_BUCKET" envDefault:"wayfarer-images"`
	S3UseSSL    bool   `env:"JOURNAL_S3_USE_SSL" envDefault:"false"`
}

// LoadConfig parses the environment into a Config and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.PublicBaseURL = strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if cfg.PlaceholderImageURL == "" {
		cfg.PlaceholderImageURL = cfg.PublicBaseURL + "/assets/placeholder.png"
	}

	switch cfg.StorageDriver {
	case StorageDriverDisk:
	case StorageDriverS3:
		if cfg.S3Endpoint == "" {
			return Config{}, fmt.Errorf("JOURNAL_S3_ENDPOINT is required with the s3 storage driver")
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}

	return cfg, nil
}
