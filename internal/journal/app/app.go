package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/wayfarerhq/wayfarer/internal/journal/filestore"
	"github.com/wayfarerhq/wayfarer/internal/journal/filestore/disk"
	"github.com/wayfarerhq/wayfarer/internal/journal/filestore/s3"
	httpapi "github.com/wayfarerhq/wayfarer/internal/journal/http"
	"github.com/wayfarerhq/wayfarer/internal/journal/service"
	"github.com/wayfarerhq/wayfarer/internal/journal/store"
	"github.com/wayfarerhq/wayfarer/internal/journal/store/drivers/sqlite"
	"github.com/wayfarerhq/wayfarer/pkg/jwtx"
	"github.com/wayfarerhq/wayfarer/pkg/slogx"
)

// BuildVersion should be set at build time via ldflags.
const BuildVersion = "v0.1.0"

// Application encapsulates the journal service with all its
// dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db    store.Store
	files filestore.FileStore

	userService  *service.UserService
	tokenService *service.TokenService
	storyService *service.StoryService
	imageService *service.ImageService

	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "journal-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}
	if err := app.initFilestore(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("journal service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down journal service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("journal service stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initFilestore() error {
	switch app.cfg.StorageDriver {
	case StorageDriverDisk:
		files, err := disk.NewStore(app.cfg.UploadsDir)
		if err != nil {
			return fmt.Errorf("failed to initialize disk filestore: %w", err)
		}
		app.files = files

	case StorageDriverS3:
		client, err := minio.New(app.cfg.S3Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(app.cfg.S3AccessKey, app.cfg.S3SecretKey, ""),
			Secure: app.cfg.S3UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize s3 client: %w", err)
		}
		files, err := s3.NewStore(context.Background(), client, app.cfg.S3Bucket)
		if err != nil {
			return fmt.Errorf("failed to initialize s3 filestore: %w", err)
		}
		app.files = files

	default:
		return fmt.Errorf("unknown storage driver %q", app.cfg.StorageDriver)
	}

	app.logger.Info("filestore initialized", "driver", app.cfg.StorageDriver)
	return nil
}

func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.TokenSecret))
	if err != nil {
		return fmt.Errorf("failed to initialize token signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.TokenSecret), app.cfg.Issuer)
	if err != nil {
		return fmt.Errorf("failed to initialize token verifier: %w", err)
	}

	app.tokenService = &service.TokenService{
		Signer:   signer,
		Verifier: verifier,
		Issuer:   app.cfg.Issuer,
		TTL:      app.cfg.TokenTTL,
	}

	app.userService = &service.UserService{Store: app.db}
	app.imageService = &service.ImageService{
		Files:        app.files,
		ImageBaseURL: app.imageBaseURL(),
	}
	app.storyService = &service.StoryService{
		Store:               app.db,
		Images:              app.imageService,
		PlaceholderImageURL: app.cfg.PlaceholderImageURL,
	}

	return nil
}

// imageBaseURL is the public prefix stored images resolve under. Disk
// images are served by this service; s3 images resolve straight to the
// bucket.
func (app *Application) imageBaseURL() string {
	if app.cfg.StorageDriver == StorageDriverS3 {
		scheme := "http"
		if app.cfg.S3UseSSL {
			scheme = "https"
		}
		return scheme + "://" + app.cfg.S3Endpoint + "/" + app.cfg.S3Bucket
	}
	return app.cfg.PublicBaseURL + "/uploads"
}

func (app *Application) initHTTP() {
	app.router = httpapi.NewRouter(
		app.tokenService.Verifier,
		BuildVersion,
		app.db,
		app.logger,
	)
	app.router.UserService = app.userService
	app.router.TokenService = app.tokenService
	app.router.StoryService = app.storyService
	app.router.ImageService = app.imageService
	app.router.AssetsDir = app.cfg.AssetsDir

	// Stored images are only served locally with the disk driver; the
	// s3 driver hands out absolute object URLs instead.
	if app.cfg.StorageDriver == StorageDriverDisk {
		if d, ok := app.files.(*disk.Store); ok {
			app.router.UploadsDir = d.Dir()
		}
	}

	app.router.ApplyRoutes()

	app.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", app.cfg.Port),
		Handler: app.router,
	}
}
