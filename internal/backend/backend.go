package backend

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"lumina/internal/auth"
	"lumina/internal/cache"
	"lumina/internal/config"
	"lumina/internal/db"
	"lumina/internal/repository"
	"lumina/internal/repository/memory"
	"lumina/internal/storage"
)

// UploadsPath is where files written by the disk uploader are served.
const UploadsPath = "/uploads"

// Backend is the data access layer for one BackendMode. Callers get the same
// repositories and uploader whichever mode was resolved at startup.
type Backend struct {
	Mode      config.BackendMode
	Projects  repository.ProjectRepository
	Products  repository.ProductRepository
	Inquiries repository.InquiryRepository
	Profiles  repository.ProfileRepository
	Users     repository.UserRepository
	Uploader  storage.Uploader
	Tokens    auth.TokenStoreInterface
	// UploadDir is set when uploads land on local disk and must be served by the app.
	UploadDir string

	closers []func() error
}

// Open resolves the backend once from configuration.
func Open(ctx context.Context, cfg *config.Config) (*Backend, error) {
	if cfg.Backend.Mode == config.ModeMock {
		return NewMock()
	}

	gormDB, err := db.Open(cfg.Backend.DatabaseURL)
	if err != nil {
		return nil, err
	}
	closeDB := func() {
		if sqlDB, err := gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		closeDB()
		return nil, err
	}

	redisClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisClient.Ping(ctx); err != nil {
		_ = redisClient.Close()
		closeDB()
		return nil, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
	}

	var (
		uploader  storage.Uploader
		uploadDir string
	)
	if cfg.Storage.S3Bucket != "" {
		s3Uploader, err := storage.NewS3Uploader(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, cfg.Storage.S3Endpoint, cfg.Storage.PublicURL)
		if err != nil {
			_ = redisClient.Close()
			closeDB()
			return nil, err
		}
		uploader = s3Uploader
	} else {
		uploader = storage.NewDiskUploader(cfg.Storage.Dir, cfg.Storage.PublicURL+UploadsPath)
		uploadDir = cfg.Storage.Dir
	}

	b := NewLive(gormDB, uploader, auth.NewTokenStore(redisClient))
	b.UploadDir = uploadDir
	b.closers = append(b.closers, redisClient.Close)
	return b, nil
}

// NewLive wires the GORM repositories around an open database.
func NewLive(gormDB *gorm.DB, uploader storage.Uploader, tokens auth.TokenStoreInterface) *Backend {
	b := &Backend{
		Mode:      config.ModeLive,
		Projects:  repository.NewProjectRepository(gormDB),
		Products:  repository.NewProductRepository(gormDB),
		Inquiries: repository.NewInquiryRepository(gormDB),
		Profiles:  repository.NewProfileRepository(gormDB),
		Users:     repository.NewUserRepository(gormDB),
		Uploader:  uploader,
		Tokens:    tokens,
	}
	b.closers = append(b.closers, func() error {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	})
	return b
}

// NewMock serves the sample data set from memory.
func NewMock() (*Backend, error) {
	store, err := memory.NewSeededStore()
	if err != nil {
		return nil, fmt.Errorf("seed mock store: %w", err)
	}
	return &Backend{
		Mode:      config.ModeMock,
		Projects:  store.Projects(),
		Products:  store.Products(),
		Inquiries: store.Inquiries(),
		Profiles:  store.Profiles(),
		Users:     store.Users(),
		Uploader:  storage.PlaceholderUploader{},
		Tokens:    auth.NewMemoryTokenStore(),
	}, nil
}

// Close releases database and redis connections.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
