package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"lumina/internal/config"
	"lumina/internal/db"
	apperrors "lumina/internal/errors"
	"lumina/internal/logging"
	"lumina/internal/model"
	"lumina/internal/repository"
	"lumina/internal/repository/memory"
	"lumina/internal/service"
)

// Creates the admin account and its profile in the live database. With SEED_SAMPLES=true
// an empty portfolio also gets the sample projects, products and inquiry.
func main() {
	cfg, err := config.Load()
	log := logging.New("info", "development")
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}
	if cfg.Backend.Mode != config.ModeLive {
		log.Fatal().Msg("seed only runs against a live database (BACKEND_MODE=live)")
	}
	if cfg.Auth.AdminEmail == "" || cfg.Auth.AdminPassword == "" {
		log.Fatal().Msg("ADMIN_EMAIL and ADMIN_PASSWORD are required")
	}

	gormDB, err := db.Open(cfg.Backend.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	log.Info().Msg("connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}
	log.Info().Msg("database migrations completed")

	if err := seed(context.Background(), gormDB, log, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, cfg.Site.SeedSamples); err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().Msg("seed completed")
}

// seed is safe to run repeatedly: existing accounts, profiles and content are kept.
func seed(ctx context.Context, gormDB *gorm.DB, log zerolog.Logger, email, password string, samples bool) error {
	users := repository.NewUserRepository(gormDB)
	profiles := repository.NewProfileRepository(gormDB)

	user, err := users.FindByEmail(ctx, email)
	switch {
	case err == nil:
		log.Info().Str("email", email).Msg("admin account exists, skipping")
	case errors.Is(err, apperrors.ErrNotFound):
		hash, err := service.HashPassword(password)
		if err != nil {
			return err
		}
		user = &model.User{Email: email, PasswordHash: hash}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		log.Info().Str("email", email).Msg("admin account created")
	default:
		return fmt.Errorf("find admin: %w", err)
	}

	if _, err := profiles.FindByID(ctx, user.ID); errors.Is(err, apperrors.ErrNotFound) {
		profile := memory.SampleProfile(user.ID, user.Email)
		if err := profiles.Create(ctx, profile); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		log.Info().Msg("admin profile created")
	} else if err != nil {
		return fmt.Errorf("find profile: %w", err)
	}

	if !samples {
		return nil
	}
	return seedSamples(ctx, gormDB, log)
}

func seedSamples(ctx context.Context, gormDB *gorm.DB, log zerolog.Logger) error {
	projects := repository.NewProjectRepository(gormDB)
	existing, err := projects.List(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	if len(existing) > 0 {
		log.Info().Int("projects", len(existing)).Msg("portfolio not empty, skipping samples")
		return nil
	}

	products := repository.NewProductRepository(gormDB)
	inquiries := repository.NewInquiryRepository(gormDB)

	// insert oldest first so the listed order matches the sample order
	sp := memory.SampleProjects()
	for i := len(sp) - 1; i >= 0; i-- {
		if err := projects.Create(ctx, model.NewProject(sp[i])); err != nil {
			return fmt.Errorf("create project: %w", err)
		}
	}
	pr := memory.SampleProducts()
	for i := len(pr) - 1; i >= 0; i-- {
		if err := products.Create(ctx, model.NewProduct(pr[i])); err != nil {
			return fmt.Errorf("create product: %w", err)
		}
	}
	for _, in := range memory.SampleInquiries() {
		if err := inquiries.Create(ctx, model.NewInquiry(in)); err != nil {
			return fmt.Errorf("create inquiry: %w", err)
		}
	}
	log.Info().Int("projects", len(sp)).Int("products", len(pr)).Msg("samples created")
	return nil
}
