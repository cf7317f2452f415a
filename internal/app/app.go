package app

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lumina/internal/auth"
	"lumina/internal/backend"
	"lumina/internal/config"
	"lumina/internal/console"
	"lumina/internal/handler"
	"lumina/internal/router"
	"lumina/internal/service"
	"lumina/internal/site"
	"lumina/internal/web"
)

// ConsoleIdleTimeout is how long an admin console is kept without requests.
const ConsoleIdleTimeout = 2 * time.Hour

// New builds the HTTP server on top of an opened backend.
func New(cfg *config.Config, log zerolog.Logger, b *backend.Backend) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	// Initialize services
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret)
	authService := service.NewAuthService(b.Users, jwtService, b.Tokens)
	projectService := service.NewProjectService(b.Projects)
	productService := service.NewProductService(b.Products)
	inquiryService := service.NewInquiryService(b.Inquiries)
	profileService := service.NewProfileService(b.Profiles)
	uploadService := service.NewUploadService(b.Uploader, cfg.Storage.MaxUploadBytes)

	consoles := console.NewRegistry(console.Services{
		Projects:  projectService,
		Products:  productService,
		Inquiries: inquiryService,
		Profiles:  profileService,
		Uploads:   uploadService,
	}, ConsoleIdleTimeout)

	mock := b.Mode == config.ModeMock
	loader := site.NewLoader(projectService, productService, profileService, log)

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer

	// Register routes
	router.Register(e, cfg, log, authService, router.Handlers{
		Site:     handler.NewSiteHandler(loader, inquiryService, mock, log),
		Session:  handler.NewSessionHandler(authService, consoles, cfg.Auth.CookieSecure, mock, log),
		Admin:    handler.NewAdminHandler(consoles, cfg.Storage.MaxUploadBytes, mock, log),
		Auth:     handler.NewAuthHandler(authService),
		Projects: handler.NewProjectHandler(projectService),
		Products: handler.NewProductHandler(productService),
		Inquiry:  handler.NewInquiryHandler(inquiryService),
		Profile:  handler.NewProfileHandler(profileService),
		Storage:  handler.NewStorageHandler(uploadService, cfg.Storage.MaxUploadBytes),
	}, b.UploadDir)

	return e, nil
}
