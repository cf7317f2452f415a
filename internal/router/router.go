package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/unrolled/secure"
	"golang.org/x/time/rate"

	"lumina/internal/config"
	apperrors "lumina/internal/errors"
	"lumina/internal/handler"
	"lumina/internal/logging"
	"lumina/internal/metrics"
	"lumina/internal/service"
)

// Handlers are the endpoints Register mounts.
type Handlers struct {
	Site     *handler.SiteHandler
	Session  *handler.SessionHandler
	Admin    *handler.AdminHandler
	Auth     *handler.AuthHandler
	Projects *handler.ProjectHandler
	Products *handler.ProductHandler
	Inquiry  *handler.InquiryHandler
	Profile  *handler.ProfileHandler
	Storage  *handler.StorageHandler
}

// Register wires routes and middleware. uploadDir, when set, is served under
// backend.UploadsPath.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	authService service.AuthService,
	h Handlers,
	uploadDir string,
) {
	e.Use(middleware.RequestID())
	e.Use(logging.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(secure.New(SecureOptions(cfg.IsDevelopment())).Handler))
	e.Use(metrics.Middleware())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	if uploadDir != "" {
		e.Static("/uploads", uploadDir)
	}

	limits := newLimiters(cfg.Site)
	bodyLimit := middleware.BodyLimit(bodyLimitFor(cfg.Storage.MaxUploadBytes))

	// Public site
	e.GET("/", h.Site.Home)
	e.POST("/contact", h.Site.Contact, limits.contact)
	e.GET("/login", h.Session.LoginPage)
	e.POST("/login", h.Session.Login, limits.login)
	e.POST("/logout", h.Session.Logout)

	// Admin console (cookie session)
	admin := e.Group("/admin", h.Session.RequireSession)
	admin.GET("", h.Admin.Index)
	admin.GET("/:tab", h.Admin.Show)
	admin.POST("/:tab", h.Admin.Submit, bodyLimit)
	admin.POST("/:tab/form", h.Admin.ToggleForm)
	admin.POST("/:tab/alert/dismiss", h.Admin.DismissAlert)
	admin.POST("/:tab/items/:id/delete", h.Admin.RequestDelete)
	admin.POST("/:tab/delete/confirm", h.Admin.ConfirmDelete)
	admin.POST("/:tab/delete/cancel", h.Admin.CancelDelete)

	api := e.Group("/api")

	// Public routes
	api.GET("/mode", handler.Mode(cfg.Backend.Mode))
	api.POST("/auth/login", h.Auth.Login, limits.login)
	api.POST("/auth/refresh", h.Auth.Refresh)
	api.POST("/auth/logout", h.Auth.Logout)
	api.GET("/projects", h.Projects.List)
	api.GET("/products", h.Products.List)
	api.POST("/inquiries", h.Inquiry.Create, limits.contact)

	// Secured routes (require a live access token)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ,cookie:" + handler.SessionCookie,
		ContextKey:  handler.ClaimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return authService.Authenticate(c.Request().Context(), token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			httpErr := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		},
	}))

	secured.GET("/auth/user", h.Auth.User)

	secured.POST("/projects", h.Projects.Create)
	secured.DELETE("/projects/:id", h.Projects.Delete)

	secured.POST("/products", h.Products.Create)
	secured.DELETE("/products/:id", h.Products.Delete)

	secured.GET("/inquiries", h.Inquiry.List)

	secured.GET("/profile", h.Profile.Get)
	secured.PATCH("/profile/:id", h.Profile.Update)

	secured.POST("/storage/:bucket", h.Storage.Upload, bodyLimit)
}

// SecureOptions sets the security headers of every response. Images may come from
// any host because uploads can live on a CDN.
func SecureOptions(isDevelopment bool) secure.Options {
	return secure.Options{
		IsDevelopment:         isDevelopment,
		ContentTypeNosniff:    true,
		FrameDeny:             true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'self'; img-src * data:; style-src 'self' 'unsafe-inline'; script-src 'self' 'unsafe-inline'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}
}

// limiters hold one per-IP budget per endpoint family, so contact traffic never
// uses up sign-in attempts.
type limiters struct {
	contact echo.MiddlewareFunc
	login   echo.MiddlewareFunc
}

func newLimiters(cfg config.SiteConfig) limiters {
	return limiters{
		contact: rateLimiter(cfg.ContactRatePerMinute),
		login:   rateLimiter(cfg.LoginRatePerMinute),
	}
}

// rateLimiter allows perMinute requests per client IP.
func rateLimiter(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, apperrors.ErrorResponse{
				Error: "too many requests, try again later",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

// bodyLimitFor leaves room for the multipart envelope and the text fields.
func bodyLimitFor(maxUpload int64) string {
	return strconv.FormatInt((maxUpload+1<<20)/1024, 10) + "K"
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
