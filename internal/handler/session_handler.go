package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"lumina/internal/auth"
	"lumina/internal/console"
	apperrors "lumina/internal/errors"
	"lumina/internal/metrics"
	"lumina/internal/model"
	"lumina/internal/repository/memory"
	"lumina/internal/service"
)

const (
	// SessionCookie carries the access token of the HTML console.
	SessionCookie = "lumina_session"
	// RefreshCookie carries the refresh token used for silent renewal.
	RefreshCookie = "lumina_refresh"

	// LoginFailedMessage is shown when sign-in fails without a usable reason.
	LoginFailedMessage = "Failed to login. Please check your internet connection and credentials."

	userContextKey    = "admin_user"
	sessionContextKey = "session_id"
)

// SessionHandler owns the sign-in form and the cookie session gate of /admin.
type SessionHandler struct {
	auth     service.AuthService
	consoles *console.Registry
	secure   bool
	mock     bool
	log      zerolog.Logger
}

func NewSessionHandler(authService service.AuthService, consoles *console.Registry, secureCookies, mock bool, log zerolog.Logger) *SessionHandler {
	return &SessionHandler{auth: authService, consoles: consoles, secure: secureCookies, mock: mock, log: log}
}

// LoginForm is the posted sign-in form.
type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// LoginPage renders the sign-in form, or skips it when a session is already open.
func (h *SessionHandler) LoginPage(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		if _, err := h.auth.Authenticate(c.Request().Context(), cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, "/admin")
		}
	}
	return c.Render(http.StatusOK, loginTemplate, h.loginPage("", ""))
}

// Login signs in with the posted credentials and opens the console.
func (h *SessionHandler) Login(c echo.Context) error {
	var form LoginForm
	if err := c.Bind(&form); err != nil {
		return c.Render(http.StatusBadRequest, loginTemplate, h.loginPage("", LoginFailedMessage))
	}
	email := strings.TrimSpace(form.Email)

	tokens, _, err := h.auth.SignIn(c.Request().Context(), email, form.Password)
	metrics.RecordSignIn(err == nil)
	if err != nil {
		msg := LoginFailedMessage
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			msg = err.Error()
			status = http.StatusUnauthorized
		} else {
			h.log.Error().Err(err).Msg("sign in")
		}
		return c.Render(status, loginTemplate, h.loginPage(email, msg))
	}

	h.setCookie(c, SessionCookie, tokens.AccessToken, auth.AccessTokenExpiry)
	h.setCookie(c, RefreshCookie, tokens.RefreshToken, auth.RefreshTokenExpiry)
	return c.Redirect(http.StatusSeeOther, "/admin")
}

// Logout revokes the session and returns to the sign-in form. Cookies are cleared even
// when revocation fails.
func (h *SessionHandler) Logout(c echo.Context) error {
	var access, refresh string
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		access = cookie.Value
	}
	if cookie, err := c.Cookie(RefreshCookie); err == nil {
		refresh = cookie.Value
	}
	if claims, err := h.auth.Authenticate(c.Request().Context(), access); err == nil {
		h.consoles.Drop(claims.SessionID)
	}
	if err := h.auth.SignOut(c.Request().Context(), access, refresh); err != nil {
		h.log.Warn().Err(err).Msg("sign out")
	}

	h.setCookie(c, SessionCookie, "", -1)
	h.setCookie(c, RefreshCookie, "", -1)
	return c.Redirect(http.StatusSeeOther, "/login")
}

// RequireSession lets only signed-in admins through; everyone else is sent to /login.
// An expired access token is renewed from the refresh cookie.
func (h *SessionHandler) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var access string
		if cookie, err := c.Cookie(SessionCookie); err == nil {
			access = cookie.Value
		}
		claims, err := h.auth.Authenticate(ctx, access)
		if err != nil {
			access, claims, err = h.renew(c)
			if err != nil {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
		}

		user, err := h.auth.CurrentUser(ctx, access)
		if err != nil {
			if !errors.Is(err, apperrors.ErrUnauthenticated) {
				h.log.Error().Err(err).Msg("resolve session user")
			}
			return c.Redirect(http.StatusSeeOther, "/login")
		}

		c.Set(userContextKey, user)
		c.Set(sessionContextKey, claims.SessionID)
		return next(c)
	}
}

func (h *SessionHandler) renew(c echo.Context) (string, *auth.Claims, error) {
	cookie, err := c.Cookie(RefreshCookie)
	if err != nil {
		return "", nil, apperrors.ErrUnauthenticated
	}
	access, err := h.auth.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return "", nil, err
	}
	claims, err := h.auth.Authenticate(c.Request().Context(), access)
	if err != nil {
		return "", nil, err
	}
	h.setCookie(c, SessionCookie, access, auth.AccessTokenExpiry)
	return access, claims, nil
}

func (h *SessionHandler) loginPage(email, msg string) LoginPage {
	p := LoginPage{Title: "Admin Login", MockMode: h.mock, Email: email, Error: msg}
	if h.mock {
		p.MockEmail = memory.MockAdminEmail
		p.MockPassword = memory.MockAdminPassword
	}
	return p
}

// setCookie writes an HttpOnly cookie; a negative ttl deletes it.
func (h *SessionHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(ttl.Seconds())
	}
	c.SetCookie(cookie)
}

func sessionUser(c echo.Context) *model.User {
	user, _ := c.Get(userContextKey).(*model.User)
	return user
}

func sessionID(c echo.Context) string {
	id, _ := c.Get(sessionContextKey).(string)
	return id
}
