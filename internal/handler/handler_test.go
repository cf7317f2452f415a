package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lumina/internal/auth"
	"lumina/internal/config"
	"lumina/internal/console"
	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*service.TokenPair, *model.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*service.TokenPair), args.Get(1).(*model.User), args.Error(2)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	args := m.Called(ctx, accessToken, refreshToken)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockAuthService) CurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type stubRenderer struct {
	name string
	data interface{}
}

func (r *stubRenderer) Render(_ io.Writer, name string, data interface{}, _ echo.Context) error {
	r.name = name
	r.data = data
	return nil
}

func newSessionHandler(authService service.AuthService) *SessionHandler {
	return NewSessionHandler(authService, console.NewRegistry(console.Services{}, time.Hour), true, false, zerolog.Nop())
}

func TestRequireSession(t *testing.T) {
	user := &model.User{ID: "u1", Email: "owner@example.com"}
	claims := &auth.Claims{UserID: "u1", SessionID: "s1"}

	tests := []struct {
		name         string
		cookies      []*http.Cookie
		setupMock    func(*MockAuthService)
		wantStatus   int
		wantRenewed  bool
		wantUserSeen bool
	}{
		{
			name:       "no cookies",
			setupMock:  func(m *MockAuthService) { m.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrUnauthenticated) },
			wantStatus: http.StatusSeeOther,
		},
		{
			name:    "valid session",
			cookies: []*http.Cookie{{Name: SessionCookie, Value: "access"}},
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "access").Return(claims, nil)
				m.On("CurrentUser", mock.Anything, "access").Return(user, nil)
			},
			wantStatus:   http.StatusOK,
			wantUserSeen: true,
		},
		{
			name:    "expired access renewed from refresh cookie",
			cookies: []*http.Cookie{{Name: RefreshCookie, Value: "refresh"}},
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrUnauthenticated)
				m.On("Refresh", mock.Anything, "refresh").Return("fresh", nil)
				m.On("Authenticate", mock.Anything, "fresh").Return(claims, nil)
				m.On("CurrentUser", mock.Anything, "fresh").Return(user, nil)
			},
			wantStatus:   http.StatusOK,
			wantRenewed:  true,
			wantUserSeen: true,
		},
		{
			name:    "revoked refresh token",
			cookies: []*http.Cookie{{Name: RefreshCookie, Value: "refresh"}},
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "").Return(nil, apperrors.ErrUnauthenticated)
				m.On("Refresh", mock.Anything, "refresh").Return("", service.ErrInvalidRefreshToken)
			},
			wantStatus: http.StatusSeeOther,
		},
		{
			name:    "user removed",
			cookies: []*http.Cookie{{Name: SessionCookie, Value: "access"}},
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "access").Return(claims, nil)
				m.On("CurrentUser", mock.Anything, "access").Return(nil, apperrors.ErrUnauthenticated)
			},
			wantStatus: http.StatusSeeOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authService := new(MockAuthService)
			tt.setupMock(authService)
			h := newSessionHandler(authService)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/admin/projects", nil)
			for _, c := range tt.cookies {
				req.AddCookie(c)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen *model.User
			var sid string
			err := h.RequireSession(func(c echo.Context) error {
				seen = sessionUser(c)
				sid = sessionID(c)
				return c.NoContent(http.StatusOK)
			})(c)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusSeeOther {
				assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
			}
			if tt.wantUserSeen {
				assert.Equal(t, user, seen)
				assert.Equal(t, "s1", sid)
			}

			var renewed *http.Cookie
			for _, ck := range rec.Result().Cookies() {
				if ck.Name == SessionCookie {
					renewed = ck
				}
			}
			if tt.wantRenewed {
				require.NotNil(t, renewed)
				assert.Equal(t, "fresh", renewed.Value)
				assert.True(t, renewed.Secure)
				assert.True(t, renewed.HttpOnly)
			} else {
				assert.Nil(t, renewed)
			}
			authService.AssertExpectations(t)
		})
	}
}

func TestLogin_BackendFailureShowsFallback(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("SignIn", mock.Anything, "owner@example.com", "pw").Return(nil, nil, errors.New("dial tcp: connection refused"))
	h := newSessionHandler(authService)

	e := echo.New()
	renderer := &stubRenderer{}
	e.Renderer = renderer
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=+owner@example.com+&password=pw"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Login(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, loginTemplate, renderer.name)
	page := renderer.data.(LoginPage)
	assert.Equal(t, LoginFailedMessage, page.Error)
	assert.Equal(t, "owner@example.com", page.Email)
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogout_ClearsCookiesEvenOnFailure(t *testing.T) {
	authService := new(MockAuthService)
	authService.On("Authenticate", mock.Anything, "access").Return(nil, apperrors.ErrUnauthenticated)
	authService.On("SignOut", mock.Anything, "access", "refresh").Return(errors.New("redis down"))
	h := newSessionHandler(authService)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "access"})
	req.AddCookie(&http.Cookie{Name: RefreshCookie, Value: "refresh"})
	rec := httptest.NewRecorder()

	require.NoError(t, h.Logout(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))

	cleared := map[string]bool{}
	for _, ck := range rec.Result().Cookies() {
		cleared[ck.Name] = ck.MaxAge < 0
	}
	assert.True(t, cleared[SessionCookie])
	assert.True(t, cleared[RefreshCookie])
}

func TestBearerToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer abc")
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie"})
	assert.Equal(t, "abc", bearerToken(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie"})
	assert.Equal(t, "cookie", bearerToken(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, bearerToken(e.NewContext(req, httptest.NewRecorder())))
}

func TestMode(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	require.NoError(t, Mode(config.ModeLive)(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/mode", nil), rec)))
	assert.JSONEq(t, `{"mode":"live"}`, rec.Body.String())
}
