package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"lumina/internal/auth"
	apperrors "lumina/internal/errors"
	"lumina/internal/model"
	"lumina/internal/repository"
)

const bcryptCost = 10

// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// TokenPair is issued on sign-in.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService handles authentication operations.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (*TokenPair, *model.User, error)
	Refresh(ctx context.Context, refreshToken string) (accessToken string, err error)
	SignOut(ctx context.Context, accessToken, refreshToken string) error
	Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error)
	CurrentUser(ctx context.Context, accessToken string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// HashPassword hashes a password for storage on model.User.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// SignIn checks the password and opens a session.
func (s *authService) SignIn(ctx context.Context, email, password string) (*TokenPair, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	sessionID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		return nil, nil, fmt.Errorf("generate refresh token: %w", err)
	}
	_, accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	session := auth.Session{UserID: user.ID, Email: user.Email}
	if err := s.tokenStore.StoreSession(ctx, sessionID, session, auth.RefreshTokenExpiry); err != nil {
		return nil, nil, fmt.Errorf("store session: %w", err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh validates a refresh token and returns a new access token for the same session.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.SessionID != "" {
		return "", ErrInvalidRefreshToken
	}

	session, err := s.tokenStore.GetSession(ctx, claims.ID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if session.UserID != claims.UserID || session.Email != claims.Email {
		return "", ErrInvalidRefreshToken
	}

	_, accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Email, claims.ID)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// SignOut revokes whatever the caller still holds. Either token may be empty or invalid;
// the returned error only reports store failures and never means the caller is still
// signed in.
func (s *authService) SignOut(ctx context.Context, accessToken, refreshToken string) error {
	var errs []error
	if claims, err := s.jwtService.ValidateToken(accessToken); err == nil && claims.SessionID != "" {
		if err := s.tokenStore.BlacklistAccessToken(ctx, claims.ID, s.jwtService.Remaining(claims)); err != nil {
			errs = append(errs, fmt.Errorf("blacklist access token: %w", err))
		}
		if err := s.tokenStore.DeleteSession(ctx, claims.SessionID); err != nil {
			errs = append(errs, fmt.Errorf("delete session: %w", err))
		}
	}
	if claims, err := s.jwtService.ValidateToken(refreshToken); err == nil && claims.SessionID == "" {
		if err := s.tokenStore.DeleteSession(ctx, claims.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete session: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Authenticate accepts only live access tokens: not blacklisted, session still open.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(accessToken)
	if err != nil || claims.SessionID == "" {
		return nil, apperrors.ErrUnauthenticated
	}
	revoked, err := s.tokenStore.IsAccessTokenBlacklisted(ctx, claims.ID)
	if err != nil || revoked {
		return nil, apperrors.ErrUnauthenticated
	}
	if _, err := s.tokenStore.GetSession(ctx, claims.SessionID); err != nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return claims, nil
}

// CurrentUser resolves the signed-in user without changing any state.
func (s *authService) CurrentUser(ctx context.Context, accessToken string) (*model.User, error) {
	claims, err := s.Authenticate(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}
