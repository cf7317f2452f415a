package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lumina/internal/auth"
	apperrors "lumina/internal/errors"
	"lumina/internal/model"
)

func testUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := HashPassword("admin")
	require.NoError(t, err)
	return &model.User{ID: "user-1", Email: "admin@lumina.com", PasswordHash: hash}
}

func TestAuthService_SignIn(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore, *model.User)
		expectedError error
	}{
		{
			name:     "successful sign in",
			email:    "admin@lumina.com",
			password: "admin",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore, u *model.User) {
				mRepo.On("FindByEmail", mock.Anything, "admin@lumina.com").Return(u, nil)
				mToken.On("StoreSession", mock.Anything, mock.AnythingOfType("string"),
					auth.Session{UserID: "user-1", Email: "admin@lumina.com"}, auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "admin@lumina.com",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore, u *model.User) {
				mRepo.On("FindByEmail", mock.Anything, "admin@lumina.com").Return(u, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@lumina.com",
			password: "admin",
			setupMock: func(mRepo *MockUserRepository, _ *MockTokenStore, _ *model.User) {
				mRepo.On("FindByEmail", mock.Anything, "ghost@lumina.com").Return(nil, apperrors.ErrNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore, testUser(t))

			svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			tokens, user, err := svc.SignIn(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Contains(t, err.Error(), "Invalid")
				assert.Nil(t, tokens)
				assert.Nil(t, user)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, tokens.AccessToken)
				assert.NotEmpty(t, tokens.RefreshToken)
				assert.Equal(t, "user-1", user.ID)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_SignIn_StoreFailure(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockTokenStore := new(MockTokenStore)
	mockRepo.On("FindByEmail", mock.Anything, "admin@lumina.com").Return(testUser(t), nil)
	mockTokenStore.On("StoreSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
	_, _, err := svc.SignIn(context.Background(), "admin@lumina.com", "admin")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// The session lifecycle runs against the in-memory token store end to end.
func TestAuthService_SessionLifecycle(t *testing.T) {
	ctx := context.Background()
	user := testUser(t)
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	mockRepo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	svc := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), auth.NewMemoryTokenStore())

	tokens, _, err := svc.SignIn(ctx, user.Email, "admin")
	require.NoError(t, err)

	current, err := svc.CurrentUser(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.Email, current.Email)

	_, err = svc.Authenticate(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated, "refresh tokens are not access tokens")

	renewed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, renewed)
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	require.NoError(t, svc.SignOut(ctx, tokens.AccessToken, tokens.RefreshToken))

	_, err = svc.CurrentUser(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	_, err = svc.Authenticate(ctx, renewed)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated, "sibling access tokens die with the session")
	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestAuthService_SignOutWithoutTokens(t *testing.T) {
	mockTokenStore := new(MockTokenStore)
	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), mockTokenStore)

	assert.NoError(t, svc.SignOut(context.Background(), "", "garbage"))
	mockTokenStore.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
}

func TestAuthService_CurrentUserAnonymous(t *testing.T) {
	svc := NewAuthService(new(MockUserRepository), auth.NewJWTService("test-secret"), auth.NewMemoryTokenStore())

	user, err := svc.CurrentUser(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Nil(t, user)
}

func TestAuthService_AuthenticateStoreFailure(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	_, access, err := jwtService.GenerateAccessToken("user-1", "admin@lumina.com", "session-1")
	require.NoError(t, err)

	mockTokenStore := new(MockTokenStore)
	mockTokenStore.On("IsAccessTokenBlacklisted", mock.Anything, mock.Anything).Return(false, errors.New("connection refused"))
	mockTokenStore.On("GetSession", mock.Anything, "session-1").Return(&auth.Session{UserID: "user-1", Email: "admin@lumina.com"}, nil)
	svc := NewAuthService(new(MockUserRepository), jwtService, mockTokenStore)

	claims, err := svc.Authenticate(context.Background(), access)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	assert.Nil(t, claims)
	mockTokenStore.AssertNotCalled(t, "GetSession", mock.Anything, mock.Anything)
}
