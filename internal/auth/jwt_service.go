package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	// AccessTokenExpiry is the duration for which access tokens are valid.
	AccessTokenExpiry = 15 * time.Minute
	// RefreshTokenExpiry is the duration for which refresh tokens are valid.
	RefreshTokenExpiry = 7 * 24 * time.Hour
)

var errInvalidToken = errors.New("invalid token")

// Claims represents JWT claims. ID is the token's own jti, SessionID ties an access
// token to the refresh token it was minted from.
type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret []byte
	now    func() time.Time
}

// NewJWTService creates a new JWT service with the given secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		now:    time.Now,
	}
}

// GenerateAccessToken generates a new access token bound to sessionID.
// The access token's own ID is returned so it can be blacklisted on sign-out.
func (s *JWTService) GenerateAccessToken(userID, email, sessionID string) (tokenID string, token string, err error) {
	tokenID = generateTokenID()
	token, err = s.sign(&Claims{
		UserID:           userID,
		Email:            email,
		SessionID:        sessionID,
		RegisteredClaims: s.registered(tokenID, AccessTokenExpiry),
	})
	return tokenID, token, err
}

// GenerateRefreshToken generates a new refresh token for the user.
// The refresh token ID doubles as the session ID stored in the token store.
func (s *JWTService) GenerateRefreshToken(userID, email string) (tokenID string, token string, err error) {
	tokenID = generateTokenID()
	token, err = s.sign(&Claims{
		UserID:           userID,
		Email:            email,
		RegisteredClaims: s.registered(tokenID, RefreshTokenExpiry),
	})
	return tokenID, token, err
}

func (s *JWTService) registered(id string, ttl time.Duration) jwt.RegisteredClaims {
	now := s.now()
	return jwt.RegisteredClaims{
		ID:        id,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
	}
}

func (s *JWTService) sign(claims *Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ValidateToken validates a JWT token and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, errInvalidToken
	}
	return claims, nil
}

// Remaining returns how long the claims stay valid, zero if already expired.
func (s *JWTService) Remaining(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	if d := claims.ExpiresAt.Time.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

func generateTokenID() string {
	return uuid.New().String()
}
