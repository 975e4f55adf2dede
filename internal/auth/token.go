package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"netkas/internal/core"
)

var ErrInvalidToken = errors.New("invalid session token")

// TokenManager issues and verifies signed session tokens carrying the
// account's non-secret projection.
type TokenManager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewTokenManager(secret, issuer string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (t *TokenManager) TTL() time.Duration { return t.ttl }

// Generate issues a signed token for the session.
func (t *TokenManager) Generate(session core.Session) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      t.issuer,
		"sub":      session.ID,
		"username": session.Username,
		"role":     string(session.Role),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      now.Add(t.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses the token and reconstructs the session projection.
func (t *TokenManager) Verify(tokenString string) (core.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return core.Session{}, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return core.Session{}, ErrInvalidToken
	}
	id, _ := claims["sub"].(string)
	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	if id == "" || username == "" {
		return core.Session{}, ErrInvalidToken
	}
	return core.Session{ID: id, Username: username, Role: core.Role(role)}, nil
}
