package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/foodoo/foodoo/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long issued tokens stay valid. Expiry is the only
// invalidation mechanism; there is no revocation list.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned for malformed, unsigned, or expired tokens.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims are the identity claims embedded in every issued token.
type Claims struct {
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Photo  string `json:"photo"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed bearer tokens. Stateless: a pure
// function of the secret key and the claims.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager signing with the given secret.
func NewManager(secret string, ttl time.Duration) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("signing secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}, nil
}

// Issue mints a signed, time-bound token carrying the user's identity.
func (m *Manager) Issue(user *models.User) (string, error) {
	email := ""
	if user.Email != nil {
		email = *user.Email
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  email,
		Photo:  user.Photo,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a raw token string, returning its claims.
func (m *Manager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	tok, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return m.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
