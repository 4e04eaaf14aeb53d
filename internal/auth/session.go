package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Maoli-LLC/Aeon-Website-sub000/internal/config"
)

// SessionService issues and validates the admin session token. The site
// has a single admin, so the token carries no per-user claims beyond a
// fixed subject.
type SessionService struct {
	secret []byte
	ttl    time.Duration
}

const sessionSubject = "admin"

// NewSessionService creates a SessionService from the admin config.
func NewSessionService(cfg config.AdminConfig) (*SessionService, error) {
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("auth: admin session secret is required")
	}
	ttl := cfg.SessionTTL
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &SessionService{secret: []byte(cfg.SessionSecret), ttl: ttl}, nil
}

// Issue creates a signed session token.
func (s *SessionService) Issue() (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   sessionSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: failed to sign session token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a session token.
func (s *SessionService) Validate(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("auth: invalid session token: %w", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject != sessionSubject {
		return fmt.Errorf("auth: unexpected session subject")
	}
	return nil
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}
