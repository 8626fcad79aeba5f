// Package jwt implementa auth.AuthVerifier con tokens HS256 firmados por el servicio de identidad.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUser   = errors.New("token missing subject")
)

// Claims es el payload esperado: sub = user id, más email y role.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string
	// Issuer vacío = no se valida iss.
	Issuer string
	// Leeway tolera desfasajes de reloj en exp/nbf.
	Leeway time.Duration
}

type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(cfg Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}
	return &Verifier{
		secret: []byte(strings.TrimSpace(cfg.Secret)),
		parser: jwt.NewParser(opts...),
	}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || len(v.secret) == 0 {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var c Claims
	_, err := v.parser.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("jwt verify failed: %w", err)
	}

	userID := strings.TrimSpace(c.Subject)
	if userID == "" {
		return auth.Claims{}, ErrMissingUser
	}

	return auth.Claims{
		UserID: userID,
		Email:  strings.TrimSpace(c.Email),
		Role:   auth.ParseRole(c.Role),
	}, nil
}

// Sign emite un token con los mismos claims que Verify espera. Lo usan los tests y el tooling local.
func Sign(secret, issuer string, c auth.Claims, ttl time.Duration, now time.Time) (string, error) {
	claims := Claims{
		Email: c.Email,
		Role:  string(c.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
