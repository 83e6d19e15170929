package auth

import (
	"errors"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/domain"
)

// tokenClaims is the JWT payload.
type tokenClaims struct {
	UserID string      `json:"userId"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates session tokens with golang-jwt.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// NewTokenCodec builds a codec from the auth configuration.
func NewTokenCodec(cfg config.AuthConfig) *TokenCodec {
	tc := &TokenCodec{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.SessionTTL(),
		now:    time.Now,
	}
	tc.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{signingAlg}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return tc.now() }),
	)
	return tc
}

// Encode signs claims. Zero IssuedAt defaults to now and zero ExpiresAt to
// IssuedAt plus the configured session TTL.
func (tc *TokenCodec) Encode(claims Claims) (string, error) {
	if claims.IssuedAt.IsZero() {
		claims.IssuedAt = tc.now()
	}
	if claims.ExpiresAt.IsZero() {
		claims.ExpiresAt = claims.IssuedAt.Add(tc.ttl)
	}

	payload := &tokenClaims{
		UserID: claims.UserID,
		Name:   claims.Name,
		Email:  claims.Email,
		Role:   claims.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString(tc.secret)
}

// Decode validates a token and returns its claims.
func (tc *TokenCodec) Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}
	sig, err := tc.parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, ErrInvalidSignature
	}
	if err := jwt.SigningMethodHS256.Verify(parts[0]+"."+parts[1], sig, tc.secret); err != nil {
		return nil, ErrInvalidSignature
	}

	var payload tokenClaims
	_, err = tc.parser.ParseWithClaims(token, &payload, func(*jwt.Token) (interface{}, error) {
		return tc.secret, nil
	})
	if err != nil {
		return nil, classifyParseError(err)
	}

	claims := &Claims{
		UserID: payload.UserID,
		Name:   payload.Name,
		Email:  payload.Email,
		Role:   payload.Role,
	}
	if payload.IssuedAt != nil {
		claims.IssuedAt = payload.IssuedAt.Time
	}
	if payload.ExpiresAt != nil {
		claims.ExpiresAt = payload.ExpiresAt.Time
	}
	return claims, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrMalformed
	}
}
