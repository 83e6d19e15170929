package auth

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/domain"
)

var segmentEncoding = base64.RawURLEncoding.Strict()

// edgePayload mirrors tokenClaims without depending on the JWT library.
type edgePayload struct {
	UserID    string       `json:"userId"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      domain.Role  `json:"role"`
	Issuer    string       `json:"iss"`
	Subject   string       `json:"sub"`
	Audience  edgeAudience `json:"aud"`
	ID        string       `json:"jti"`
	ExpiresAt *json.Number `json:"exp"`
	NotBefore *json.Number `json:"nbf"`
	IssuedAt  *json.Number `json:"iat"`
}

// edgeAudience accepts a single string or an array of strings.
type edgeAudience []string

func (a *edgeAudience) UnmarshalJSON(data []byte) error {
	var value interface{}
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	switch v := value.(type) {
	case nil:
		*a = nil
	case string:
		*a = edgeAudience{v}
	case []interface{}:
		out := make(edgeAudience, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return errors.New("aud entries must be strings")
			}
			out = append(out, s)
		}
		*a = out
	default:
		return errors.New("aud must be a string or an array of strings")
	}
	return nil
}

// EdgeDecoder validates session tokens using only the standard library so it
// can run in the edge guard without the full JWT stack.
type EdgeDecoder struct {
	secret []byte
	now    func() time.Time
}

// NewEdgeDecoder builds a decoder sharing the codec's secret.
func NewEdgeDecoder(cfg config.AuthConfig) *EdgeDecoder {
	return &EdgeDecoder{secret: []byte(cfg.JWTSecret), now: time.Now}
}

// Decode validates a token and returns its claims.
func (d *EdgeDecoder) Decode(token string) (*Claims, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	sig, err := segmentEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, d.secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, ErrInvalidSignature
	}

	headerBytes, err := segmentEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, ErrMalformed
	}
	var header map[string]interface{}
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, ErrMalformed
	}

	payloadBytes, err := segmentEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformed
	}
	var payload edgePayload
	if err := json.NewDecoder(bytes.NewReader(payloadBytes)).Decode(&payload); err != nil {
		return nil, ErrMalformed
	}

	if alg, ok := header["alg"].(string); !ok || alg != signingAlg {
		return nil, ErrInvalidSignature
	}

	exp, err := numericDate(payload.ExpiresAt)
	if err != nil {
		return nil, ErrMalformed
	}
	nbf, err := numericDate(payload.NotBefore)
	if err != nil {
		return nil, ErrMalformed
	}
	iat, err := numericDate(payload.IssuedAt)
	if err != nil {
		return nil, ErrMalformed
	}

	now := d.now()
	if !exp.IsZero() && !now.Before(exp) {
		return nil, ErrExpired
	}
	if exp.IsZero() {
		return nil, ErrMalformed
	}
	if !nbf.IsZero() && now.Before(nbf) {
		return nil, ErrMalformed
	}

	return &Claims{
		UserID:    payload.UserID,
		Name:      payload.Name,
		Email:     payload.Email,
		Role:      payload.Role,
		IssuedAt:  iat,
		ExpiresAt: exp,
	}, nil
}

// numericDate converts a JWT NumericDate to second precision. A nil value
// yields the zero time.
func numericDate(n *json.Number) (time.Time, error) {
	if n == nil {
		return time.Time{}, nil
	}
	f, err := n.Float64()
	if err != nil {
		return time.Time{}, err
	}
	round, frac := math.Modf(f)
	return time.Unix(int64(round), int64(frac*1e9)).Truncate(time.Second), nil
}
