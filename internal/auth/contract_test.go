package auth

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accumanage/portal/internal/domain"
)

const hs256Header = `{"alg":"HS256","typ":"JWT"}`

type decodeFixture struct {
	name    string
	token   string
	wantErr error
}

func contractFixtures(t *testing.T) []decodeFixture {
	cfg := testAuthConfig()
	codec := NewTokenCodec(cfg)
	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	mint := func(c Claims) string {
		token, err := codec.Encode(c)
		require.NoError(t, err)
		return token
	}

	expired := sampleClaims(domain.RoleAdmin)
	expired.IssuedAt = time.Unix(past-60, 0)
	expired.ExpiresAt = time.Unix(past, 0)

	unknownRole := sampleClaims(domain.Role("owner"))

	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = "rotated"
	foreign, err := NewTokenCodec(otherCfg).Encode(sampleClaims(domain.RoleSuperadmin))
	require.NoError(t, err)

	valid := mint(sampleClaims(domain.RoleUser))

	return []decodeFixture{
		{name: "user", token: valid},
		{name: "admin", token: mint(sampleClaims(domain.RoleAdmin))},
		{name: "superadmin", token: mint(sampleClaims(domain.RoleSuperadmin))},
		{name: "unknown role still decodes", token: mint(unknownRole)},
		{name: "expired", token: mint(expired), wantErr: ErrExpired},
		{name: "foreign secret", token: foreign, wantErr: ErrInvalidSignature},
		{name: "truncated signature", token: valid[:len(valid)-4], wantErr: ErrInvalidSignature},
		{name: "empty signature", token: valid[:len(valid)-43], wantErr: ErrInvalidSignature},
		{name: "two segments", token: "e30.e30", wantErr: ErrMalformed},
		{name: "garbage", token: "not a token", wantErr: ErrMalformed},
		{
			name:    "alg none",
			token:   "eyJhbGciOiJub25lIiwidHlwIjoiSldUIn0.eyJ1c2VySWQiOiJ4Iiwicm9sZSI6InN1cGVyYWRtaW4ifQ.",
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "header claims HS384",
			token:   signRaw(t, testSecret, `{"alg":"HS384","typ":"JWT"}`, fmt.Sprintf(`{"userId":"x","role":"admin","exp":%d}`, future)),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "header without alg",
			token:   signRaw(t, testSecret, `{"typ":"JWT"}`, fmt.Sprintf(`{"userId":"x","role":"admin","exp":%d}`, future)),
			wantErr: ErrInvalidSignature,
		},
		{
			name:    "missing exp",
			token:   signRaw(t, testSecret, hs256Header, `{"userId":"x","role":"admin"}`),
			wantErr: ErrMalformed,
		},
		{
			name:    "payload not json",
			token:   signRaw(t, testSecret, hs256Header, `not-json`),
			wantErr: ErrMalformed,
		},
		{
			name:    "header not json",
			token:   signRaw(t, testSecret, `nope`, fmt.Sprintf(`{"exp":%d}`, future)),
			wantErr: ErrMalformed,
		},
		{
			name:    "role wrong type",
			token:   signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","role":5,"exp":%d}`, future)),
			wantErr: ErrMalformed,
		},
		{
			name:    "aud wrong type",
			token:   signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","aud":5,"exp":%d}`, future)),
			wantErr: ErrMalformed,
		},
		{
			name:    "not yet valid",
			token:   signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","nbf":%d,"exp":%d}`, future-60, future)),
			wantErr: ErrMalformed,
		},
		{
			name:  "exp as numeric string",
			token: signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","role":"user","exp":"%d"}`, future)),
		},
		{
			name:  "fractional exp",
			token: signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","role":"user","exp":%d.5,"iat":%d}`, future, past)),
		},
		{
			name:  "aud list",
			token: signRaw(t, testSecret, hs256Header, fmt.Sprintf(`{"userId":"x","aud":["a","b"],"exp":%d}`, future)),
		},
	}
}

// The edge guard and the route guard must never disagree about a token.
func TestDecodersAgree(t *testing.T) {
	cfg := testAuthConfig()
	full := NewTokenCodec(cfg)
	edge := NewEdgeDecoder(cfg)

	for _, fx := range contractFixtures(t) {
		t.Run(fx.name, func(t *testing.T) {
			fullClaims, fullErr := full.Decode(fx.token)
			edgeClaims, edgeErr := edge.Decode(fx.token)

			if fx.wantErr != nil {
				assert.ErrorIs(t, fullErr, fx.wantErr, "codec")
				assert.ErrorIs(t, edgeErr, fx.wantErr, "edge")
				return
			}
			require.NoError(t, fullErr, "codec")
			require.NoError(t, edgeErr, "edge")
			assert.Equal(t, fullClaims, edgeClaims)
		})
	}
}
