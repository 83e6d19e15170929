package auth

import (
	"encoding/base64"
	"testing"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/accumanage/portal/internal/config"
)

const testSecret = "test-secret"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:              testSecret,
		SessionTTLMinutes:      60,
		AdminSessionTTLMinutes: 30,
		BcryptCost:             4,
	}
}

// signRaw signs arbitrary header and payload JSON with HS256, bypassing the
// codec so tests can build tokens the codec would never emit.
func signRaw(t *testing.T, secret, header, payload string) string {
	t.Helper()
	enc := base64.RawURLEncoding
	signing := enc.EncodeToString([]byte(header)) + "." + enc.EncodeToString([]byte(payload))
	sig, err := jwt.SigningMethodHS256.Sign(signing, []byte(secret))
	require.NoError(t, err)
	return signing + "." + enc.EncodeToString(sig)
}
