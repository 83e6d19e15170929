package auth

import (
	"errors"
	"time"

	"github.com/accumanage/portal/internal/domain"
)

// Decode failures. Guards never surface which one occurred.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
)

const signingAlg = "HS256"

// Claims is the identity carried by a session token.
type Claims struct {
	UserID    string
	Name      string
	Email     string
	Role      domain.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Decoder turns a signed token back into claims.
//
// TokenCodec and EdgeDecoder both implement it and must accept and reject
// exactly the same tokens:
//  1. anything but three dot-separated segments is ErrMalformed
//  2. the HMAC-SHA256 signature over "header.payload" is checked before any
//     segment is parsed; a mismatch is ErrInvalidSignature
//  3. undecodable header or payload is ErrMalformed
//  4. a header alg other than HS256 is ErrInvalidSignature
//  5. now >= exp is ErrExpired; a missing exp or a future nbf is ErrMalformed
type Decoder interface {
	Decode(token string) (*Claims, error)
}
