package auth

import (
	"encoding/json"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/domain"
)

const (
	// TokenCookie carries the signed session token.
	TokenCookie = "token"
	// UserInfoCookie carries display data for the UI. It is never trusted.
	UserInfoCookie = "user_info"
)

// sessionCookies is every cookie a session sets; Terminate clears all of them
// whatever the scope.
var sessionCookies = []string{TokenCookie, UserInfoCookie}

var cookieExpired = time.Unix(0, 0).UTC()

type userInfo struct {
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// SessionManager establishes and terminates cookie sessions.
type SessionManager struct {
	codec    *TokenCodec
	secure   bool
	ttl      time.Duration
	adminTTL time.Duration
	now      func() time.Time
}

// NewSessionManager builds a manager from the auth configuration.
func NewSessionManager(cfg config.AuthConfig, codec *TokenCodec) *SessionManager {
	return &SessionManager{
		codec:    codec,
		secure:   cfg.SecureCookies,
		ttl:      cfg.SessionTTL(),
		adminTTL: cfg.AdminSessionTTL(),
		now:      time.Now,
	}
}

// Establish mints a token for claims and returns the cookies to set.
func (s *SessionManager) Establish(claims Claims, scope domain.SessionScope) ([]*fiber.Cookie, error) {
	ttl := s.lifetime(scope)
	claims.IssuedAt = s.now()
	claims.ExpiresAt = claims.IssuedAt.Add(ttl)

	token, err := s.codec.Encode(claims)
	if err != nil {
		return nil, err
	}
	info, err := json.Marshal(userInfo{Name: claims.Name, Email: claims.Email, Role: claims.Role})
	if err != nil {
		return nil, err
	}

	maxAge := int(ttl / time.Second)
	authCookie := s.cookie(TokenCookie, token, scope)
	authCookie.HTTPOnly = true
	authCookie.MaxAge = maxAge
	authCookie.Expires = claims.ExpiresAt

	infoCookie := s.cookie(UserInfoCookie, url.QueryEscape(string(info)), scope)
	infoCookie.MaxAge = maxAge
	infoCookie.Expires = claims.ExpiresAt

	return []*fiber.Cookie{authCookie, infoCookie}, nil
}

// Terminate returns directives clearing every session cookie. It holds no
// state, so calling it without a session or repeatedly is harmless. Clearing
// relies on an expiry in the past: fasthttp never writes Max-Age=0.
func (s *SessionManager) Terminate(scope domain.SessionScope) []*fiber.Cookie {
	cookies := make([]*fiber.Cookie, 0, len(sessionCookies))
	for _, name := range sessionCookies {
		c := s.cookie(name, "", scope)
		c.HTTPOnly = name == TokenCookie
		c.Expires = cookieExpired
		cookies = append(cookies, c)
	}
	return cookies
}

func (s *SessionManager) lifetime(scope domain.SessionScope) time.Duration {
	if scope == domain.SessionScopeAdmin {
		return s.adminTTL
	}
	return s.ttl
}

func (s *SessionManager) cookie(name, value string, scope domain.SessionScope) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if scope == domain.SessionScopeAdmin {
		sameSite = fiber.CookieSameSiteStrictMode
	}
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Secure:   s.secure,
		SameSite: sameSite,
	}
}

// SetCookies writes cookie directives onto the response.
func SetCookies(c *fiber.Ctx, cookies []*fiber.Cookie) {
	for _, cookie := range cookies {
		c.Cookie(cookie)
	}
}
