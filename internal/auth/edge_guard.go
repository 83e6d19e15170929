package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// EdgeGuardConfig describes which paths the edge guard inspects.
type EdgeGuardConfig struct {
	// BypassPrefixes are never gated; the login flow lives under them.
	BypassPrefixes []string

	// Matchers limit the guard to these path prefixes.
	Matchers []string

	AdminPrefix    string
	AdminLoginPath string
	LoginPath      string
}

// DefaultEdgeGuardConfig returns the production path layout.
func DefaultEdgeGuardConfig() EdgeGuardConfig {
	return EdgeGuardConfig{
		BypassPrefixes: []string{"/static/", "/api/auth/"},
		Matchers:       []string{"/admin", "/dashboard"},
		AdminPrefix:    "/admin",
		AdminLoginPath: "/admin/login",
		LoginPath:      "/login",
	}
}

// EdgeGuard redirects browser traffic without a suitable session before any
// route runs.
type EdgeGuard struct {
	decoder Decoder
	cfg     EdgeGuardConfig
}

// NewEdgeGuard constructs the guard.
func NewEdgeGuard(decoder Decoder, cfg EdgeGuardConfig) *EdgeGuard {
	return &EdgeGuard{decoder: decoder, cfg: normalizeEdgeConfig(cfg)}
}

func normalizeEdgeConfig(cfg EdgeGuardConfig) EdgeGuardConfig {
	lower := func(in []string) []string {
		out := make([]string, len(in))
		for i, s := range in {
			out[i] = strings.ToLower(s)
		}
		return out
	}
	cfg.BypassPrefixes = lower(cfg.BypassPrefixes)
	cfg.Matchers = lower(cfg.Matchers)
	cfg.AdminPrefix = strings.ToLower(cfg.AdminPrefix)
	cfg.AdminLoginPath = strings.ToLower(cfg.AdminLoginPath)
	return cfg
}

// Handle is installed ahead of every route. Paths are compared lowercased so
// the decision does not depend on the router's case sensitivity.
func (g *EdgeGuard) Handle(c *fiber.Ctx) error {
	path := strings.ToLower(c.Path())

	for _, prefix := range g.cfg.BypassPrefixes {
		if strings.HasPrefix(path, prefix) {
			return c.Next()
		}
	}
	if !matchesAny(path, g.cfg.Matchers) {
		return c.Next()
	}
	if path == g.cfg.AdminLoginPath {
		return c.Next()
	}

	token := c.Cookies(TokenCookie)

	if underPrefix(path, g.cfg.AdminPrefix) {
		if token == "" {
			return c.Redirect(g.cfg.AdminLoginPath, fiber.StatusTemporaryRedirect)
		}
		claims, err := g.decoder.Decode(token)
		if err != nil {
			return c.Redirect(g.cfg.AdminLoginPath, fiber.StatusTemporaryRedirect)
		}
		if !HasRole(claims, PrivilegedRoles) {
			return c.Redirect(g.cfg.LoginPath, fiber.StatusTemporaryRedirect)
		}
		return c.Next()
	}

	if token == "" {
		return c.Redirect(g.cfg.LoginPath, fiber.StatusTemporaryRedirect)
	}
	if _, err := g.decoder.Decode(token); err != nil {
		return c.Redirect(g.cfg.LoginPath, fiber.StatusTemporaryRedirect)
	}
	return c.Next()
}

func matchesAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if underPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// underPrefix matches the prefix itself or a sub-path, so "/admin" does not
// match "/administrator".
func underPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/")
}
