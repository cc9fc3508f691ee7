package server

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/config"
)

const claimsLocalKey = "auth_claims"

// RequireStaff guards the admin surface: a valid access token whose account
// is staff. Staff alone grants nothing beyond entry; capability checks still
// go through the Authorizer.
func (s *Server) RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "authentication credentials were not provided",
			})
		}

		claims, err := s.auther.Verify(raw)
		if err != nil || claims.Use() != accounts.TokenUseAccess {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"detail": "token is invalid or expired",
			})
		}

		if !claims.Staff() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"detail": "staff access required",
			})
		}

		c.Locals(claimsLocalKey, claims)

		return c.Next()
	}
}

// ClaimsFromContext returns the validated claims set by RequireStaff.
func ClaimsFromContext(c *fiber.Ctx) (accounts.AuthClaims, bool) {
	claims, ok := c.Locals(claimsLocalKey).(accounts.AuthClaims)
	return claims, ok
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// securityHeaders applies the production hardening flags.
func securityHeaders(sec config.SecurityConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sec.FrameDeny {
			c.Set("X-Frame-Options", "DENY")
		}
		if sec.ContentNoSniff {
			c.Set("X-Content-Type-Options", "nosniff")
		}
		if sec.HSTSSeconds > 0 {
			c.Set("Strict-Transport-Security", hstsValue(sec.HSTSSeconds))
		}
		if len(sec.AllowedHosts) > 0 && !hostAllowed(c.Hostname(), sec.AllowedHosts) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"detail": "invalid host header",
			})
		}
		if sec.SSLRedirect && c.Protocol() != "https" {
			return c.Redirect("https://"+c.Hostname()+c.OriginalURL(), fiber.StatusMovedPermanently)
		}
		return c.Next()
	}
}

func hostAllowed(host string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(host, a) {
			return true
		}
	}
	return false
}

func hstsValue(seconds int) string {
	return "max-age=" + strconv.Itoa(seconds)
}
