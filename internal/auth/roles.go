package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agencydesk/backoffice/internal/domain"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

// Allowed is the pure role decision: it passes iff the identity's role is a
// member of the allow-list. Admin gets no implicit bypass.
func Allowed(allowed []domain.Role, role domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// RequireRoles builds a guard that admits only the listed roles. It must run
// after Middleware.Handle; a request that reaches it without an identity is
// rejected rather than passed through.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewForbidden("no identity")
		}
		if !Allowed(allowed, identity.Role) {
			return apperrors.NewForbidden("role not permitted")
		}
		return c.Next()
	}
}

// RequireAuthenticated admits any caller with a verified identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := IdentityFromContext(c); !ok {
			return apperrors.NewForbidden("no identity")
		}
		return c.Next()
	}
}
