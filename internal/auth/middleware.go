package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/observability"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

const identityKey = "auth_identity"

// Middleware validates bearer tokens and attaches the caller identity.
type Middleware struct {
	tokens  *TokenManager
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, logger *zap.Logger, metrics *observability.Metrics) *Middleware {
	return &Middleware{tokens: tokens, logger: logger, metrics: metrics}
}

// Handle enforces authentication for protected routes. A missing credential
// is 401; a credential that fails verification is 403. The split mirrors the
// legacy API and client code depends on it.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		m.reject("missing_token")
		return apperrors.NewUnauthenticated("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		m.reject("missing_token")
		return apperrors.NewUnauthenticated("invalid authorization header")
	}

	identity, err := m.tokens.Verify(parts[1])
	if err != nil {
		// The reason stays server-side; the client sees a generic message.
		if m.logger != nil {
			m.logger.Debug("token rejected", zap.Error(err))
		}
		m.reject("invalid_token")
		return apperrors.NewInvalidToken("invalid token")
	}

	c.Locals(identityKey, identity)
	return c.Next()
}

func (m *Middleware) reject(reason string) {
	if m.metrics != nil {
		m.metrics.RecordAuthReject(reason)
	}
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return Identity{}, false
	}
	identity, ok := val.(Identity)
	return identity, ok
}
