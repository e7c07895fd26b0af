package auth

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/agencydesk/backoffice/internal/domain"
	"github.com/agencydesk/backoffice/internal/observability"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

func newTestApp(t *testing.T, tm *TokenManager) *fiber.App {
	t.Helper()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"message": domainErr.Message,
				"error":   domainErr.Code,
			})
		},
	})

	mw := NewMiddleware(tm, zap.NewNop(), observability.NewMetrics())
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			t.Error("identity missing after successful auth")
			return fiber.ErrInternalServerError
		}
		return c.JSON(identity)
	})
	app.Get("/managers", mw.Handle, RequireRoles(domain.RoleAdmin, domain.RoleManager), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestMiddlewareMissingTokenIs401(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newTestApp(t, tm)

	req := httptest.NewRequest("GET", "/protected", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddlewareMalformedHeaderIs401(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newTestApp(t, tm)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestMiddlewareInvalidTokenIs403(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newTestApp(t, tm)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestMiddlewareValidTokenPasses(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newTestApp(t, tm)

	token, _, err := tm.Issue(Identity{UserID: 7, Username: "agent7", Role: domain.RoleAgent}, 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestRoleGuard(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	app := newTestApp(t, tm)

	cases := []struct {
		role domain.Role
		want int
	}{
		{domain.RoleAdmin, fiber.StatusOK},
		{domain.RoleManager, fiber.StatusOK},
		{domain.RoleAgent, fiber.StatusForbidden},
	}

	for _, tc := range cases {
		token, _, err := tm.Issue(Identity{UserID: 1, Username: "u", Role: tc.role}, 0)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		req := httptest.NewRequest("GET", "/managers", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		if resp.StatusCode != tc.want {
			t.Fatalf("role %s: expected %d, got %d", tc.role, tc.want, resp.StatusCode)
		}
	}
}
