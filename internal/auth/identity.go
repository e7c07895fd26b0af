package auth

import "github.com/agencydesk/backoffice/internal/domain"

// Identity is the verified caller, derived from a valid token and scoped to
// one request. It is only ever constructed by TokenManager.Verify; nothing
// else may fabricate one from unverified input.
type Identity struct {
	UserID   int64
	Username string
	Role     domain.Role
}
