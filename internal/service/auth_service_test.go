package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/agencydesk/backoffice/internal/config"
	"github.com/agencydesk/backoffice/internal/domain"
	apperrors "github.com/agencydesk/backoffice/pkg/util"
)

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.users[user.Username]; exists {
		return &pgconn.PgError{Code: "23505"}
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.users[user.Username] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *u
	return &copied, nil
}

func (f *fakeUserRepo) ListIDs(_ context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(f.users))
	for _, u := range f.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", TokenTTLSeconds: 3600, BcryptCost: 4}
}

func TestRegisterDefaultsToAgent(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	user, err := svc.Register(context.Background(), "jdoe", "pw", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Role != domain.RoleAgent {
		t.Fatalf("expected agent role, got %s", user.Role)
	}
	if user.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if user.PasswordHash == "pw" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	if _, err := svc.Register(context.Background(), "jdoe", "pw", domain.RoleAgent); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(context.Background(), "jdoe", "other", domain.RoleManager)
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "DUPLICATE_USERNAME" {
		t.Fatalf("expected DUPLICATE_USERNAME, got %v", err)
	}
	if domainErr.HTTPStatus != 400 {
		t.Fatalf("expected 400, got %d", domainErr.HTTPStatus)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := NewAuthService(testAuthConfig(), newFakeUserRepo())

	_, err := svc.Register(context.Background(), "jdoe", "pw", domain.Role("root"))
	domainErr := apperrors.ToDomainError(err)
	if domainErr == nil || domainErr.Code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %v", err)
	}
}

func TestLoginSuccess(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	if _, err := svc.Register(context.Background(), "jdoe", "pw", domain.RoleManager); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := svc.Login(context.Background(), "jdoe", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token")
	}
	if result.Identity.Username != "jdoe" || result.Identity.Role != domain.RoleManager {
		t.Fatalf("unexpected identity %+v", result.Identity)
	}

	identity, err := svc.TokenManager().Verify(result.Token)
	if err != nil {
		t.Fatalf("verify issued token: %v", err)
	}
	if identity != result.Identity {
		t.Fatalf("token identity %+v != login identity %+v", identity, result.Identity)
	}
}

// Unknown usernames and wrong passwords must be indistinguishable to the
// caller so usernames cannot be probed.
func TestLoginFailuresAreUniform(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(testAuthConfig(), repo)

	if _, err := svc.Register(context.Background(), "jdoe", "pw", domain.RoleAgent); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPw := svc.Login(context.Background(), "jdoe", "bad")
	_, noUser := svc.Login(context.Background(), "ghost", "bad")

	wrongErr := apperrors.ToDomainError(wrongPw)
	noUserErr := apperrors.ToDomainError(noUser)
	if wrongErr == nil || noUserErr == nil {
		t.Fatal("expected errors for both failures")
	}
	if wrongErr.Code != "INVALID_CREDENTIALS" || noUserErr.Code != "INVALID_CREDENTIALS" {
		t.Fatalf("expected INVALID_CREDENTIALS for both, got %q and %q", wrongErr.Code, noUserErr.Code)
	}
	if wrongErr.Message != noUserErr.Message || wrongErr.HTTPStatus != noUserErr.HTTPStatus {
		t.Fatal("login failures must be indistinguishable")
	}
	if wrongErr.HTTPStatus != 401 {
		t.Fatalf("expected 401, got %d", wrongErr.HTTPStatus)
	}
}
