package auth

import (
	"testing"

	"github.com/agencydesk/backoffice/internal/domain"
)

func TestAllowed(t *testing.T) {
	managers := []domain.Role{domain.RoleAdmin, domain.RoleManager}

	cases := []struct {
		name    string
		allowed []domain.Role
		role    domain.Role
		want    bool
	}{
		{"admin in list", managers, domain.RoleAdmin, true},
		{"manager in list", managers, domain.RoleManager, true},
		{"agent not in list", managers, domain.RoleAgent, false},
		{"admin gets no bypass", []domain.Role{domain.RoleAgent}, domain.RoleAdmin, false},
		{"empty list denies all", nil, domain.RoleAdmin, false},
		{"unknown role denied", managers, domain.Role("superuser"), false},
	}

	for _, tc := range cases {
		if got := Allowed(tc.allowed, tc.role); got != tc.want {
			t.Errorf("%s: Allowed(%v, %q) = %v, want %v", tc.name, tc.allowed, tc.role, got, tc.want)
		}
	}
}
