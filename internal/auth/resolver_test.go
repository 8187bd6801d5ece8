package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		adminEmail string
		claims     domain.Claims
		email      string
		want       domain.Role
	}{
		{
			name:  "no claims defaults to student",
			email: "someone@example.com",
			want:  domain.RoleStudent,
		},
		{
			name:   "tutor claim",
			claims: domain.Claims{Tutor: true},
			email:  "tutor@example.com",
			want:   domain.RoleTutor,
		},
		{
			name:   "staff claim",
			claims: domain.Claims{Staff: true},
			email:  "ops@example.com",
			want:   domain.RoleStaff,
		},
		{
			name:   "staff claim wins over tutor claim",
			claims: domain.Claims{Staff: true, Tutor: true},
			email:  "ops@example.com",
			want:   domain.RoleStaff,
		},
		{
			name:       "admin email grants staff without claims",
			adminEmail: "admin@example.com",
			email:      "admin@example.com",
			want:       domain.RoleStaff,
		},
		{
			name:       "admin email match is case insensitive",
			adminEmail: "admin@example.com",
			email:      "  Admin@Example.COM ",
			want:       domain.RoleStaff,
		},
		{
			name:       "admin email overrides tutor claim",
			adminEmail: "admin@example.com",
			claims:     domain.Claims{Tutor: true},
			email:      "admin@example.com",
			want:       domain.RoleStaff,
		},
		{
			name:       "non admin email with admin configured",
			adminEmail: "admin@example.com",
			email:      "user@example.com",
			want:       domain.RoleStudent,
		},
		{
			name:  "empty admin config never matches empty email",
			email: "",
			want:  domain.RoleStudent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := NewRoleResolver(tt.adminEmail)
			assert.Equal(t, tt.want, resolver.Resolve(tt.claims, tt.email))
		})
	}
}

func TestFallbackNeverElevatesWithoutAdminEmail(t *testing.T) {
	resolver := NewRoleResolver("")
	assert.Equal(t, domain.RoleStudent, resolver.Fallback("anyone@example.com"))

	resolver = NewRoleResolver("admin@example.com")
	assert.Equal(t, domain.RoleStaff, resolver.Fallback("admin@example.com"))
	assert.Equal(t, domain.RoleStudent, resolver.Fallback("user@example.com"))
}
