package auth

import (
	"strings"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// RoleResolver maps an account's claim set to exactly one application
// role. Precedence: staff claim (or the configured admin bootstrap
// email) over tutor claim over the student default.
type RoleResolver struct {
	adminEmail string
}

// NewRoleResolver constructs a resolver. adminEmail may be empty, which
// disables the bootstrap match.
func NewRoleResolver(adminEmail string) *RoleResolver {
	return &RoleResolver{adminEmail: strings.TrimSpace(adminEmail)}
}

// Resolve returns the role for an authenticated account's claims.
func (r *RoleResolver) Resolve(claims domain.Claims, email string) domain.Role {
	if claims.Staff || r.isAdminEmail(email) {
		return domain.RoleStaff
	}
	if claims.Tutor {
		return domain.RoleTutor
	}
	return domain.RoleStudent
}

// Fallback returns the role used when the claim fetch fails. Elevated
// roles are never granted without claim evidence, except the admin
// bootstrap email.
func (r *RoleResolver) Fallback(email string) domain.Role {
	if r.isAdminEmail(email) {
		return domain.RoleStaff
	}
	return domain.RoleStudent
}

func (r *RoleResolver) isAdminEmail(email string) bool {
	return r.adminEmail != "" && strings.EqualFold(strings.TrimSpace(email), r.adminEmail)
}
