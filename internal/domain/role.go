package domain

import "strings"

// Role is the single application role derived for a session.
type Role string

const (
	RoleGuest   Role = "guest"
	RoleStudent Role = "student"
	RoleTutor   Role = "tutor"
	RoleStaff   Role = "staff"
)

// Claims is the closed set of authorization claims attached to an account.
// Absent rows in the claims store decode to the zero value.
type Claims struct {
	Staff bool `json:"staff"`
	Tutor bool `json:"tutor"`
}

// ParseRole normalizes a role string, defaulting to guest for unknown input.
func ParseRole(val string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(val))) {
	case RoleStudent:
		return RoleStudent
	case RoleTutor:
		return RoleTutor
	case RoleStaff:
		return RoleStaff
	default:
		return RoleGuest
	}
}
