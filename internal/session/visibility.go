package session

import "github.com/spec-kit/tutor-marketplace/internal/domain"

// WildcardRole marks an affordance visible to every role, guest included.
const WildcardRole = "*"

// Affordance is a UI element tagged with the roles allowed to see it.
type Affordance struct {
	Tag     string
	Allowed []string
}

// VisibleTo reports whether the affordance is shown to the given role.
func (a Affordance) VisibleTo(role domain.Role) bool {
	for _, allowed := range a.Allowed {
		if allowed == WildcardRole || allowed == string(role) {
			return true
		}
	}
	return false
}

// VisibleTags filters a registry of affordances down to the tags the
// role may see, preserving registry order.
func VisibleTags(registry []Affordance, role domain.Role) []string {
	tags := make([]string, 0, len(registry))
	for _, a := range registry {
		if a.VisibleTo(role) {
			tags = append(tags, a.Tag)
		}
	}
	return tags
}

// DefaultAffordances is the marketplace's built-in affordance registry.
var DefaultAffordances = []Affordance{
	{Tag: "nav-home", Allowed: []string{WildcardRole}},
	{Tag: "nav-find-tutor", Allowed: []string{WildcardRole}},
	{Tag: "nav-login", Allowed: []string{string(domain.RoleGuest)}},
	{Tag: "nav-logout", Allowed: []string{string(domain.RoleStudent), string(domain.RoleTutor), string(domain.RoleStaff)}},
	{Tag: "apply-tutor", Allowed: []string{string(domain.RoleGuest), string(domain.RoleStudent)}},
	{Tag: "book-demo", Allowed: []string{string(domain.RoleGuest), string(domain.RoleStudent)}},
	{Tag: "tutor-dashboard", Allowed: []string{string(domain.RoleTutor), string(domain.RoleStaff)}},
	{Tag: "staff-approvals", Allowed: []string{string(domain.RoleStaff)}},
	{Tag: "ads-board", Allowed: []string{WildcardRole}},
}
