package domain

// Principal is the authenticated identity attached to a request or session.
// A nil Principal means an anonymous caller.
type Principal struct {
	AccountID string
	Name      string
	Email     string
	Claims    Claims
	Role      Role
}

// IsStaff reports whether the resolved role grants staff privileges.
func (p *Principal) IsStaff() bool {
	return p != nil && p.Role == RoleStaff
}

// SubmitterID returns the account id to record on writes, or nil for
// anonymous callers.
func (p *Principal) SubmitterID() *string {
	if p == nil || p.AccountID == "" {
		return nil
	}
	id := p.AccountID
	return &id
}
