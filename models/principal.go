package models

// Principal is the authenticated caller for one request, derived from the
// verified token by the auth middleware. The zero value carries no identity
// and no roles, so every check against it denies.
type Principal struct {
	UserID uint
	Roles  []string
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) IsAdmin() bool {
	return p.HasRole(RoleAdmin)
}
