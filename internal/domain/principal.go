package domain

// Principal is the authenticated identity acting on a request, as extracted
// from the access token.
type Principal struct {
	ID    int64
	Roles []Role
}

// HasAnyRole reports whether the principal holds at least one of the given
// roles.
func (p Principal) HasAnyRole(roles ...Role) bool {
	for _, want := range roles {
		for _, have := range p.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

// CanModify decides whether the principal may mutate the given product:
// ADMIN and MODERATOR may mutate anything, everyone else only their own
// products. Pure decision, no side effects.
func (p Principal) CanModify(product *Product) bool {
	if p.HasAnyRole(RoleAdmin, RoleModerator) {
		return true
	}
	return product.Owner.ID == p.ID
}
