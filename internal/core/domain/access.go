package domain

// Guard decides whether a request identity may reach a route. The zero value
// admits any authenticated identity.
type Guard struct {
	roles map[Role]struct{}
}

// NewGuard returns a Guard restricted to roles. With no roles, any
// authenticated identity is admitted.
func NewGuard(roles ...Role) Guard {
	g := Guard{}
	if len(roles) == 0 {
		return g
	}
	g.roles = make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		g.roles[r] = struct{}{}
	}
	return g
}

// Allow returns nil when claim passes the guard, ErrNotAuthorized when there
// is no identity and ErrNoPermissions when the role is outside the set.
func (g Guard) Allow(claim *Claim) error {
	if claim == nil {
		return ErrNotAuthorized
	}
	if len(g.roles) == 0 {
		return nil
	}
	if _, ok := g.roles[claim.Role]; !ok {
		return ErrNoPermissions
	}
	return nil
}
