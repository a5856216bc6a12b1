package security

import "github.com/artemdev/contacts-book-rest-api/internal/model"

// RoleAccess decides whether a role may invoke a gated operation. Pure
// membership check, no I/O and no state beyond the allowed set
type RoleAccess struct {
	allowed map[model.Role]struct{}
}

func NewRoleAccess(roles ...model.Role) *RoleAccess {
	allowed := make(map[model.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return &RoleAccess{allowed: allowed}
}

func (r *RoleAccess) Allowed(role model.Role) bool {
	_, ok := r.allowed[role]
	return ok
}
