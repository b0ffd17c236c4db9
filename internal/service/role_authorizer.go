package service

import (
	"slices"

	"github.com/MKhiriev/go-photo-share/models"
)

// Predefined role sets used by the router.
var (
	AdminOnly      = NewRoleAuthorizer(models.RoleAdmin)
	AdminModerator = NewRoleAuthorizer(models.RoleAdmin, models.RoleModerator)
	AllRoles       = NewRoleAuthorizer(models.RoleAdmin, models.RoleModerator, models.RoleUser)
)

// RoleAuthorizer admits users whose role is in a fixed set.
type RoleAuthorizer struct {
	allowed []models.Role
}

// NewRoleAuthorizer returns an authorizer admitting the given roles.
func NewRoleAuthorizer(roles ...models.Role) RoleAuthorizer {
	return RoleAuthorizer{allowed: slices.Clone(roles)}
}

// Check returns ErrForbidden unless user's role is allowed.
func (r RoleAuthorizer) Check(user models.User) error {
	if slices.Contains(r.allowed, user.Role) {
		return nil
	}
	return ErrForbidden
}

// Roles returns a copy of the allowed roles.
func (r RoleAuthorizer) Roles() []models.Role {
	return slices.Clone(r.allowed)
}
