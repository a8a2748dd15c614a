package personnel

import (
	"fmt"
	"slices"

	"maintenance/internal/pkg/errs"
)

type Role string

const (
	RoleAdmin      Role = "ADMIN"
	RoleManager    Role = "GERENTE"
	RoleEngineer   Role = "ENGENHEIRO"
	RoleSupervisor Role = "SUPERVISOR"
	RoleTechnician Role = "TECNICO"
	RoleOther      Role = "OUTRO"
)

var validRoles = []Role{RoleAdmin, RoleManager, RoleEngineer, RoleSupervisor, RoleTechnician, RoleOther}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if err := r.Validate(); err != nil {
		return "", err
	}
	return r, nil
}

func (r Role) Validate() error {
	if !slices.Contains(validRoles, r) {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", string(r)))
	}
	return nil
}

func (r Role) String() string {
	return string(r)
}

// IsElevated reports the roles allowed to edit finalized content.
func (r Role) IsElevated() bool {
	return r.In(RoleAdmin, RoleManager, RoleEngineer)
}

func (r Role) In(roles ...Role) bool {
	return slices.Contains(roles, r)
}
