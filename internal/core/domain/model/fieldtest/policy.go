package fieldtest

import (
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

var (
	creators = []personnel.Role{
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer,
		personnel.RoleSupervisor, personnel.RoleTechnician,
	}
	updaters = []personnel.Role{
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer, personnel.RoleTechnician,
	}
	deleters = []personnel.Role{personnel.RoleAdmin}
)

func AuthorizeCreate(actor personnel.Actor) error {
	return authorize(actor, "create field test", creators)
}

func AuthorizeUpdate(actor personnel.Actor) error {
	return authorize(actor, "update field test", updaters)
}

func AuthorizeDelete(actor personnel.Actor) error {
	return authorize(actor, "delete field test", deleters)
}

func authorize(actor personnel.Actor, action string, roles []personnel.Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().In(roles...) {
		return errs.NewForbiddenError(actor, action)
	}
	return nil
}
