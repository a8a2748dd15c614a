package client

import (
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

var maintainers = []personnel.Role{personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer}

// AuthorizeMaintain gates every write to a client's hierarchy.
func AuthorizeMaintain(actor personnel.Actor, action string) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().In(maintainers...) {
		return errs.NewForbiddenError(actor, action)
	}
	return nil
}
