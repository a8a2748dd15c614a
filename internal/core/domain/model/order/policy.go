package order

import (
	"errors"

	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

var (
	ErrOrderIsNotConstructed = errors.New("order is not constructed")
	ErrAlreadyFinalized      = errors.New("order is already finalized")
	ErrOrderLocked           = errors.New("order content is locked")
	ErrMissingConclusion     = errs.NewValueIsRequiredError("conclusion")
	ErrNumberTaken           = errors.New("order number is already taken")
)

var (
	finalizationRequesters = []personnel.Role{personnel.RoleSupervisor, personnel.RoleManager, personnel.RoleAdmin}
	reviewers              = []personnel.Role{personnel.RoleAdmin}
	approvers              = []personnel.Role{personnel.RoleManager, personnel.RoleAdmin}
	cancellers             = []personnel.Role{personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer}
	hardDeleters           = []personnel.Role{personnel.RoleAdmin}
	editors                = []personnel.Role{personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer}
	operationalEditors     = []personnel.Role{
		personnel.RoleAdmin, personnel.RoleManager, personnel.RoleEngineer, personnel.RoleSupervisor,
	}
)

func authorize(actor personnel.Actor, action string, roles ...personnel.Role) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	if !actor.Role().In(roles...) {
		return errs.NewForbiddenError(actor, action)
	}
	return nil
}

// AuthorizeCancelOrDelete is the one role check made before the caller picks
// between CancelOrder and DeleteOrderHard.
func AuthorizeCancelOrDelete(actor personnel.Actor) error {
	return authorize(actor, "cancel or delete order", cancellers...)
}

// PrefersHardDelete reports whether a cancel-or-delete request by actor purges the order.
func PrefersHardDelete(actor personnel.Actor) bool {
	return actor.Role() == personnel.RoleAdmin
}

// AuthorizeCreate gates opening new orders.
func AuthorizeCreate(actor personnel.Actor) error {
	return authorize(actor, "create order", editors...)
}
