package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrReconcileClientHierarchyCommandIsNotConstructed = errors.New(
	"ReconcileClientHierarchyCommand must be created via NewReconcileClientHierarchyCommand constructor",
)

// ReconcileClientHierarchyCommand replaces a client's profile and tree with
// the submitted one. Substations and components keep their identity when the
// submitted reference is one of their persisted ids; anything else is created,
// and persisted rows that were not submitted are removed.
//
// Example:
//
//	cmd, err := NewReconcileClientHierarchyCommand(actor, clientID, profile, []client.SubstationDraft{
//	    {Ref: existingID.String(), Profile: client.SubstationProfile{Name: "SE Norte"}},
//	    {Ref: "tmp-1", Profile: client.SubstationProfile{Name: "SE Sul"}},
//	})
type ReconcileClientHierarchyCommand struct { //nolint:recvcheck //using for validation
	actor       personnel.Actor
	clientID    kernel.UUID
	profile     client.Profile
	substations []client.SubstationDraft

	guard guard.ConstructorGuard
}

func NewReconcileClientHierarchyCommand(
	actor personnel.Actor,
	clientID kernel.UUID,
	profile client.Profile,
	substations []client.SubstationDraft,
) (ReconcileClientHierarchyCommand, error) {
	if err := errors.Join(actor.Validate(), clientID.Validate()); err != nil {
		return ReconcileClientHierarchyCommand{}, err
	}
	return ReconcileClientHierarchyCommand{
		actor:       actor,
		clientID:    clientID,
		profile:     profile,
		substations: substations,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileClientHierarchyCommand) Validate() error {
	return c.guard.Validate(ErrReconcileClientHierarchyCommandIsNotConstructed)
}

func (c ReconcileClientHierarchyCommand) Actor() personnel.Actor {
	return c.actor
}

func (c ReconcileClientHierarchyCommand) ClientID() kernel.UUID {
	return c.clientID
}

func (c ReconcileClientHierarchyCommand) Profile() client.Profile {
	return c.profile
}

func (c ReconcileClientHierarchyCommand) Substations() []client.SubstationDraft {
	return c.substations
}
