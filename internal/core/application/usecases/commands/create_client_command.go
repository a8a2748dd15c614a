package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrCreateClientCommandIsNotConstructed = errors.New(
	"CreateClientCommand must be created via NewCreateClientCommand constructor",
)

// CreateClientCommand registers a client together with its substations and components.
type CreateClientCommand struct { //nolint:recvcheck //using for validation
	actor       personnel.Actor
	profile     client.Profile
	substations []client.SubstationDraft

	guard guard.ConstructorGuard
}

func NewCreateClientCommand(
	actor personnel.Actor,
	profile client.Profile,
	substations []client.SubstationDraft,
) (CreateClientCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateClientCommand{}, err
	}
	return CreateClientCommand{
		actor:       actor,
		profile:     profile,
		substations: substations,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateClientCommand) Validate() error {
	return c.guard.Validate(ErrCreateClientCommandIsNotConstructed)
}

func (c CreateClientCommand) Actor() personnel.Actor {
	return c.actor
}

func (c CreateClientCommand) Profile() client.Profile {
	return c.profile
}

func (c CreateClientCommand) Substations() []client.SubstationDraft {
	return c.substations
}
