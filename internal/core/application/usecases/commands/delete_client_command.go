package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrDeleteClientCommandIsNotConstructed = errors.New(
	"DeleteClientCommand must be created via NewDeleteClientCommand constructor",
)

type DeleteClientCommand struct { //nolint:recvcheck //using for validation
	actor    personnel.Actor
	clientID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteClientCommand(actor personnel.Actor, clientID kernel.UUID) (DeleteClientCommand, error) {
	if err := errors.Join(actor.Validate(), clientID.Validate()); err != nil {
		return DeleteClientCommand{}, err
	}
	return DeleteClientCommand{actor: actor, clientID: clientID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteClientCommand) Validate() error {
	return c.guard.Validate(ErrDeleteClientCommandIsNotConstructed)
}

func (c DeleteClientCommand) Actor() personnel.Actor {
	return c.actor
}

func (c DeleteClientCommand) ClientID() kernel.UUID {
	return c.clientID
}
