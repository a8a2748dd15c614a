package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand opens a service order. The number is assigned by the handler.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor,
//	    order.Details{ServiceType: order.ServicePreventive, BudgetNumber: "ORC-17"},
//	    order.Team{EngineerID: 200, TechnicianIDs: []personnel.ID{400}},
//	    order.Scope{ClientID: clientID, ComponentIDs: []kernel.UUID{componentID}},
//	)
//	if err != nil {
//	    return err
//	}
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor   personnel.Actor
	details order.Details
	team    order.Team
	scope   order.Scope

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor personnel.Actor,
	details order.Details,
	team order.Team,
	scope order.Scope,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setScope(scope),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.details = details
	cmd.team = team
	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() personnel.Actor {
	return c.actor
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) Team() order.Team {
	return c.team
}

func (c CreateOrderCommand) Scope() order.Scope {
	return c.scope
}

func (c *CreateOrderCommand) setActor(actor personnel.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setScope(scope order.Scope) error {
	if err := scope.ClientID.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
