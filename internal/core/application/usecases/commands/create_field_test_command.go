package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
	"maintenance/internal/pkg/guard"
)

var ErrCreateFieldTestCommandIsNotConstructed = errors.New(
	"CreateFieldTestCommand must be created via NewCreateFieldTestCommand constructor",
)

// CreateFieldTestCommand records a measurement sheet for a component in an order's scope.
type CreateFieldTestCommand struct { //nolint:recvcheck //using for validation
	actor       personnel.Actor
	orderNumber order.Number
	componentID kernel.UUID
	kind        client.Kind
	record      fieldtest.Record

	guard guard.ConstructorGuard
}

func NewCreateFieldTestCommand(
	actor personnel.Actor,
	orderNumber order.Number,
	componentID kernel.UUID,
	kind client.Kind,
	record fieldtest.Record,
) (CreateFieldTestCommand, error) {
	var numberErr error
	if orderNumber.IsZero() {
		numberErr = errs.NewValueIsRequiredError("orderNumber")
	}
	if err := errors.Join(actor.Validate(), numberErr, componentID.Validate(), kind.Validate()); err != nil {
		return CreateFieldTestCommand{}, err
	}
	return CreateFieldTestCommand{
		actor:       actor,
		orderNumber: orderNumber,
		componentID: componentID,
		kind:        kind,
		record:      record,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c CreateFieldTestCommand) Validate() error {
	return c.guard.Validate(ErrCreateFieldTestCommandIsNotConstructed)
}

func (c CreateFieldTestCommand) Actor() personnel.Actor {
	return c.actor
}

func (c CreateFieldTestCommand) OrderNumber() order.Number {
	return c.orderNumber
}

func (c CreateFieldTestCommand) ComponentID() kernel.UUID {
	return c.componentID
}

func (c CreateFieldTestCommand) Kind() client.Kind {
	return c.kind
}

func (c CreateFieldTestCommand) Record() fieldtest.Record {
	return c.record
}
