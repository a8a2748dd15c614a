package commands

import (
	"errors"

	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrUpdateFieldTestCommandIsNotConstructed = errors.New(
	"UpdateFieldTestCommand must be created via NewUpdateFieldTestCommand constructor",
)

// UpdateFieldTestCommand replaces the measured content of a field test.
type UpdateFieldTestCommand struct { //nolint:recvcheck //using for validation
	actor       personnel.Actor
	fieldTestID kernel.UUID
	record      fieldtest.Record

	guard guard.ConstructorGuard
}

func NewUpdateFieldTestCommand(
	actor personnel.Actor,
	fieldTestID kernel.UUID,
	record fieldtest.Record,
) (UpdateFieldTestCommand, error) {
	if err := errors.Join(actor.Validate(), fieldTestID.Validate()); err != nil {
		return UpdateFieldTestCommand{}, err
	}
	return UpdateFieldTestCommand{
		actor:       actor,
		fieldTestID: fieldTestID,
		record:      record,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateFieldTestCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFieldTestCommandIsNotConstructed)
}

func (c UpdateFieldTestCommand) Actor() personnel.Actor {
	return c.actor
}

func (c UpdateFieldTestCommand) FieldTestID() kernel.UUID {
	return c.fieldTestID
}

func (c UpdateFieldTestCommand) Record() fieldtest.Record {
	return c.record
}
