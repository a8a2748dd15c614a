package commands

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/guard"
)

var ErrDeleteFieldTestCommandIsNotConstructed = errors.New(
	"DeleteFieldTestCommand must be created via NewDeleteFieldTestCommand constructor",
)

type DeleteFieldTestCommand struct { //nolint:recvcheck //using for validation
	actor       personnel.Actor
	fieldTestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteFieldTestCommand(actor personnel.Actor, fieldTestID kernel.UUID) (DeleteFieldTestCommand, error) {
	if err := errors.Join(actor.Validate(), fieldTestID.Validate()); err != nil {
		return DeleteFieldTestCommand{}, err
	}
	return DeleteFieldTestCommand{actor: actor, fieldTestID: fieldTestID, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteFieldTestCommand) Validate() error {
	return c.guard.Validate(ErrDeleteFieldTestCommandIsNotConstructed)
}

func (c DeleteFieldTestCommand) Actor() personnel.Actor {
	return c.actor
}

func (c DeleteFieldTestCommand) FieldTestID() kernel.UUID {
	return c.fieldTestID
}

type DeleteFieldTestCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewDeleteFieldTestCommandHandler(uowFactory UoWFactory, clock kernel.Clock) DeleteFieldTestCommandHandler {
	return DeleteFieldTestCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *DeleteFieldTestCommandHandler) Handle(ctx context.Context, cmd DeleteFieldTestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := fieldtest.AuthorizeDelete(cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tests := uow.FieldTestRepository()
	test, err := tests.Get(ctx, cmd.FieldTestID())
	if err != nil {
		return err
	}
	o, err := uow.OrderRepository().Get(ctx, test.OrderID())
	if err != nil {
		return err
	}
	if err = o.EnsureFieldTestsWritable("delete field test"); err != nil {
		return err
	}
	if err = tests.Delete(ctx, test.ID()); err != nil {
		return err
	}

	snapshot := test.Snapshot()
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionDelete, activity.EntityFieldTest,
		snapshot.ID.String(), snapshot, cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
