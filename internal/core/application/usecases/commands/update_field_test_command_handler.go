package commands

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
)

// UpdateFieldTestCommandHandler follows the lock policy of the owning order.
type UpdateFieldTestCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewUpdateFieldTestCommandHandler(uowFactory UoWFactory, clock kernel.Clock) UpdateFieldTestCommandHandler {
	return UpdateFieldTestCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *UpdateFieldTestCommandHandler) Handle(ctx context.Context, cmd UpdateFieldTestCommand) (fieldtest.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err := fieldtest.AuthorizeUpdate(cmd.Actor()); err != nil {
		return fieldtest.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fieldtest.Snapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	tests := uow.FieldTestRepository()
	test, err := tests.Get(ctx, cmd.FieldTestID())
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	o, err := uow.OrderRepository().Get(ctx, test.OrderID())
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = o.EnsureFieldTestsWritable("update field test"); err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = checkResponsible(ctx, uow, cmd.Record()); err != nil {
		return fieldtest.Snapshot{}, err
	}

	before := test.Snapshot()
	if err = test.Revise(cmd.Record()); err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = tests.Update(ctx, test); err != nil {
		return fieldtest.Snapshot{}, err
	}

	snapshot := test.Snapshot()
	changes, err := changeSet(snapshot.ID.String(), before, snapshot)
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionUpdate, activity.EntityFieldTest,
		snapshot.ID.String(), changes, cmd.Actor(), h.clock.Now()); err != nil {
		return fieldtest.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return fieldtest.Snapshot{}, err
	}
	return snapshot, nil
}
