package commands

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/fieldtest"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/pkg/errs"
)

type CreateFieldTestCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
}

func NewCreateFieldTestCommandHandler(uowFactory UoWFactory, clock kernel.Clock) CreateFieldTestCommandHandler {
	return CreateFieldTestCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *CreateFieldTestCommandHandler) Handle(ctx context.Context, cmd CreateFieldTestCommand) (fieldtest.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err := fieldtest.AuthorizeCreate(cmd.Actor()); err != nil {
		return fieldtest.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fieldtest.Snapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().GetByNumber(ctx, cmd.OrderNumber())
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = o.EnsureFieldTestsWritable("create field test"); err != nil {
		return fieldtest.Snapshot{}, err
	}
	if !o.Scope().Covers(cmd.ComponentID()) {
		return fieldtest.Snapshot{}, invalidReference("componentId", cmd.ComponentID())
	}
	if err = checkResponsible(ctx, uow, cmd.Record()); err != nil {
		return fieldtest.Snapshot{}, err
	}

	tests := uow.FieldTestRepository()
	exists, err := tests.Exists(ctx, o.ID(), cmd.ComponentID(), cmd.Kind())
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	if exists {
		return fieldtest.Snapshot{}, errs.NewValueIsInvalidErrorWithCause("kind", fieldtest.ErrDuplicateFieldTest)
	}

	now := h.clock.Now()
	test, err := fieldtest.NewFieldTest(o.ID(), cmd.ComponentID(), cmd.Kind(), cmd.Record(), now)
	if err != nil {
		return fieldtest.Snapshot{}, err
	}
	if err = tests.Add(ctx, test); err != nil {
		return fieldtest.Snapshot{}, err
	}

	snapshot := test.Snapshot()
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionCreate, activity.EntityFieldTest,
		snapshot.ID.String(), snapshot, cmd.Actor(), now); err != nil {
		return fieldtest.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return fieldtest.Snapshot{}, err
	}
	return snapshot, nil
}

func checkResponsible(ctx context.Context, uow UoW, record fieldtest.Record) error {
	if record.ResponsibleID == nil {
		return nil
	}
	return checkPersonnel(ctx, uow.PersonnelRepository(), []personnel.ID{*record.ResponsibleID})
}
