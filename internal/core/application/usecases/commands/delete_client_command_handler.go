package commands

import (
	"context"
	"fmt"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/client"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/pkg/errs"
)

// DeleteClientCommandHandler removes a client and everything under it.
// A client still referenced by orders is kept.
type DeleteClientCommandHandler struct {
	uowFactory ClientUoWFactory
	clock      kernel.Clock
}

func NewDeleteClientCommandHandler(uowFactory ClientUoWFactory, clock kernel.Clock) DeleteClientCommandHandler {
	return DeleteClientCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h *DeleteClientCommandHandler) Handle(ctx context.Context, cmd DeleteClientCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := client.AuthorizeMaintain(cmd.Actor(), "delete client"); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ClientRepository()
	aggregate, err := repo.Get(ctx, cmd.ClientID())
	if err != nil {
		return err
	}

	orders, err := uow.OrderRepository().CountByClient(ctx, cmd.ClientID())
	if err != nil {
		return err
	}
	if orders > 0 {
		return errs.NewInvalidStateError("client", cmd.ClientID(),
			fmt.Sprintf("referenced by %d orders", orders), "be deleted")
	}

	snapshot := aggregate.Snapshot()
	if err = repo.Delete(ctx, cmd.ClientID()); err != nil {
		return err
	}
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionDelete, activity.EntityClient,
		snapshot.ID.String(), snapshot, cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
