package commands

import (
	"context"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
)

// DeleteOrderHardCommand purges an order with its links and field tests.
type DeleteOrderHardCommand struct {
	orderTransition
}

func NewDeleteOrderHardCommand(actor personnel.Actor, orderID kernel.UUID) (DeleteOrderHardCommand, error) {
	t, err := newOrderTransition(actor, orderID)
	if err != nil {
		return DeleteOrderHardCommand{}, err
	}
	return DeleteOrderHardCommand{orderTransition: t}, nil
}

type DeleteOrderHardCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	metrics    ports.MetricsRecorder
}

func NewDeleteOrderHardCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) DeleteOrderHardCommandHandler {
	return DeleteOrderHardCommandHandler{uowFactory: uowFactory, clock: clock, metrics: metrics}
}

// Handle returns the order as it was before the purge.
func (h *DeleteOrderHardCommandHandler) Handle(ctx context.Context, cmd DeleteOrderHardCommand) (order.Snapshot, error) {
	deleted, err := h.handle(ctx, cmd)
	h.metrics.ObserveTransition("delete_order", err)
	return deleted, err
}

func (h *DeleteOrderHardCommandHandler) handle(ctx context.Context, cmd DeleteOrderHardCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	if err = aggregate.CheckHardDelete(cmd.Actor()); err != nil {
		return order.Snapshot{}, err
	}
	if err = orders.Delete(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	snapshot := aggregate.Snapshot()
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionDelete, activity.EntityOrder,
		snapshot.Number.String(), snapshot, cmd.Actor(), h.clock.Now()); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return snapshot, nil
}
