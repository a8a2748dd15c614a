package commands

import (
	"context"
	"errors"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/ports"
)

// UpdateOrderCommandHandler applies a generic edit. Only references the edit
// adds are checked, so links to hierarchy rows removed since the order was
// opened stay valid.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      kernel.Clock
	metrics    ports.MetricsRecorder
}

func NewUpdateOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory, clock: clock, metrics: metrics}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (order.Snapshot, error) {
	updated, err := h.handle(ctx, cmd)
	h.metrics.ObserveTransition("update_order", err)
	return updated, err
}

func (h *UpdateOrderCommandHandler) handle(ctx context.Context, cmd UpdateOrderCommand) (order.Snapshot, error) {
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
	before := aggregate.Snapshot()

	if err = aggregate.Apply(cmd.Actor(), cmd.Patch()); err != nil {
		return order.Snapshot{}, err
	}
	if err = h.checkAddedReferences(ctx, uow, before, aggregate); err != nil {
		return order.Snapshot{}, err
	}
	if err = orders.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	after, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	snapshot := after.Snapshot()

	changes, err := changeSet(snapshot.Number.String(), before, snapshot)
	if err != nil {
		return order.Snapshot{}, err
	}
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionUpdate, activity.EntityOrder,
		snapshot.Number.String(), changes, cmd.Actor(), h.clock.Now()); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return snapshot, nil
}

func (h *UpdateOrderCommandHandler) checkAddedReferences(
	ctx context.Context,
	uow UoW,
	before order.Snapshot,
	updated *order.Order,
) error {
	clients := uow.ClientRepository()
	scope := updated.Scope()
	id := updated.ID()

	if err := errors.Join(
		checkPersonnel(ctx, uow.PersonnelRepository(), kernel.Set(updated.Team().Members()...).Added(before.Team.Members())),
		checkSubstations(ctx, clients, scope.ClientID, kernel.Set(scope.SubstationIDs...).Added(before.SubstationIDs)),
		checkComponents(ctx, clients, scope.ClientID, kernel.Set(scope.ComponentIDs...).Added(before.ComponentIDs)),
	); err != nil {
		return err
	}

	if budget := updated.Details().BudgetNumber; budget != before.BudgetNumber {
		return checkBudgetNumber(ctx, uow.OrderRepository(), budget, &id)
	}
	return nil
}
