package commands

import (
	"context"
	"errors"
	"time"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/guard"
)

var ErrOrderTransitionCommandIsNotConstructed = errors.New(
	"order transition command must be created via its constructor",
)

// orderTransition is what every workflow command carries: who acts on which order.
type orderTransition struct {
	actor   personnel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func newOrderTransition(actor personnel.Actor, orderID kernel.UUID) (orderTransition, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return orderTransition{}, err
	}
	return orderTransition{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (t orderTransition) Validate() error {
	return t.guard.Validate(ErrOrderTransitionCommandIsNotConstructed)
}

func (t orderTransition) Actor() personnel.Actor {
	return t.actor
}

func (t orderTransition) OrderID() kernel.UUID {
	return t.orderID
}

// transitionRunner executes one workflow step: read the order, let the step
// mutate it, store it under the version it was read with, log the change and
// return the order as stored.
type transitionRunner struct {
	uowFactory OrderUoWFactory
	clock      kernel.Clock
	metrics    ports.MetricsRecorder
}

func (r transitionRunner) run(
	ctx context.Context,
	name string,
	t orderTransition,
	step func(o *order.Order, now time.Time) error,
) (order.Snapshot, error) {
	updated, err := r.apply(ctx, t, step)
	r.metrics.ObserveTransition(name, err)
	return updated, err
}

func (r transitionRunner) apply(
	ctx context.Context,
	t orderTransition,
	step func(o *order.Order, now time.Time) error,
) (order.Snapshot, error) {
	if err := t.Validate(); err != nil {
		return order.Snapshot{}, err
	}

	uow := r.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	aggregate, err := orders.Get(ctx, t.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	before := aggregate.Snapshot()

	now := r.clock.Now()
	if err = step(aggregate, now); err != nil {
		return order.Snapshot{}, err
	}
	if err = orders.Update(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	stored, err := orders.Get(ctx, t.OrderID())
	if err != nil {
		return order.Snapshot{}, err
	}
	snapshot := stored.Snapshot()

	changes, err := changeSet(snapshot.Number.String(), before, snapshot)
	if err != nil {
		return order.Snapshot{}, err
	}
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionUpdate, activity.EntityOrder,
		snapshot.Number.String(), changes, t.Actor(), now); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return snapshot, nil
}
