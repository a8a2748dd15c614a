package commands

import (
	"context"
	"errors"
	"log/slog"

	"maintenance/internal/core/domain/model/activity"
	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/ports"
	"maintenance/internal/pkg/errs"
)

const DefaultOrderNumberMaxAttempts = 5

// CreateOrderCommandHandler opens orders and assigns their YYMM### number.
//
// The number is the greatest one of the current month plus one, computed in
// the same transaction as the insert. Two concurrent creations can compute the
// same number; the unique index rejects the loser, which starts over in a fresh
// transaction. After maxAttempts collisions the handler gives up.
type CreateOrderCommandHandler struct {
	uowFactory  UoWFactory
	clock       kernel.Clock
	metrics     ports.MetricsRecorder
	logger      *slog.Logger
	maxAttempts int
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
	logger *slog.Logger,
	maxAttempts int,
) CreateOrderCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultOrderNumberMaxAttempts
	}
	return CreateOrderCommandHandler{
		uowFactory:  uowFactory,
		clock:       clock,
		metrics:     metrics,
		logger:      logger.With("component", "create_order"),
		maxAttempts: maxAttempts,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	created, err := h.handle(ctx, cmd)
	h.metrics.ObserveTransition("create_order", err)
	return created, err
}

func (h *CreateOrderCommandHandler) handle(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := order.AuthorizeCreate(cmd.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	var lastErr error
	for attempt := 1; attempt <= h.maxAttempts; attempt++ {
		created, err := h.attempt(ctx, cmd)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, order.ErrNumberTaken) {
			return order.Snapshot{}, err
		}

		lastErr = err
		h.metrics.ObserveNumberCollision()
		h.logger.WarnContext(ctx, "order number collision, retrying",
			"attempt", attempt, "max_attempts", h.maxAttempts, "error", err)
	}
	return order.Snapshot{}, errs.NewUnavailableError("allocate order number", lastErr)
}

func (h *CreateOrderCommandHandler) attempt(ctx context.Context, cmd CreateOrderCommand) (order.Snapshot, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return order.Snapshot{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	clients := uow.ClientRepository()
	orders := uow.OrderRepository()
	scope := cmd.Scope()

	if err := checkClient(ctx, clients, scope.ClientID); err != nil {
		return order.Snapshot{}, err
	}
	if err := errors.Join(
		checkPersonnel(ctx, uow.PersonnelRepository(), cmd.Team().Members()),
		checkSubstations(ctx, clients, scope.ClientID, scope.SubstationIDs),
		checkComponents(ctx, clients, scope.ClientID, scope.ComponentIDs),
	); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkBudgetNumber(ctx, orders, cmd.Details().BudgetNumber, nil); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock.Now()
	last, err := orders.LastNumberWithPrefix(ctx, order.NumberPrefix(now))
	if err != nil {
		return order.Snapshot{}, err
	}

	aggregate, err := order.NewOrder(order.NextNumber(now, last), cmd.Details(), cmd.Team(), scope, now)
	if err != nil {
		return order.Snapshot{}, err
	}
	if err = orders.Add(ctx, aggregate); err != nil {
		return order.Snapshot{}, err
	}

	snapshot := aggregate.Snapshot()
	if err = appendActivity(ctx, uow.ActivityLog(), activity.ActionCreate, activity.EntityOrder,
		snapshot.Number.String(), snapshot, cmd.Actor(), now); err != nil {
		return order.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return order.Snapshot{}, err
	}
	return snapshot, nil
}
