package commands

import (
	"context"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
)

// CancelOrderCommand moves a non-terminal order to CANCELADA. The order and
// its history are kept.
type CancelOrderCommand struct {
	orderTransition
}

func NewCancelOrderCommand(actor personnel.Actor, orderID kernel.UUID) (CancelOrderCommand, error) {
	t, err := newOrderTransition(actor, orderID)
	if err != nil {
		return CancelOrderCommand{}, err
	}
	return CancelOrderCommand{orderTransition: t}, nil
}

type CancelOrderCommandHandler struct {
	runner transitionRunner
}

func NewCancelOrderCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock, metrics: metrics}}
}

func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (order.Snapshot, error) {
	return h.runner.run(ctx, "cancel_order", cmd.orderTransition, func(o *order.Order, _ time.Time) error {
		return o.Cancel(cmd.Actor())
	})
}
