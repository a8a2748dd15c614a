package commands

import (
	"context"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
)

// RequestFinalizationCommand moves a worked order to AGUARDANDO_REVISAO.
type RequestFinalizationCommand struct {
	orderTransition
}

func NewRequestFinalizationCommand(actor personnel.Actor, orderID kernel.UUID) (RequestFinalizationCommand, error) {
	t, err := newOrderTransition(actor, orderID)
	if err != nil {
		return RequestFinalizationCommand{}, err
	}
	return RequestFinalizationCommand{orderTransition: t}, nil
}

type RequestFinalizationCommandHandler struct {
	runner transitionRunner
}

func NewRequestFinalizationCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) RequestFinalizationCommandHandler {
	return RequestFinalizationCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock, metrics: metrics}}
}

func (h *RequestFinalizationCommandHandler) Handle(
	ctx context.Context,
	cmd RequestFinalizationCommand,
) (order.Snapshot, error) {
	return h.runner.run(ctx, "request_finalization", cmd.orderTransition, func(o *order.Order, now time.Time) error {
		return o.RequestFinalization(cmd.Actor(), now)
	})
}
