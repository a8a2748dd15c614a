package commands

import (
	"context"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
)

// AdminReviewCommand passes a reviewed order on to final approval.
type AdminReviewCommand struct {
	orderTransition
}

func NewAdminReviewCommand(actor personnel.Actor, orderID kernel.UUID) (AdminReviewCommand, error) {
	t, err := newOrderTransition(actor, orderID)
	if err != nil {
		return AdminReviewCommand{}, err
	}
	return AdminReviewCommand{orderTransition: t}, nil
}

type AdminReviewCommandHandler struct {
	runner transitionRunner
}

func NewAdminReviewCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) AdminReviewCommandHandler {
	return AdminReviewCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock, metrics: metrics}}
}

// Handle is not idempotent: reviewing an order that already left
// AGUARDANDO_REVISAO fails with an invalid state and writes nothing.
func (h *AdminReviewCommandHandler) Handle(ctx context.Context, cmd AdminReviewCommand) (order.Snapshot, error) {
	return h.runner.run(ctx, "admin_review", cmd.orderTransition, func(o *order.Order, now time.Time) error {
		return o.Review(cmd.Actor(), now)
	})
}
