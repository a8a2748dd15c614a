package commands

import (
	"context"
	"time"

	"maintenance/internal/core/domain/model/kernel"
	"maintenance/internal/core/domain/model/order"
	"maintenance/internal/core/domain/model/personnel"
	"maintenance/internal/core/ports"
)

// FinalApprovalCommand closes an order with the engineer's conclusion.
type FinalApprovalCommand struct {
	orderTransition
	conclusion      string
	recommendations string
}

// NewFinalApprovalCommand does not require a conclusion; a missing one is
// reported only after the actor and the order state have been checked.
func NewFinalApprovalCommand(
	actor personnel.Actor,
	orderID kernel.UUID,
	conclusion, recommendations string,
) (FinalApprovalCommand, error) {
	t, err := newOrderTransition(actor, orderID)
	if err != nil {
		return FinalApprovalCommand{}, err
	}
	return FinalApprovalCommand{orderTransition: t, conclusion: conclusion, recommendations: recommendations}, nil
}

func (c FinalApprovalCommand) Conclusion() string {
	return c.conclusion
}

func (c FinalApprovalCommand) Recommendations() string {
	return c.recommendations
}

type FinalApprovalCommandHandler struct {
	runner transitionRunner
}

func NewFinalApprovalCommandHandler(
	uowFactory OrderUoWFactory,
	clock kernel.Clock,
	metrics ports.MetricsRecorder,
) FinalApprovalCommandHandler {
	return FinalApprovalCommandHandler{runner: transitionRunner{uowFactory: uowFactory, clock: clock, metrics: metrics}}
}

func (h *FinalApprovalCommandHandler) Handle(ctx context.Context, cmd FinalApprovalCommand) (order.Snapshot, error) {
	return h.runner.run(ctx, "final_approval", cmd.orderTransition, func(o *order.Order, now time.Time) error {
		return o.Approve(cmd.Actor(), cmd.Conclusion(), cmd.Recommendations(), now)
	})
}
