package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"maintenance/internal/core/application/usecases/queries"
	"maintenance/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// DefaultBacklogSpec runs at second zero of every minute.
const DefaultBacklogSpec = "0 * * * * *"

type BacklogCounter interface {
	Handle(ctx context.Context, query queries.CountOrdersByStatusQuery) (map[string]int64, error)
}

// OrderBacklogJob publishes the number of orders per status as a gauge.
type OrderBacklogJob struct {
	counter BacklogCounter
	metrics ports.MetricsRecorder
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewOrderBacklogJob takes a six-field cron spec (seconds first). An empty
// spec falls back to DefaultBacklogSpec.
func NewOrderBacklogJob(
	counter BacklogCounter,
	metrics ports.MetricsRecorder,
	spec string,
	logger *slog.Logger,
) *OrderBacklogJob {
	if spec == "" {
		spec = DefaultBacklogSpec
	}
	return &OrderBacklogJob{
		counter: counter,
		metrics: metrics,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "order_backlog_job"),
	}
}

// Run performs one refresh.
func (j *OrderBacklogJob) Run(ctx context.Context) error {
	counts, err := j.counter.Handle(ctx, queries.NewCountOrdersByStatusQuery())
	if err != nil {
		return fmt.Errorf("count orders by status: %w", err)
	}
	j.metrics.SetBacklog(counts)
	return nil
}

func (j *OrderBacklogJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Order backlog job failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order backlog job started", "spec", j.spec)
	return nil
}

func (j *OrderBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Order backlog job stopped")
}
