package jobs

import (
	"fmt"
	"log/slog"

	"maintenance/internal/core/ports"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	orderBacklogJob *OrderBacklogJob
}

func NewJobManager(
	counter BacklogCounter,
	metrics ports.MetricsRecorder,
	backlogSpec string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		orderBacklogJob: NewOrderBacklogJob(counter, metrics, backlogSpec, logger),
	}
}

// StartAll schedules every job.
func (jm *JobManager) StartAll() error {
	if err := jm.orderBacklogJob.Start(); err != nil {
		return fmt.Errorf("failed to start order backlog job: %w", err)
	}
	return nil
}

func (jm *JobManager) StopAll() {
	jm.orderBacklogJob.Stop()
}
