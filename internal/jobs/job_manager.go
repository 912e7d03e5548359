// Package jobs provides scheduled background tasks, built on
// github.com/robfig/cron/v3 and managed through JobManager.
package jobs

import (
	"fmt"

	"orders/internal/core/application/usecases/queries"

	"go.uber.org/zap"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	statusReportJob *StatusReportJob
}

// NewJobManager creates a job manager wired to the listing query handler.
// The spec schedules the status report.
func NewJobManager(
	getOrdersHandler queries.GetOrdersQueryHandler,
	statusReportSpec string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		statusReportJob: NewStatusReportJob(getOrdersHandler, statusReportSpec, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.statusReportJob.Start(); err != nil {
		return fmt.Errorf("failed to start status report job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.statusReportJob.Stop()
}
