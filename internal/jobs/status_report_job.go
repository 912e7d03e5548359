package jobs

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// reportTimeout bounds a single report run across all status counts.
const reportTimeout = 10 * time.Second

// StatusReportJob periodically logs how many orders sit in each status.
// The counts reuse the listing query with a single-row page, so the job
// exercises the same read path as the RPC surface.
type StatusReportJob struct {
	handler queries.GetOrdersQueryHandler
	cron    *cron.Cron
	spec    string
	logger  *zap.Logger
}

// NewStatusReportJob creates the report job. The spec is a cron expression
// in robfig/cron's standard format (e.g. "@every 1m").
func NewStatusReportJob(handler queries.GetOrdersQueryHandler, spec string, logger *zap.Logger) *StatusReportJob {
	return &StatusReportJob{
		handler: handler,
		cron:    cron.New(),
		spec:    spec,
		logger:  logger.With(zap.String("component", "status_report_job")),
	}
}

// Start schedules the report.
func (j *StatusReportJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, j.report)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("status report job started", zap.String("schedule", j.spec))
	return nil
}

// Stop stops the report job. A run already in progress finishes on its own.
func (j *StatusReportJob) Stop() {
	j.cron.Stop()
	j.logger.Info("status report job stopped")
}

func (j *StatusReportJob) report() {
	ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
	defer cancel()

	statuses := []order.Status{
		order.Pending,
		order.Paid,
		order.Delivered,
		order.Cancelled,
	}

	fields := make([]zap.Field, 0, len(statuses))
	for _, status := range statuses {
		s := status
		query, err := queries.NewGetOrdersQuery(1, 1, &s)
		if err != nil {
			j.logger.Error("status report query rejected", zap.Error(err))
			return
		}

		resp, err := j.handler.Handle(ctx, query)
		if err != nil {
			j.logger.Error("status report failed",
				zap.String("status", status.String()),
				zap.Error(err))
			return
		}

		fields = append(fields, zap.Int64(status.String(), resp.Meta.Total))
	}

	j.logger.Info("orders by status", fields...)
}
