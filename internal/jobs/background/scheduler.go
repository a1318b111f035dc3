package background

import (
	"context"
	"time"

	"shopadmin/internal/analytics"
	"shopadmin/internal/jobs"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const (
	summaryRefreshInterval = 5 * time.Minute
	lowStockScanInterval   = 30 * time.Minute
)

// JobScheduler owns the gocron scheduler and the recurring maintenance jobs:
// the analytics summary cache refresh and the low stock scan.
type JobScheduler struct {
	scheduler    gocron.Scheduler
	analyticsSvc *analytics.Service
	lowStock     *jobs.LowStockMonitor
	logger       *zap.Logger
}

func NewJobScheduler(analyticsSvc *analytics.Service, lowStock *jobs.LowStockMonitor, logger *zap.Logger) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:    scheduler,
		analyticsSvc: analyticsSvc,
		lowStock:     lowStock,
		logger:       logger,
	}
	if err := js.registerJobs(); err != nil {
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.logger.Info("starting background job scheduler", zap.Int("jobs", len(js.scheduler.Jobs())))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.logger.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(summaryRefreshInterval),
		gocron.NewTask(js.refreshSummary),
		gocron.WithName("analytics-summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	if _, err := js.scheduler.NewJob(
		gocron.DurationJob(lowStockScanInterval),
		gocron.NewTask(js.scanLowStock),
		gocron.WithName("low-stock-scan"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

func (js *JobScheduler) refreshSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := js.analyticsSvc.RefreshSummaryCache(ctx); err != nil {
		js.logger.Error("analytics summary refresh failed", zap.Error(err))
	}
}

func (js *JobScheduler) scanLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := js.lowStock.Run(ctx); err != nil {
		js.logger.Error("low stock scan failed", zap.Error(err))
	}
}
