package jobs

import (
	"context"
	"log/slog"

	"ordermanagement/internal/core/domain/model/order"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// statusGauge receives the sampled order counts. Implemented by the
// Prometheus metrics adapter.
type statusGauge interface {
	SetOrdersByStatus(status string, count float64)
}

// OrderStatsJob periodically samples the number of orders per status and
// publishes the counts to the metrics gauge. Keeps the dashboards current
// without touching the synchronous order operations.
type OrderStatsJob struct {
	db     *gorm.DB
	gauge  statusGauge
	cron   *cron.Cron
	logger *slog.Logger
}

// NewOrderStatsJob creates a job that samples order counts every 15 seconds.
func NewOrderStatsJob(db *gorm.DB, gauge statusGauge, logger *slog.Logger) *OrderStatsJob {
	return &OrderStatsJob{
		db:     db,
		gauge:  gauge,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "order_stats_job"),
	}
}

// Start begins the periodic sampling.
func (j *OrderStatsJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * * *", func() {
		ctx := context.Background()
		if sampleErr := j.sample(ctx); sampleErr != nil {
			j.logger.ErrorContext(ctx, "Order stats sampling failed", "error", sampleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Order stats job started (sampling every 15 seconds)")
	return nil
}

// Stop stops the sampling job.
func (j *OrderStatsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Order stats job stopped")
}

func (j *OrderStatsJob) sample(ctx context.Context) error {
	rows, err := j.db.WithContext(ctx).Raw(`
		SELECT status, COUNT(*)
		FROM orders
		GROUP BY status
	`).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	counts := map[order.Status]int64{
		order.StatusPending:   0,
		order.StatusConfirmed: 0,
		order.StatusCancelled: 0,
		order.StatusCompleted: 0,
	}

	for rows.Next() {
		var status int
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return err
		}
		counts[order.Status(status)] = count
	}

	if err = rows.Err(); err != nil {
		return err
	}

	// Statuses absent from the table are published as zero so gauges reset
	// after the last order leaves a status.
	for status, count := range counts {
		j.gauge.SetOrdersByStatus(status.String(), float64(count))
	}

	return nil
}
