package batch

import (
	"context"
	"log/slog"

	"emi-service/internal/infrastructure/monitoring"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PoolStatsJob exports pgx connection pool statistics to Prometheus gauges.
// It is scheduled by the cron runner in main.
type PoolStatsJob struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPoolStatsJob(pool *pgxpool.Pool, logger *slog.Logger) *PoolStatsJob {
	if pool == nil || logger == nil {
		panic("PoolStatsJob dependencies cannot be nil")
	}
	return &PoolStatsJob{
		pool:   pool,
		logger: logger.With("job", "PoolStats"),
	}
}

func (j *PoolStatsJob) Run(ctx context.Context) error {
	stat := j.pool.Stat()
	monitoring.RecordPoolStats(stat.TotalConns(), stat.IdleConns(), stat.AcquiredConns(), stat.MaxConns())

	j.logger.DebugContext(ctx, "Exported pool statistics",
		slog.Int64("total", int64(stat.TotalConns())),
		slog.Int64("idle", int64(stat.IdleConns())),
		slog.Int64("acquired", int64(stat.AcquiredConns())),
	)
	return nil
}
