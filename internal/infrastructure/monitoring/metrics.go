package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type DBMetrics struct {
	QueryDuration *prometheus.HistogramVec
}

type BusinessMetrics struct {
	PaymentsTotal *prometheus.CounterVec
}

type PoolMetrics struct {
	TotalConns    prometheus.Gauge
	IdleConns     prometheus.Gauge
	AcquiredConns prometheus.Gauge
	MaxConns      prometheus.Gauge
}

var (
	DB = DBMetrics{
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "emi_service_db_query_duration_seconds",
				Help:    "Histogram of database query latencies.",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"query_name", "status"},
		),
	}

	Business = BusinessMetrics{
		PaymentsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "emi_service_payments_total",
				Help: "Total number of payment submissions by outcome.",
			},
			[]string{"status"},
		),
	}

	Pool = PoolMetrics{
		TotalConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "emi_service_db_pool_total_conns",
			Help: "Current total connections in the pgx pool.",
		}),
		IdleConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "emi_service_db_pool_idle_conns",
			Help: "Current idle connections in the pgx pool.",
		}),
		AcquiredConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "emi_service_db_pool_acquired_conns",
			Help: "Current acquired connections in the pgx pool.",
		}),
		MaxConns: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "emi_service_db_pool_max_conns",
			Help: "Configured maximum connections of the pgx pool.",
		}),
	}
)

func RecordDBQuery(queryName, status string, duration time.Duration) {
	DB.QueryDuration.WithLabelValues(queryName, status).Observe(duration.Seconds())
}

func RecordPayment(status string) {
	Business.PaymentsTotal.WithLabelValues(status).Inc()
}

func RecordPoolStats(total, idle, acquired int32, max int32) {
	Pool.TotalConns.Set(float64(total))
	Pool.IdleConns.Set(float64(idle))
	Pool.AcquiredConns.Set(float64(acquired))
	Pool.MaxConns.Set(float64(max))
}
