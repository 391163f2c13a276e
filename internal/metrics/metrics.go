// Package metrics provides the centralized Prometheus metrics registry
// for the backtesting engine.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trade_lens",
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by market and status",
	}, []string{"market", "status"})
	SignalsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trade_lens",
		Name:      "signals_generated_total",
		Help:      "Total number of non-hold signals generated by type",
	}, []string{"type"})
	OptimizationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trade_lens",
		Name:      "optimizations_total",
		Help:      "Total number of walk-forward parameter optimizations",
	})
)

// Gauge metrics
var (
	OptimizerCacheHitRatio = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trade_lens",
		Name:      "optimizer_cache_hit_ratio",
		Help:      "Hit ratio of the optimizer parameter cache",
	})
)

// Histogram metrics
var (
	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trade_lens",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of backtest runs in seconds",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
	BacktestTradeCount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trade_lens",
		Name:      "backtest_trade_count",
		Help:      "Number of closed trades per backtest run",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(BacktestRunsTotal)
		registry.MustRegister(SignalsGeneratedTotal)
		registry.MustRegister(OptimizationsTotal)

		registry.MustRegister(OptimizerCacheHitRatio)

		registry.MustRegister(BacktestDuration)
		registry.MustRegister(BacktestTradeCount)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordBacktestRun records a backtest run event.
// status should be one of: "success", "insufficient_data"
func RecordBacktestRun(market, status string, durationSeconds float64, trades int) {
	BacktestRunsTotal.WithLabelValues(market, status).Inc()
	BacktestDuration.Observe(durationSeconds)
	BacktestTradeCount.Observe(float64(trades))
}

// RecordSignal records a generated non-hold signal.
func RecordSignal(signalType string) {
	SignalsGeneratedTotal.WithLabelValues(signalType).Inc()
}

// RecordOptimization records a walk-forward parameter optimization.
func RecordOptimization() {
	OptimizationsTotal.Inc()
}
