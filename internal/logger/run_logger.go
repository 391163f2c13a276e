// Package logger provides run-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/models"
)

// RunLogger provides dedicated logging for backtest run lifecycles.
type RunLogger struct {
	*logrus.Entry
}

// NewRunLogger creates a new run logger.
func NewRunLogger(baseLogger *logrus.Logger) *RunLogger {
	return &RunLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRunStarted logs the start of a backtest run.
func (rl *RunLogger) LogRunStarted(symbol string, market models.Market, bars int) {
	rl.WithFields(logrus.Fields{
		"symbol": symbol,
		"market": market,
		"bars":   bars,
	}).Info("Backtest run started")
}

// LogRunCompleted logs the summary of a finished run.
func (rl *RunLogger) LogRunCompleted(result *models.BacktestResult, durationMs float64) {
	fields := logrus.Fields{
		"symbol":       result.Symbol,
		"market":       result.Market,
		"trades":       result.TotalTrades,
		"win_rate":     result.WinRate,
		"total_return": result.TotalReturn,
		"max_drawdown": result.MaxDrawdown,
		"duration_ms":  durationMs,
	}
	if result.Warning != "" {
		fields["warning"] = result.Warning
		rl.WithFields(fields).Warn("Backtest run completed with warning")
		return
	}
	rl.WithFields(fields).Info("Backtest run completed")
}

// LogParamSelection logs an optimizer parameter selection.
func (rl *RunLogger) LogParamSelection(symbol string, params models.OptimizedParams, barIndex int) {
	rl.WithFields(logrus.Fields{
		"symbol":     symbol,
		"rsi_period": params.RSIPeriod,
		"sma_period": params.SMAPeriod,
		"accuracy":   params.Accuracy,
		"bar_index":  barIndex,
	}).Debug("Optimizer parameters selected")
}

// LogAccuracyReport logs a rolling accuracy evaluation.
func (rl *RunLogger) LogAccuracyReport(symbol string, accuracy *models.RealTimeAccuracy) {
	if accuracy == nil {
		rl.WithField("symbol", symbol).Warn("Series too short for accuracy evaluation")
		return
	}
	rl.WithFields(logrus.Fields{
		"symbol":               symbol,
		"signals_evaluated":    accuracy.TotalTrades,
		"hit_rate":             accuracy.HitRate,
		"directional_accuracy": accuracy.DirectionalAccuracy,
	}).Info("Real-time accuracy evaluated")
}
