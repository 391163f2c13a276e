// Package backtest walks a price series bar-by-bar, selecting indicator
// parameters with a walk-forward search, simulating at most one open
// position at a time, and aggregating closed trades into performance
// statistics. A run is a pure function of the input series and
// configuration; the only shared state is the optimizer parameter cache.
package backtest

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/metrics"
	"github.com/yourusername/trade-lens/internal/models"
	"github.com/yourusername/trade-lens/internal/optimizer"
	"github.com/yourusername/trade-lens/internal/simulator"
)

// Engine orchestrates backtest runs
type Engine struct {
	cfg    Config
	opt    *optimizer.Optimizer
	logger *logrus.Logger
}

// NewEngine creates a backtesting engine. The parameter cache may be
// shared across engines and concurrent runs; nil disables caching. A nil
// logger defaults to a plain logrus instance.
func NewEngine(cfg Config, paramCache *optimizer.ParamCache, logger *logrus.Logger) (*Engine, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Engine{
		cfg:    cfg,
		opt:    optimizer.New(cfg.OptimizerConfig(), paramCache, logger),
		logger: logger,
	}, nil
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// RunBacktest walks the series end-to-end and returns the aggregated
// result. It never returns an error: a series below the minimum bar
// floor yields a structurally valid zero-trade result with a warning.
func (e *Engine) RunBacktest(symbol string, series models.Series, market models.Market) *models.BacktestResult {
	runID := uuid.New()
	started := time.Now()
	log := e.logger.WithFields(logrus.Fields{
		"run_id": runID,
		"symbol": symbol,
		"market": market,
		"bars":   len(series),
	})
	log.Info("Starting backtest run")

	if len(series) < e.cfg.MinTotalBars {
		log.Warn("Insufficient data for backtest")
		result := e.emptyResult(symbol, series, market)
		result.Warning = fmt.Sprintf("insufficient data: need at least %d bars, got %d", e.cfg.MinTotalBars, len(series))
		metrics.RecordBacktestRun(string(market), "insufficient_data", time.Since(started).Seconds(), 0)
		return result
	}

	state := e.replay(symbol, series, market)
	result := e.buildResult(symbol, series, market, state)

	metrics.RecordBacktestRun(string(market), "success", time.Since(started).Seconds(), result.TotalTrades)
	log.WithFields(logrus.Fields{
		"trades":   result.TotalTrades,
		"win_rate": result.WinRate,
		"duration": time.Since(started),
	}).Info("Backtest run complete")
	return result
}

// replay is the bar-by-bar state machine. Signals derive from bar i;
// entries fill at bar i+1's open and exits are judged against bar i+1,
// so execution never uses information from the signal bar itself.
func (e *Engine) replay(symbol string, series models.Series, market models.Market) *runState {
	state := newRunState()
	minPeriod := e.cfg.MinPeriod()

	var params models.OptimizedParams
	var set indicatorSet
	haveParams := false

	for i := minPeriod; i < len(series)-1; i++ {
		if !haveParams || (i-minPeriod)%e.cfg.ReoptimizationInterval == 0 {
			params = e.opt.Select(symbol, market, series, i)
			state.recordSample(params)
			if haveParams {
				set.reselectParams(params)
			} else {
				set = buildIndicators(series, params, e.cfg)
				haveParams = true
			}
		}

		signal := deriveSignal(set, i, params, e.cfg)
		next := series[i+1]

		if state.open == nil {
			e.maybeOpen(state, signal, next, i+1)
			continue
		}
		e.maybeClose(state, signal, next, i+1)
	}

	if state.open != nil {
		e.logger.WithField("symbol", symbol).Debug("Discarding position still open at end of series")
		state.open = nil
	}
	return state
}

// maybeOpen enters a position at the next bar's open when the signal is
// actionable and confident enough.
func (e *Engine) maybeOpen(state *runState, signal models.Signal, next models.PriceBar, nextIndex int) {
	if signal.Type == models.SignalHold || signal.Confidence < e.cfg.MinSignalConfidence {
		return
	}
	metrics.RecordSignal(string(signal.Type))

	side := models.SideBuy
	if signal.Type == models.SignalSell {
		side = models.SideSell
	}
	entry := next.Open

	position := models.OpenPosition{
		Side:       side,
		EntryPrice: entry,
		EntryDate:  next.Date,
		EntryIndex: nextIndex,
	}
	if side == models.SideBuy {
		position.StopLoss = entry * (1 - e.cfg.StopLossPct)
		position.TakeProfit = entry * (1 + e.cfg.TakeProfitPct)
	} else {
		position.StopLoss = entry * (1 + e.cfg.StopLossPct)
		position.TakeProfit = entry * (1 - e.cfg.TakeProfitPct)
	}
	state.openPosition(position)
}

// maybeClose evaluates exit conditions against the next bar in priority
// order: stop-loss, take-profit, signal reversal, max holding period.
func (e *Engine) maybeClose(state *runState, signal models.Signal, next models.PriceBar, nextIndex int) {
	position := state.open

	stopTouched := false
	targetTouched := false
	if position.Side == models.SideBuy {
		stopTouched = next.Low <= position.StopLoss
		targetTouched = next.High >= position.TakeProfit
	} else {
		stopTouched = next.High >= position.StopLoss
		targetTouched = next.Low <= position.TakeProfit
	}

	switch {
	case stopTouched:
		state.closePosition(next, position.StopLoss, models.ExitStopLoss)
	case targetTouched:
		state.closePosition(next, position.TakeProfit, models.ExitTakeProfit)
	case isReversal(position.Side, signal, e.cfg.MinSignalConfidence):
		state.closePosition(next, next.Close, models.ExitReversal)
	case nextIndex-position.EntryIndex >= e.cfg.MaxHoldingDays:
		state.closePosition(next, next.Close, models.ExitMaxHolding)
	}
}

func isReversal(side models.TradeSide, signal models.Signal, minConfidence float64) bool {
	if signal.Confidence < minConfidence {
		return false
	}
	return (side == models.SideBuy && signal.Type == models.SignalSell) ||
		(side == models.SideSell && signal.Type == models.SignalBuy)
}

func (e *Engine) buildResult(symbol string, series models.Series, market models.Market, state *runState) *models.BacktestResult {
	stats := CalculateStats(state.trades)
	result := &models.BacktestResult{
		Symbol:             symbol,
		Market:             market,
		TotalTrades:        stats.TotalTrades,
		WinningTrades:      stats.WinningTrades,
		LosingTrades:       stats.LosingTrades,
		WinRate:            stats.WinRate,
		TotalReturn:        stats.TotalReturn,
		AvgProfit:          stats.AvgProfit,
		AvgLoss:            stats.AvgLoss,
		ProfitFactor:       stats.ProfitFactor,
		MaxDrawdown:        stats.MaxDrawdown,
		SharpeRatio:        stats.SharpeRatio,
		Trades:             state.tradesMostRecentFirst(),
		WalkForwardMetrics: CalculateWalkForwardMetrics(state.samples),
	}
	if len(series) > 0 {
		result.StartDate = series[0].Date
		result.EndDate = series[len(series)-1].Date
	}
	return result
}

func (e *Engine) emptyResult(symbol string, series models.Series, market models.Market) *models.BacktestResult {
	result := &models.BacktestResult{
		Symbol: symbol,
		Market: market,
		Trades: []models.Trade{},
	}
	if len(series) > 0 {
		result.StartDate = series[0].Date
		result.EndDate = series[len(series)-1].Date
	}
	return result
}

// targetDistanceAt derives the simulator target distance for bar i
func (e *Engine) targetDistanceAt(set indicatorSet, i int) float64 {
	return simulator.TargetDistance(set.closes[i], set.atr[i], e.cfg.ATRMultiplier, e.cfg.MinTargetPct)
}
