package backtest

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/models"
	"github.com/yourusername/trade-lens/internal/simulator"
)

// CalculateRealTimeAccuracy reuses the indicator and optimizer machinery
// to report rolling predictive accuracy over the most recent window of
// the series, instead of trade P&L. Each qualifying signal in the window
// is scored by the trade simulator against the bars that actually
// followed it. Returns nil when the series is shorter than the minimum
// lookback requirement.
func (e *Engine) CalculateRealTimeAccuracy(symbol string, series models.Series, market models.Market) *models.RealTimeAccuracy {
	minLookback := e.cfg.MinPeriod() + e.cfg.AccuracyWindowBars + e.cfg.ForecastSteps
	if len(series) < minLookback {
		e.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"bars":   len(series),
			"needed": minLookback,
		}).Debug("Series too short for real-time accuracy")
		return nil
	}

	start := len(series) - e.cfg.AccuracyWindowBars - e.cfg.ForecastSteps

	var params models.OptimizedParams
	var set indicatorSet
	haveParams := false

	wins := 0
	directionalHits := 0
	trades := 0
	for i := start; i < len(series)-1; i++ {
		if !haveParams || (i-start)%e.cfg.ReoptimizationInterval == 0 {
			params = e.opt.Select(symbol, market, series, i)
			if haveParams {
				set.reselectParams(params)
			} else {
				set = buildIndicators(series, params, e.cfg)
				haveParams = true
			}
		}

		signal := deriveSignal(set, i, params, e.cfg)
		if signal.Type == models.SignalHold || signal.Confidence < e.cfg.MinSignalConfidence {
			continue
		}

		side := models.SideBuy
		if signal.Type == models.SignalSell {
			side = models.SideSell
		}
		outcome := simulator.Simulate(series, i, side, e.targetDistanceAt(set, i), e.cfg.ForecastSteps)
		trades++
		if outcome.Won {
			wins++
		}
		if outcome.DirectionalHit {
			directionalHits++
		}
	}

	accuracy := &models.RealTimeAccuracy{TotalTrades: trades}
	if trades > 0 {
		accuracy.HitRate = float64(wins) / float64(trades) * 100
		accuracy.DirectionalAccuracy = float64(directionalHits) / float64(trades) * 100
	}
	return accuracy
}
