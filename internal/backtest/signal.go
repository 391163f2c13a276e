package backtest

import (
	"math"

	"github.com/yourusername/trade-lens/internal/indicator"
	"github.com/yourusername/trade-lens/internal/models"
	"github.com/yourusername/trade-lens/internal/simulator"
)

// RSI bands mirror the optimizer's scoring rule: the margin widens the
// bands so entries trigger before full saturation.
const (
	oversoldThreshold   = 30.0
	overboughtThreshold = 70.0
	signalRSIMargin     = 10.0
)

// indicatorSet holds full-series indicator values. All indicators use
// trailing windows only, so the value at index i is reproducible from
// bars [0..i] alone.
type indicatorSet struct {
	closes    []float64
	rsi       []float64
	sma       []float64
	macd      indicator.MACDResult
	bollinger indicator.BollingerResult
	atr       []float64
}

func buildIndicators(series models.Series, params models.OptimizedParams, cfg Config) indicatorSet {
	closes := series.Closes()
	return indicatorSet{
		closes:    closes,
		rsi:       indicator.RSI(closes, params.RSIPeriod),
		sma:       indicator.SMA(closes, params.SMAPeriod),
		macd:      indicator.MACD(closes, cfg.MACDFastPeriod, cfg.MACDSlowPeriod, cfg.MACDSignalPeriod),
		bollinger: indicator.Bollinger(closes, cfg.BollingerPeriod, cfg.BollingerK),
		atr:       indicator.ATRSliding(series, cfg.ATRPeriod),
	}
}

// reselectParams swaps in the period-dependent indicator series after a
// re-optimization without recomputing the fixed-period ones.
func (s *indicatorSet) reselectParams(params models.OptimizedParams) {
	s.rsi = indicator.RSI(s.closes, params.RSIPeriod)
	s.sma = indicator.SMA(s.closes, params.SMAPeriod)
}

// deriveSignal produces the signal for bar i from indicator values at i.
// The base rule is the optimizer's: price relative to its SMA plus an
// RSI band check. Confidence starts at one half and accrues from MACD
// histogram agreement, a Bollinger band breach, and the optimizer's
// selection accuracy.
func deriveSignal(set indicatorSet, i int, params models.OptimizedParams, cfg Config) models.Signal {
	price := set.closes[i]
	signal := models.Signal{Type: models.SignalHold, Price: price, Params: params}

	if !indicator.Defined(set.rsi[i]) || !indicator.Defined(set.sma[i]) {
		return signal
	}

	oversold := oversoldThreshold + signalRSIMargin
	overbought := overboughtThreshold - signalRSIMargin
	switch {
	case price > set.sma[i] && set.rsi[i] < oversold:
		signal.Type = models.SignalBuy
	case price < set.sma[i] && set.rsi[i] > overbought:
		signal.Type = models.SignalSell
	default:
		return signal
	}

	confidence := 0.5
	if indicator.Defined(set.macd.Histogram[i]) {
		histogram := set.macd.Histogram[i]
		if (signal.Type == models.SignalBuy && histogram > 0) ||
			(signal.Type == models.SignalSell && histogram < 0) {
			confidence += 0.2
		}
	}
	if indicator.Defined(set.bollinger.Lower[i]) {
		if (signal.Type == models.SignalBuy && price <= set.bollinger.Lower[i]) ||
			(signal.Type == models.SignalSell && price >= set.bollinger.Upper[i]) {
			confidence += 0.15
		}
	}
	confidence += 0.15 * params.Accuracy
	signal.Confidence = math.Min(1, confidence)

	distance := simulator.TargetDistance(price, set.atr[i], cfg.ATRMultiplier, cfg.MinTargetPct)
	if signal.Type == models.SignalBuy {
		signal.TargetPrice = price + distance
	} else {
		signal.TargetPrice = price - distance
	}
	return signal
}
