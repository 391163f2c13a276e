// Package optimizer selects indicator parameters with a walk-forward
// search: candidate periods are scored on a training window that ends at
// the current simulation index, so selection never reads future bars.
package optimizer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/indicator"
	"github.com/yourusername/trade-lens/internal/metrics"
	"github.com/yourusername/trade-lens/internal/models"
	"github.com/yourusername/trade-lens/internal/simulator"
)

// Config enumerates the optimizer's search space and scoring knobs
type Config struct {
	RSICandidates       []int
	SMACandidates       []int
	TrainingWindowBars  int
	ForecastSteps       int
	ATRPeriod           int
	ATRMultiplier       float64
	MinTargetPct        float64
	OversoldThreshold   float64
	OverboughtThreshold float64
	SignalMargin        float64
	WindowHashBars      int
}

// DefaultConfig returns the standard search space
func DefaultConfig() Config {
	return Config{
		RSICandidates:       []int{7, 14, 21},
		SMACandidates:       []int{10, 20, 50},
		TrainingWindowBars:  120,
		ForecastSteps:       5,
		ATRPeriod:           14,
		ATRMultiplier:       1.5,
		MinTargetPct:        0.01,
		OversoldThreshold:   30,
		OverboughtThreshold: 70,
		SignalMargin:        10,
		WindowHashBars:      20,
	}
}

// Optimizer performs the candidate search and caches selections
type Optimizer struct {
	cfg    Config
	cache  *ParamCache
	logger *logrus.Logger
}

// New creates an optimizer. The cache may be shared between concurrent
// runs; a nil cache disables caching.
func New(cfg Config, paramCache *ParamCache, logger *logrus.Logger) *Optimizer {
	if logger == nil {
		logger = logrus.New()
	}
	return &Optimizer{cfg: cfg, cache: paramCache, logger: logger}
}

// Config returns the optimizer configuration
func (o *Optimizer) Config() Config {
	return o.cfg
}

// Select chooses the (rsiPeriod, smaPeriod) pair with the highest
// historical hit-rate, computed only from bars strictly before index.
// Ties break to the first-seen candidate. When the visible window is too
// short to score any candidate, the first pair is returned with accuracy
// zero.
func (o *Optimizer) Select(symbol string, market models.Market, bars models.Series, index int) models.OptimizedParams {
	fallback := models.OptimizedParams{
		RSIPeriod: o.cfg.RSICandidates[0],
		SMAPeriod: o.cfg.SMACandidates[0],
	}
	if index < 1 || index > len(bars) {
		return fallback
	}

	visible := bars[:index]
	if len(visible) <= o.minRequiredBars() {
		return fallback
	}

	key := CacheKey{Symbol: symbol, Market: market, WindowHash: HashWindow(visible, o.cfg.WindowHashBars)}
	if o.cache != nil {
		if cached, found := o.cache.Get(key); found {
			return cached
		}
	}

	best := fallback
	bestRate := -1.0
	for _, rsiPeriod := range o.cfg.RSICandidates {
		for _, smaPeriod := range o.cfg.SMACandidates {
			rate := o.scoreCandidate(visible, rsiPeriod, smaPeriod)
			if rate > bestRate {
				bestRate = rate
				best = models.OptimizedParams{RSIPeriod: rsiPeriod, SMAPeriod: smaPeriod, Accuracy: rate}
			}
		}
	}
	if bestRate < 0 {
		best = fallback
	}

	metrics.RecordOptimization()
	o.logger.WithFields(logrus.Fields{
		"symbol":     symbol,
		"index":      index,
		"rsi_period": best.RSIPeriod,
		"sma_period": best.SMAPeriod,
		"accuracy":   best.Accuracy,
	}).Debug("Selected walk-forward parameters")

	if o.cache != nil {
		o.cache.Set(key, best)
	}
	return best
}

// scoreCandidate replays the naive signal rule over the training window
// and returns the fraction of simulated trades that would have won.
func (o *Optimizer) scoreCandidate(visible models.Series, rsiPeriod, smaPeriod int) float64 {
	closes := visible.Closes()
	rsi := indicator.RSI(closes, rsiPeriod)
	sma := indicator.SMA(closes, smaPeriod)
	atr := indicator.ATRSliding(visible, o.cfg.ATRPeriod)

	start := len(visible) - o.cfg.TrainingWindowBars
	if start < 0 {
		start = 0
	}

	wins := 0
	trades := 0
	for j := start; j < len(visible)-1; j++ {
		if !indicator.Defined(rsi[j]) || !indicator.Defined(sma[j]) {
			continue
		}
		side, ok := o.naiveRule(closes[j], sma[j], rsi[j])
		if !ok {
			continue
		}
		distance := simulator.TargetDistance(closes[j], atr[j], o.cfg.ATRMultiplier, o.cfg.MinTargetPct)
		outcome := simulator.Simulate(visible, j, side, distance, o.cfg.ForecastSteps)
		trades++
		if outcome.Won {
			wins++
		}
	}

	if trades == 0 {
		return 0
	}
	return float64(wins) / float64(trades)
}

// naiveRule is the scoring proxy: price above its SMA with RSI still
// below the oversold band (plus margin) is a BUY; the mirror is a SELL.
func (o *Optimizer) naiveRule(close, sma, rsi float64) (models.TradeSide, bool) {
	if close > sma && rsi < o.cfg.OversoldThreshold+o.cfg.SignalMargin {
		return models.SideBuy, true
	}
	if close < sma && rsi > o.cfg.OverboughtThreshold-o.cfg.SignalMargin {
		return models.SideSell, true
	}
	return "", false
}

// minRequiredBars is the smallest visible window any candidate can be
// scored against.
func (o *Optimizer) minRequiredBars() int {
	min := o.cfg.ATRPeriod
	for _, p := range o.cfg.RSICandidates {
		if p+1 > min {
			min = p + 1
		}
	}
	for _, p := range o.cfg.SMACandidates {
		if p > min {
			min = p
		}
	}
	return min
}

// HashWindow creates a stable hash of the most recent n closes, used to
// key cached selections to the price window they were made against.
func HashWindow(bars models.Series, n int) string {
	start := len(bars) - n
	if start < 0 {
		start = 0
	}
	closes := bars[start:].Closes()
	data, _ := json.Marshal(closes)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
