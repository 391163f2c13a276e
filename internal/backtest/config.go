package backtest

import (
	"fmt"

	"github.com/yourusername/trade-lens/internal/optimizer"
)

// Config fully enumerates the engine's tunables. Zero values are filled
// from defaults by NewEngine via Normalize.
type Config struct {
	RSICandidates          []int
	SMACandidates          []int
	ReoptimizationInterval int
	MinSignalConfidence    float64
	ForecastSteps          int
	StopLossPct            float64
	TakeProfitPct          float64
	MaxHoldingDays         int
	MinTotalBars           int
	TrainingWindowBars     int

	// Secondary indicator periods used for signal confidence
	MACDFastPeriod   int
	MACDSlowPeriod   int
	MACDSignalPeriod int
	BollingerPeriod  int
	BollingerK       float64
	ATRPeriod        int
	ATRMultiplier    float64
	MinTargetPct     float64

	// Sliding window for real-time accuracy reporting
	AccuracyWindowBars int
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	opt := optimizer.DefaultConfig()
	return Config{
		RSICandidates:          opt.RSICandidates,
		SMACandidates:          opt.SMACandidates,
		ReoptimizationInterval: 20,
		MinSignalConfidence:    0.6,
		ForecastSteps:          opt.ForecastSteps,
		StopLossPct:            0.03,
		TakeProfitPct:          0.05,
		MaxHoldingDays:         10,
		MinTotalBars:           40,
		TrainingWindowBars:     opt.TrainingWindowBars,
		MACDFastPeriod:         12,
		MACDSlowPeriod:         26,
		MACDSignalPeriod:       9,
		BollingerPeriod:        20,
		BollingerK:             2,
		ATRPeriod:              opt.ATRPeriod,
		ATRMultiplier:          opt.ATRMultiplier,
		MinTargetPct:           opt.MinTargetPct,
		AccuracyWindowBars:     60,
	}
}

// Normalize fills unset fields from defaults
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if len(c.RSICandidates) == 0 {
		c.RSICandidates = def.RSICandidates
	}
	if len(c.SMACandidates) == 0 {
		c.SMACandidates = def.SMACandidates
	}
	if c.ReoptimizationInterval <= 0 {
		c.ReoptimizationInterval = def.ReoptimizationInterval
	}
	if c.MinSignalConfidence <= 0 {
		c.MinSignalConfidence = def.MinSignalConfidence
	}
	if c.ForecastSteps <= 0 {
		c.ForecastSteps = def.ForecastSteps
	}
	if c.StopLossPct <= 0 {
		c.StopLossPct = def.StopLossPct
	}
	if c.TakeProfitPct <= 0 {
		c.TakeProfitPct = def.TakeProfitPct
	}
	if c.MaxHoldingDays <= 0 {
		c.MaxHoldingDays = def.MaxHoldingDays
	}
	if c.MinTotalBars <= 0 {
		c.MinTotalBars = def.MinTotalBars
	}
	if c.TrainingWindowBars <= 0 {
		c.TrainingWindowBars = def.TrainingWindowBars
	}
	if c.MACDFastPeriod <= 0 {
		c.MACDFastPeriod = def.MACDFastPeriod
	}
	if c.MACDSlowPeriod <= 0 {
		c.MACDSlowPeriod = def.MACDSlowPeriod
	}
	if c.MACDSignalPeriod <= 0 {
		c.MACDSignalPeriod = def.MACDSignalPeriod
	}
	if c.BollingerPeriod <= 0 {
		c.BollingerPeriod = def.BollingerPeriod
	}
	if c.BollingerK <= 0 {
		c.BollingerK = def.BollingerK
	}
	if c.ATRPeriod <= 0 {
		c.ATRPeriod = def.ATRPeriod
	}
	if c.ATRMultiplier <= 0 {
		c.ATRMultiplier = def.ATRMultiplier
	}
	if c.MinTargetPct <= 0 {
		c.MinTargetPct = def.MinTargetPct
	}
	if c.AccuracyWindowBars <= 0 {
		c.AccuracyWindowBars = def.AccuracyWindowBars
	}
	return c
}

// Validate validates config parameters
func (c Config) Validate() error {
	for _, p := range c.RSICandidates {
		if p < 2 {
			return fmt.Errorf("rsi candidate periods must be at least 2, got %d", p)
		}
	}
	for _, p := range c.SMACandidates {
		if p < 1 {
			return fmt.Errorf("sma candidate periods must be positive, got %d", p)
		}
	}
	if c.MinSignalConfidence < 0 || c.MinSignalConfidence > 1 {
		return fmt.Errorf("min signal confidence must be between 0 and 1")
	}
	if c.MACDFastPeriod >= c.MACDSlowPeriod {
		return fmt.Errorf("macd fast period must be shorter than slow period")
	}
	if c.StopLossPct >= 1 || c.TakeProfitPct >= 1 {
		return fmt.Errorf("stop loss and take profit must be fractions of price")
	}
	return nil
}

// MinPeriod is the largest warm-up requirement across all enabled
// indicators; simulation starts at this bar index.
func (c Config) MinPeriod() int {
	min := c.MACDSlowPeriod + c.MACDSignalPeriod
	candidates := []int{c.BollingerPeriod, c.ATRPeriod}
	for _, p := range c.RSICandidates {
		candidates = append(candidates, p+1)
	}
	for _, p := range c.SMACandidates {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if p > min {
			min = p
		}
	}
	return min
}

// OptimizerConfig projects the engine config onto the optimizer's
func (c Config) OptimizerConfig() optimizer.Config {
	opt := optimizer.DefaultConfig()
	opt.RSICandidates = c.RSICandidates
	opt.SMACandidates = c.SMACandidates
	opt.TrainingWindowBars = c.TrainingWindowBars
	opt.ForecastSteps = c.ForecastSteps
	opt.ATRPeriod = c.ATRPeriod
	opt.ATRMultiplier = c.ATRMultiplier
	opt.MinTargetPct = c.MinTargetPct
	return opt
}
