package backtest

import (
	"github.com/yourusername/trade-lens/internal/models"
)

// runState tracks mutable state for a single backtest run. Runs never
// share state: the invariant that at most one position is open at a time
// holds per run.
type runState struct {
	open    *models.OpenPosition
	trades  []models.Trade
	samples []ParamSample
}

func newRunState() *runState {
	return &runState{
		trades:  []models.Trade{},
		samples: []ParamSample{},
	}
}

// recordSample accumulates one optimizer selection for the walk-forward
// metrics.
func (s *runState) recordSample(params models.OptimizedParams) {
	s.samples = append(s.samples, ParamSample{
		RSIPeriod: params.RSIPeriod,
		SMAPeriod: params.SMAPeriod,
		Accuracy:  params.Accuracy,
	})
}

// openPosition transitions to the position-open state
func (s *runState) openPosition(position models.OpenPosition) {
	s.open = &position
}

// closePosition converts the open position into a Trade and returns to
// the no-position state.
func (s *runState) closePosition(exit models.PriceBar, exitPrice float64, reason models.ExitReason) models.Trade {
	position := s.open
	profitPercent := (exitPrice - position.EntryPrice) / position.EntryPrice * 100
	if position.Side == models.SideSell {
		profitPercent = -profitPercent
	}

	trade := models.Trade{
		Side:          position.Side,
		EntryPrice:    position.EntryPrice,
		ExitPrice:     exitPrice,
		EntryDate:     position.EntryDate,
		ExitDate:      exit.Date,
		ProfitPercent: profitPercent,
		ExitReason:    reason,
	}
	s.trades = append(s.trades, trade)
	s.open = nil
	return trade
}

// tradesMostRecentFirst returns the closed trades newest-first, the
// order the result object exposes.
func (s *runState) tradesMostRecentFirst() []models.Trade {
	reversed := make([]models.Trade, len(s.trades))
	for i, trade := range s.trades {
		reversed[len(s.trades)-1-i] = trade
	}
	return reversed
}
