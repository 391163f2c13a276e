package models

import "time"

// TradeSide is the direction of a simulated position
type TradeSide string

// Trade sides
const (
	SideBuy  TradeSide = "BUY"
	SideSell TradeSide = "SELL"
)

// ExitReason explains why a simulated position was closed
type ExitReason string

// Exit reasons, in the priority order the engine evaluates them
const (
	ExitStopLoss   ExitReason = "stop-loss"
	ExitTakeProfit ExitReason = "take-profit"
	ExitReversal   ExitReason = "signal-reversal"
	ExitMaxHolding ExitReason = "max-holding-period"
)

// OpenPosition tracks the single in-flight position during a run
type OpenPosition struct {
	Side       TradeSide
	EntryPrice float64
	EntryDate  time.Time
	EntryIndex int
	StopLoss   float64
	TakeProfit float64
}

// Trade is the immutable record of a closed position
type Trade struct {
	Side          TradeSide  `json:"side"`
	EntryPrice    float64    `json:"entry_price"`
	ExitPrice     float64    `json:"exit_price"`
	EntryDate     time.Time  `json:"entry_date"`
	ExitDate      time.Time  `json:"exit_date"`
	ProfitPercent float64    `json:"profit_percent"`
	ExitReason    ExitReason `json:"exit_reason"`
}

// Won reports whether the trade closed with a positive return
func (t Trade) Won() bool {
	return t.ProfitPercent > 0
}
