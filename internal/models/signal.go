package models

// SignalType classifies a trading signal
type SignalType string

// Signal types
const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

// OptimizedParams holds the indicator periods selected by the walk-forward
// search, along with the hit-rate they achieved at selection time.
type OptimizedParams struct {
	RSIPeriod int     `json:"rsi_period"`
	SMAPeriod int     `json:"sma_period"`
	Accuracy  float64 `json:"accuracy"`
}

// Signal is a transient per-bar value consumed immediately by the engine
type Signal struct {
	Type        SignalType      `json:"type"`
	Price       float64         `json:"price"`
	Confidence  float64         `json:"confidence"`
	TargetPrice float64         `json:"target_price"`
	Params      OptimizedParams `json:"optimized_params"`
}
