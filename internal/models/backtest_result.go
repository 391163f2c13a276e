package models

import "time"

// WalkForwardMetrics summarizes parameter-selection quality across a run
type WalkForwardMetrics struct {
	InSampleAccuracy    float64 `json:"in_sample_accuracy"`
	OutOfSampleAccuracy float64 `json:"out_of_sample_accuracy"`
	OverfitScore        float64 `json:"overfit_score"`
	ParameterStability  float64 `json:"parameter_stability"`
}

// BacktestResult is the engine's sole output, constructed once at the end
// of a run. Trades are ordered most-recent-first. The result is a pure
// function of the input series and configuration: identical inputs
// produce identical results.
type BacktestResult struct {
	Symbol             string              `json:"symbol"`
	Market             Market              `json:"market"`
	TotalTrades        int                 `json:"total_trades"`
	WinningTrades      int                 `json:"winning_trades"`
	LosingTrades       int                 `json:"losing_trades"`
	WinRate            float64             `json:"win_rate"`
	TotalReturn        float64             `json:"total_return"`
	AvgProfit          float64             `json:"avg_profit"`
	AvgLoss            float64             `json:"avg_loss"`
	ProfitFactor       float64             `json:"profit_factor"`
	MaxDrawdown        float64             `json:"max_drawdown"`
	SharpeRatio        float64             `json:"sharpe_ratio"`
	Trades             []Trade             `json:"trades"`
	StartDate          time.Time           `json:"start_date"`
	EndDate            time.Time           `json:"end_date"`
	WalkForwardMetrics *WalkForwardMetrics `json:"walk_forward_metrics,omitempty"`
	Warning            string              `json:"warning,omitempty"`
}

// RealTimeAccuracy reports rolling predictive accuracy over a sliding
// window instead of trade P&L.
type RealTimeAccuracy struct {
	HitRate             float64 `json:"hit_rate"`
	DirectionalAccuracy float64 `json:"directional_accuracy"`
	TotalTrades         int     `json:"total_trades"`
}
