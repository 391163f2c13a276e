package backtest

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"time"

	"github.com/yourusername/trade-lens/internal/models"
)

// EquityPoint represents a point in the equity curve
type EquityPoint struct {
	Date     time.Time `json:"date"`
	Value    float64   `json:"value"`
	Drawdown float64   `json:"drawdown"`
}

// EquityCurve represents the unit equity compounded trade by trade
type EquityCurve []EquityPoint

// CurveFromTrades compounds each trade's profit percentage sequentially
// onto a unit starting equity, in trade order.
func CurveFromTrades(trades []models.Trade) EquityCurve {
	curve := make(EquityCurve, 0, len(trades)+1)
	equity := 1.0
	peak := 1.0
	curve = append(curve, EquityPoint{Value: equity})

	for _, trade := range trades {
		equity *= 1 + trade.ProfitPercent/100
		if equity > peak {
			peak = equity
		}
		drawdown := 0.0
		if peak > 0 {
			drawdown = (peak - equity) / peak
		}
		curve = append(curve, EquityPoint{Date: trade.ExitDate, Value: equity, Drawdown: drawdown})
	}
	return curve
}

// MaxDrawdown returns the largest peak-to-trough percentage decline
func (e EquityCurve) MaxDrawdown() float64 {
	maxDD := 0.0
	peak := 0.0
	for _, p := range e {
		if p.Value > peak {
			peak = p.Value
		}
		if peak == 0 {
			continue
		}
		drawdown := (peak - p.Value) / peak
		if drawdown > maxDD {
			maxDD = drawdown
		}
	}
	return maxDD * 100
}

// FinalReturn returns the compounded total return percentage
func (e EquityCurve) FinalReturn() float64 {
	if len(e) == 0 {
		return 0
	}
	return (e[len(e)-1].Value - 1) * 100
}

// Returns calculates point-to-point returns along the curve
func (e EquityCurve) Returns() []float64 {
	if len(e) < 2 {
		return []float64{}
	}
	returns := make([]float64, 0, len(e)-1)
	for i := 1; i < len(e); i++ {
		prev := e[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (e[i].Value-prev)/prev)
	}
	return returns
}

// Volatility calculates the standard deviation of curve returns
func (e EquityCurve) Volatility() float64 {
	returns := e.Returns()
	if len(returns) == 0 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		diff := r - mean
		variance += diff * diff
	}
	variance /= float64(len(returns))
	return math.Sqrt(variance)
}

// ToCSV exports the equity curve to a CSV string
func (e EquityCurve) ToCSV() string {
	var buf bytes.Buffer
	buf.WriteString("date,value,drawdown\n")
	for _, point := range e {
		buf.WriteString(point.Date.Format("2006-01-02"))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(point.Value, 'f', 6, 64))
		buf.WriteString(",")
		buf.WriteString(strconv.FormatFloat(point.Drawdown, 'f', 6, 64))
		buf.WriteString("\n")
	}
	return buf.String()
}

// ToJSON exports the equity curve to a JSON string
func (e EquityCurve) ToJSON() string {
	data, _ := json.Marshal(e)
	return string(data)
}
