package indicator

import (
	"math"

	"github.com/yourusername/trade-lens/internal/models"
)

// TrueRange calculates the per-bar true range series. The first bar has
// no previous close, so its true range is simply high-low.
func TrueRange(bars models.Series) []float64 {
	out := make([]float64, len(bars))
	for i, bar := range bars {
		if i == 0 {
			out[i] = bar.High - bar.Low
			continue
		}
		prevClose := bars[i-1].Close
		out[i] = math.Max(bar.High-bar.Low,
			math.Max(math.Abs(bar.High-prevClose), math.Abs(bar.Low-prevClose)))
	}
	return out
}

// ATR calculates the Average True Range using Wilder's recursive
// smoothing. The first defined value, at index period-1, is the simple
// average of the first period true ranges.
func ATR(bars models.Series, period int) []float64 {
	out := warmup(len(bars))
	if period < 1 || len(bars) < period {
		return out
	}

	tr := TrueRange(bars)
	seed := 0.0
	for i := 0; i < period; i++ {
		seed += tr[i]
	}
	out[period-1] = seed / float64(period)

	for i := period; i < len(bars); i++ {
		out[i] = (out[i-1]*float64(period-1) + tr[i]) / float64(period)
	}
	return out
}

// ATRSliding calculates a windowed-average true range in O(N) using a
// sliding sum, for callers that need ATR at every bar of a long series
// without the O(N*period) recomputation of a naive window mean.
func ATRSliding(bars models.Series, period int) []float64 {
	out := warmup(len(bars))
	if period < 1 || len(bars) < period {
		return out
	}

	tr := TrueRange(bars)
	sum := 0.0
	for i, v := range tr {
		sum += v
		if i >= period {
			sum -= tr[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}
