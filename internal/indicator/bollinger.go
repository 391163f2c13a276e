package indicator

// BollingerResult holds the three index-aligned Bollinger Band series
type BollingerResult struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger calculates an SMA center line plus/minus k standard
// deviations computed over the same trailing window.
func Bollinger(values []float64, period int, k float64) BollingerResult {
	n := len(values)
	result := BollingerResult{
		Upper:  warmup(n),
		Middle: SMA(values, period),
		Lower:  warmup(n),
	}
	if period < 1 || n < period {
		return result
	}

	std := RollingStdDev(values, period)
	for i := period - 1; i < n; i++ {
		result.Upper[i] = result.Middle[i] + k*std[i]
		result.Lower[i] = result.Middle[i] - k*std[i]
	}
	return result
}
