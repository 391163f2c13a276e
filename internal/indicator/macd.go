package indicator

// MACDResult holds the three index-aligned MACD output series
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD calculates fast EMA minus slow EMA, a signal line (EMA of the MACD
// series restricted to its defined region), and the histogram MACD-signal.
func MACD(values []float64, fastPeriod, slowPeriod, signalPeriod int) MACDResult {
	n := len(values)
	result := MACDResult{
		MACD:      warmup(n),
		Signal:    warmup(n),
		Histogram: warmup(n),
	}
	if fastPeriod < 1 || slowPeriod < 1 || signalPeriod < 1 || n < slowPeriod {
		return result
	}

	fast := EMA(values, fastPeriod)
	slow := EMA(values, slowPeriod)
	for i := slowPeriod - 1; i < n; i++ {
		result.MACD[i] = fast[i] - slow[i]
	}

	// The signal EMA runs over the defined MACD region only, then is
	// shifted back into series alignment.
	defined := result.MACD[slowPeriod-1:]
	signal := EMA(defined, signalPeriod)
	for i, v := range signal {
		idx := slowPeriod - 1 + i
		result.Signal[idx] = v
		if Defined(v) {
			result.Histogram[idx] = result.MACD[idx] - v
		}
	}
	return result
}
