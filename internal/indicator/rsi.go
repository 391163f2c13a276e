package indicator

// rsiEpsilon substitutes a zero average loss so RSI saturates near 100
// instead of dividing by zero.
const rsiEpsilon = 1e-10

// RSI calculates the Wilder-style Relative Strength Index scaled 0-100.
// The first defined value is at index period; earlier entries are NaN.
func RSI(values []float64, period int) []float64 {
	out := warmup(len(values))
	if period < 1 || len(values) <= period {
		return out
	}

	avgGain := 0.0
	avgLoss := 0.0
	for i := 1; i <= period; i++ {
		change := values[i] - values[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		change := values[i] - values[i-1]
		gain := 0.0
		loss := 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		avgLoss = rsiEpsilon
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
