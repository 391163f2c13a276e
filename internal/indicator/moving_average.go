// Package indicator provides technical indicator calculations over price
// series. All functions are pure: one output per input bar, with warm-up
// entries filled with NaN so outputs stay index-aligned with the input.
// Short input never raises an error; callers receive sentinels instead.
package indicator

import "math"

// SMA calculates the simple moving average over a trailing window.
// Entries before index period-1 are NaN.
func SMA(values []float64, period int) []float64 {
	out := warmup(len(values))
	if period < 1 || len(values) < period {
		return out
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA calculates the exponential moving average. The first defined value,
// at index period-1, is seeded from the simple average of the first
// period inputs.
func EMA(values []float64, period int) []float64 {
	out := warmup(len(values))
	if period < 1 || len(values) < period {
		return out
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	out[period-1] = seed / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		out[i] = (values[i]-out[i-1])*multiplier + out[i-1]
	}
	return out
}

// RollingStdDev calculates the population standard deviation over the
// same trailing window as SMA. Entries before index period-1 are NaN.
func RollingStdDev(values []float64, period int) []float64 {
	out := warmup(len(values))
	if period < 1 || len(values) < period {
		return out
	}

	means := SMA(values, period)
	for i := period - 1; i < len(values); i++ {
		variance := 0.0
		for j := i - period + 1; j <= i; j++ {
			diff := values[j] - means[i]
			variance += diff * diff
		}
		out[i] = math.Sqrt(variance / float64(period))
	}
	return out
}

// warmup returns a slice of n NaN sentinels
func warmup(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// Defined reports whether an indicator value is past its warm-up
func Defined(v float64) bool {
	return !math.IsNaN(v)
}
