// Package simulator determines the outcome of hypothetical trades by
// scanning forward bars against symmetric target and stop levels.
package simulator

import (
	"math"

	"github.com/yourusername/trade-lens/internal/models"
)

// Outcome is the result of a simulated trade
type Outcome struct {
	// Won is true when the take-profit level was touched before the stop
	Won bool
	// DirectionalHit is the softer criterion: whether the close at the
	// horizon moved in the predicted direction relative to entry
	DirectionalHit bool
}

// Simulate scans forward bars from entryIndex+1 up to horizon bars ahead
// and resolves the trade against target and stop levels placed
// symmetrically around the entry close.
//
// Same-bar resolution is conservative: if both levels are touchable
// within one bar, the stop is assumed to trigger first, so a win is never
// reported when a loss was also possible. Bars with zero or inverted
// high/low stop the scan early; the remaining horizon is unresolved.
func Simulate(bars models.Series, entryIndex int, side models.TradeSide, targetDistance float64, horizon int) Outcome {
	outcome := Outcome{}
	if entryIndex < 0 || entryIndex >= len(bars) || targetDistance <= 0 || horizon < 1 {
		return outcome
	}

	entry := bars[entryIndex].Close
	target, stop := Levels(entry, side, targetDistance)

	lastClose := entry
	end := entryIndex + horizon
	if end > len(bars)-1 {
		end = len(bars) - 1
	}

	for i := entryIndex + 1; i <= end; i++ {
		bar := bars[i]
		if bar.High <= 0 || bar.Low <= 0 || bar.High < bar.Low {
			break
		}
		lastClose = bar.Close

		stopTouched := false
		targetTouched := false
		if side == models.SideBuy {
			stopTouched = bar.Low <= stop
			targetTouched = bar.High >= target
		} else {
			stopTouched = bar.High >= stop
			targetTouched = bar.Low <= target
		}

		// Stop first: pessimistic same-bar ordering.
		if stopTouched {
			return outcome
		}
		if targetTouched {
			outcome.Won = true
			outcome.DirectionalHit = true
			return outcome
		}
	}

	if side == models.SideBuy {
		outcome.DirectionalHit = lastClose > entry
	} else {
		outcome.DirectionalHit = lastClose < entry
	}
	return outcome
}

// TargetDistance derives a target distance from an ATR reading, floored
// at a minimum fraction of price. A NaN ATR (warm-up) falls back to the
// floor.
func TargetDistance(price, atr, multiplier, minPct float64) float64 {
	floor := price * minPct
	distance := atr * multiplier
	if math.IsNaN(distance) || distance < floor {
		return floor
	}
	return distance
}

// Levels computes the direction-dependent target and stop prices around
// an entry price.
func Levels(entry float64, side models.TradeSide, distance float64) (target, stop float64) {
	if side == models.SideBuy {
		return entry + distance, entry - distance
	}
	return entry - distance, entry + distance
}
