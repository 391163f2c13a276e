package simulator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/trade-lens/internal/models"
)

func bar(day int, open, high, low, close float64) models.PriceBar {
	return models.PriceBar{
		Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  close,
		Volume: 1000,
	}
}

func TestSimulateConservativeTieBreak(t *testing.T) {
	// Entry at 100, distance 2: target 102, stop 98. The forward bar
	// spans both levels, so the stop must be assumed to trigger first.
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		bar(1, 100, 103, 97, 100),
	}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 5)
	assert.False(t, outcome.Won, "same-bar tie must resolve to a loss")

	outcome = Simulate(bars, 0, models.SideSell, 2, 5)
	assert.False(t, outcome.Won)
}

func TestSimulateTargetBeforeStop(t *testing.T) {
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		bar(1, 100.5, 103, 100, 102.5),
	}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 5)
	assert.True(t, outcome.Won)
	assert.True(t, outcome.DirectionalHit)
}

func TestSimulateStopLoss(t *testing.T) {
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		bar(1, 99.5, 100, 97.5, 98),
	}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 5)
	assert.False(t, outcome.Won)
	assert.False(t, outcome.DirectionalHit)
}

func TestSimulateSellSide(t *testing.T) {
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		bar(1, 99.5, 100, 97.5, 97.9),
	}
	outcome := Simulate(bars, 0, models.SideSell, 2, 5)
	assert.True(t, outcome.Won)
}

func TestSimulateDirectionalHitAtHorizon(t *testing.T) {
	// Neither level is touched within the horizon; the close drifts up.
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		bar(1, 100, 100.6, 99.8, 100.4),
		bar(2, 100.4, 100.9, 100.1, 100.8),
	}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 2)
	assert.False(t, outcome.Won)
	assert.True(t, outcome.DirectionalHit)

	outcome = Simulate(bars, 0, models.SideSell, 2, 2)
	assert.False(t, outcome.Won)
	assert.False(t, outcome.DirectionalHit)
}

func TestSimulateStopsOnInvalidBar(t *testing.T) {
	bars := models.Series{
		bar(0, 100, 101, 99, 100),
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		bar(2, 100, 110, 100, 109),
	}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 5)
	assert.False(t, outcome.Won, "scan must stop at the malformed bar")
	assert.False(t, outcome.DirectionalHit)
}

func TestSimulateShortSeries(t *testing.T) {
	bars := models.Series{bar(0, 100, 101, 99, 100)}
	outcome := Simulate(bars, 0, models.SideBuy, 2, 5)
	assert.False(t, outcome.Won)
	assert.False(t, outcome.DirectionalHit)
}

func TestLevels(t *testing.T) {
	target, stop := Levels(100, models.SideBuy, 3)
	assert.Equal(t, 103.0, target)
	assert.Equal(t, 97.0, stop)

	target, stop = Levels(100, models.SideSell, 3)
	assert.Equal(t, 97.0, target)
	assert.Equal(t, 103.0, stop)
}
