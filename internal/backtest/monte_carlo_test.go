package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

func TestMonteCarloEmptyTrades(t *testing.T) {
	result := RunMonteCarlo(nil, MonteCarloConfig{})
	assert.Equal(t, 1000, result.Iterations)
	assert.Empty(t, result.Distribution)
	assert.Zero(t, result.MeanReturn)
}

func TestMonteCarloUniformWinners(t *testing.T) {
	trades := []models.Trade{
		tradeWithProfit(0, 2),
		tradeWithProfit(2, 2),
		tradeWithProfit(4, 2),
	}
	result := RunMonteCarlo(trades, MonteCarloConfig{Iterations: 200, Seed: 42})

	// Every resample compounds the same return, so the distribution is a
	// point mass.
	require.Len(t, result.Distribution, 200)
	expected := 1.02*1.02*1.02 - 1
	assert.InDelta(t, expected, result.MeanReturn, 1e-9)
	assert.Zero(t, result.StdReturn)
	assert.InDelta(t, expected, result.VaR95, 1e-9)
	assert.Equal(t, 1.0, result.ProbabilityOfProfit)
	assert.Zero(t, result.ProbabilityOfRuin)
}

func TestMonteCarloReproducibleWithSeed(t *testing.T) {
	trades := []models.Trade{
		tradeWithProfit(0, 10),
		tradeWithProfit(2, -8),
		tradeWithProfit(4, 3),
		tradeWithProfit(6, -2),
	}
	cfg := MonteCarloConfig{Iterations: 500, Seed: 7}

	first := RunMonteCarlo(trades, cfg)
	second := RunMonteCarlo(trades, cfg)
	assert.Equal(t, first, second)

	shifted := RunMonteCarlo(trades, MonteCarloConfig{Iterations: 500, Seed: 8})
	assert.NotEqual(t, first.Distribution, shifted.Distribution)
}

func TestMonteCarloRuinDetection(t *testing.T) {
	trades := []models.Trade{
		tradeWithProfit(0, -60),
		tradeWithProfit(2, -60),
	}
	result := RunMonteCarlo(trades, MonteCarloConfig{Iterations: 100, Seed: 1, RuinLevel: 0.5})
	assert.Equal(t, 1.0, result.ProbabilityOfRuin)
	assert.Zero(t, result.ProbabilityOfProfit)
}
