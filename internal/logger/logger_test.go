package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/trade-lens/internal/models"
)

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug", "development")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("error", "development")
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("chatty", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestNewLoggerProductionUsesJSON(t *testing.T) {
	log := NewLogger("info", "production")
	_, ok := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, ok)

	log = NewLogger("info", "development")
	_, ok = log.Formatter.(*logrus.TextFormatter)
	assert.True(t, ok)
}

func TestRunLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	rl := NewRunLogger(base)
	result := &models.BacktestResult{
		Symbol:      "7203",
		Market:      models.MarketJapan,
		TotalTrades: 3,
		WinRate:     66.7,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	rl.LogRunCompleted(result, 12.5)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "backtest", entry["component"])
	assert.Equal(t, "7203", entry["symbol"])
	assert.Equal(t, float64(3), entry["trades"])
	assert.Equal(t, "info", entry["level"])
}

func TestRunLoggerWarnsOnDegradedRun(t *testing.T) {
	var buf bytes.Buffer
	base := logrus.New()
	base.SetOutput(&buf)
	base.SetFormatter(&logrus.JSONFormatter{})

	rl := NewRunLogger(base)
	rl.LogRunCompleted(&models.BacktestResult{Symbol: "AAPL", Warning: "insufficient data"}, 1)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
	assert.Equal(t, "insufficient data", entry["warning"])

	buf.Reset()
	rl.LogAccuracyReport("AAPL", nil)
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warning", entry["level"])
}
