package models

import (
	"fmt"
	"time"
)

// Market classifies which exchange calendar a series belongs to
type Market string

// Supported markets
const (
	MarketJapan Market = "japan"
	MarketUSA   Market = "usa"
)

// Valid reports whether the market is a known classification
func (m Market) Valid() bool {
	return m == MarketJapan || m == MarketUSA
}

// PriceBar represents one OHLCV trading-period bar.
// Bars are owned by the caller and borrowed read-only by the engine.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Validate checks the OHLCV invariants for a single bar
func (b PriceBar) Validate() error {
	if b.Open <= 0 || b.High <= 0 || b.Low <= 0 || b.Close <= 0 {
		return fmt.Errorf("%w: non-positive price on %s", ErrInvalidBar, b.Date.Format("2006-01-02"))
	}
	if b.Low > b.Open || b.Low > b.Close || b.High < b.Open || b.High < b.Close {
		return fmt.Errorf("%w: low/high do not bound open/close on %s", ErrInvalidBar, b.Date.Format("2006-01-02"))
	}
	if b.Volume < 0 {
		return fmt.Errorf("%w: negative volume on %s", ErrInvalidBar, b.Date.Format("2006-01-02"))
	}
	return nil
}

// Series is an ascending-by-date sequence of price bars
type Series []PriceBar

// Closes extracts the close prices, index-aligned with the series
func (s Series) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// Validate checks every bar and the strictly-increasing date ordering
func (s Series) Validate() error {
	for i, bar := range s {
		if err := bar.Validate(); err != nil {
			return err
		}
		if i > 0 && !s[i-1].Date.Before(bar.Date) {
			return fmt.Errorf("%w: dates not strictly increasing at index %d", ErrUnorderedSeries, i)
		}
	}
	return nil
}
