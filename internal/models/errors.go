package models

import "errors"

// Custom errors
var (
	ErrInvalidBar      = errors.New("invalid price bar")
	ErrUnorderedSeries = errors.New("series not ascending by date")
	ErrUnknownMarket   = errors.New("unknown market classification")
	ErrSymbolRequired  = errors.New("symbol is required")
)
