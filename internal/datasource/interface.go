package datasource

import (
	"context"

	"github.com/yourusername/trade-lens/internal/models"
)

// Provider defines the interface for loading price series data
type Provider interface {
	// FetchSeries loads the full daily price series for a symbol,
	// oldest bar first.
	FetchSeries(ctx context.Context, symbol string, market models.Market) (models.Series, error)

	// Name returns the name of the data provider
	Name() string
}

// ProviderError represents errors from provider operations
type ProviderError struct {
	Provider string // Provider name
	Code     string // Error code (e.g., "invalid_data")
	Message  string // Error message
	Err      error  // Underlying error
}

func (e ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + ": " + e.Code + ": " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + ": " + e.Code + ": " + e.Message
}

func (e ProviderError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeInvalidData = "invalid_data"
	ErrCodeUnknown     = "unknown"
)

// NewProviderError creates a new provider error
func NewProviderError(provider, code, message string, err error) ProviderError {
	return ProviderError{
		Provider: provider,
		Code:     code,
		Message:  message,
		Err:      err,
	}
}
