package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/config"
)

// ProviderType represents the type of data provider
type ProviderType string

const (
	// CSVProviderType is the file-based provider
	CSVProviderType ProviderType = "csv"
)

// NewProvider creates a Provider based on the data configuration
func NewProvider(cfg config.DataConfig, logger *logrus.Logger) (Provider, error) {
	switch ProviderType(cfg.Provider) {
	case CSVProviderType:
		return NewCSVProvider(cfg.Path, cfg.DateFormat, logger), nil
	default:
		return nil, fmt.Errorf("unknown data provider: %s", cfg.Provider)
	}
}
