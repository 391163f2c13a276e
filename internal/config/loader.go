// Package config provides configuration management for the Trade Lens application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the configuration (${VAR} syntax)
	expanded := os.ExpandEnv(string(data))

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	v.SetEnvPrefix("TRADE_LENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional
// fields, tolerating a missing config file. It expands environment
// variable placeholders in the YAML file (${VAR_NAME}).
func LoadWithDefaults(configPath string) (*Config, error) {
	v := viper.New()

	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v.SetConfigType("yaml")
	v.SetEnvPrefix("TRADE_LENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "trade-lens")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("data.provider", "csv")
	v.SetDefault("data.market", "usa")
	v.SetDefault("backtest.rsi_candidates", []int{7, 14, 21})
	v.SetDefault("backtest.sma_candidates", []int{10, 20, 50})
	v.SetDefault("backtest.reoptimization_interval", 20)
	v.SetDefault("backtest.min_signal_confidence", 0.6)
	v.SetDefault("backtest.forecast_steps", 5)
	v.SetDefault("backtest.stop_loss_pct", 0.03)
	v.SetDefault("backtest.take_profit_pct", 0.05)
	v.SetDefault("backtest.max_holding_days", 10)
	v.SetDefault("backtest.min_total_bars", 40)
	v.SetDefault("backtest.training_window_bars", 120)
	v.SetDefault("backtest.macd_fast_period", 12)
	v.SetDefault("backtest.macd_slow_period", 26)
	v.SetDefault("backtest.macd_signal_period", 9)
	v.SetDefault("backtest.bollinger_period", 20)
	v.SetDefault("backtest.bollinger_k", 2.0)
	v.SetDefault("backtest.atr_period", 14)
	v.SetDefault("backtest.atr_multiplier", 1.5)
	v.SetDefault("backtest.min_target_pct", 0.01)
	v.SetDefault("backtest.accuracy_window_bars", 60)
	v.SetDefault("backtest.batch_workers", 4)
	v.SetDefault("backtest.output_path", "output")
	v.SetDefault("cache.ttl_seconds", 3600)
	v.SetDefault("cache.max_size", 256)
	v.SetDefault("monte_carlo.iterations", 1000)
	v.SetDefault("monte_carlo.ruin_level", 0.5)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")

	if data, err := os.ReadFile(configPath); err == nil {
		expanded := os.ExpandEnv(string(data))
		if err := v.ReadConfig(bytes.NewBuffer([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// ReloadFromEnv reloads the configuration from the file pointed at by
// TRADE_LENS_CONFIG_PATH, when set.
func ReloadFromEnv(cfg *Config) error {
	if envPath := os.Getenv("TRADE_LENS_CONFIG_PATH"); envPath != "" {
		newCfg, err := Load(envPath)
		if err != nil {
			return err
		}
		*cfg = *newCfg
	}
	return nil
}
