// Package config provides configuration management for the Trade Lens application.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Data       DataConfig       `mapstructure:"data" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	Cache      CacheConfig      `mapstructure:"cache" validate:"required"`
	MonteCarlo MonteCarloConfig `mapstructure:"monte_carlo"`
	Metrics    MetricsConfig    `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DataConfig represents price data source configuration
type DataConfig struct {
	Provider   string `mapstructure:"provider" validate:"required,oneof=csv"`
	Path       string `mapstructure:"path" validate:"required"`
	Market     string `mapstructure:"market" validate:"required,market"`
	DateFormat string `mapstructure:"date_format"`
}

// BacktestConfig represents backtesting engine configuration
type BacktestConfig struct {
	RSICandidates          []int   `mapstructure:"rsi_candidates" validate:"required,min=1,dive,gte=2"`
	SMACandidates          []int   `mapstructure:"sma_candidates" validate:"required,min=1,dive,gt=0"`
	ReoptimizationInterval int     `mapstructure:"reoptimization_interval" validate:"required,gt=0"`
	MinSignalConfidence    float64 `mapstructure:"min_signal_confidence" validate:"required,gt=0,lte=1"`
	ForecastSteps          int     `mapstructure:"forecast_steps" validate:"required,gt=0"`
	StopLossPct            float64 `mapstructure:"stop_loss_pct" validate:"required,gt=0,lt=1"`
	TakeProfitPct          float64 `mapstructure:"take_profit_pct" validate:"required,gt=0,lt=1"`
	MaxHoldingDays         int     `mapstructure:"max_holding_days" validate:"required,gt=0"`
	MinTotalBars           int     `mapstructure:"min_total_bars" validate:"required,gt=0"`
	TrainingWindowBars     int     `mapstructure:"training_window_bars" validate:"required,gt=0"`
	MACDFastPeriod         int     `mapstructure:"macd_fast_period" validate:"required,gt=0"`
	MACDSlowPeriod         int     `mapstructure:"macd_slow_period" validate:"required,gt=0"`
	MACDSignalPeriod       int     `mapstructure:"macd_signal_period" validate:"required,gt=0"`
	BollingerPeriod        int     `mapstructure:"bollinger_period" validate:"required,gt=0"`
	BollingerK             float64 `mapstructure:"bollinger_k" validate:"required,gt=0"`
	ATRPeriod              int     `mapstructure:"atr_period" validate:"required,gt=0"`
	ATRMultiplier          float64 `mapstructure:"atr_multiplier" validate:"required,gt=0"`
	MinTargetPct           float64 `mapstructure:"min_target_pct" validate:"required,gt=0,lt=1"`
	AccuracyWindowBars     int     `mapstructure:"accuracy_window_bars" validate:"required,gt=0"`
	BatchWorkers           int     `mapstructure:"batch_workers" validate:"required,gt=0"`
	OutputPath             string  `mapstructure:"output_path" validate:"required"`
}

// CacheConfig represents the optimizer parameter cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds" validate:"required,gt=0"`
	MaxSize    int `mapstructure:"max_size" validate:"required,gt=0"`
}

// MonteCarloConfig represents the optional bootstrap analysis settings
type MonteCarloConfig struct {
	Enabled    bool    `mapstructure:"enabled"`
	Iterations int     `mapstructure:"iterations" validate:"omitempty,gt=0"`
	Seed       int64   `mapstructure:"seed"`
	RuinLevel  float64 `mapstructure:"ruin_level" validate:"omitempty,gt=0,lt=1"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
