package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/trade-lens/internal/backtest"
	"github.com/yourusername/trade-lens/internal/config"
	"github.com/yourusername/trade-lens/internal/datasource"
	applogger "github.com/yourusername/trade-lens/internal/logger"
	"github.com/yourusername/trade-lens/internal/metrics"
	"github.com/yourusername/trade-lens/internal/models"
	"github.com/yourusername/trade-lens/internal/optimizer"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	marketFlag string
	outputJSON string
	outputCSV  string
	monteCarlo bool
	workers    int

	logger    *logrus.Logger
	runLogger *applogger.RunLogger
	cfg       *config.Config
	provider  datasource.Provider
	engine    *backtest.Engine
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVarP(&marketFlag, "market", "m", "", "Market classification (japan or usa), overrides config")
	runCmd.Flags().StringVar(&outputJSON, "json", "", "Write the full result to a JSON file")
	runCmd.Flags().StringVar(&outputCSV, "csv", "", "Write a metrics summary to a CSV file")
	runCmd.Flags().BoolVar(&monteCarlo, "monte-carlo", false, "Run bootstrap resampling on the closed trades")
	batchCmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of concurrent runs (defaults to config)")
}

var rootCmd = &cobra.Command{
	Use:     "backtest",
	Short:   "Walk-forward backtesting for technical trading rules",
	Long:    `Replay daily price series bar by bar, selecting indicator parameters walk-forward and simulating trades against the bars that actually followed.`,
	Version: fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run SYMBOL",
	Short: "Backtest a single symbol",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBacktest(cmd.Context(), args[0])
	},
}

var batchCmd = &cobra.Command{
	Use:   "batch SYMBOL...",
	Short: "Backtest several symbols concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd.Context(), args)
	},
}

var accuracyCmd = &cobra.Command{
	Use:   "accuracy SYMBOL",
	Short: "Evaluate rolling signal accuracy over the most recent window",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAccuracy(cmd.Context(), args[0])
	},
}

func main() {
	rootCmd.AddCommand(runCmd, batchCmd, accuracyCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if marketFlag != "" {
		cfg.Data.Market = marketFlag
	}
	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
	runLogger = applogger.NewRunLogger(logger)

	var err error
	provider, err = datasource.NewProvider(cfg.Data, logger)
	if err != nil {
		return fmt.Errorf("failed to create data provider: %w", err)
	}

	paramCache := optimizer.NewParamCache(
		time.Duration(cfg.Cache.TTLSeconds)*time.Second,
		cfg.Cache.MaxSize,
		optimizer.SystemClock(),
	)

	engine, err = backtest.NewEngine(engineConfig(cfg.Backtest), paramCache, logger)
	if err != nil {
		return fmt.Errorf("failed to create backtest engine: %w", err)
	}
	return nil
}

// engineConfig maps the file configuration onto the engine's
func engineConfig(bc config.BacktestConfig) backtest.Config {
	return backtest.Config{
		RSICandidates:          bc.RSICandidates,
		SMACandidates:          bc.SMACandidates,
		ReoptimizationInterval: bc.ReoptimizationInterval,
		MinSignalConfidence:    bc.MinSignalConfidence,
		ForecastSteps:          bc.ForecastSteps,
		StopLossPct:            bc.StopLossPct,
		TakeProfitPct:          bc.TakeProfitPct,
		MaxHoldingDays:         bc.MaxHoldingDays,
		MinTotalBars:           bc.MinTotalBars,
		TrainingWindowBars:     bc.TrainingWindowBars,
		MACDFastPeriod:         bc.MACDFastPeriod,
		MACDSlowPeriod:         bc.MACDSlowPeriod,
		MACDSignalPeriod:       bc.MACDSignalPeriod,
		BollingerPeriod:        bc.BollingerPeriod,
		BollingerK:             bc.BollingerK,
		ATRPeriod:              bc.ATRPeriod,
		ATRMultiplier:          bc.ATRMultiplier,
		MinTargetPct:           bc.MinTargetPct,
		AccuracyWindowBars:     bc.AccuracyWindowBars,
	}
}

func runBacktest(ctx context.Context, symbol string) error {
	market := models.Market(cfg.Data.Market)
	series, err := provider.FetchSeries(ctx, symbol, market)
	if err != nil {
		return fmt.Errorf("failed to load series for %s: %w", symbol, err)
	}

	runLogger.LogRunStarted(symbol, market, len(series))
	started := time.Now()
	result := engine.RunBacktest(symbol, series, market)
	runLogger.LogRunCompleted(result, float64(time.Since(started).Milliseconds()))

	fmt.Print(backtest.GenerateConsoleReport(result))

	if monteCarlo {
		mc := backtest.RunMonteCarlo(reversed(result.Trades), backtest.MonteCarloConfig{
			Iterations: cfg.MonteCarlo.Iterations,
			Seed:       cfg.MonteCarlo.Seed,
			RuinLevel:  cfg.MonteCarlo.RuinLevel,
		})
		fmt.Printf("Monte Carlo (%d iterations): mean %.2f%%, VaR95 %.2f%%, P(ruin) %.2f\n",
			mc.Iterations, mc.MeanReturn*100, mc.VaR95*100, mc.ProbabilityOfRuin)
	}

	if outputJSON != "" {
		if err := backtest.ExportToJSON(result, outputJSON); err != nil {
			return fmt.Errorf("failed to export JSON: %w", err)
		}
		logger.WithField("path", outputJSON).Info("Result exported")
	}
	if outputCSV != "" {
		if err := backtest.GenerateCSVExport(result, outputCSV); err != nil {
			return fmt.Errorf("failed to export CSV: %w", err)
		}
		logger.WithField("path", outputCSV).Info("Metrics exported")
	}
	return nil
}

func runBatch(ctx context.Context, symbols []string) error {
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, metrics.Handler())
		server := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Metrics.Port), Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Warn("Metrics server stopped")
			}
		}()
		defer server.Close()
	}

	market := models.Market(cfg.Data.Market)
	requests := make([]backtest.BatchRequest, 0, len(symbols))
	for _, symbol := range symbols {
		series, err := provider.FetchSeries(ctx, symbol, market)
		if err != nil {
			return fmt.Errorf("failed to load series for %s: %w", symbol, err)
		}
		requests = append(requests, backtest.BatchRequest{Symbol: symbol, Market: market, Series: series})
	}

	poolSize := workers
	if poolSize <= 0 {
		poolSize = cfg.Backtest.BatchWorkers
	}
	results := engine.RunBatch(ctx, requests, poolSize)

	for _, result := range results {
		if result == nil {
			continue
		}
		fmt.Printf("%-10s trades=%-4d win_rate=%6.2f%% return=%7.2f%% recommendation=%s\n",
			result.Symbol, result.TotalTrades, result.WinRate, result.TotalReturn,
			backtest.GenerateRecommendation(result))
		path := filepath.Join(cfg.Backtest.OutputPath, result.Symbol+".json")
		if err := backtest.ExportToJSON(result, path); err != nil {
			return fmt.Errorf("failed to export result for %s: %w", result.Symbol, err)
		}
	}
	return nil
}

func runAccuracy(ctx context.Context, symbol string) error {
	market := models.Market(cfg.Data.Market)
	series, err := provider.FetchSeries(ctx, symbol, market)
	if err != nil {
		return fmt.Errorf("failed to load series for %s: %w", symbol, err)
	}

	accuracy := engine.CalculateRealTimeAccuracy(symbol, series, market)
	runLogger.LogAccuracyReport(symbol, accuracy)
	if accuracy == nil {
		return fmt.Errorf("series too short for accuracy evaluation: %d bars", len(series))
	}

	fmt.Printf("Signals evaluated: %d\n", accuracy.TotalTrades)
	fmt.Printf("Hit rate: %.2f%%\n", accuracy.HitRate)
	fmt.Printf("Directional accuracy: %.2f%%\n", accuracy.DirectionalAccuracy)
	return nil
}

// reversed restores chronological order from the newest-first trade list
func reversed(trades []models.Trade) []models.Trade {
	out := make([]models.Trade, len(trades))
	for i, trade := range trades {
		out[len(trades)-1-i] = trade
	}
	return out
}
