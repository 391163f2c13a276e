package backtest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yourusername/trade-lens/internal/models"
)

// GenerateConsoleReport formats a result for terminal output
func GenerateConsoleReport(result *models.BacktestResult) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	builder.WriteString(fmt.Sprintf("Symbol: %s (%s)\n", result.Symbol, result.Market))
	builder.WriteString(fmt.Sprintf("Period: %s to %s\n",
		result.StartDate.Format("2006-01-02"), result.EndDate.Format("2006-01-02")))
	if result.Warning != "" {
		builder.WriteString(fmt.Sprintf("Warning: %s\n", result.Warning))
	}
	builder.WriteString(fmt.Sprintf("Total Trades: %d (%d wins / %d losses)\n",
		result.TotalTrades, result.WinningTrades, result.LosingTrades))
	builder.WriteString(fmt.Sprintf("Win Rate: %.2f%%\n", result.WinRate))
	builder.WriteString(fmt.Sprintf("Total Return: %.2f%%\n", result.TotalReturn))
	builder.WriteString(fmt.Sprintf("Profit Factor: %.2f\n", result.ProfitFactor))
	builder.WriteString(fmt.Sprintf("Max Drawdown: %.2f%%\n", result.MaxDrawdown))
	builder.WriteString(fmt.Sprintf("Sharpe Ratio: %.2f\n", result.SharpeRatio))
	if wf := result.WalkForwardMetrics; wf != nil {
		builder.WriteString(fmt.Sprintf("Out-of-Sample Accuracy: %.2f\n", wf.OutOfSampleAccuracy))
		builder.WriteString(fmt.Sprintf("Parameter Stability: %.2f\n", wf.ParameterStability))
	}
	builder.WriteString(fmt.Sprintf("Recommendation: %s\n", GenerateRecommendation(result)))
	return builder.String()
}

// ExportToJSON writes a result to a JSON file
func ExportToJSON(result *models.BacktestResult, outputPath string) error {
	if outputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	return os.WriteFile(outputPath, data, 0o644)
}

// GenerateCSVExport exports key metrics for spreadsheets
func GenerateCSVExport(result *models.BacktestResult, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	csv := "metric,value\n" +
		fmt.Sprintf("total_trades,%d\n", result.TotalTrades) +
		fmt.Sprintf("win_rate,%.4f\n", result.WinRate) +
		fmt.Sprintf("total_return,%.4f\n", result.TotalReturn) +
		fmt.Sprintf("profit_factor,%.4f\n", result.ProfitFactor) +
		fmt.Sprintf("max_drawdown,%.4f\n", result.MaxDrawdown) +
		fmt.Sprintf("sharpe_ratio,%.4f\n", result.SharpeRatio) +
		fmt.Sprintf("composite_score,%.4f\n", CompositeScore(result)) +
		fmt.Sprintf("recommendation,%s\n", GenerateRecommendation(result))
	return os.WriteFile(outputPath, []byte(csv), 0o644)
}
