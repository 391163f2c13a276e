package datasource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yourusername/trade-lens/internal/models"
)

const csvProviderName = "csv"

// defaultDateFormat parses ISO dates, the format the export jobs write
const defaultDateFormat = "2006-01-02"

// CSVProvider loads price series from per-symbol CSV files in a
// directory. Files are named <symbol>.csv with a header row of
// date,open,high,low,close,volume.
type CSVProvider struct {
	dir        string
	dateFormat string
	logger     *logrus.Logger
}

// NewCSVProvider creates a CSV-backed provider rooted at dir
func NewCSVProvider(dir, dateFormat string, logger *logrus.Logger) *CSVProvider {
	if dateFormat == "" {
		dateFormat = defaultDateFormat
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &CSVProvider{dir: dir, dateFormat: dateFormat, logger: logger}
}

// Name returns the name of the data provider
func (p *CSVProvider) Name() string {
	return csvProviderName
}

// FetchSeries loads and validates the series for one symbol. Prices are
// parsed through decimal to avoid drift on exchange feeds that quote
// sub-cent ticks.
func (p *CSVProvider) FetchSeries(ctx context.Context, symbol string, market models.Market) (models.Series, error) {
	if symbol == "" {
		return nil, models.ErrSymbolRequired
	}
	if !market.Valid() {
		return nil, models.ErrUnknownMarket
	}

	path := filepath.Join(p.dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewProviderError(csvProviderName, ErrCodeNotFound,
				fmt.Sprintf("no data file for symbol %s", symbol), err)
		}
		return nil, NewProviderError(csvProviderName, ErrCodeUnknown, "failed to open data file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 6

	header, err := reader.Read()
	if err != nil {
		return nil, NewProviderError(csvProviderName, ErrCodeInvalidData, "failed to read header", err)
	}
	if strings.ToLower(strings.TrimSpace(header[0])) != "date" {
		return nil, NewProviderError(csvProviderName, ErrCodeInvalidData,
			fmt.Sprintf("unexpected header %q", strings.Join(header, ",")), nil)
	}

	var series models.Series
	line := 1
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewProviderError(csvProviderName, ErrCodeInvalidData,
				fmt.Sprintf("malformed row at line %d", line+1), err)
		}
		line++

		bar, err := p.parseBar(record)
		if err != nil {
			return nil, NewProviderError(csvProviderName, ErrCodeInvalidData,
				fmt.Sprintf("invalid bar at line %d", line), err)
		}
		series = append(series, bar)
	}

	if err := series.Validate(); err != nil {
		return nil, NewProviderError(csvProviderName, ErrCodeInvalidData, "series failed validation", err)
	}

	p.logger.WithFields(logrus.Fields{
		"symbol": symbol,
		"market": market,
		"bars":   len(series),
	}).Debug("Loaded price series")
	return series, nil
}

func (p *CSVProvider) parseBar(record []string) (models.PriceBar, error) {
	date, err := time.Parse(p.dateFormat, strings.TrimSpace(record[0]))
	if err != nil {
		return models.PriceBar{}, fmt.Errorf("bad date %q: %w", record[0], err)
	}

	prices := make([]float64, 4)
	for i, field := range record[1:5] {
		value, err := decimal.NewFromString(strings.TrimSpace(field))
		if err != nil {
			return models.PriceBar{}, fmt.Errorf("bad price %q: %w", field, err)
		}
		prices[i] = value.InexactFloat64()
	}

	volume, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
	if err != nil {
		return models.PriceBar{}, fmt.Errorf("bad volume %q: %w", record[5], err)
	}

	bar := models.PriceBar{
		Date:   date,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: volume,
	}
	if err := bar.Validate(); err != nil {
		return models.PriceBar{}, err
	}
	return bar, nil
}
