package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"stock-advisor/config"
	"stock-advisor/internal/dto"
	"stock-advisor/pkg/cache"
	"stock-advisor/pkg/httpclient"
	"stock-advisor/pkg/logger"

	"golang.org/x/time/rate"
)

// MarketDataRepository fetches daily price bars for a symbol over a
// lookback window. An empty result is a valid outcome, not an error.
type MarketDataRepository interface {
	Get(ctx context.Context, symbol string, lookbackDays int) ([]dto.PriceBar, error)
}

// yahooFinanceRepository fetches OHLCV bars from the Yahoo Finance chart API.
type yahooFinanceRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	cache          cache.Cache
	requestLimiter *rate.Limiter
}

// NewYahooFinanceRepository creates a new instance of yahooFinanceRepository.
func NewYahooFinanceRepository(cfg *config.Config, log *logger.Logger, inmemoryCache cache.Cache) MarketDataRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.YahooFinance.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &yahooFinanceRepository{
		httpClient:     httpclient.New(log, cfg.YahooFinance.BaseURL, cfg.YahooFinance.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		cache:          inmemoryCache,
		requestLimiter: requestLimiter,
	}
}

func (r *yahooFinanceRepository) Get(ctx context.Context, symbol string, lookbackDays int) ([]dto.PriceBar, error) {
	cacheKey := fmt.Sprintf("yahoo:%s:%d", symbol, lookbackDays)
	if bars, found := cache.GetFromCache[[]dto.PriceBar](r.cache, cacheKey); found {
		return bars, nil
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	endpoint := "/" + symbol

	now := time.Now().UTC()
	period1 := now.AddDate(0, 0, -lookbackDays).Unix()
	period2 := now.Unix()

	queryParams := map[string]string{
		"period1":        fmt.Sprintf("%d", period1),
		"period2":        fmt.Sprintf("%d", period2),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,split",
	}

	headers := map[string]string{
		"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0.0.0 Safari/537.36",
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Referer":         "https://finance.yahoo.com/",
	}

	var yahooResp dto.YahooFinanceResponse
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, headers, &yahooResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from yahoo finance: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Yahoo Finance API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("yahoo finance api returned status: %d", resp.StatusCode)
	}

	if yahooResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance api error: %v", yahooResp.Chart.Error)
	}

	// No data for the range is a valid, empty outcome.
	if len(yahooResp.Chart.Result) == 0 {
		return nil, nil
	}

	result := yahooResp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]

	var bars []dto.PriceBar
	for i, timestamp := range result.Timestamp {
		// Skip if any required data is missing
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) ||
			i >= len(quote.Close) || i >= len(quote.Volume) {
			continue
		}

		// Skip if any value is 0 (missing data)
		if quote.Open[i] == 0 || quote.High[i] == 0 || quote.Low[i] == 0 ||
			quote.Close[i] == 0 || quote.Volume[i] == 0 {
			continue
		}

		bars = append(bars, dto.PriceBar{
			Date:   time.Unix(timestamp, 0).UTC().Format("2006-01-02"),
			Open:   quote.Open[i],
			High:   quote.High[i],
			Low:    quote.Low[i],
			Close:  quote.Close[i],
			Volume: quote.Volume[i],
		})
	}

	r.cache.Set(cacheKey, bars, r.cfg.Cache.DefaultExpiration)

	return bars, nil
}
