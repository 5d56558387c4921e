package repository

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"stock-advisor/config"
	"stock-advisor/internal/dto"
	"stock-advisor/pkg/httpclient"
	"stock-advisor/pkg/logger"

	"golang.org/x/time/rate"
)

// NewsRepository fetches the most recent headlines for a symbol,
// most-recent-first.
type NewsRepository interface {
	Get(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error)
}

type newsAPIRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewNewsAPIRepository creates a repository backed by the NewsAPI
// /v2/everything endpoint.
func NewNewsAPIRepository(cfg *config.Config, log *logger.Logger) NewsRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.NewsAPI.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &newsAPIRepository{
		httpClient:     httpclient.New(log, cfg.NewsAPI.BaseURL, cfg.NewsAPI.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *newsAPIRepository) Get(ctx context.Context, symbol string, limit int) ([]dto.NewsItem, error) {
	if r.cfg.NewsAPI.APIKey == "" {
		return nil, fmt.Errorf("news api key is not configured")
	}

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	queryParams := map[string]string{
		"q":        symbol,
		"sortBy":   "publishedAt",
		"pageSize": strconv.Itoa(limit),
		"apiKey":   r.cfg.NewsAPI.APIKey,
	}

	var newsResp dto.NewsAPIResponse
	resp, err := r.httpClient.Get(ctx, "/everything", queryParams, nil, &newsResp)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "News API returned Non-OK status",
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("news api returned status: %d", resp.StatusCode)
	}

	items := make([]dto.NewsItem, 0, len(newsResp.Articles))
	for _, a := range newsResp.Articles {
		items = append(items, dto.NewsItem{
			Title:       a.Title,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
			Source:      a.Source.Name,
		})
	}

	return items, nil
}
