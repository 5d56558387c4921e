package http

import (
	"net/http"

	"stock-advisor/internal/dto"

	"github.com/labstack/echo/v4"
)

// Direct capability endpoints are best-effort: upstream failures are
// embedded in the response body instead of failing the request. The full
// pipeline endpoint (Agent) is the all-or-nothing counterpart.

func (h *HttpAPIHandler) News(c echo.Context) error {
	symbol := c.Param("symbol")
	limit := queryInt(c, "limit", 5)

	news, err := h.repo.NewsRepo.Get(c.Request().Context(), symbol, limit)
	if err != nil {
		return c.JSON(http.StatusOK, dto.NewsResponse{Symbol: symbol, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.NewsResponse{Symbol: symbol, News: news})
}

func (h *HttpAPIHandler) Equity(c echo.Context) error {
	symbol := c.Param("symbol")
	days := queryInt(c, "days", 30)

	bars, err := h.repo.MarketDataRepo.Get(c.Request().Context(), symbol, days)
	if err != nil {
		return c.JSON(http.StatusOK, dto.StockDataResponse{Symbol: symbol, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.StockDataResponse{Symbol: symbol, Data: bars})
}

func (h *HttpAPIHandler) Indicators(c echo.Context) error {
	symbol := c.Param("symbol")
	advanced := queryBool(c, "advanced", false)
	days := queryInt(c, "days", 60)

	bars, err := h.repo.MarketDataRepo.Get(c.Request().Context(), symbol, days)
	if err != nil {
		return c.JSON(http.StatusOK, dto.IndicatorResponse{Symbol: symbol, Error: err.Error()})
	}

	indicators, err := h.service.IndicatorService.Compute(bars, advanced)
	if err != nil {
		return c.JSON(http.StatusOK, dto.IndicatorResponse{Symbol: symbol, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, dto.IndicatorResponse{Symbol: symbol, Indicators: indicators})
}

func (h *HttpAPIHandler) Sentiment(c echo.Context) error {
	ctx := c.Request().Context()
	symbol := c.Param("symbol")
	limit := queryInt(c, "limit", 3)

	news, err := h.repo.NewsRepo.Get(ctx, symbol, limit)
	if err != nil {
		return c.JSON(http.StatusOK, dto.SentimentResponse{Symbol: symbol, Error: err.Error()})
	}

	headlines := make([]string, 0, len(news))
	for _, item := range news {
		headlines = append(headlines, item.Title)
	}

	results := h.service.SentimentService.Classify(ctx, headlines)
	overall := h.service.SentimentService.Aggregate(results)

	return c.JSON(http.StatusOK, dto.SentimentResponse{Symbol: symbol, Results: results, Overall: overall})
}

func (h *HttpAPIHandler) Decision(c echo.Context) error {
	ctx := c.Request().Context()
	symbol := c.Param("symbol")
	advanced := queryBool(c, "advanced", false)
	limit := queryInt(c, "limit", 3)
	days := queryInt(c, "days", 60)

	news, err := h.repo.NewsRepo.Get(ctx, symbol, limit)
	if err != nil {
		return c.JSON(http.StatusOK, dto.Decision{Symbol: symbol, Error: err.Error()})
	}

	headlines := make([]string, 0, len(news))
	for _, item := range news {
		headlines = append(headlines, item.Title)
	}
	sentiment := h.service.SentimentService.Aggregate(h.service.SentimentService.Classify(ctx, headlines))

	bars, err := h.repo.MarketDataRepo.Get(ctx, symbol, days)
	if err != nil {
		return c.JSON(http.StatusOK, dto.Decision{Symbol: symbol, Sentiment: sentiment, Error: err.Error()})
	}

	indicators, err := h.service.IndicatorService.Compute(bars, advanced)
	if err != nil {
		return c.JSON(http.StatusOK, dto.Decision{Symbol: symbol, Sentiment: sentiment, Error: err.Error()})
	}

	decision := h.service.DecisionService.Synthesize(ctx, symbol, sentiment, indicators)
	return c.JSON(http.StatusOK, decision)
}

func (h *HttpAPIHandler) Agent(c echo.Context) error {
	symbol := c.Param("symbol")

	state, err := h.service.PipelineService.Run(c.Request().Context(), symbol)
	if err != nil {
		return c.JSON(http.StatusBadGateway, dto.NewBaseResponse(http.StatusBadGateway, err.Error(), nil))
	}

	return c.JSON(http.StatusOK, state)
}
