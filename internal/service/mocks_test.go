package service

import (
	"context"

	"stock-advisor/internal/dto"
	"stock-advisor/pkg/logger"
)

func testLogger() *logger.Logger {
	log, err := logger.New("error", "json")
	if err != nil {
		panic(err)
	}
	return log
}

type fakeAIRepository struct {
	generate func(call int, prompt string) (string, error)
	calls    int
}

func (f *fakeAIRepository) GenerateContent(_ context.Context, prompt string) (string, error) {
	f.calls++
	return f.generate(f.calls, prompt)
}

type fakeNewsRepository struct {
	items []dto.NewsItem
	err   error
}

func (f *fakeNewsRepository) Get(_ context.Context, _ string, limit int) ([]dto.NewsItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.items) > limit {
		return f.items[:limit], nil
	}
	return f.items, nil
}

type fakeMarketDataRepository struct {
	bars []dto.PriceBar
	err  error
}

func (f *fakeMarketDataRepository) Get(_ context.Context, _ string, _ int) ([]dto.PriceBar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bars, nil
}
