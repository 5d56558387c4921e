package repository

import (
	"stock-advisor/config"
	"stock-advisor/pkg/cache"
	"stock-advisor/pkg/logger"
)

type Repository struct {
	MarketDataRepo MarketDataRepository
	NewsRepo       NewsRepository
	AIRepo         AIRepository
	UserRepo       UserRepository
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, log *logger.Logger) (*Repository, error) {
	aiRepo, err := NewGeminiAIRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		MarketDataRepo: NewYahooFinanceRepository(cfg, log, inmemoryCache),
		NewsRepo:       NewNewsAPIRepository(cfg, log),
		AIRepo:         aiRepo,
		UserRepo:       NewInMemoryUserRepository(),
	}, nil
}
