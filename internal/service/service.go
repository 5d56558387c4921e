package service

import (
	"stock-advisor/config"
	"stock-advisor/internal/repository"
	"stock-advisor/pkg/logger"
)

type Service struct {
	AuthService      AuthService
	IndicatorService IndicatorService
	SentimentService SentimentService
	DecisionService  DecisionService
	PipelineService  PipelineService
}

func NewService(cfg *config.Config, log *logger.Logger, repo *repository.Repository) *Service {
	indicatorService := NewIndicatorService(log)
	sentimentService := NewSentimentService(log, repo.AIRepo)
	decisionService := NewDecisionService(log, repo.AIRepo)
	pipelineService := NewPipelineService(log, repo.NewsRepo, repo.MarketDataRepo, sentimentService, indicatorService, decisionService)

	return &Service{
		AuthService:      NewAuthService(cfg, log, repo.UserRepo),
		IndicatorService: indicatorService,
		SentimentService: sentimentService,
		DecisionService:  decisionService,
		PipelineService:  pipelineService,
	}
}
