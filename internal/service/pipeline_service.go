package service

import (
	"context"
	"fmt"

	"stock-advisor/internal/dto"
	"stock-advisor/internal/repository"
	"stock-advisor/pkg/logger"
)

// Defaults for a full agent run, matching the direct endpoints' deepest
// configuration: a handful of headlines and enough bars for the slowest
// indicator window.
const (
	pipelineNewsLimit    = 3
	pipelineLookbackDays = 60
)

// PipelineService runs the fixed five-stage agent workflow:
// fetch_news → analyze_sentiment → fetch_prices → compute_indicators →
// synthesize_decision. Stages run strictly in order; each one takes the
// previous state snapshot and returns a new one with its own fields filled.
// Any stage error aborts the whole run with no partial state.
type PipelineService interface {
	Run(ctx context.Context, symbol string) (*dto.PipelineState, error)
}

type pipelineService struct {
	log          *logger.Logger
	newsRepo     repository.NewsRepository
	marketRepo   repository.MarketDataRepository
	sentimentSvc SentimentService
	indicatorSvc IndicatorService
	decisionSvc  DecisionService
}

func NewPipelineService(
	log *logger.Logger,
	newsRepo repository.NewsRepository,
	marketRepo repository.MarketDataRepository,
	sentimentSvc SentimentService,
	indicatorSvc IndicatorService,
	decisionSvc DecisionService,
) PipelineService {
	return &pipelineService{
		log:          log,
		newsRepo:     newsRepo,
		marketRepo:   marketRepo,
		sentimentSvc: sentimentSvc,
		indicatorSvc: indicatorSvc,
		decisionSvc:  decisionSvc,
	}
}

type pipelineStage struct {
	name string
	run  func(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error)
}

func (s *pipelineService) Run(ctx context.Context, symbol string) (*dto.PipelineState, error) {
	stages := []pipelineStage{
		{name: "fetch_news", run: s.fetchNews},
		{name: "analyze_sentiment", run: s.analyzeSentiment},
		{name: "fetch_prices", run: s.fetchPrices},
		{name: "compute_indicators", run: s.computeIndicators},
		{name: "synthesize_decision", run: s.synthesizeDecision},
	}

	state := dto.PipelineState{Symbol: symbol}
	for _, stage := range stages {
		next, err := stage.run(ctx, state)
		if err != nil {
			s.log.ErrorContext(ctx, "pipeline stage failed",
				logger.StringField("symbol", symbol),
				logger.StringField("stage", stage.name),
				logger.ErrorField(err))
			return nil, fmt.Errorf("stage %s: %w", stage.name, err)
		}
		state = next
	}

	return &state, nil
}

func (s *pipelineService) fetchNews(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error) {
	news, err := s.newsRepo.Get(ctx, state.Symbol, pipelineNewsLimit)
	if err != nil {
		return state, err
	}
	state.News = news
	return state, nil
}

func (s *pipelineService) analyzeSentiment(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error) {
	headlines := make([]string, 0, len(state.News))
	for _, item := range state.News {
		headlines = append(headlines, item.Title)
	}

	results := s.sentimentSvc.Classify(ctx, headlines)
	state.Sentiment = s.sentimentSvc.Aggregate(results)
	return state, nil
}

func (s *pipelineService) fetchPrices(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error) {
	bars, err := s.marketRepo.Get(ctx, state.Symbol, pipelineLookbackDays)
	if err != nil {
		return state, err
	}
	state.PriceBars = bars
	return state, nil
}

func (s *pipelineService) computeIndicators(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error) {
	indicators, err := s.indicatorSvc.Compute(state.PriceBars, true)
	if err != nil {
		return state, err
	}
	state.Indicators = indicators
	return state, nil
}

func (s *pipelineService) synthesizeDecision(ctx context.Context, state dto.PipelineState) (dto.PipelineState, error) {
	decision := s.decisionSvc.Synthesize(ctx, state.Symbol, state.Sentiment, state.Indicators)
	if decision.Error != "" {
		// The full run is all-or-nothing, unlike the direct endpoint.
		return state, fmt.Errorf("decision synthesis failed: %s", decision.Error)
	}
	state.Decision = &decision
	return state, nil
}
