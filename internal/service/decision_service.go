package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-advisor/internal/dto"
	"stock-advisor/internal/repository"
	"stock-advisor/pkg/logger"
)

const (
	rsiOverboughtLevel = 70
	rsiOversoldLevel   = 30
	rsiNeutralDefault  = 50
)

// DecisionService merges the sentiment aggregate, the indicator set and
// rule-based bias hints into a multi-horizon Buy/Sell/Hold decision via a
// single LLM call. Failures are embedded in the returned Decision; the
// inputs are always echoed back for auditability.
type DecisionService interface {
	Synthesize(ctx context.Context, symbol string, sentiment dto.SentimentAggregate, indicators dto.IndicatorSet) dto.Decision
}

type decisionService struct {
	log    *logger.Logger
	aiRepo repository.AIRepository
}

func NewDecisionService(log *logger.Logger, aiRepo repository.AIRepository) DecisionService {
	return &decisionService{log: log, aiRepo: aiRepo}
}

func (s *decisionService) Synthesize(ctx context.Context, symbol string, sentiment dto.SentimentAggregate, indicators dto.IndicatorSet) dto.Decision {
	decision := dto.Decision{
		Symbol:     symbol,
		Sentiment:  sentiment,
		Indicators: indicators,
	}

	prompt, err := s.promptDecision(symbol, sentiment, indicators)
	if err != nil {
		decision.Error = err.Error()
		return decision
	}

	// Exactly one call, no retry. A failed or unparseable response
	// invalidates the whole decision, unlike per-headline sentiment.
	response, err := s.aiRepo.GenerateContent(ctx, prompt)
	if err != nil {
		s.log.ErrorContext(ctx, "decision synthesis call failed",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		decision.Error = err.Error()
		return decision
	}

	horizons := make(map[string]dto.HorizonSignal)
	if err := unmarshalLLMResponse(response, &horizons); err != nil {
		s.log.ErrorContext(ctx, "decision synthesis response unparseable",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
		decision.Error = fmt.Sprintf("malformed decision response: %v", err)
		return decision
	}

	for _, horizon := range []string{dto.HorizonShortTerm, dto.HorizonMediumTerm} {
		if _, ok := horizons[horizon]; !ok {
			decision.Error = fmt.Sprintf("malformed decision response: missing horizon %q", horizon)
			return decision
		}
	}

	decision.Horizons = horizons
	return decision
}

// RuleBias derives informational bias hints from the indicator set. They
// are passed to the model as context, never as a hard override. A missing
// RSI defaults to the neutral 50 and produces no hint.
func (s *decisionService) RuleBias(indicators dto.IndicatorSet) []string {
	rsi := float64(rsiNeutralDefault)
	if v, ok := indicators[dto.IndicatorRSI]; ok {
		rsi = v
	}

	var hints []string
	if rsi > rsiOverboughtLevel {
		hints = append(hints, "Overbought: leaning Sell")
	} else if rsi < rsiOversoldLevel {
		hints = append(hints, "Oversold: leaning Buy")
	}

	if macd, ok := indicators[dto.IndicatorMACD]; ok {
		if macd > 0 {
			hints = append(hints, "MACD positive: leaning Buy")
		} else if macd < 0 {
			hints = append(hints, "MACD negative: leaning Sell")
		}
	}

	return hints
}

func (s *decisionService) promptDecision(symbol string, sentiment dto.SentimentAggregate, indicators dto.IndicatorSet) (string, error) {
	indicatorsJSON, err := json.Marshal(indicators)
	if err != nil {
		return "", fmt.Errorf("failed to marshal indicators: %w", err)
	}

	hints := s.RuleBias(indicators)

	var sb strings.Builder

	sb.WriteString("You are a trading signal generator.\n\n")
	sb.WriteString(fmt.Sprintf("Stock: %s\n", symbol))
	sb.WriteString(fmt.Sprintf("Sentiment overall: %s\n", sentiment.Overall))
	sb.WriteString(fmt.Sprintf("Sentiment score: %.2f\n", sentiment.Score))
	sb.WriteString(fmt.Sprintf("Technical indicators: %s\n", string(indicatorsJSON)))
	sb.WriteString(fmt.Sprintf("Rule-based hints: [%s]\n", strings.Join(hints, "; ")))

	sb.WriteString(`
Task:
- Suggest Buy / Sell / Hold for t+1 (short-term) and t+5 (medium-term).
- Give confidence between 0 and 1.
- Explain reasoning briefly (max 2 sentences).

Respond ONLY in JSON format like this:
{
  "t+1": {"signal": "Buy/Sell/Hold", "confidence": 0.74, "explanation": "..."},
  "t+5": {"signal": "Buy/Sell/Hold", "confidence": 0.65, "explanation": "..."}
}
`)

	return sb.String(), nil
}
