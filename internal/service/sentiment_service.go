package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"stock-advisor/internal/dto"
	"stock-advisor/internal/repository"
	"stock-advisor/pkg/logger"
	"stock-advisor/pkg/utils"
)

const (
	sentimentPositiveThreshold = 0.20
	sentimentNegativeThreshold = -0.20
)

// SentimentService classifies headlines individually and reduces the batch
// to one aggregate. A failed headline never aborts the batch; it is
// recorded with an error and skipped during aggregation.
type SentimentService interface {
	Classify(ctx context.Context, headlines []string) []dto.SentimentResult
	Aggregate(results []dto.SentimentResult) dto.SentimentAggregate
}

type sentimentService struct {
	log    *logger.Logger
	aiRepo repository.AIRepository
}

func NewSentimentService(log *logger.Logger, aiRepo repository.AIRepository) SentimentService {
	return &sentimentService{log: log, aiRepo: aiRepo}
}

type sentimentClassification struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

func (s *sentimentService) Classify(ctx context.Context, headlines []string) []dto.SentimentResult {
	results := make([]dto.SentimentResult, 0, len(headlines))

	for _, headline := range headlines {
		label, confidence, err := s.classifyOne(ctx, headline)
		if err != nil {
			s.log.WarnContext(ctx, "headline classification failed",
				logger.StringField("headline", headline),
				logger.ErrorField(err))
			results = append(results, dto.SentimentResult{Headline: headline, Error: err.Error()})
			continue
		}
		results = append(results, dto.SentimentResult{
			Headline:   headline,
			Label:      label,
			Confidence: utils.ToPointer(confidence),
		})
	}

	return results
}

func (s *sentimentService) classifyOne(ctx context.Context, headline string) (string, float64, error) {
	prompt := fmt.Sprintf(`Classify the sentiment of this financial news headline:
"%s"

Respond ONLY in JSON format:
{"label": "Positive/Negative/Neutral", "confidence": float between 0 and 1}`, headline)

	response, err := s.aiRepo.GenerateContent(ctx, prompt)
	if err != nil {
		return "", 0, err
	}

	var parsed sentimentClassification
	if err := unmarshalLLMResponse(response, &parsed); err != nil {
		return "", 0, fmt.Errorf("malformed classification response: %w", err)
	}

	switch parsed.Label {
	case dto.SentimentPositive, dto.SentimentNegative, dto.SentimentNeutral:
	default:
		return "", 0, fmt.Errorf("malformed classification response: unknown label %q", parsed.Label)
	}
	if parsed.Confidence < 0 || parsed.Confidence > 1 {
		return "", 0, fmt.Errorf("malformed classification response: confidence %v out of range", parsed.Confidence)
	}

	return parsed.Label, parsed.Confidence, nil
}

// Aggregate averages the signed confidences of usable results. Positive
// items add their confidence, Negative items subtract it, Neutral items
// contribute zero but still count toward the denominator. Errored items are
// excluded from both the score and the breakdown.
func (s *sentimentService) Aggregate(results []dto.SentimentResult) dto.SentimentAggregate {
	var (
		totalScore float64
		count      int
		breakdown  dto.SentimentBreakdown
	)

	for _, r := range results {
		if !r.Usable() {
			continue
		}
		count++
		switch r.Label {
		case dto.SentimentPositive:
			totalScore += *r.Confidence
			breakdown.Positive++
		case dto.SentimentNegative:
			totalScore -= *r.Confidence
			breakdown.Negative++
		default:
			breakdown.Neutral++
		}
	}

	if count == 0 {
		return dto.SentimentAggregate{Overall: dto.SentimentNeutral, Score: 0.0}
	}

	score := utils.RoundFloat(totalScore/float64(count), 2)
	overall := dto.SentimentNeutral
	if score > sentimentPositiveThreshold {
		overall = dto.SentimentPositive
	} else if score < sentimentNegativeThreshold {
		overall = dto.SentimentNegative
	}

	return dto.SentimentAggregate{Overall: overall, Score: score, Breakdown: breakdown}
}

// unmarshalLLMResponse parses JSON content out of raw model output,
// tolerating a markdown code fence around the payload.
func unmarshalLLMResponse(response string, dest interface{}) error {
	jsonString := strings.TrimSpace(response)
	jsonString = strings.Trim(jsonString, "`json\n`")
	return json.Unmarshal([]byte(jsonString), dest)
}
