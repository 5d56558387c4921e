package service

import (
	"context"
	"errors"
	"testing"

	"stock-advisor/internal/dto"
	"stock-advisor/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentimentService_Aggregate(t *testing.T) {
	svc := NewSentimentService(testLogger(), nil)

	tests := []struct {
		name          string
		results       []dto.SentimentResult
		wantOverall   string
		wantScore     float64
		wantBreakdown dto.SentimentBreakdown
	}{
		{
			name:        "empty list is neutral",
			results:     nil,
			wantOverall: dto.SentimentNeutral,
			wantScore:   0.0,
		},
		{
			name: "only positives",
			results: []dto.SentimentResult{
				{Headline: "a", Label: dto.SentimentPositive, Confidence: utils.ToPointer(0.5)},
				{Headline: "b", Label: dto.SentimentPositive, Confidence: utils.ToPointer(0.5)},
			},
			wantOverall:   dto.SentimentPositive,
			wantScore:     0.5,
			wantBreakdown: dto.SentimentBreakdown{Positive: 2},
		},
		{
			name: "only negatives",
			results: []dto.SentimentResult{
				{Headline: "a", Label: dto.SentimentNegative, Confidence: utils.ToPointer(0.5)},
			},
			wantOverall:   dto.SentimentNegative,
			wantScore:     -0.5,
			wantBreakdown: dto.SentimentBreakdown{Negative: 1},
		},
		{
			name: "balanced positives and negatives cancel out",
			results: []dto.SentimentResult{
				{Headline: "a", Label: dto.SentimentPositive, Confidence: utils.ToPointer(0.6)},
				{Headline: "b", Label: dto.SentimentNegative, Confidence: utils.ToPointer(0.6)},
			},
			wantOverall:   dto.SentimentNeutral,
			wantScore:     0.0,
			wantBreakdown: dto.SentimentBreakdown{Positive: 1, Negative: 1},
		},
		{
			name: "neutral items dilute the score",
			results: []dto.SentimentResult{
				{Headline: "a", Label: dto.SentimentPositive, Confidence: utils.ToPointer(0.9)},
				{Headline: "b", Label: dto.SentimentNeutral, Confidence: utils.ToPointer(0.8)},
				{Headline: "c", Label: dto.SentimentNeutral, Confidence: utils.ToPointer(0.7)},
			},
			wantOverall:   dto.SentimentPositive,
			wantScore:     0.3,
			wantBreakdown: dto.SentimentBreakdown{Positive: 1, Neutral: 2},
		},
		{
			name: "errored items are excluded entirely",
			results: []dto.SentimentResult{
				{Headline: "a", Error: "boom"},
				{Headline: "b", Label: dto.SentimentPositive, Confidence: utils.ToPointer(0.5)},
			},
			wantOverall:   dto.SentimentPositive,
			wantScore:     0.5,
			wantBreakdown: dto.SentimentBreakdown{Positive: 1},
		},
		{
			name: "all errored is neutral with empty breakdown",
			results: []dto.SentimentResult{
				{Headline: "a", Error: "boom"},
				{Headline: "b", Error: "boom"},
			},
			wantOverall: dto.SentimentNeutral,
			wantScore:   0.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.Aggregate(tt.results)
			assert.Equal(t, tt.wantOverall, got.Overall)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantBreakdown, got.Breakdown)
		})
	}
}

func TestSentimentService_Classify_IsolatesPerHeadlineFailures(t *testing.T) {
	aiRepo := &fakeAIRepository{
		generate: func(call int, prompt string) (string, error) {
			switch call {
			case 1:
				return `{"label": "Positive", "confidence": 0.9}`, nil
			case 2:
				return "```json\n{\"label\": \"Negative\", \"confidence\": 0.4}\n```", nil
			default:
				return "this is not json", nil
			}
		},
	}
	svc := NewSentimentService(testLogger(), aiRepo)

	results := svc.Classify(context.Background(), []string{"up", "down", "weird"})
	require.Len(t, results, 3)

	assert.Equal(t, dto.SentimentPositive, results[0].Label)
	require.NotNil(t, results[0].Confidence)
	assert.InDelta(t, 0.9, *results[0].Confidence, 1e-9)

	assert.Equal(t, dto.SentimentNegative, results[1].Label)

	assert.Empty(t, results[2].Label)
	assert.NotEmpty(t, results[2].Error)

	// the aggregate only sees the two usable entries: (0.9 - 0.4) / 2
	agg := svc.Aggregate(results)
	assert.InDelta(t, 0.25, agg.Score, 1e-9)
	assert.Equal(t, dto.SentimentPositive, agg.Overall)
	assert.Equal(t, dto.SentimentBreakdown{Positive: 1, Negative: 1}, agg.Breakdown)
}

func TestSentimentService_Classify_CallErrorRecorded(t *testing.T) {
	aiRepo := &fakeAIRepository{
		generate: func(call int, prompt string) (string, error) {
			return "", errors.New("upstream unavailable")
		},
	}
	svc := NewSentimentService(testLogger(), aiRepo)

	results := svc.Classify(context.Background(), []string{"only"})
	require.Len(t, results, 1)
	assert.Equal(t, "upstream unavailable", results[0].Error)
	assert.Nil(t, results[0].Confidence)
}

func TestSentimentService_Classify_RejectsOutOfRangeConfidence(t *testing.T) {
	aiRepo := &fakeAIRepository{
		generate: func(call int, prompt string) (string, error) {
			return `{"label": "Positive", "confidence": 1.7}`, nil
		},
	}
	svc := NewSentimentService(testLogger(), aiRepo)

	results := svc.Classify(context.Background(), []string{"only"})
	require.Len(t, results, 1)
	assert.NotEmpty(t, results[0].Error)
}
