package dto

// Sentiment labels produced by the classifier.
const (
	SentimentPositive = "Positive"
	SentimentNegative = "Negative"
	SentimentNeutral  = "Neutral"
)

// SentimentResult is the classification of a single headline. Either
// Label/Confidence are set, or Error is set when that headline failed.
type SentimentResult struct {
	Headline   string   `json:"headline"`
	Label      string   `json:"label,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// Usable reports whether this result can contribute to an aggregate.
func (r SentimentResult) Usable() bool {
	return r.Error == "" && r.Confidence != nil
}

type SentimentBreakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// SentimentAggregate reduces a batch of results to one label and score.
type SentimentAggregate struct {
	Overall   string             `json:"overall"`
	Score     float64            `json:"score"`
	Breakdown SentimentBreakdown `json:"breakdown"`
}

type SentimentResponse struct {
	Symbol  string             `json:"symbol"`
	Results []SentimentResult  `json:"results,omitempty"`
	Overall SentimentAggregate `json:"overall"`
	Error   string             `json:"error,omitempty"`
}
