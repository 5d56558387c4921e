package dto

// PipelineState is the accumulator threaded through the fixed-order agent
// pipeline. Each stage fills exactly the fields it owns; stages never read
// fields written by a later stage. It lives for one run only.
type PipelineState struct {
	Symbol     string             `json:"symbol"`
	News       []NewsItem         `json:"news"`
	Sentiment  SentimentAggregate `json:"sentiment"`
	PriceBars  []PriceBar         `json:"price_bars"`
	Indicators IndicatorSet       `json:"indicators"`
	Decision   *Decision          `json:"decision"`
}
