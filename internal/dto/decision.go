package dto

// Decision horizons requested from the synthesizer.
const (
	HorizonShortTerm  = "t+1"
	HorizonMediumTerm = "t+5"
)

// Trading signals.
const (
	SignalBuy  = "Buy"
	SignalSell = "Sell"
	SignalHold = "Hold"
)

// HorizonSignal is the recommendation for a single horizon.
type HorizonSignal struct {
	Signal      string  `json:"signal"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Decision is the hybrid synthesis result. Horizons carries one entry per
// requested horizon on success; Error is set instead when the LLM call
// failed or its response could not be parsed. The inputs that informed the
// decision are always echoed back.
type Decision struct {
	Symbol     string                   `json:"symbol"`
	Sentiment  SentimentAggregate       `json:"sentiment"`
	Indicators IndicatorSet             `json:"indicators"`
	Horizons   map[string]HorizonSignal `json:"decision,omitempty"`
	Error      string                   `json:"error,omitempty"`
}
