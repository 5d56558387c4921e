package dto

// IndicatorSet maps indicator name to its most recent value, rounded to two
// decimal places. Indicators that could not be computed are absent.
type IndicatorSet map[string]float64

// Indicator names reported by the engine.
const (
	IndicatorRSI            = "RSI"
	IndicatorEMA            = "EMA"
	IndicatorSMA            = "SMA"
	IndicatorVolatility     = "Volatility"
	IndicatorMACD           = "MACD"
	IndicatorMACDSignal     = "MACD_signal"
	IndicatorATR            = "ATR"
	IndicatorVWAP           = "VWAP"
	IndicatorBollingerUpper = "Bollinger_Upper"
	IndicatorBollingerLower = "Bollinger_Lower"
)

type IndicatorResponse struct {
	Symbol     string       `json:"symbol"`
	Indicators IndicatorSet `json:"indicators,omitempty"`
	Error      string       `json:"error,omitempty"`
}
