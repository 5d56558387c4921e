package service

import (
	"math"
	"testing"

	"stock-advisor/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTrendingBars(n int) []dto.PriceBar {
	bars := make([]dto.PriceBar, 0, n)
	for i := 0; i < n; i++ {
		close := 100.0 + float64(i)
		bars = append(bars, dto.PriceBar{
			Date:   "2024-01-01",
			Open:   close - 0.5,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000 + int64(i),
		})
	}
	return bars
}

func TestIndicatorService_Compute_NoData(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	tests := []struct {
		name string
		bars []dto.PriceBar
	}{
		{name: "nil series"},
		{name: "empty series", bars: []dto.PriceBar{}},
		{
			name: "only incomplete bars",
			bars: []dto.PriceBar{
				{Close: 100, High: 101, Low: 99, Volume: 0},
				{Close: 0, High: 101, Low: 99, Volume: 500},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := svc.Compute(tt.bars, true)
			assert.ErrorIs(t, err, ErrNoData)
			assert.Nil(t, set)
		})
	}
}

func TestIndicatorService_Compute_BasicAlwaysPresent(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	set, err := svc.Compute([]dto.PriceBar{
		{Date: "2024-01-02", Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000},
	}, false)
	require.NoError(t, err)

	assert.Equal(t, 50.0, set[dto.IndicatorRSI])
	assert.Equal(t, 100.0, set[dto.IndicatorEMA])
	assert.Equal(t, 100.0, set[dto.IndicatorSMA])
	assert.Equal(t, 0.0, set[dto.IndicatorVolatility])

	// advanced indicators must not leak into a basic request
	assert.NotContains(t, set, dto.IndicatorMACD)
	assert.NotContains(t, set, dto.IndicatorVWAP)
}

func TestIndicatorService_Compute_AdvancedSet(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	set, err := svc.Compute(makeTrendingBars(30), true)
	require.NoError(t, err)

	for _, name := range []string{
		dto.IndicatorRSI, dto.IndicatorEMA, dto.IndicatorSMA, dto.IndicatorVolatility,
		dto.IndicatorMACD, dto.IndicatorMACDSignal, dto.IndicatorATR, dto.IndicatorVWAP,
	} {
		assert.Contains(t, set, name, "expected %s to be reported", name)
	}
	assert.True(t,
		containsKey(set, dto.IndicatorBollingerUpper) || containsKey(set, dto.IndicatorBollingerLower),
		"expected at least one Bollinger band")

	// monotonically rising closes: strong RSI, positive MACD
	assert.GreaterOrEqual(t, set[dto.IndicatorRSI], 70.0)
	assert.LessOrEqual(t, set[dto.IndicatorRSI], 100.0)
	assert.Greater(t, set[dto.IndicatorMACD], 0.0)

	// SMA over the last 20 closes of 100..129 is the mean of 110..129
	assert.InDelta(t, 119.5, set[dto.IndicatorSMA], 0.01)

	// constant 2-point daily range keeps ATR near 2
	assert.InDelta(t, 2.0, set[dto.IndicatorATR], 0.5)

	// cumulative typical-price VWAP stays inside the traded range
	assert.Greater(t, set[dto.IndicatorVWAP], 99.0)
	assert.Less(t, set[dto.IndicatorVWAP], 131.0)

	assert.Greater(t, set[dto.IndicatorBollingerUpper], set[dto.IndicatorBollingerLower])
}

func TestIndicatorService_Compute_BollingerNeedsFullWindow(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	set, err := svc.Compute(makeTrendingBars(10), true)
	require.NoError(t, err)

	assert.NotContains(t, set, dto.IndicatorBollingerUpper)
	assert.NotContains(t, set, dto.IndicatorBollingerLower)

	// MACD degrades gracefully rather than disappearing
	assert.Contains(t, set, dto.IndicatorMACD)
	assert.Contains(t, set, dto.IndicatorMACDSignal)
}

func TestIndicatorService_Compute_VolatilityIsSampleDeviation(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	// closes alternate 100/102, so the last 10 daily changes are five of
	// +2% and five of -1.9608%; their sample (N-1) standard deviation is
	// 2.0875%, against 1.9804% for the population form
	bars := make([]dto.PriceBar, 0, 12)
	for i := 0; i < 12; i++ {
		close := 100.0
		if i%2 == 1 {
			close = 102.0
		}
		bars = append(bars, dto.PriceBar{
			Date:   "2024-01-02",
			Open:   close,
			High:   close + 1,
			Low:    close - 1,
			Close:  close,
			Volume: 1000,
		})
	}

	set, err := svc.Compute(bars, false)
	require.NoError(t, err)
	assert.Equal(t, 2.09, set[dto.IndicatorVolatility])
}

func TestIndicatorService_Compute_RoundsToTwoDecimals(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	set, err := svc.Compute(makeTrendingBars(30), true)
	require.NoError(t, err)

	for name, value := range set {
		scaled := value * 100
		assert.InDelta(t, math.Round(scaled), scaled, 1e-9, "%s not rounded to 2 decimals: %v", name, value)
	}
}

func TestIndicatorService_Compute_DropsIncompleteBars(t *testing.T) {
	svc := NewIndicatorService(testLogger())

	bars := makeTrendingBars(25)
	bars = append(bars, dto.PriceBar{Date: "2024-02-01", High: 200, Low: 150, Close: 180, Volume: 0})

	set, err := svc.Compute(bars, false)
	require.NoError(t, err)

	// the zero-volume bar must not move the snapshot
	assert.InDelta(t, 114.5, set[dto.IndicatorSMA], 0.01)
}

func containsKey(set dto.IndicatorSet, name string) bool {
	_, ok := set[name]
	return ok
}
