package service

import (
	"errors"
	"math"

	"stock-advisor/internal/dto"
	"stock-advisor/pkg/logger"
	"stock-advisor/pkg/utils"

	"github.com/cinar/indicator/v2/helper"
	"github.com/cinar/indicator/v2/momentum"
	"github.com/cinar/indicator/v2/trend"
	"github.com/cinar/indicator/v2/volatility"
)

// ErrNoData is returned when no usable price bar remains after dropping
// incomplete bars. It is distinct from an upstream fetch failure.
var ErrNoData = errors.New("no stock data available")

const (
	rsiPeriod        = 14
	emaPeriod        = 20
	smaPeriod        = 20
	volatilityWindow = 10
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9
	bollingerPeriod  = 20
	bollingerStdDev  = 2.0
)

// IndicatorService computes a point snapshot of technical indicators from a
// daily price series. Basic indicators are always reported; advanced
// indicators only when requested, and each one is omitted individually when
// it cannot be computed from the available bars.
type IndicatorService interface {
	Compute(bars []dto.PriceBar, advanced bool) (dto.IndicatorSet, error)
}

type indicatorService struct {
	log *logger.Logger
}

func NewIndicatorService(log *logger.Logger) IndicatorService {
	return &indicatorService{log: log}
}

func (s *indicatorService) Compute(bars []dto.PriceBar, advanced bool) (dto.IndicatorSet, error) {
	usable := dropIncompleteBars(bars)
	if len(usable) == 0 {
		return nil, ErrNoData
	}

	closes := make([]float64, len(usable))
	highs := make([]float64, len(usable))
	lows := make([]float64, len(usable))
	volumes := make([]int64, len(usable))
	for i, bar := range usable {
		closes[i] = bar.Close
		highs[i] = bar.High
		lows[i] = bar.Low
		volumes[i] = bar.Volume
	}

	indicators := dto.IndicatorSet{}

	indicators[dto.IndicatorRSI] = utils.RoundFloat(latestRSI(closes), 2)
	indicators[dto.IndicatorEMA] = utils.RoundFloat(latestEMA(closes), 2)
	indicators[dto.IndicatorSMA] = utils.RoundFloat(latestSMA(closes), 2)
	indicators[dto.IndicatorVolatility] = utils.RoundFloat(latestVolatility(closes), 2)

	if advanced {
		macdLine, macdSignal := latestMACD(closes)
		setIfFinite(indicators, dto.IndicatorMACD, macdLine)
		setIfFinite(indicators, dto.IndicatorMACDSignal, macdSignal)

		if atr, ok := latestATR(highs, lows, closes); ok {
			setIfFinite(indicators, dto.IndicatorATR, atr)
		}

		if vwap, ok := latestVWAP(highs, lows, closes, volumes); ok {
			setIfFinite(indicators, dto.IndicatorVWAP, vwap)
		}

		if upper, lower, ok := latestBollingerBands(closes); ok {
			setIfFinite(indicators, dto.IndicatorBollingerUpper, upper)
			setIfFinite(indicators, dto.IndicatorBollingerLower, lower)
		}
	}

	return indicators, nil
}

// dropIncompleteBars removes bars missing close, high, low or volume.
func dropIncompleteBars(bars []dto.PriceBar) []dto.PriceBar {
	usable := make([]dto.PriceBar, 0, len(bars))
	for _, bar := range bars {
		if bar.Close <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Volume <= 0 {
			continue
		}
		if math.IsNaN(bar.Close) || math.IsNaN(bar.High) || math.IsNaN(bar.Low) {
			continue
		}
		usable = append(usable, bar)
	}
	return usable
}

func setIfFinite(indicators dto.IndicatorSet, name string, value float64) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return
	}
	indicators[name] = utils.RoundFloat(value, 2)
}

// latestRSI is the 14-period Wilder RSI of the close series. During warmup,
// before a full period of changes exists, it reports the neutral 50.
func latestRSI(closes []float64) float64 {
	if len(closes) <= rsiPeriod {
		return 50
	}
	values := helper.ChanToSlice(momentum.NewRsiWithPeriod[float64](rsiPeriod).Compute(helper.SliceToChan(closes)))
	if len(values) == 0 {
		return 50
	}
	return values[len(values)-1]
}

// latestEMA is the 20-period EMA of the close series, falling back to the
// plain mean while fewer than 20 bars exist.
func latestEMA(closes []float64) float64 {
	if len(closes) < emaPeriod {
		return mean(closes)
	}
	values := helper.ChanToSlice(trend.NewEmaWithPeriod[float64](emaPeriod).Compute(helper.SliceToChan(closes)))
	if len(values) == 0 {
		return mean(closes)
	}
	return values[len(values)-1]
}

// latestSMA is the 20-period SMA of the close series. With fewer than 20
// bars the window is the whole series, which is just the mean.
func latestSMA(closes []float64) float64 {
	if len(closes) < smaPeriod {
		return mean(closes)
	}
	values := helper.ChanToSlice(trend.NewSmaWithPeriod[float64](smaPeriod).Compute(helper.SliceToChan(closes)))
	if len(values) == 0 {
		return mean(closes)
	}
	return values[len(values)-1]
}

// latestVolatility is the sample standard deviation of the 10 most recent
// daily percentage changes in close, expressed as a percentage.
func latestVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return 0
	}

	changes := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		changes = append(changes, (closes[i]-closes[i-1])/closes[i-1])
	}
	if len(changes) > volatilityWindow {
		changes = changes[len(changes)-volatilityWindow:]
	}

	return sampleStandardDeviation(changes, mean(changes)) * 100
}

// latestMACD is the MACD(12,26,9) line and signal line. The EMAs are seeded
// from the first close so the lines are defined for any series length.
func latestMACD(closes []float64) (float64, float64) {
	emaFast := seededEMA(closes, macdFastPeriod)
	emaSlow := seededEMA(closes, macdSlowPeriod)

	macdLine := make([]float64, len(closes))
	for i := range closes {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}
	signalLine := seededEMA(macdLine, macdSignalPeriod)

	return macdLine[len(macdLine)-1], signalLine[len(signalLine)-1]
}

// latestATR is the 14-period ATR from high/low/close.
func latestATR(highs, lows, closes []float64) (float64, bool) {
	values := helper.ChanToSlice(volatility.NewAtr[float64]().Compute(
		helper.SliceToChan(highs),
		helper.SliceToChan(lows),
		helper.SliceToChan(closes),
	))
	if len(values) == 0 {
		return 0, false
	}
	return values[len(values)-1], true
}

// latestVWAP is the cumulative volume-weighted average of the typical price
// (high+low+close)/3 over the whole series.
func latestVWAP(highs, lows, closes []float64, volumes []int64) (float64, bool) {
	var weighted, totalVolume float64
	for i := range closes {
		typical := (highs[i] + lows[i] + closes[i]) / 3
		weighted += typical * float64(volumes[i])
		totalVolume += float64(volumes[i])
	}
	if totalVolume == 0 {
		return 0, false
	}
	return weighted / totalVolume, true
}

// latestBollingerBands is the 20-period, ±2σ band pair around the SMA.
func latestBollingerBands(closes []float64) (float64, float64, bool) {
	if len(closes) < bollingerPeriod {
		return 0, 0, false
	}

	smaValues := helper.ChanToSlice(trend.NewSmaWithPeriod[float64](bollingerPeriod).Compute(helper.SliceToChan(closes)))
	if len(smaValues) == 0 {
		return 0, 0, false
	}
	middle := smaValues[len(smaValues)-1]

	window := closes[len(closes)-bollingerPeriod:]
	sigma := standardDeviation(window, middle)

	return middle + bollingerStdDev*sigma, middle - bollingerStdDev*sigma, true
}

// seededEMA computes an EMA over the whole series, seeding with the first
// value so every index has a defined output.
func seededEMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	k := 2.0 / (float64(period) + 1.0)
	for i, v := range values {
		if i == 0 {
			out[i] = v
			continue
		}
		out[i] = v*k + out[i-1]*(1-k)
	}
	return out
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// standardDeviation is the population form (divide by N), as used for the
// Bollinger band width.
func standardDeviation(values []float64, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// sampleStandardDeviation is the N-1 form. A single observation has no
// dispersion to estimate, so it reports zero.
func sampleStandardDeviation(values []float64, m float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
