package indicator

import (
	"fmt"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"

	"github.com/mohamedkhairy/ta-stream/internal/models"
)

// TechanCalculator wraps a techan indicator behind the Calculator contract,
// so the engine can run the techan backend interchangeably with the native
// one. The indicator is (re)built against the adapter's own time series,
// which keeps Reset exact: a fresh series means fresh indicator state.
type TechanCalculator struct {
	name      string
	build     func(*techan.TimeSeries) techan.Indicator
	series    *techan.TimeSeries
	indicator techan.Indicator
	warmup    int
	processed int
}

// NewTechanCalculator creates a techan-backed calculator. The build function
// receives the series every quote will be appended to and returns the
// indicator to evaluate at the latest index. warmup is the number of quotes
// after which IsReady reports true.
func NewTechanCalculator(name string, warmup int, build func(*techan.TimeSeries) techan.Indicator) *TechanCalculator {
	series := techan.NewTimeSeries()
	return &TechanCalculator{
		name:      name,
		build:     build,
		series:    series,
		indicator: build(series),
		warmup:    warmup,
	}
}

// Name returns the indicator name
func (t *TechanCalculator) Name() string {
	return t.name
}

// Update appends the quote to the series and evaluates the indicator at the
// latest index
func (t *TechanCalculator) Update(q *models.Quote) (float64, error) {
	if q == nil {
		return 0, errNilQuote(t.name)
	}

	candle := techan.NewCandle(techan.NewTimePeriod(q.Timestamp, time.Minute))
	candle.OpenPrice = big.NewDecimal(q.Open)
	candle.MaxPrice = big.NewDecimal(q.High)
	candle.MinPrice = big.NewDecimal(q.Low)
	candle.ClosePrice = big.NewDecimal(q.Close)
	candle.Volume = big.NewDecimal(q.Volume)

	t.series.AddCandle(candle)
	t.processed++

	return t.indicator.Calculate(t.series.LastIndex()).Float(), nil
}

// Value returns the indicator evaluated at the latest index
func (t *TechanCalculator) Value() (float64, error) {
	if t.processed == 0 {
		return 0, errNotReady(t.name)
	}
	return t.indicator.Calculate(t.series.LastIndex()).Float(), nil
}

// Reset rebuilds the series and the indicator
func (t *TechanCalculator) Reset() {
	t.series = techan.NewTimeSeries()
	t.indicator = t.build(t.series)
	t.processed = 0
}

// IsReady returns true once the warm-up quote count has been reached
func (t *TechanCalculator) IsReady() bool {
	return t.processed >= t.warmup
}

// WindowSize returns the warm-up quote count
func (t *TechanCalculator) WindowSize() int {
	return t.warmup
}

// QuotesProcessed returns the number of quotes processed
func (t *TechanCalculator) QuotesProcessed() int {
	return t.processed
}

// NewTechanSMA creates an SMA calculator backed by techan
func NewTechanSMA(period int) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_sma", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_sma_%d", period), period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(series), period)
		}), nil
}

// NewTechanEMA creates an EMA calculator backed by techan
func NewTechanEMA(period int) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_ema", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_ema_%d", period), period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewEMAIndicator(techan.NewClosePriceIndicator(series), period)
		}), nil
}

// NewTechanRSI creates an RSI calculator backed by techan
func NewTechanRSI(period int) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_rsi", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_rsi_%d", period), period+1,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewRelativeStrengthIndexIndicator(techan.NewClosePriceIndicator(series), period)
		}), nil
}

// NewTechanATR creates an ATR calculator backed by techan
func NewTechanATR(period int) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_atr", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_atr_%d", period), period+1,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewAverageTrueRangeIndicator(series, period)
		}), nil
}

// NewTechanMACD creates a MACD line calculator backed by techan
func NewTechanMACD(fastPeriod, slowPeriod int) (*TechanCalculator, error) {
	if fastPeriod < 1 {
		return nil, errInvalidPeriod("techan_macd", fastPeriod)
	}
	if fastPeriod >= slowPeriod {
		return nil, &ConfigError{
			Indicator: "techan_macd",
			Reason: fmt.Sprintf("fast period must be less than slow period, got %d >= %d",
				fastPeriod, slowPeriod),
		}
	}
	return NewTechanCalculator(fmt.Sprintf("techan_macd_%d_%d", fastPeriod, slowPeriod), slowPeriod,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewMACDIndicator(techan.NewClosePriceIndicator(series), fastPeriod, slowPeriod)
		}), nil
}

// NewTechanFastStochastic creates a fast stochastic %K calculator backed by techan
func NewTechanFastStochastic(period int) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_stoch_fast", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_stoch_fast_%d", period), period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewFastStochasticIndicator(series, period)
		}), nil
}

// NewTechanBollingerUpper creates an upper Bollinger band calculator backed by techan
func NewTechanBollingerUpper(period int, sigma float64) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_bb_upper", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_bb_upper_%d", period), period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewBollingerUpperBandIndicator(techan.NewClosePriceIndicator(series), period, sigma)
		}), nil
}

// NewTechanBollingerLower creates a lower Bollinger band calculator backed by techan
func NewTechanBollingerLower(period int, sigma float64) (*TechanCalculator, error) {
	if period < 1 {
		return nil, errInvalidPeriod("techan_bb_lower", period)
	}
	return NewTechanCalculator(fmt.Sprintf("techan_bb_lower_%d", period), period,
		func(series *techan.TimeSeries) techan.Indicator {
			return techan.NewBollingerLowerBandIndicator(techan.NewClosePriceIndicator(series), period, sigma)
		}), nil
}
