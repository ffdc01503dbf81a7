package returns

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSight/internal/model"
)

func seriesFromPrices(prices []float64) *model.PriceSeries {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]model.Bar, len(prices))
	for i, p := range prices {
		bars[i] = model.Bar{
			Date:     start.AddDate(0, 0, i),
			Open:     p,
			High:     p,
			Low:      p,
			Close:    p,
			AdjClose: p,
			Volume:   1000,
		}
	}
	return &model.PriceSeries{Symbol: "TEST", Bars: bars}
}

func TestLogReturns_Scenario(t *testing.T) {
	rets := LogReturns(seriesFromPrices([]float64{100, 102, 101, 105}))
	require.Len(t, rets, 3)
	assert.InDelta(t, math.Log(102.0/100.0), rets[0].Value, 1e-12)
	assert.InDelta(t, math.Log(101.0/102.0), rets[1].Value, 1e-12)
	assert.InDelta(t, math.Log(105.0/101.0), rets[2].Value, 1e-12)
}

func TestLogReturns_CompoundIdentity(t *testing.T) {
	prices := []float64{87.2, 91.5, 89.9, 95.3, 94.1, 101.7}
	rets := LogReturns(seriesFromPrices(prices))

	sum := 0.0
	for _, p := range rets {
		sum += p.Value
	}
	want := prices[len(prices)-1] / prices[0]
	assert.InDelta(t, want, math.Exp(sum), 1e-12)
}

func TestLogReturns_DropsUndefinedEntries(t *testing.T) {
	rets := LogReturns(seriesFromPrices([]float64{100, 0, 105}))
	// ln(0/100) and ln(105/0) are both undefined and dropped, not zeroed
	assert.Empty(t, rets)
}

func TestLogReturns_TooShort(t *testing.T) {
	assert.Nil(t, LogReturns(seriesFromPrices([]float64{100})))
	assert.Nil(t, LogReturns(nil))
}

func TestCompound_EndValue(t *testing.T) {
	rets := LogReturns(seriesFromPrices([]float64{100, 102, 101, 105}))
	comp := Compound(rets)
	require.Len(t, comp, 3)
	assert.InDelta(t, 105.0, comp[len(comp)-1].Value, 1e-9)
}

func TestBeta_SelfIsOne(t *testing.T) {
	rets := LogReturns(seriesFromPrices([]float64{100, 102, 101, 105, 103, 108}))
	b, err := Beta(rets, rets)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, b, 1e-12)
}

func TestBeta_FlatBenchmark(t *testing.T) {
	stock := LogReturns(seriesFromPrices([]float64{100, 102, 101, 105}))
	bench := LogReturns(seriesFromPrices([]float64{50, 50, 50, 50}))
	_, err := Beta(stock, bench)
	assert.ErrorIs(t, err, ErrZeroVariance)
}

func TestBeta_InsufficientData(t *testing.T) {
	stock := LogReturns(seriesFromPrices([]float64{100, 102}))
	var bench model.ReturnSeries
	_, err := Beta(stock, bench)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestAlign_InnerJoin(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }
	a := model.ReturnSeries{{Date: d(1), Value: 0.01}, {Date: d(2), Value: 0.02}, {Date: d(3), Value: 0.03}}
	b := model.ReturnSeries{{Date: d(2), Value: -0.01}, {Date: d(3), Value: -0.02}, {Date: d(4), Value: -0.03}}

	dates, av, bv := Align(a, b)
	require.Len(t, dates, 2)
	assert.Equal(t, []float64{0.02, 0.03}, av)
	assert.Equal(t, []float64{-0.01, -0.02}, bv)
}

func TestRollingBeta_Length(t *testing.T) {
	prices := []float64{100, 101, 103, 102, 105, 104, 108, 107, 110, 109, 113}
	bench := []float64{50, 50.4, 51.1, 50.9, 52.0, 51.6, 53.1, 52.8, 54.0, 53.7, 55.2}
	sr := LogReturns(seriesFromPrices(prices))
	br := LogReturns(seriesFromPrices(bench))

	window := 7
	rolling, err := RollingBeta(sr, br, window)
	require.NoError(t, err)
	assert.Len(t, rolling, len(sr)-window+1)
}

func TestRollingBeta_WindowTooLarge(t *testing.T) {
	sr := LogReturns(seriesFromPrices([]float64{100, 102, 101}))
	_, err := RollingBeta(sr, sr, 7)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestDrawdown_Properties(t *testing.T) {
	prices := []float64{100, 105, 98, 102, 110, 96, 104}
	rets := LogReturns(seriesFromPrices(prices))
	ds, err := Drawdown(rets)
	require.NoError(t, err)

	for i := range ds.Drawdown {
		assert.GreaterOrEqual(t, ds.Drawdown[i].Value, 0.0)
		if ds.Cumulative[i].Value == ds.RunningMax[i].Value {
			assert.Zero(t, ds.Drawdown[i].Value)
		}
	}
	// worst decline is from the 110 peak down to 96
	assert.InDelta(t, (1-96.0/110.0)*100, ds.MaxPct, 1e-9)
	assert.Equal(t, rets[4].Date, ds.MaxDate)
}

func TestDrawdown_Empty(t *testing.T) {
	_, err := Drawdown(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
