package riskfree

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StockSight/internal/model"
	"StockSight/internal/provider"
)

func TestDailyRate(t *testing.T) {
	// 5% annual over 252 trading days
	got := DailyRate(0.05, 252)
	want := math.Pow(1.05, 1.0/252.0) - 1
	assert.InDelta(t, want, got, 1e-15)
	assert.Zero(t, DailyRate(0, 252))
}

func TestSeries_ConvertsPercentYields(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := []model.Bar{
		{Date: start, AdjClose: 5.2},
		{Date: start.AddDate(0, 0, 1), AdjClose: 5.1},
	}
	mock := &provider.MockProvider{
		Prices: map[string]*model.PriceSeries{
			"^IRX": {Symbol: "^IRX", Bars: bars},
		},
	}

	svc := NewService(mock, "^IRX")
	rates, err := svc.Series(start, start.AddDate(0, 0, 5))
	require.NoError(t, err)
	require.Len(t, rates, 2)

	assert.InDelta(t, 0.052, rates[0].Annual, 1e-12)
	assert.InDelta(t, DailyRate(0.052, 252), rates[0].Daily, 1e-15)
	assert.InDelta(t, 0.051, rates[1].Annual, 1e-12)
}

func TestSeries_FetchError(t *testing.T) {
	mock := &provider.MockProvider{Err: provider.ErrNetwork}
	svc := NewService(mock, "^IRX")
	_, err := svc.Series(time.Now().AddDate(0, -1, 0), time.Now())
	assert.ErrorIs(t, err, provider.ErrNetwork)
}

func TestMeanDaily(t *testing.T) {
	rates := model.RateSeries{
		{Daily: 0.0001},
		{Daily: 0.0003},
	}
	assert.InDelta(t, 0.0002, MeanDaily(rates), 1e-15)
	assert.Zero(t, MeanDaily(nil))
}
