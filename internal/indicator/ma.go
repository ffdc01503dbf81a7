package indicator

import (
	"errors"

	"StockSight/internal/model"
)

// SMA computes the simple moving average of the last `period` prices.
func SMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}

// SMASeries computes the rolling simple moving average of the close column.
// Entries before the window is full are undefined and excluded.
func SMASeries(bars []model.Bar, period int) ([]model.SeriesPoint, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if len(bars) < period {
		return nil, errors.New("not enough data for SMA series")
	}
	out := make([]model.SeriesPoint, 0, len(bars)-period+1)
	sum := 0.0
	for i, b := range bars {
		sum += b.Close
		if i >= period {
			sum -= bars[i-period].Close
		}
		if i >= period-1 {
			out = append(out, model.SeriesPoint{Date: b.Date, Value: sum / float64(period)})
		}
	}
	return out, nil
}

// EMASeries computes the span-based exponential moving average of the close
// column (alpha = 2/(span+1)), seeded with the SMA of the first span bars so
// the series starts once span observations exist.
func EMASeries(bars []model.Bar, span int) ([]model.SeriesPoint, error) {
	if span <= 0 {
		return nil, errors.New("span must be positive")
	}
	if len(bars) < span {
		return nil, errors.New("not enough data for EMA series")
	}
	alpha := 2.0 / float64(span+1)

	seed := 0.0
	for i := 0; i < span; i++ {
		seed += bars[i].Close
	}
	seed /= float64(span)

	out := make([]model.SeriesPoint, 0, len(bars)-span+1)
	out = append(out, model.SeriesPoint{Date: bars[span-1].Date, Value: seed})
	ema := seed
	for i := span; i < len(bars); i++ {
		ema = alpha*bars[i].Close + (1-alpha)*ema
		out = append(out, model.SeriesPoint{Date: bars[i].Date, Value: ema})
	}
	return out, nil
}
