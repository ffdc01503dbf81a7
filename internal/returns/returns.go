// Package returns computes logarithmic return series and the covariance,
// beta, and drawdown statistics built on them. All covariance and variance
// figures are sample statistics (ddof=1), matching the convention used for
// beta throughout the metrics layer.
package returns

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	"StockSight/internal/model"
)

var (
	// ErrInsufficientData indicates fewer aligned observations than the
	// computation requires.
	ErrInsufficientData = errors.New("insufficient aligned observations")
	// ErrZeroVariance indicates a constant benchmark, which makes beta
	// undefined. It surfaces as a domain error instead of a silent NaN.
	ErrZeroVariance = errors.New("benchmark variance is zero")
)

// LogReturns computes ln(adjClose[t]/adjClose[t-1]) for each bar after the
// first. Undefined entries (zero or negative prices) are dropped rather than
// zero-filled.
func LogReturns(series *model.PriceSeries) model.ReturnSeries {
	if series == nil || len(series.Bars) < 2 {
		return nil
	}
	out := make(model.ReturnSeries, 0, len(series.Bars)-1)
	for i := 1; i < len(series.Bars); i++ {
		prev := series.Bars[i-1].AdjClose
		cur := series.Bars[i].AdjClose
		r := math.Log(cur / prev)
		if math.IsNaN(r) || math.IsInf(r, 0) {
			continue
		}
		out = append(out, model.SeriesPoint{Date: series.Bars[i].Date, Value: r})
	}
	return out
}

// Compound converts log returns into the value of $100 under buy-and-hold:
// exp(cumsum(r)) * 100 at each date.
func Compound(rets model.ReturnSeries) []model.SeriesPoint {
	out := make([]model.SeriesPoint, len(rets))
	sum := 0.0
	for i, p := range rets {
		sum += p.Value
		out[i] = model.SeriesPoint{Date: p.Date, Value: math.Exp(sum) * 100}
	}
	return out
}

// Align inner-joins two return series on date, preserving the chronological
// order of a. Rows missing on either side are excluded.
func Align(a, b model.ReturnSeries) (dates []time.Time, av, bv []float64) {
	idx := make(map[time.Time]float64, len(b))
	for _, p := range b {
		idx[dateKey(p.Date)] = p.Value
	}
	for _, p := range a {
		if v, ok := idx[dateKey(p.Date)]; ok {
			dates = append(dates, p.Date)
			av = append(av, p.Value)
			bv = append(bv, v)
		}
	}
	return dates, av, bv
}

func dateKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) float64 { return stat.Mean(xs, nil) }

// StdDev returns the sample standard deviation of xs.
func StdDev(xs []float64) float64 { return stat.StdDev(xs, nil) }

// Covariance returns the sample covariance of two equal-length aligned
// slices.
func Covariance(x, y []float64) float64 { return stat.Covariance(x, y, nil) }

// Variance returns the sample variance of xs.
func Variance(xs []float64) float64 { return stat.Variance(xs, nil) }

// Beta computes the full-period beta of stock returns against benchmark
// returns: cov(stock, bench) / var(bench) over the date-aligned history.
func Beta(stock, bench model.ReturnSeries) (float64, error) {
	_, sv, bv := Align(stock, bench)
	if len(sv) < 2 {
		return 0, ErrInsufficientData
	}
	v := Variance(bv)
	if v == 0 {
		return 0, ErrZeroVariance
	}
	return Covariance(sv, bv) / v, nil
}

// RollingBeta computes cov/var over the trailing window ending at each date,
// starting once the window is full. Windows with zero benchmark variance are
// undefined and excluded from the output.
func RollingBeta(stock, bench model.ReturnSeries, window int) ([]model.BetaPoint, error) {
	if window < 2 {
		return nil, errors.New("window must be at least 2")
	}
	dates, sv, bv := Align(stock, bench)
	if len(sv) < window {
		return nil, ErrInsufficientData
	}
	out := make([]model.BetaPoint, 0, len(sv)-window+1)
	for t := window - 1; t < len(sv); t++ {
		ws := sv[t-window+1 : t+1]
		wb := bv[t-window+1 : t+1]
		v := Variance(wb)
		if v == 0 {
			continue
		}
		out = append(out, model.BetaPoint{Date: dates[t], Beta: Covariance(ws, wb) / v})
	}
	return out, nil
}

// DrawdownSeries holds the cumulative return path, its running maximum, and
// the peak-to-trough declines derived from them.
type DrawdownSeries struct {
	Cumulative  []model.SeriesPoint `json:"cumulative"`
	RunningMax  []model.SeriesPoint `json:"running_max"`
	Drawdown    []model.SeriesPoint `json:"drawdown"`
	DrawdownPct []model.SeriesPoint `json:"drawdown_pct"`
	MaxPct      float64             `json:"max_pct"`
	MaxDate     time.Time           `json:"max_date"`
}

// Drawdown computes cumRet = exp(cumsum(r)), its running maximum, and the
// drawdown value/percent at each date, plus the maximum percent drawdown and
// the date it occurred.
func Drawdown(rets model.ReturnSeries) (*DrawdownSeries, error) {
	if len(rets) == 0 {
		return nil, ErrInsufficientData
	}
	ds := &DrawdownSeries{
		Cumulative:  make([]model.SeriesPoint, len(rets)),
		RunningMax:  make([]model.SeriesPoint, len(rets)),
		Drawdown:    make([]model.SeriesPoint, len(rets)),
		DrawdownPct: make([]model.SeriesPoint, len(rets)),
	}
	sum := 0.0
	cumMax := math.Inf(-1)
	for i, p := range rets {
		sum += p.Value
		cum := math.Exp(sum)
		if cum > cumMax {
			cumMax = cum
		}
		dd := cumMax - cum
		ddPct := dd / cumMax * 100
		ds.Cumulative[i] = model.SeriesPoint{Date: p.Date, Value: cum}
		ds.RunningMax[i] = model.SeriesPoint{Date: p.Date, Value: cumMax}
		ds.Drawdown[i] = model.SeriesPoint{Date: p.Date, Value: dd}
		ds.DrawdownPct[i] = model.SeriesPoint{Date: p.Date, Value: ddPct}
		if ddPct > ds.MaxPct || i == 0 {
			ds.MaxPct = ddPct
			ds.MaxDate = p.Date
		}
	}
	return ds, nil
}
