// Package metrics computes the risk and performance metrics derived from
// the returns engine. Every metric computes independently from an explicit
// ComputationContext and reports unavailable instead of propagating
// insufficient-data or division-by-zero conditions to the caller.
package metrics

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/stat"

	"StockSight/internal/model"
	"StockSight/internal/returns"
	"StockSight/internal/riskfree"
)

// DefaultRollingWindow is the trailing observation count for rolling beta.
const DefaultRollingWindow = 7

// ComputationContext carries every input a metric may need. Metrics read
// from it and never mutate it.
type ComputationContext struct {
	Symbol    string
	Start     time.Time
	End       time.Time
	Prices    *model.PriceSeries
	Benchmark *model.PriceSeries
	RiskFree  model.RateSeries
	Facts     *model.TickerFacts
}

// StockReturns derives the log return series of the selected ticker.
func (c *ComputationContext) StockReturns() model.ReturnSeries {
	return returns.LogReturns(c.Prices)
}

// BenchReturns derives the log return series of the benchmark.
func (c *ComputationContext) BenchReturns() model.ReturnSeries {
	return returns.LogReturns(c.Benchmark)
}

type computeFunc func(e *Engine, ctx *ComputationContext) model.MetricResult

// Engine dispatches metric computations through a fixed identifier table.
type Engine struct {
	Window int // rolling beta window
	table  map[model.MetricName]computeFunc
}

// NewEngine creates an Engine with the given rolling beta window.
func NewEngine(window int) *Engine {
	if window < 2 {
		window = DefaultRollingWindow
	}
	e := &Engine{Window: window}
	e.table = map[model.MetricName]computeFunc{
		model.MetricVolatility:      (*Engine).volatility,
		model.MetricDrawdown:        (*Engine).drawdown,
		model.MetricAlpha:           (*Engine).alpha,
		model.MetricBeta:            (*Engine).beta,
		model.MetricCAPM:            (*Engine).capm,
		model.MetricLogReturns:      (*Engine).logReturns,
		model.MetricCompoundReturns: (*Engine).compoundReturns,
		model.MetricSharpe:          (*Engine).sharpe,
	}
	return e
}

// Compute evaluates the selected metrics against the context and returns a
// result per requested name. Unknown names come back unavailable.
func (e *Engine) Compute(ctx *ComputationContext, selected []model.MetricName) map[model.MetricName]model.MetricResult {
	out := make(map[model.MetricName]model.MetricResult, len(selected))
	for _, name := range selected {
		fn, ok := e.table[name]
		if !ok {
			out[name] = model.Unavailable(name, "unknown metric")
			continue
		}
		out[name] = fn(e, ctx)
	}
	return out
}

func (e *Engine) volatility(ctx *ComputationContext) model.MetricResult {
	rets := ctx.StockReturns()
	if len(rets) < 2 {
		return model.Unavailable(model.MetricVolatility, "insufficient return observations")
	}
	v := returns.StdDev(rets.Values())
	return model.MetricResult{Name: model.MetricVolatility, Available: true, Scalar: &v}
}

func (e *Engine) logReturns(ctx *ComputationContext) model.MetricResult {
	rets := ctx.StockReturns()
	if len(rets) == 0 {
		return model.Unavailable(model.MetricLogReturns, "no return observations")
	}
	return model.MetricResult{Name: model.MetricLogReturns, Available: true, Series: rets}
}

func (e *Engine) compoundReturns(ctx *ComputationContext) model.MetricResult {
	rets := ctx.StockReturns()
	if len(rets) == 0 {
		return model.Unavailable(model.MetricCompoundReturns, "no return observations")
	}
	return model.MetricResult{
		Name:      model.MetricCompoundReturns,
		Available: true,
		Series:    returns.Compound(rets),
	}
}

func (e *Engine) drawdown(ctx *ComputationContext) model.MetricResult {
	rets := ctx.StockReturns()
	ds, err := returns.Drawdown(rets)
	if err != nil {
		return model.Unavailable(model.MetricDrawdown, "no return observations")
	}
	maxDate := ds.MaxDate
	return model.MetricResult{
		Name:      model.MetricDrawdown,
		Available: true,
		Series:    ds.DrawdownPct,
		Curves: map[string][]model.SeriesPoint{
			"cumulative":  ds.Cumulative,
			"running_max": ds.RunningMax,
			"drawdown":    ds.Drawdown,
		},
		Details: map[string]float64{"max_drawdown_pct": ds.MaxPct},
		Date:    &maxDate,
	}
}

func (e *Engine) sharpe(ctx *ComputationContext) model.MetricResult {
	if len(ctx.RiskFree) == 0 {
		return model.Unavailable(model.MetricSharpe, "risk-free rate unavailable")
	}
	excess := alignExcess(ctx.StockReturns(), ctx.RiskFree)
	if len(excess) < 2 {
		return model.Unavailable(model.MetricSharpe, "insufficient aligned observations")
	}
	sd := returns.StdDev(excess)
	if sd == 0 {
		return model.Unavailable(model.MetricSharpe, "zero standard deviation of excess returns")
	}
	s := returns.Mean(excess) / sd
	return model.MetricResult{Name: model.MetricSharpe, Available: true, Scalar: &s}
}

func (e *Engine) beta(ctx *ComputationContext) model.MetricResult {
	b, err := returns.Beta(ctx.StockReturns(), ctx.BenchReturns())
	if err != nil {
		return model.Unavailable(model.MetricBeta, betaReason(err))
	}
	res := model.MetricResult{Name: model.MetricBeta, Available: true, Scalar: &b}
	if ctx.Facts != nil && ctx.Facts.Beta != 0 {
		res.Details = map[string]float64{"published_beta": ctx.Facts.Beta}
	}
	return res
}

func (e *Engine) alpha(ctx *ComputationContext) model.MetricResult {
	if len(ctx.RiskFree) == 0 {
		return model.Unavailable(model.MetricAlpha, "risk-free rate unavailable")
	}
	stock := ctx.StockReturns()
	bench := ctx.BenchReturns()
	b, err := returns.Beta(stock, bench)
	if err != nil {
		return model.Unavailable(model.MetricAlpha, betaReason(err))
	}
	rfr := riskfree.MeanDaily(ctx.RiskFree)
	avgStock := returns.Mean(stock.Values())
	avgBench := returns.Mean(bench.Values())
	a := avgStock - (rfr + b*(avgBench-rfr))
	return model.MetricResult{Name: model.MetricAlpha, Available: true, Scalar: &a}
}

func (e *Engine) capm(ctx *ComputationContext) model.MetricResult {
	if len(ctx.RiskFree) == 0 {
		return model.Unavailable(model.MetricCAPM, "risk-free rate unavailable")
	}
	stock := ctx.StockReturns()
	bench := ctx.BenchReturns()

	fullBeta, err := returns.Beta(stock, bench)
	if err != nil {
		return model.Unavailable(model.MetricCAPM, betaReason(err))
	}
	rolling, err := returns.RollingBeta(stock, bench, e.Window)
	if err != nil || len(rolling) < 2 {
		return model.Unavailable(model.MetricCAPM, "insufficient observations for rolling beta")
	}

	rfr := riskfree.MeanDaily(ctx.RiskFree)
	benchByDate := make(map[time.Time]float64, len(bench))
	for _, p := range bench {
		benchByDate[dayKey(p.Date)] = p.Value
	}

	// Ke[t] = rfr + beta_roll[t] * (bench_ret[t] - rfr)
	ke := make([]model.SeriesPoint, 0, len(rolling))
	rollSeries := make([]model.SeriesPoint, 0, len(rolling))
	var betaVals, keVals []float64
	for _, bp := range rolling {
		br, ok := benchByDate[dayKey(bp.Date)]
		if !ok {
			continue
		}
		k := rfr + bp.Beta*(br-rfr)
		ke = append(ke, model.SeriesPoint{Date: bp.Date, Value: k})
		rollSeries = append(rollSeries, model.SeriesPoint{Date: bp.Date, Value: bp.Beta})
		betaVals = append(betaVals, bp.Beta)
		keVals = append(keVals, k)
	}
	if len(keVals) < 2 {
		return model.Unavailable(model.MetricCAPM, "insufficient aligned observations")
	}

	// period-aggregate expected return with full-period beta
	premium := 0.0
	for _, v := range bench.Values() {
		premium += v - rfr
	}
	premium /= float64(len(bench))
	expectedPeriod := rfr + fullBeta*premium

	// goodness of fit: OLS of expected return against rolling beta
	icept, slope := stat.LinearRegression(betaVals, keVals, nil, false)
	r2 := stat.RSquared(betaVals, keVals, nil, icept, slope)

	return model.MetricResult{
		Name:      model.MetricCAPM,
		Available: true,
		Series:    ke,
		Curves:    map[string][]model.SeriesPoint{"rolling_beta": rollSeries},
		Details: map[string]float64{
			"expected_return_period": expectedPeriod,
			"r_squared":              r2,
			"beta":                   fullBeta,
		},
	}
}

// alignExcess inner-joins stock returns with the daily risk-free rate by
// date and returns the excess return column.
func alignExcess(stock model.ReturnSeries, rates model.RateSeries) []float64 {
	daily := make(map[time.Time]float64, len(rates))
	for _, r := range rates {
		daily[dayKey(r.Date)] = r.Daily
	}
	var out []float64
	for _, p := range stock {
		if d, ok := daily[dayKey(p.Date)]; ok {
			out = append(out, p.Value-d)
		}
	}
	return out
}

func dayKey(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func betaReason(err error) string {
	switch {
	case errors.Is(err, returns.ErrZeroVariance):
		return "benchmark variance is zero"
	case errors.Is(err, returns.ErrInsufficientData):
		return "insufficient aligned observations"
	default:
		return err.Error()
	}
}

// PassThroughRatios extracts the point-lookup ratios the display surface
// shows alongside the computed metrics. Debt-to-equity is published in
// percent form and normalized to ratio form here.
func PassThroughRatios(facts *model.TickerFacts) map[string]float64 {
	if facts == nil {
		return nil
	}
	return map[string]float64{
		"debt_to_equity": facts.DebtToEquity / 100,
		"quick_ratio":    facts.QuickRatio,
		"current_ratio":  facts.CurrentRatio,
	}
}
