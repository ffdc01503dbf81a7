// Package riskfree turns a short-maturity treasury bill yield series into
// the daily-compounded risk-free baseline used for excess returns.
package riskfree

import (
	"fmt"
	"math"
	"time"

	"StockSight/internal/model"
	"StockSight/internal/provider"
)

// TradingDaysPerYear is the fixed daily compounding convention.
const TradingDaysPerYear = 252

// Service fetches and converts the risk-free rate series.
type Service struct {
	Provider provider.Provider
	Symbol   string // yield ticker, e.g. ^IRX (13-week T-bill)
	Periods  int
}

// NewService creates a Service with the standard 252-day convention.
func NewService(p provider.Provider, symbol string) *Service {
	return &Service{Provider: p, Symbol: symbol, Periods: TradingDaysPerYear}
}

// DailyRate converts an annualized decimal rate to its daily-compounded
// equivalent: (1 + annual)^(1/periods) - 1.
func DailyRate(annual float64, periods int) float64 {
	return math.Pow(1+annual, 1/float64(periods)) - 1
}

// Series fetches the yield history over [start, end] and returns the rate
// table. The provider publishes the yield in percent units; dividing by 100
// yields the decimal annual rate.
func (s *Service) Series(start, end time.Time) (model.RateSeries, error) {
	prices, err := s.Provider.FetchPrices(s.Symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch risk-free yields: %w", err)
	}
	rates := make(model.RateSeries, 0, len(prices.Bars))
	for _, b := range prices.Bars {
		annual := b.AdjClose / 100
		rates = append(rates, model.RatePoint{
			Date:   b.Date,
			Annual: annual,
			Daily:  DailyRate(annual, s.Periods),
		})
	}
	return rates, nil
}

// MeanDaily averages the daily rate column. Returns 0 for an empty series;
// callers needing the rate check emptiness through the metric error policy.
func MeanDaily(rates model.RateSeries) float64 {
	if len(rates) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range rates {
		sum += r.Daily
	}
	return sum / float64(len(rates))
}
