package provider

import (
	"time"

	"StockSight/internal/model"
)

// Provider defines the interface for fetching market data.
type Provider interface {
	FetchPrices(symbol string, start, end time.Time) (*model.PriceSeries, error)
	FetchFacts(symbol string) (*model.TickerFacts, error)
	FetchQuote(symbol string) (*model.IndexQuote, error)
	Name() string
}

// FundamentalsProvider fetches financial statement tables.
type FundamentalsProvider interface {
	FetchStatement(symbol string, kind model.StatementKind, period model.StatementPeriod) (*model.FundamentalStatement, error)
}

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Prices map[string]*model.PriceSeries
	Facts  map[string]*model.TickerFacts
	Quotes map[string]*model.IndexQuote
	Err    error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchPrices(symbol string, _, _ time.Time) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if p, ok := m.Prices[symbol]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *MockProvider) FetchFacts(symbol string) (*model.TickerFacts, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if f, ok := m.Facts[symbol]; ok {
		return f, nil
	}
	return nil, ErrNotFound
}

func (m *MockProvider) FetchQuote(symbol string) (*model.IndexQuote, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return nil, ErrNotFound
}

// GenerateBars builds a deterministic daily bar sequence around a base
// price, useful for mock series in tests and development.
func GenerateBars(basePrice float64, count int, start time.Time) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:     start.AddDate(0, 0, i),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return bars
}
