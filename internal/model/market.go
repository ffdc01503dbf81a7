package model

import "time"

// Bar represents one daily candlestick with its adjusted close.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	AdjClose float64   `json:"adj_close"`
	Volume   float64   `json:"volume"`
}

// PriceSeries holds the raw price history for one symbol over a date range.
// Bars are sorted by strictly increasing date with no duplicates; the series
// is never mutated after the fetch.
type PriceSeries struct {
	Symbol    string    `json:"symbol"`
	Bars      []Bar     `json:"bars"`
	FetchedAt time.Time `json:"fetched_at"`
}

// AdjCloses extracts the adjusted close column.
func (p *PriceSeries) AdjCloses() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.AdjClose
	}
	return out
}

// Closes extracts the close column.
func (p *PriceSeries) Closes() []float64 {
	out := make([]float64, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Close
	}
	return out
}

// Dates extracts the date column.
func (p *PriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(p.Bars))
	for i, b := range p.Bars {
		out[i] = b.Date
	}
	return out
}

// IndexQuote is a snapshot quote used for the markets overview strip.
type IndexQuote struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Open      float64 `json:"open"`
	PrevClose float64 `json:"prev_close"`
	High52w   float64 `json:"high_52w"`
	Low52w    float64 `json:"low_52w"`
}
