package model

import "time"

// SeriesPoint is one dated observation of a derived series.
type SeriesPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ReturnSeries is a date-indexed sequence of logarithmic daily returns.
// It aligns 1:1 with the source price series minus the first row; undefined
// entries are dropped, never zero-filled.
type ReturnSeries []SeriesPoint

// Values extracts the return column.
func (r ReturnSeries) Values() []float64 {
	out := make([]float64, len(r))
	for i, p := range r {
		out[i] = p.Value
	}
	return out
}

// Dates extracts the date column.
func (r ReturnSeries) Dates() []time.Time {
	out := make([]time.Time, len(r))
	for i, p := range r {
		out[i] = p.Date
	}
	return out
}

// RatePoint pairs an annualized risk-free rate with its daily-compounded
// equivalent for one date.
type RatePoint struct {
	Date   time.Time `json:"date"`
	Annual float64   `json:"annual"`
	Daily  float64   `json:"daily"`
}

// RateSeries is the date-indexed risk-free rate table.
type RateSeries []RatePoint

// BetaPoint is one trailing-window beta observation.
type BetaPoint struct {
	Date time.Time `json:"date"`
	Beta float64   `json:"beta"`
}
