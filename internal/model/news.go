package model

import "time"

// Headline is one scraped and scored news row.
type Headline struct {
	Date       time.Time `json:"date"`
	Time       string    `json:"time"`
	Title      string    `json:"title"`
	Source     string    `json:"source"`
	SourceLink string    `json:"source_link"`
	Compound   float64   `json:"compound"` // lexicon polarity in [-1, 1]
}

// DailySentiment is the mean compound score over all headlines of one date.
// Sign keys the chart bar color: non-negative scores render as positive.
type DailySentiment struct {
	Date  time.Time `json:"date"`
	Mean  float64   `json:"mean"`
	Sign  string    `json:"sign"`
	Count int       `json:"count"`
}
