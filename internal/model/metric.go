package model

import "time"

// MetricName identifies one computable metric. Using a fixed identifier
// instead of display strings lets the dispatch table stay exhaustive.
type MetricName string

const (
	MetricVolatility      MetricName = "volatility"
	MetricDrawdown        MetricName = "drawdown"
	MetricAlpha           MetricName = "alpha"
	MetricBeta            MetricName = "beta"
	MetricCAPM            MetricName = "capm"
	MetricLogReturns      MetricName = "log_returns"
	MetricCompoundReturns MetricName = "compound_returns"
	MetricSharpe          MetricName = "sharpe"
)

// AllMetrics lists every known metric name.
var AllMetrics = []MetricName{
	MetricVolatility,
	MetricDrawdown,
	MetricAlpha,
	MetricBeta,
	MetricCAPM,
	MetricLogReturns,
	MetricCompoundReturns,
	MetricSharpe,
}

// ValidMetric reports whether name is a known metric identifier.
func ValidMetric(name MetricName) bool {
	for _, m := range AllMetrics {
		if m == name {
			return true
		}
	}
	return false
}

// MetricResult is the tagged outcome of one metric computation. A metric
// whose upstream inputs are missing reports Available=false with a reason
// instead of computing on empty data.
type MetricResult struct {
	Name      MetricName               `json:"name"`
	Available bool                     `json:"available"`
	Reason    string                   `json:"reason,omitempty"`
	Scalar    *float64                 `json:"scalar,omitempty"`
	Series    []SeriesPoint            `json:"series,omitempty"`
	Curves    map[string][]SeriesPoint `json:"curves,omitempty"`
	Details   map[string]float64       `json:"details,omitempty"`
	Date      *time.Time               `json:"date,omitempty"` // e.g. max drawdown date
}

// Unavailable builds an unavailable result with the given reason.
func Unavailable(name MetricName, reason string) MetricResult {
	return MetricResult{Name: name, Available: false, Reason: reason}
}
