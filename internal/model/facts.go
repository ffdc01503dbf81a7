package model

// TickerFacts holds per-ticker point lookups from the data provider.
type TickerFacts struct {
	Symbol          string  `json:"symbol"`
	MarketCap       float64 `json:"market_cap"`
	Sector          string  `json:"sector"`
	Industry        string  `json:"industry"`
	BusinessSummary string  `json:"business_summary"`
	DebtToEquity    float64 `json:"debt_to_equity"` // percent form as published
	QuickRatio      float64 `json:"quick_ratio"`
	CurrentRatio    float64 `json:"current_ratio"`
	Beta            float64 `json:"beta"`
}

// StatementKind selects which financial statement to fetch.
type StatementKind string

const (
	StatementBalanceSheet StatementKind = "balance_sheet"
	StatementIncome       StatementKind = "income_statement"
	StatementCashFlow     StatementKind = "cash_flow"
)

// StatementPeriod selects annual or quarterly reports.
type StatementPeriod string

const (
	PeriodAnnual    StatementPeriod = "annual"
	PeriodQuarterly StatementPeriod = "quarterly"
)

// StatementRow is one fiscal period of a financial statement. Field values
// stay as provider strings; the display surface owns formatting.
type StatementRow struct {
	FiscalDateEnding string            `json:"fiscal_date_ending"`
	Currency         string            `json:"currency"`
	Fields           map[string]string `json:"fields"`
}

// FundamentalStatement is a quarterly or annual statement table.
type FundamentalStatement struct {
	Symbol string          `json:"symbol"`
	Kind   StatementKind   `json:"kind"`
	Period StatementPeriod `json:"period"`
	Rows   []StatementRow  `json:"rows"`
}
