package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"StockSight/internal/model"
)

const alphaVantageBaseURL = "https://www.alphavantage.co"

// statement kind to Alpha Vantage function name
var avFunctions = map[model.StatementKind]string{
	model.StatementBalanceSheet: "BALANCE_SHEET",
	model.StatementIncome:       "INCOME_STATEMENT",
	model.StatementCashFlow:     "CASH_FLOW",
}

// AlphaVantageProvider fetches financial statement tables from the Alpha
// Vantage fundamentals API. The free tier caps requests at 25 per day;
// exceeding the cap surfaces as ErrRateLimited so the caller can show a
// quota-specific message.
type AlphaVantageProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAlphaVantageProvider creates a fundamentals provider.
func NewAlphaVantageProvider(apiKey string, timeout time.Duration) *AlphaVantageProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &AlphaVantageProvider{
		BaseURL: alphaVantageBaseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: timeout},
	}
}

// avStatementResponse covers the three statement endpoints: each returns the
// symbol plus annualReports/quarterlyReports arrays of string-valued fields.
// Quota exhaustion comes back as an Information or Note message instead.
type avStatementResponse struct {
	Symbol           string              `json:"symbol"`
	AnnualReports    []map[string]string `json:"annualReports"`
	QuarterlyReports []map[string]string `json:"quarterlyReports"`
	Information      string              `json:"Information"`
	Note             string              `json:"Note"`
	ErrorMessage     string              `json:"Error Message"`
}

// FetchStatement fetches one statement table for the given symbol.
func (f *AlphaVantageProvider) FetchStatement(symbol string, kind model.StatementKind, period model.StatementPeriod) (*model.FundamentalStatement, error) {
	fn, ok := avFunctions[kind]
	if !ok {
		return nil, fmt.Errorf("unknown statement kind %q", kind)
	}

	u := fmt.Sprintf("%s/query?function=%s&symbol=%s&apikey=%s",
		f.BaseURL, fn, url.QueryEscape(symbol), url.QueryEscape(f.APIKey))

	resp, err := f.Client.Get(u)
	if err != nil {
		return nil, networkErr("alphavantage fetch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkErr("alphavantage read body", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alphavantage: status %d: %w", resp.StatusCode, ErrNetwork)
	}

	var avResp avStatementResponse
	if err := json.Unmarshal(body, &avResp); err != nil {
		return nil, fmt.Errorf("alphavantage decode: %w", err)
	}
	if avResp.Information != "" || avResp.Note != "" {
		return nil, fmt.Errorf("alphavantage daily quota: %w", ErrRateLimited)
	}
	if avResp.ErrorMessage != "" {
		return nil, fmt.Errorf("alphavantage %s: %s: %w", symbol, avResp.ErrorMessage, ErrNotFound)
	}

	reports := avResp.AnnualReports
	if period == model.PeriodQuarterly {
		reports = avResp.QuarterlyReports
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("alphavantage %s: no %s reports: %w", symbol, period, ErrNotFound)
	}

	stmt := &model.FundamentalStatement{
		Symbol: symbol,
		Kind:   kind,
		Period: period,
		Rows:   make([]model.StatementRow, 0, len(reports)),
	}
	for _, rep := range reports {
		row := model.StatementRow{
			FiscalDateEnding: rep["fiscalDateEnding"],
			Currency:         rep["reportedCurrency"],
			Fields:           make(map[string]string, len(rep)),
		}
		for k, v := range rep {
			if k == "fiscalDateEnding" || k == "reportedCurrency" {
				continue
			}
			row.Fields[k] = v
		}
		stmt.Rows = append(stmt.Rows, row)
	}
	return stmt, nil
}
