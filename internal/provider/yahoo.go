package provider

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"StockSight/internal/model"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider implements Provider using the Yahoo Finance public API.
type YahooProvider struct {
	BaseURL   string
	Client    *http.Client
	SymbolMap map[string]string // maps friendly names to Yahoo tickers
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy
// support. Every call is bounded by the client timeout.
func NewYahooProvider(proxyURL string, timeout time.Duration) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &YahooProvider{
		BaseURL: yahooBaseURL,
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooProvider) Name() string { return "yahoo" }

func (f *YahooProvider) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

// FetchPrices fetches daily OHLC + adjusted close bars over [start, end].
func (f *YahooProvider) FetchPrices(symbol string, start, end time.Time) (*model.PriceSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&includeAdjustedClose=true",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)), start.Unix(), end.Unix())

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, networkErr("yahoo chart", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkErr("yahoo read body", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo chart: status %d: %w", resp.StatusCode, ErrNetwork)
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if chart.Chart.Error.Code == "Not Found" {
			return nil, fmt.Errorf("yahoo chart %s: %w", symbol, ErrNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s: %w", chart.Chart.Error.Description, ErrNetwork)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 {
		return nil, fmt.Errorf("yahoo chart %s: no data: %w", symbol, ErrNotFound)
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adj []interface{}
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}

	bars := make([]model.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		ac := c
		if i < len(adj) {
			if v := toFloat(adj[i]); v != 0 {
				ac = v
			}
		}
		bars = append(bars, model.Bar{
			Date:     time.Unix(ts, 0).UTC(),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			AdjClose: ac,
			Volume:   toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

// yRaw is Yahoo's {raw, fmt} number wrapper used in quoteSummary modules.
type yRaw struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type yahooSummary struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector              string `json:"sector"`
				Industry            string `json:"industry"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			SummaryDetail *struct {
				MarketCap *yRaw `json:"marketCap"`
			} `json:"summaryDetail"`
			FinancialData *struct {
				DebtToEquity *yRaw `json:"debtToEquity"`
				QuickRatio   *yRaw `json:"quickRatio"`
				CurrentRatio *yRaw `json:"currentRatio"`
			} `json:"financialData"`
			DefaultKeyStatistics *struct {
				Beta *yRaw `json:"beta"`
			} `json:"defaultKeyStatistics"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchFacts fetches per-ticker point facts from the quoteSummary API.
func (f *YahooProvider) FetchFacts(symbol string) (*model.TickerFacts, error) {
	u := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=assetProfile,summaryDetail,financialData,defaultKeyStatistics",
		f.BaseURL, url.PathEscape(f.yahooSymbol(symbol)))

	var summary yahooSummary
	if err := f.getJSON(u, &summary); err != nil {
		return nil, err
	}
	if summary.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo quoteSummary %s: %s: %w",
			symbol, summary.QuoteSummary.Error.Description, ErrNotFound)
	}
	if len(summary.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("yahoo quoteSummary %s: empty result: %w", symbol, ErrNotFound)
	}

	r := summary.QuoteSummary.Result[0]
	facts := &model.TickerFacts{Symbol: symbol}
	if r.AssetProfile != nil {
		facts.Sector = r.AssetProfile.Sector
		facts.Industry = r.AssetProfile.Industry
		facts.BusinessSummary = r.AssetProfile.LongBusinessSummary
	}
	if r.SummaryDetail != nil && r.SummaryDetail.MarketCap != nil {
		facts.MarketCap = r.SummaryDetail.MarketCap.Raw
	}
	if r.FinancialData != nil {
		if r.FinancialData.DebtToEquity != nil {
			facts.DebtToEquity = r.FinancialData.DebtToEquity.Raw
		}
		if r.FinancialData.QuickRatio != nil {
			facts.QuickRatio = r.FinancialData.QuickRatio.Raw
		}
		if r.FinancialData.CurrentRatio != nil {
			facts.CurrentRatio = r.FinancialData.CurrentRatio.Raw
		}
	}
	if r.DefaultKeyStatistics != nil && r.DefaultKeyStatistics.Beta != nil {
		facts.Beta = r.DefaultKeyStatistics.Beta.Raw
	}
	return facts, nil
}

type yahooQuote struct {
	QuoteResponse struct {
		Result []struct {
			Symbol                 string  `json:"symbol"`
			ShortName              string  `json:"shortName"`
			RegularMarketOpen      float64 `json:"regularMarketOpen"`
			RegularMarketPrevClose float64 `json:"regularMarketPreviousClose"`
			FiftyTwoWeekHigh       float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow        float64 `json:"fiftyTwoWeekLow"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteResponse"`
}

// FetchQuote fetches the snapshot quote used by the markets overview strip.
func (f *YahooProvider) FetchQuote(symbol string) (*model.IndexQuote, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s",
		f.BaseURL, url.QueryEscape(f.yahooSymbol(symbol)))

	var quote yahooQuote
	if err := f.getJSON(u, &quote); err != nil {
		return nil, err
	}
	if quote.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("yahoo quote %s: %s: %w",
			symbol, quote.QuoteResponse.Error.Description, ErrNetwork)
	}
	if len(quote.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, ErrNotFound)
	}

	r := quote.QuoteResponse.Result[0]
	return &model.IndexQuote{
		Symbol:    symbol,
		Name:      r.ShortName,
		Open:      r.RegularMarketOpen,
		PrevClose: r.RegularMarketPrevClose,
		High52w:   r.FiftyTwoWeekHigh,
		Low52w:    r.FiftyTwoWeekLow,
	}, nil
}

func (f *YahooProvider) getJSON(u string, dst interface{}) error {
	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return networkErr("yahoo fetch", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErr("yahoo read body", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("yahoo: %w", ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("yahoo: status %d: %w", resp.StatusCode, ErrNetwork)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("yahoo decode: %w", err)
	}
	return nil
}
