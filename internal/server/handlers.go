package server

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"StockSight/internal/indicator"
	"StockSight/internal/metrics"
	"StockSight/internal/model"
	"StockSight/internal/news"
)

// overviewIndices is the markets strip shown on the landing page.
var overviewIndices = []struct {
	Symbol string
	Name   string
}{
	{"^GSPC", "S&P500"},
	{"^DJI", "DJI"},
	{"NDAQ", "Nasdaq"},
	{"^RUT", "Russell 2000"},
}

func (s *Server) handleOverview(c *gin.Context) {
	quotes := make([]model.IndexQuote, 0, len(overviewIndices))
	for _, idx := range overviewIndices {
		q, err := s.Provider.FetchQuote(idx.Symbol)
		if err != nil {
			log.Printf("[WARN] overview quote %s: %v", idx.Symbol, err)
			continue
		}
		q.Name = idx.Name
		if q.High52w == 0 || q.Low52w == 0 {
			s.fill52WeekRange(q)
		}
		quotes = append(quotes, *q)
	}
	if len(quotes) == 0 {
		c.JSON(http.StatusBadGateway, gin.H{"error": "no index quotes available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"indices": quotes})
}

// fill52WeekRange recomputes the 52-week range from daily bars when the
// snapshot quote lacks the published figures.
func (s *Server) fill52WeekRange(q *model.IndexQuote) {
	end := nowFunc()
	prices, err := s.Provider.FetchPrices(q.Symbol, end.AddDate(-1, 0, 0), end)
	if err != nil {
		log.Printf("[WARN] 52-week fallback %s: %v", q.Symbol, err)
		return
	}
	if high, low, err := indicator.Range52Week(prices.Bars); err == nil {
		q.High52w = high
		q.Low52w = low
	}
}

func (s *Server) handleMetricNames(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"metrics": model.AllMetrics})
}

type dailyChange struct {
	Date  string  `json:"date"`
	Pct   float64 `json:"pct"`
	Color string  `json:"color"`
}

func (s *Server) handleStock(c *gin.Context) {
	symbol := c.Param("symbol")
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prices, err := s.Provider.FetchPrices(symbol, start, end)
	if err != nil {
		abortFetch(c, err)
		return
	}
	facts, err := s.Provider.FetchFacts(symbol)
	if err != nil {
		abortFetch(c, err)
		return
	}

	// Daily percent change on adjusted close, first row dropped.
	changes := make([]dailyChange, 0, len(prices.Bars))
	for i := 1; i < len(prices.Bars); i++ {
		prev := prices.Bars[i-1].AdjClose
		if prev == 0 {
			continue
		}
		pct := (prices.Bars[i].AdjClose/prev - 1) * 100
		color := "green"
		if pct < 0 {
			color = "red"
		}
		changes = append(changes, dailyChange{
			Date:  prices.Bars[i].Date.Format("2006-01-02"),
			Pct:   pct,
			Color: color,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"prices":       prices,
		"facts":        facts,
		"ratios":       metrics.PassThroughRatios(facts),
		"daily_change": changes,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	symbol := c.Param("symbol")
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	selected, err := parseMetricNames(c.Query("metrics"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prices, err := s.Provider.FetchPrices(symbol, start, end)
	if err != nil {
		abortFetch(c, err)
		return
	}
	bench, err := s.Provider.FetchPrices(s.Cfg.Provider.Benchmark, start, end)
	if err != nil {
		abortFetch(c, err)
		return
	}

	ctx := &metrics.ComputationContext{
		Symbol:    symbol,
		Start:     start,
		End:       end,
		Prices:    prices,
		Benchmark: bench,
	}

	if needsRiskFree(selected) {
		rates, err := s.RiskFree.Series(start, end)
		if err != nil {
			abortFetch(c, err)
			return
		}
		ctx.RiskFree = rates
	}

	// Facts only decorate the beta result; a failed lookup is not fatal.
	if facts, err := s.Provider.FetchFacts(symbol); err != nil {
		log.Printf("[WARN] facts lookup %s: %v", symbol, err)
	} else {
		ctx.Facts = facts
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"results": s.Engine.Compute(ctx, selected),
	})
}

func parseMetricNames(raw string) ([]model.MetricName, error) {
	if raw == "" {
		return model.AllMetrics, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]model.MetricName, 0, len(parts))
	for _, p := range parts {
		name := model.MetricName(strings.TrimSpace(p))
		if !model.ValidMetric(name) {
			return nil, errUnknownMetric(name)
		}
		out = append(out, name)
	}
	return out, nil
}

func needsRiskFree(selected []model.MetricName) bool {
	for _, name := range selected {
		switch name {
		case model.MetricSharpe, model.MetricAlpha, model.MetricCAPM:
			return true
		}
	}
	return false
}

func (s *Server) handleIndicators(c *gin.Context) {
	symbol := c.Param("symbol")
	start, end, err := dateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	kind := c.DefaultQuery("type", "sma")
	length, err := strconv.Atoi(c.DefaultQuery("length", "20"))
	if err != nil || length < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "length must be a positive integer"})
		return
	}

	prices, err := s.Provider.FetchPrices(symbol, start, end)
	if err != nil {
		abortFetch(c, err)
		return
	}

	var series []model.SeriesPoint
	var current float64
	switch kind {
	case "sma":
		series, err = indicator.SMASeries(prices.Bars, length)
		if err == nil {
			current, err = indicator.SMA(prices.Closes(), length)
		}
	case "ema":
		series, err = indicator.EMASeries(prices.Bars, length)
		if err == nil {
			current = series[len(series)-1].Value
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be sma or ema"})
		return
	}
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"symbol":  symbol,
		"type":    kind,
		"length":  length,
		"current": current,
		"series":  series,
		"close":   closeSeries(prices),
	})
}

func closeSeries(prices *model.PriceSeries) []model.SeriesPoint {
	out := make([]model.SeriesPoint, len(prices.Bars))
	for i, b := range prices.Bars {
		out[i] = model.SeriesPoint{Date: b.Date, Value: b.Close}
	}
	return out
}

func (s *Server) handleFundamentals(c *gin.Context) {
	symbol := c.Param("symbol")

	kind := model.StatementKind(c.DefaultQuery("statement", string(model.StatementBalanceSheet)))
	switch kind {
	case model.StatementBalanceSheet, model.StatementIncome, model.StatementCashFlow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown statement kind"})
		return
	}
	period := model.StatementPeriod(c.DefaultQuery("period", string(model.PeriodAnnual)))
	switch period {
	case model.PeriodAnnual, model.PeriodQuarterly:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "period must be annual or quarterly"})
		return
	}

	stmt, err := s.Fundamentals.FetchStatement(symbol, kind, period)
	if err != nil {
		abortFetch(c, err)
		return
	}
	c.JSON(http.StatusOK, stmt)
}

func (s *Server) handleNews(c *gin.Context) {
	symbol := c.Param("symbol")

	headlines, err := s.News.Headlines(symbol)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"symbol":     symbol,
		"headlines":  headlines,
		"daily_mean": news.DailyMean(headlines),
	})
}
