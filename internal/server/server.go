// Package server exposes the analytics core as a JSON API. Handlers accept
// and return value types only; every computation happens per request and
// nothing is kept across requests.
package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"StockSight/internal/config"
	"StockSight/internal/metrics"
	"StockSight/internal/model"
	"StockSight/internal/news"
	"StockSight/internal/provider"
	"StockSight/internal/riskfree"
)

// Server wires the providers and the analytics engine behind the router.
type Server struct {
	Cfg          *config.Config
	Provider     provider.Provider
	Fundamentals provider.FundamentalsProvider
	News         *news.Pipeline
	Engine       *metrics.Engine
	RiskFree     *riskfree.Service
}

// New creates a Server.
func New(cfg *config.Config, p provider.Provider, f provider.FundamentalsProvider, np *news.Pipeline) *Server {
	return &Server{
		Cfg:          cfg,
		Provider:     p,
		Fundamentals: f,
		News:         np,
		Engine:       metrics.NewEngine(cfg.Analytics.RollingWindow),
		RiskFree:     riskfree.NewService(p, cfg.Provider.RiskFree),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")
	{
		api.GET("/overview", s.handleOverview)
		api.GET("/metrics", s.handleMetricNames)
		stock := api.Group("/stock/:symbol")
		{
			stock.GET("", s.handleStock)
			stock.GET("/metrics", s.handleMetrics)
			stock.GET("/indicators", s.handleIndicators)
			stock.GET("/fundamentals", s.handleFundamentals)
			stock.GET("/news", s.handleNews)
		}
	}
	return r
}

// nowFunc is swapped in tests.
var nowFunc = time.Now

func errUnknownMetric(name model.MetricName) error {
	return fmt.Errorf("unknown metric %q", string(name))
}

// dateRange parses start/end query params, defaulting to the trailing 366
// days the dashboard opens with.
func dateRange(c *gin.Context) (start, end time.Time, err error) {
	const layout = "2006-01-02"
	end = nowFunc()
	start = end.AddDate(0, 0, -366)

	if v := c.Query("start"); v != "" {
		start, err = time.Parse(layout, v)
		if err != nil {
			return start, end, errors.New("invalid start date, want YYYY-MM-DD")
		}
	}
	if v := c.Query("end"); v != "" {
		end, err = time.Parse(layout, v)
		if err != nil {
			return start, end, errors.New("invalid end date, want YYYY-MM-DD")
		}
	}
	if !end.After(start) {
		return start, end, errors.New("end date must be after start date")
	}
	return start, end, nil
}

// fetchStatus maps a provider error class to its HTTP status. Each class
// gets a distinct status so the display surface can show a specific message,
// in particular the fundamentals daily quota (429) versus a transient
// failure (502).
func fetchStatus(err error) int {
	switch {
	case errors.Is(err, provider.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, provider.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, provider.ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}

func abortFetch(c *gin.Context, err error) {
	c.JSON(fetchStatus(err), gin.H{"error": err.Error()})
}
