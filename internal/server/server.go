package server

import (
	_ "embed"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"TradeSentinel/internal/analyzer"
	"TradeSentinel/internal/config"
	"TradeSentinel/internal/market"
	"TradeSentinel/internal/quote"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradesentinel_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"endpoint", "method"},
	)
	analyzeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tradesentinel_analyze_duration_seconds",
			Help:    "End-to-end analysis duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
	analyzeFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradesentinel_analyze_failures_total",
			Help: "Analysis runs that ended in a provider failure or without data",
		},
		[]string{"reason"},
	)
)

//go:embed index.html
var indexHTML []byte

// Server is the HTTP presentation layer. It renders the analysis page and
// exposes the pipeline as a JSON API. One pipeline instance is built per
// request; the only shared state is the latest background-refresh report.
type Server struct {
	cfg     *config.Config
	fetcher quote.Fetcher
	now     func() time.Time

	mu     sync.RWMutex
	latest *analyzer.Report
}

// New creates a Server.
func New(cfg *config.Config, fetcher quote.Fetcher, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{cfg: cfg, fetcher: fetcher, now: now}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.GET("/", s.Index)
	r.GET("/health", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.POST("/analyze", s.Analyze)
		api.GET("/latest", s.Latest)
	}
	return r
}

func (s *Server) Index(c *gin.Context) {
	requestsTotal.WithLabelValues("/", c.Request.Method).Inc()
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) Health(c *gin.Context) {
	requestsTotal.WithLabelValues("/health", c.Request.Method).Inc()
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "tradesentinel",
		"source":  s.fetcher.Name(),
	})
}

// analyzeRequest carries the user-facing inputs. Empty fields fall back to
// the configured defaults.
type analyzeRequest struct {
	Symbol    string  `json:"symbol"`
	Exchange  string  `json:"exchange" binding:"omitempty,oneof=US India"`
	TradeSize float64 `json:"trade_size" binding:"omitempty,gte=1"`
	Period    string  `json:"period"`
	Interval  string  `json:"interval"`
}

// Analyze runs one full pipeline to completion and returns the report.
// No-data runs answer 404 with the advisory list; provider failures answer
// 502 with the wrapped error.
func (s *Server) Analyze(c *gin.Context) {
	requestsTotal.WithLabelValues("/api/v1/analyze", c.Request.Method).Inc()
	start := time.Now()
	defer func() { analyzeDuration.Observe(time.Since(start).Seconds()) }()

	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.applyDefaults(&req)

	report, err := s.runPipeline(req)
	if err != nil {
		analyzeFailures.WithLabelValues("provider").Inc()
		log.Printf("[ERROR] analyze %s: %v", req.Symbol, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	if report.Risk == nil {
		analyzeFailures.WithLabelValues("no_data").Inc()
		c.JSON(http.StatusNotFound, report)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Latest returns the most recent background-refresh report.
func (s *Server) Latest(c *gin.Context) {
	requestsTotal.WithLabelValues("/api/v1/latest", c.Request.Method).Inc()

	s.mu.RLock()
	report := s.latest
	s.mu.RUnlock()

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no refresh has completed yet"})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) applyDefaults(req *analyzeRequest) {
	if req.Symbol == "" {
		req.Symbol = s.cfg.Defaults.Symbol
	}
	if req.Exchange == "" {
		req.Exchange = s.cfg.Defaults.Exchange
	}
	if req.TradeSize == 0 {
		req.TradeSize = s.cfg.Defaults.TradeSize
	}
	if req.Period == "" {
		req.Period = s.cfg.Defaults.Period
	}
	if req.Interval == "" {
		req.Interval = s.cfg.Defaults.Interval
	}
}

func (s *Server) runPipeline(req analyzeRequest) (*analyzer.Report, error) {
	pipeline := analyzer.NewPipeline(req.Symbol, market.Exchange(req.Exchange), s.fetcher, s.now)
	return pipeline.Analyze(req.TradeSize, req.Period, req.Interval)
}

func (s *Server) setLatest(report *analyzer.Report) {
	s.mu.Lock()
	s.latest = report
	s.mu.Unlock()
}
