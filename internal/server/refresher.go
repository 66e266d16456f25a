package server

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"TradeSentinel/internal/notifier"
)

// Refresher periodically re-runs the analysis for the configured default
// symbol so the UI always has a warm report, and raises a Telegram alert
// when total risk crosses the configured threshold.
type Refresher struct {
	Cron     *cron.Cron
	Server   *Server
	Notifier *notifier.TelegramNotifier // nil disables alerting
	Ctx      context.Context
}

// NewRefresher creates a Refresher. The notifier may be nil.
func NewRefresher(ctx context.Context, srv *Server, tn *notifier.TelegramNotifier) *Refresher {
	return &Refresher{
		Cron:     cron.New(cron.WithSeconds()),
		Server:   srv,
		Notifier: tn,
		Ctx:      ctx,
	}
}

// Register schedules the refresh task.
func (r *Refresher) Register(spec string) error {
	if _, err := r.Cron.AddFunc(spec, r.refresh); err != nil {
		return fmt.Errorf("register refresh task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (r *Refresher) Start() {
	r.Cron.Start()
	log.Println("[INFO] refresher started")
}

// Stop stops the cron scheduler gracefully.
func (r *Refresher) Stop() {
	r.Cron.Stop()
	log.Println("[INFO] refresher stopped")
}

// RunNow executes the refresh task immediately (for manual trigger / RUN_ON_START).
func (r *Refresher) RunNow() {
	r.refresh()
}

func (r *Refresher) refresh() {
	cfg := r.Server.cfg
	log.Printf("[INFO] refreshing analysis for %s", cfg.Defaults.Symbol)

	report, err := r.Server.runPipeline(analyzeRequest{
		Symbol:    cfg.Defaults.Symbol,
		Exchange:  cfg.Defaults.Exchange,
		TradeSize: cfg.Defaults.TradeSize,
		Period:    cfg.Defaults.Period,
		Interval:  cfg.Defaults.Interval,
	})
	if err != nil {
		log.Printf("[ERROR] refresh %s: %v", cfg.Defaults.Symbol, err)
		return
	}
	r.Server.setLatest(report)

	if report.Risk == nil {
		log.Printf("[WARN] refresh %s: no data", cfg.Defaults.Symbol)
		return
	}
	log.Printf("[INFO] refresh %s: total risk %.3f over %d bars",
		cfg.Defaults.Symbol, report.Risk.TotalRisk, report.BarCount)

	if r.Notifier != nil && report.Risk.TotalRisk > cfg.Refresh.RiskThreshold {
		if err := r.Notifier.SendWithRetry(r.Ctx, notifier.FormatRiskAlert(report), 3); err != nil {
			log.Printf("[ERROR] risk alert: %v", err)
		}
	}
}
