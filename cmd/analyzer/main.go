package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"TradeSentinel/internal/config"
	"TradeSentinel/internal/notifier"
	"TradeSentinel/internal/quote"
	"TradeSentinel/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] TradeSentinel starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher quote.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = quote.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = quote.NewYahooFetcher(cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init quote cache
	var cache quote.Cache
	if cfg.Cache.SQLitePath != "" {
		sc, err := quote.NewSQLiteCache(cfg.Cache.SQLitePath, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using noop: %v", err)
			cache = quote.NewNoopCache()
		} else {
			cache = sc
			defer sc.Close()
		}
	} else {
		cache = quote.NewNoopCache()
	}
	fetcher = quote.NewCachedFetcher(fetcher, cache)

	// Init Telegram notifier (optional)
	var tn *notifier.TelegramNotifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		log.Println("[INFO] Telegram risk alerts enabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init server and background refresher
	srv := server.New(cfg, fetcher, time.Now)
	if cfg.Refresh.Cron != "" {
		ref := server.NewRefresher(ctx, srv, tn)
		if err := ref.Register(cfg.Refresh.Cron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		ref.Start()
		defer ref.Stop()

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, refreshing now")
			go ref.RunNow()
		}
	}

	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := srv.Router().Run(cfg.Server.Addr); err != nil {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	log.Println("[INFO] TradeSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] TradeSentinel stopped")
}
