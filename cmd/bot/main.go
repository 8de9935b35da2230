package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"NexSentinel/internal/collector"
	"NexSentinel/internal/config"
	"NexSentinel/internal/forecast"
	"NexSentinel/internal/logger"
	"NexSentinel/internal/metrics"
	"NexSentinel/internal/notifier"
	"NexSentinel/internal/recorder"
	"NexSentinel/internal/scheduler"
	"NexSentinel/internal/strategy"
)

func main() {
	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("NexSentinel starting", zap.String("config", cfgPath))
	if err := cfg.Validate(); err != nil {
		logger.Fatal("config validation failed", zap.Error(err))
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go m.Serve(ctx, cfg.Metrics.Addr)
	}

	// Init fetcher
	fetcher := collector.NewDexscreenerFetcher(cfg.DataSource.BaseURL, cfg.Proxy)
	logger.Info("data source configured",
		zap.String("source", fetcher.Name()),
		zap.String("chain", cfg.DataSource.ChainID),
		zap.String("token", cfg.DataSource.TokenAddress))

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			logger.Warn("init sqlite recorder failed, using noop", zap.Error(err))
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Init collector
	params := strategy.Params{
		ShortWindow: cfg.Analysis.ShortWindow,
		LongWindow:  cfg.Analysis.LongWindow,
		LookBack:    cfg.Analysis.LookBack,
	}
	col := collector.NewCollector(fetcher, rec, m, cfg.DataSource.ChainID, cfg.DataSource.TokenAddress, collector.Options{
		HistoryPoints:   cfg.Analysis.HistoryPoints,
		SimulateHistory: cfg.SimulateHistory(),
		SimulatedPoints: cfg.Analysis.SimulatedPoints,
		MinPoints:       cfg.MinPoints(),
	})

	engine := strategy.NewEngine(params, forecast.NewPredictor(forecast.NewOLS()))

	// Init notifier
	var n notifier.Notifier = notifier.LogNotifier{}
	var tn *notifier.TelegramNotifier
	if cfg.TelegramEnabled() {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		n = tn
	} else {
		logger.Info("telegram not configured, reports go to the log")
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, engine, n, m)
	if err := sched.RegisterAll(cfg.Schedule.PollCron, cfg.Schedule.AnalysisCron); err != nil {
		logger.Fatal("register cron tasks failed", zap.Error(err))
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	if tn != nil {
		go tn.StartPolling(ctx, sched.HandleCommand)
		logger.Info("telegram polling started")
	}

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info("RUN_ON_START enabled, running analysis now")
		go sched.RunAnalysisNow()
	}

	logger.Info("NexSentinel is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutdown signal received, stopping")
	cancel()
}
