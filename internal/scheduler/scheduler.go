package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"NexSentinel/internal/collector"
	"NexSentinel/internal/logger"
	"NexSentinel/internal/metrics"
	"NexSentinel/internal/model"
	"NexSentinel/internal/notifier"
	"NexSentinel/internal/strategy"
)

const sendRetries = 3

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Engine    *strategy.Engine
	Notifier  notifier.Notifier
	Metrics   *metrics.Metrics
	Ctx       context.Context

	mu   sync.Mutex
	last *model.Analysis
}

// NewScheduler creates a new Scheduler. A nil notifier logs reports instead of sending them.
func NewScheduler(ctx context.Context, col *collector.Collector, engine *strategy.Engine, n notifier.Notifier, m *metrics.Metrics) *Scheduler {
	if n == nil {
		n = notifier.LogNotifier{}
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Engine:    engine,
		Notifier:  n,
		Metrics:   m,
		Ctx:       ctx,
	}
}

// RegisterAll registers the price poll and analysis tasks.
func (s *Scheduler) RegisterAll(pollCron, analysisCron string) error {
	if _, err := s.Cron.AddFunc(pollCron, s.pollTask); err != nil {
		return fmt.Errorf("register poll task: %w", err)
	}
	if _, err := s.Cron.AddFunc(analysisCron, s.analysisTask); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	logger.Info("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	logger.Info("scheduler stopped")
}

// RunAnalysisNow executes the analysis task immediately (for RUN_ON_START).
func (s *Scheduler) RunAnalysisNow() {
	s.analysisTask()
}

// LastAnalysis returns the most recent completed analysis, or nil.
func (s *Scheduler) LastAnalysis() *model.Analysis {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *Scheduler) pollTask() {
	pair, err := s.Collector.Poll(s.Ctx)
	if err != nil {
		logger.Error("poll failed", zap.Error(err))
		return
	}
	if s.Metrics != nil {
		s.Metrics.LastPrice.Set(pair.PriceUSD)
	}
	logger.Debug("tick recorded", zap.String("symbol", pair.Symbol()), zap.Float64("price", pair.PriceUSD))
}

func (s *Scheduler) analysisTask() {
	report, err := s.Analyze(s.Ctx)
	if err != nil {
		s.trySend(fmt.Sprintf("❌ Analysis failed: %v", err))
		return
	}
	s.trySend(report)
}

// Analyze runs one full analysis cycle and returns the formatted report.
func (s *Scheduler) Analyze(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	log := logger.Get().With(zap.String("run_id", runID))
	log.Info("running analysis")

	series, pair, err := s.Collector.Series(ctx)
	if err != nil {
		log.Error("collect series failed", zap.Error(err))
		return "", err
	}

	a, err := s.Engine.Evaluate(series)
	if err != nil {
		log.Error("evaluate failed", zap.Error(err))
		return "", err
	}
	a.RunID = runID

	for _, c := range a.Conditions {
		log.Warn("analysis condition",
			zap.String("condition", string(c)),
			zap.String("symbol", a.Symbol),
			zap.Int("points", a.Points))
	}
	fields := []zap.Field{
		zap.String("symbol", a.Symbol),
		zap.String("source", a.Source),
		zap.Int("points", a.Points),
		zap.Int("crossovers", len(a.Events)),
	}
	if a.HasForecast {
		fields = append(fields, zap.Float64("forecast", a.Forecast))
	}
	log.Info("analysis complete", fields...)

	if s.Metrics != nil {
		s.Metrics.ObserveAnalysis(a)
	}
	s.mu.Lock()
	s.last = a
	s.mu.Unlock()

	return notifier.FormatAnalysisReport(a, pair), nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/signal", "/analyze":
		report, err := s.Analyze(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ Analysis failed: %v", err)
		}
		return report
	case "/price":
		pair, err := s.Collector.Poll(s.Ctx)
		if err != nil {
			return fmt.Sprintf("❌ Price fetch failed: %v", err)
		}
		return notifier.FormatPair(pair)
	case "/forecast":
		a := s.LastAnalysis()
		if a == nil {
			return "No analysis has run yet. Send /signal first."
		}
		return notifier.FormatForecast(a)
	default:
		return "Available commands:\n• /signal - run analysis now\n• /price - latest pair snapshot\n• /forecast - last next-price forecast"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		logger.Error("send notification failed", zap.Error(err))
	}
}
