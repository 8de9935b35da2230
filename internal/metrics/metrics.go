package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"NexSentinel/internal/logger"
	"NexSentinel/internal/model"
)

// Metrics holds the Prometheus collectors for the bot.
type Metrics struct {
	registry *prometheus.Registry

	AnalysesTotal   prometheus.Counter
	SignalsTotal    *prometheus.CounterVec // labels: signal
	ConditionsTotal *prometheus.CounterVec // labels: condition
	FetchErrors     prometheus.Counter
	TicksRecorded   prometheus.Counter
	LastForecast    prometheus.Gauge
	LastPrice       prometheus.Gauge
}

// New registers all collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		AnalysesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexsentinel_analyses_total",
			Help: "Total analysis runs completed",
		}),
		SignalsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexsentinel_signals_total",
			Help: "Crossover signals found by the latest-point check, by type",
		}, []string{"signal"}),
		ConditionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nexsentinel_conditions_total",
			Help: "Reported analysis conditions, by kind",
		}, []string{"condition"}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexsentinel_fetch_errors_total",
			Help: "Failed data source requests",
		}),
		TicksRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "nexsentinel_ticks_recorded_total",
			Help: "Price ticks written to the recorder",
		}),
		LastForecast: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nexsentinel_last_forecast",
			Help: "Most recent next-price forecast",
		}),
		LastPrice: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "nexsentinel_last_price",
			Help: "Most recent observed price",
		}),
	}
	m.registry.MustRegister(
		m.AnalysesTotal,
		m.SignalsTotal,
		m.ConditionsTotal,
		m.FetchErrors,
		m.TicksRecorded,
		m.LastForecast,
		m.LastPrice,
	)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// ObserveAnalysis records one finished analysis.
func (m *Metrics) ObserveAnalysis(a *model.Analysis) {
	if m == nil || a == nil {
		return
	}
	m.AnalysesTotal.Inc()
	m.LastPrice.Set(a.LastPrice)
	if n := len(a.Signals); n > 0 && a.Signals[n-1] != model.SignalNone {
		m.SignalsTotal.WithLabelValues(a.Signals[n-1].String()).Inc()
	}
	for _, c := range a.Conditions {
		m.ConditionsTotal.WithLabelValues(string(c)).Inc()
	}
	if a.HasForecast {
		m.LastForecast.Set(a.Forecast)
	}
}

// Serve exposes /metrics on addr until ctx is cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("metrics server listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", zap.Error(err))
	}
}
