package collector

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"NexSentinel/internal/logger"
	"NexSentinel/internal/metrics"
	"NexSentinel/internal/model"
	"NexSentinel/internal/recorder"
)

// MockFetcher returns a controllable fixed snapshot for development and testing.
type MockFetcher struct {
	Pair *model.TokenPair
	Err  error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchPair(_ context.Context, chainID, _ string) (*model.TokenPair, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Pair != nil {
		p := *m.Pair
		p.FetchedAt = time.Now()
		return &p, nil
	}
	return &model.TokenPair{
		ChainID:     chainID,
		BaseSymbol:  "MOCK",
		QuoteSymbol: "USD",
		PriceUSD:    1,
		FetchedAt:   time.Now(),
	}, nil
}

// SimulateHistory interpolates points prices linearly from the price implied
// 24h ago to current. A -100% change is taken to start from zero.
func SimulateHistory(current, change24h float64, points int) []float64 {
	if points <= 0 {
		return nil
	}
	if points == 1 {
		return []float64{current}
	}
	start := 0.0
	if change24h != -100 {
		start = current / (1 + change24h/100)
	}
	out := make([]float64, points)
	for i := range out {
		out[i] = start + (current-start)*float64(i)/float64(points-1)
	}
	return out
}

// Options controls how Series assembles a price history.
type Options struct {
	HistoryPoints   int
	SimulateHistory bool
	SimulatedPoints int
	MinPoints       int // below this, recorded history is replaced by a simulation
}

// Collector fetches snapshots, records them and assembles price series.
type Collector struct {
	Fetcher      Fetcher
	Recorder     recorder.Recorder
	Metrics      *metrics.Metrics
	ChainID      string
	TokenAddress string
	Options      Options
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, rec recorder.Recorder, m *metrics.Metrics, chainID, tokenAddress string, opts Options) *Collector {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Collector{
		Fetcher:      fetcher,
		Recorder:     rec,
		Metrics:      m,
		ChainID:      chainID,
		TokenAddress: tokenAddress,
		Options:      opts,
	}
}

func (c *Collector) fetch(ctx context.Context) (*model.TokenPair, error) {
	pair, err := c.Fetcher.FetchPair(ctx, c.ChainID, c.TokenAddress)
	if err != nil {
		if c.Metrics != nil {
			c.Metrics.FetchErrors.Inc()
		}
		return nil, fmt.Errorf("fetch pair: %w", err)
	}
	return pair, nil
}

// Poll fetches the current snapshot and records it as a tick.
func (c *Collector) Poll(ctx context.Context) (*model.TokenPair, error) {
	pair, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	tick := &model.PriceTick{Symbol: pair.Symbol(), Price: pair.PriceUSD, Time: pair.FetchedAt}
	if err := c.Recorder.RecordTick(tick); err != nil {
		logger.Error("record tick failed", zap.String("symbol", tick.Symbol), zap.Error(err))
	} else if c.Metrics != nil {
		c.Metrics.TicksRecorded.Inc()
	}
	return pair, nil
}

// Series fetches the current snapshot without recording it and returns the
// recorded history for the pair. Ticks are only written by Poll so the history
// keeps the poll spacing. When the history is shorter than MinPoints and
// simulation is enabled, a series interpolated from the 24h change replaces it,
// but only if the simulation is longer than what was recorded.
func (c *Collector) Series(ctx context.Context) (*model.PriceSeries, *model.TokenPair, error) {
	pair, err := c.fetch(ctx)
	if err != nil {
		return nil, nil, err
	}

	symbol := pair.Symbol()
	ticks, err := c.Recorder.RecentTicks(symbol, c.Options.HistoryPoints)
	if err != nil {
		logger.Warn("load recorded ticks failed", zap.String("symbol", symbol), zap.Error(err))
	}
	series := &model.PriceSeries{
		Symbol:    symbol,
		Prices:    recorder.Prices(ticks),
		Source:    "recorded",
		FetchedAt: pair.FetchedAt,
	}

	recorded := len(series.Prices)
	if recorded < c.Options.MinPoints && c.Options.SimulateHistory && c.Options.SimulatedPoints > recorded {
		logger.Info("recorded history too short, simulating from 24h change",
			zap.String("symbol", symbol),
			zap.Int("recorded", recorded),
			zap.Int("simulated", c.Options.SimulatedPoints),
			zap.Float64("change_24h", pair.Change24h))
		series.Prices = SimulateHistory(pair.PriceUSD, pair.Change24h, c.Options.SimulatedPoints)
		series.Source = "simulated"
	}
	return series, pair, nil
}
