package recorder

import "NexSentinel/internal/model"

// Recorder stores observed price ticks so a history can be rebuilt across
// polls. Signals and fitted models are never persisted.
type Recorder interface {
	RecordTick(tick *model.PriceTick) error
	// RecentTicks returns up to limit of the newest ticks for symbol, oldest first.
	RecentTicks(symbol string, limit int) ([]model.PriceTick, error)
	Close() error
}

// Prices extracts the price values from ticks in order.
func Prices(ticks []model.PriceTick) []float64 {
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = t.Price
	}
	return out
}
