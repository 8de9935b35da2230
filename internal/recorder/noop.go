package recorder

import "NexSentinel/internal/model"

// NoopRecorder is used when SQLite is not configured. It keeps no history.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordTick(_ *model.PriceTick) error { return nil }
func (n *NoopRecorder) RecentTicks(_ string, _ int) ([]model.PriceTick, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
