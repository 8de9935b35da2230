package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NexSentinel/internal/model"
)

func newTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "sub", "ticks.db"))
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestSQLiteRecorder_RoundTrip(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// Insert out of order; reads come back chronological.
	for _, i := range []int{2, 0, 4, 1, 3} {
		require.NoError(t, r.RecordTick(&model.PriceTick{
			Symbol: "BUNKER/SOL",
			Price:  100 + float64(i),
			Time:   base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, r.RecordTick(&model.PriceTick{Symbol: "OTHER/SOL", Price: 1, Time: base}))

	ticks, err := r.RecentTicks("BUNKER/SOL", 10)
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 101, 102, 103, 104}, Prices(ticks))
	assert.True(t, ticks[0].Time.Equal(base))
}

func TestSQLiteRecorder_LimitKeepsNewest(t *testing.T) {
	r := newTestRecorder(t)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		require.NoError(t, r.RecordTick(&model.PriceTick{
			Symbol: "X/Y", Price: float64(i), Time: base.Add(time.Duration(i) * time.Second),
		}))
	}
	ticks, err := r.RecentTicks("X/Y", 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5}, Prices(ticks))
}

func TestSQLiteRecorder_EmptyAndZeroTime(t *testing.T) {
	r := newTestRecorder(t)
	ticks, err := r.RecentTicks("NONE/X", 5)
	require.NoError(t, err)
	assert.Empty(t, ticks)

	require.NoError(t, r.RecordTick(&model.PriceTick{Symbol: "NOW/X", Price: 2}))
	ticks, err = r.RecentTicks("NOW/X", 5)
	require.NoError(t, err)
	require.Len(t, ticks, 1)
	assert.False(t, ticks[0].Time.IsZero())
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NewNoopRecorder()
	assert.NoError(t, r.RecordTick(&model.PriceTick{Symbol: "A/B", Price: 1}))
	ticks, err := r.RecentTicks("A/B", 10)
	assert.NoError(t, err)
	assert.Empty(t, ticks)
	assert.NoError(t, r.Close())
}
