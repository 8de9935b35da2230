package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NexSentinel/internal/calculator"
	"NexSentinel/internal/model"
)

const (
	N = model.SignalNone
	B = model.SignalBuy
	S = model.SignalSell
)

func TestGenerate_LongWindowGuard(t *testing.T) {
	got, err := Generate([]float64{1, 2, 3, 4}, 2, 5)
	require.NoError(t, err)
	assert.Equal(t, []model.Signal{N, N, N, N}, got)
}

func TestGenerate_Alignment(t *testing.T) {
	for n := 0; n <= 25; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = float64((i*7)%11) + 100
		}
		got, err := Generate(prices, 3, 6)
		require.NoError(t, err)
		require.Len(t, got, n)
		if n > 0 {
			assert.Equal(t, N, got[0])
		}
	}
}

func TestGenerate_BuyAtEngineeredCross(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10, 10, 20}
	got, err := Generate(prices, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []model.Signal{N, N, N, N, N, N, B}, got)
}

func TestGenerate_SellAtEngineeredCross(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10, 10, 5}
	got, err := Generate(prices, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, []model.Signal{N, N, N, N, N, N, S}, got)
}

func TestGenerate_TieHandling(t *testing.T) {
	// short=1 tracks price; long=3:
	// i=2 equal, i=3 below, i=4 equal again, i=5 below.
	prices := []float64{5, 5, 5, 2, 3.5, 2}
	got, err := Generate(prices, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.Signal{N, N, N, S, N, S}, got)

	// Equality alone at the current step never emits.
	assert.Equal(t, N, got[4])
}

func TestGenerate_NonPredefinedWindowsSkipped(t *testing.T) {
	// The first comparable pair is (long-1, long); nothing earlier may signal.
	prices := []float64{1, 9, 1, 9, 1, 9, 1, 9, 1, 9}
	got, err := Generate(prices, 1, 4)
	require.NoError(t, err)
	for i := 0; i <= 3; i++ {
		assert.Equal(t, N, got[i], "index %d", i)
	}
	short, _ := calculator.SMA(prices, 1)
	long, _ := calculator.SMA(prices, 4)
	for i, s := range got {
		if s != N {
			assert.True(t, short[i].Defined && long[i].Defined && short[i-1].Defined && long[i-1].Defined)
		}
	}
}

func TestGenerate_PeakThenFall(t *testing.T) {
	prices := []float64{
		10, 11, 12, 13, 14, 15, 16, 17, 18, 19,
		20, 21, 22, 23, 24, 25, 24, 23, 22, 21,
		20, 19, 18, 17, 16, 15, 14, 13, 12, 11,
	}
	got, err := Generate(prices, 5, 10)
	require.NoError(t, err)
	assert.Contains(t, got, S)
	assert.NotContains(t, got[:15], B)
}

func TestGenerate_EqualWindowsNeverSignal(t *testing.T) {
	prices := []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5}
	got, err := Generate(prices, 4, 4)
	require.NoError(t, err)
	assert.NotContains(t, got, B)
	assert.NotContains(t, got, S)
}

func TestGenerate_InvalidWindow(t *testing.T) {
	_, err := Generate([]float64{1, 2, 3}, 0, 3)
	assert.ErrorIs(t, err, calculator.ErrInvalidWindow)
	_, err = Generate([]float64{1, 2, 3}, 2, -1)
	assert.ErrorIs(t, err, calculator.ErrInvalidWindow)
}

func TestEvents(t *testing.T) {
	prices := []float64{10, 10, 10, 10, 10, 10, 20}
	signals := []model.Signal{N, N, N, S, N, N, B}
	assert.Equal(t, []model.SignalEvent{
		{Index: 3, Price: 10, Signal: S},
		{Index: 6, Price: 20, Signal: B},
	}, Events(signals, prices))
	assert.Empty(t, Events([]model.Signal{N, N}, prices))
}

func TestSignalString(t *testing.T) {
	assert.Equal(t, "BUY", B.String())
	assert.Equal(t, "SELL", S.String())
	assert.Equal(t, "NONE", N.String())
}
