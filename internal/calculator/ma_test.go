package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/sdcoffey/big"
	"github.com/sdcoffey/techan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func undefinedPrefix(s Series) int {
	n := 0
	for _, p := range s {
		if p.Defined {
			break
		}
		n++
	}
	return n
}

func TestSMA_KnownValues(t *testing.T) {
	prices := []float64{10, 20, 30, 40, 50}

	got, err := SMA(prices, 3)
	require.NoError(t, err)
	assert.Equal(t, Series{
		{}, {},
		{Value: 20, Defined: true},
		{Value: 30, Defined: true},
		{Value: 40, Defined: true},
	}, got)

	got, err = SMA(prices, 1)
	require.NoError(t, err)
	assert.Equal(t, prices, got.Values())
	assert.Equal(t, 0, undefinedPrefix(got))
}

func TestSMA_NotEnoughData(t *testing.T) {
	got, err := SMA([]float64{10, 20}, 3)
	require.NoError(t, err)
	assert.Equal(t, Series{{}, {}}, got)

	got, err = SMA(nil, 4)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSMA_InvalidWindow(t *testing.T) {
	for _, w := range []int{0, -3} {
		_, err := SMA([]float64{1, 2, 3}, w)
		assert.ErrorIs(t, err, ErrInvalidWindow, "window %d", w)
	}
}

func TestSMA_AlignmentAndPrefix(t *testing.T) {
	prices := make([]float64, 40)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	for w := 1; w <= 45; w++ {
		got, err := SMA(prices, w)
		require.NoError(t, err)
		require.Len(t, got, len(prices), "window %d", w)

		if w > len(prices) {
			assert.Equal(t, len(prices), undefinedPrefix(got), "window %d", w)
			continue
		}
		assert.Equal(t, w-1, undefinedPrefix(got), "window %d", w)
		for i := w - 1; i < len(got); i++ {
			assert.True(t, got[i].Defined, "window %d index %d", w, i)
		}
	}
}

func TestSMA_MatchesTechan(t *testing.T) {
	prices := []float64{
		100, 102, 105, 103, 108, 110, 109, 112, 115, 113,
		118, 120, 122, 125, 123, 128, 130, 129, 132, 135,
		133, 130, 128, 125, 122, 120, 118, 115, 112, 110,
	}
	ts := techan.NewTimeSeries()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range prices {
		candle := techan.NewCandle(techan.NewTimePeriod(start.Add(time.Duration(i)*time.Hour), time.Hour))
		candle.ClosePrice = big.NewDecimal(p)
		require.True(t, ts.AddCandle(candle))
	}

	for _, w := range []int{3, 10, 30} {
		ref := techan.NewSimpleMovingAverage(techan.NewClosePriceIndicator(ts), w)
		got, err := SMA(prices, w)
		require.NoError(t, err)
		for i := w - 1; i < len(prices); i++ {
			assert.InDelta(t, ref.Calculate(i).Float(), got[i].Value, 1e-6, "window %d index %d", w, i)
		}
	}
}

func TestSMA_DoesNotMutateInput(t *testing.T) {
	prices := []float64{5, 4, 3, 2, 1}
	cp := append([]float64(nil), prices...)
	_, err := SMA(prices, 2)
	require.NoError(t, err)
	assert.Equal(t, cp, prices)
}

func TestCalculateSMA(t *testing.T) {
	v, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 2)
	require.NoError(t, err)
	assert.Equal(t, 4.5, v)

	_, err = CalculateSMA([]float64{1}, 2)
	assert.Error(t, err)

	_, err = CalculateSMA([]float64{1}, 0)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestSeries_Last(t *testing.T) {
	assert.Equal(t, Point{}, Series(nil).Last())
	s, _ := SMA([]float64{2, 4}, 2)
	assert.Equal(t, Point{Value: 3, Defined: true}, s.Last())
}
