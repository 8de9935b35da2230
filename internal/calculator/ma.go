package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned for a non-positive moving-average window.
var ErrInvalidWindow = errors.New("window must be positive")

// Point is one entry of a moving-average series. Defined is false while the
// window has not yet filled.
type Point struct {
	Value   float64
	Defined bool
}

// Series is a moving-average sequence aligned index-for-index with its source prices.
type Series []Point

// Values returns the defined values of the series in order.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s))
	for _, p := range s {
		if p.Defined {
			out = append(out, p.Value)
		}
	}
	return out
}

// Last returns the final entry of the series.
func (s Series) Last() Point {
	if len(s) == 0 {
		return Point{}
	}
	return s[len(s)-1]
}

// SMA computes the simple moving average of prices over window.
// Entries before index window-1 are undefined. Each defined entry is the direct
// sum of its window divided by window, so no rounding carries across entries.
func SMA(prices []float64, window int) (Series, error) {
	if window <= 0 {
		return nil, fmt.Errorf("sma %d: %w", window, ErrInvalidWindow)
	}
	out := make(Series, len(prices))
	for i := window - 1; i < len(prices); i++ {
		sum := 0.0
		for _, p := range prices[i-window+1 : i+1] {
			sum += p
		}
		out[i] = Point{Value: sum / float64(window), Defined: true}
	}
	return out, nil
}

// CalculateSMA computes the simple moving average of the most recent period prices.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, ErrInvalidWindow
	}
	if len(prices) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(prices) - period; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(period), nil
}
