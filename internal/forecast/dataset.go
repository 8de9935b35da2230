// Package forecast builds next-step supervised datasets from a price series
// and fits a pluggable regressor to forecast the next price.
package forecast

import (
	"errors"
	"fmt"
)

// ErrInvalidLookBack is returned for a non-positive look-back window.
var ErrInvalidLookBack = errors.New("look-back must be positive")

// Sample pairs a window of consecutive prices with the price that follows it.
type Sample struct {
	Features []float64
	Target   float64
}

// BuildSamples slides a lookBack-wide window over prices. Sample i holds
// prices[i:i+lookBack] and targets prices[i+lookBack]. A series no longer than
// lookBack yields no samples.
func BuildSamples(prices []float64, lookBack int) ([]Sample, error) {
	if lookBack <= 0 {
		return nil, fmt.Errorf("build samples %d: %w", lookBack, ErrInvalidLookBack)
	}
	if len(prices) <= lookBack {
		return nil, nil
	}
	samples := make([]Sample, 0, len(prices)-lookBack)
	for i := 0; i+lookBack < len(prices); i++ {
		features := make([]float64, lookBack)
		copy(features, prices[i:i+lookBack])
		samples = append(samples, Sample{Features: features, Target: prices[i+lookBack]})
	}
	return samples, nil
}

// Matrix splits samples into a feature matrix and a target vector.
func Matrix(samples []Sample) ([][]float64, []float64) {
	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features
		y[i] = s.Target
	}
	return x, y
}
