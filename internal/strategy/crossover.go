package strategy

import (
	"fmt"

	"NexSentinel/internal/calculator"
	"NexSentinel/internal/model"
)

// Insufficient reports whether a series of n points is too short for the long window.
func Insufficient(n, longWindow int) bool {
	return n < longWindow
}

// Generate emits a crossover signal per price point from a short and a long SMA.
//
// BUY marks the short SMA moving from at-or-below the long SMA to strictly
// above it; SELL is the mirror. Equality alone never emits. Index 0 is always
// NONE. A series shorter than longWindow yields all NONE. shortWindow is
// expected to be below longWindow but that is left to the caller.
func Generate(prices []float64, shortWindow, longWindow int) ([]model.Signal, error) {
	if shortWindow <= 0 || longWindow <= 0 {
		return nil, fmt.Errorf("generate signals: short=%d long=%d: %w", shortWindow, longWindow, calculator.ErrInvalidWindow)
	}
	signals := make([]model.Signal, len(prices))
	if Insufficient(len(prices), longWindow) {
		return signals, nil
	}

	short, err := calculator.SMA(prices, shortWindow)
	if err != nil {
		return nil, err
	}
	long, err := calculator.SMA(prices, longWindow)
	if err != nil {
		return nil, err
	}

	for i := 1; i < len(prices); i++ {
		cur, prev := i, i-1
		if !short[cur].Defined || !long[cur].Defined || !short[prev].Defined || !long[prev].Defined {
			continue
		}
		s, l := short[cur].Value, long[cur].Value
		ps, pl := short[prev].Value, long[prev].Value
		switch {
		case s > l && ps <= pl:
			signals[i] = model.SignalBuy
		case s < l && ps >= pl:
			signals[i] = model.SignalSell
		}
	}
	return signals, nil
}

// Events extracts the non-NONE signals along with their index and price.
func Events(signals []model.Signal, prices []float64) []model.SignalEvent {
	var events []model.SignalEvent
	for i, s := range signals {
		if s == model.SignalNone {
			continue
		}
		ev := model.SignalEvent{Index: i, Signal: s}
		if i < len(prices) {
			ev.Price = prices[i]
		}
		events = append(events, ev)
	}
	return events
}

// latestSMAs returns the most recent short and long SMA values.
func latestSMAs(prices []float64, shortWindow, longWindow int) (short, long float64, ok bool) {
	short, err := calculator.CalculateSMA(prices, shortWindow)
	if err != nil {
		return 0, 0, false
	}
	long, err = calculator.CalculateSMA(prices, longWindow)
	if err != nil {
		return 0, 0, false
	}
	return short, long, true
}
