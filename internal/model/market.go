package model

import "time"

// PriceSeries holds a chronological price sequence for one symbol.
// Index is the time step; the series is treated as immutable once built.
type PriceSeries struct {
	Symbol    string
	Prices    []float64
	Source    string // "recorded" or "simulated"
	FetchedAt time.Time
}

// Len returns the number of price points.
func (s *PriceSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Prices)
}

// Latest returns the most recent price, or 0 for an empty series.
func (s *PriceSeries) Latest() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.Prices[len(s.Prices)-1]
}

// PriceTick is a single recorded price observation.
type PriceTick struct {
	Symbol string
	Price  float64
	Time   time.Time
}

// TokenPair is a point-in-time snapshot of a trading pair from the data source.
type TokenPair struct {
	ChainID      string
	PairAddress  string
	DexID        string
	BaseSymbol   string
	QuoteSymbol  string
	PriceUSD     float64
	Change24h    float64 // percent
	VolumeH24    float64
	LiquidityUSD float64
	FetchedAt    time.Time
}

// Symbol returns the "BASE/QUOTE" label of the pair.
func (p *TokenPair) Symbol() string {
	return p.BaseSymbol + "/" + p.QuoteSymbol
}
