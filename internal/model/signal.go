package model

// Signal is the discrete crossover event at a time step.
type Signal int

const (
	SignalNone Signal = iota
	SignalBuy
	SignalSell
)

func (s Signal) String() string {
	switch s {
	case SignalBuy:
		return "BUY"
	case SignalSell:
		return "SELL"
	default:
		return "NONE"
	}
}

// SignalEvent is a non-NONE signal located in its source series.
type SignalEvent struct {
	Index  int
	Price  float64
	Signal Signal
}

// Condition is a reported, non-fatal outcome of an analysis step.
type Condition string

const (
	ConditionInsufficientSignalData   Condition = "INSUFFICIENT_SIGNAL_DATA"
	ConditionInsufficientForecastData Condition = "INSUFFICIENT_FORECAST_DATA"
)

// Analysis is the output of one engine run over a price series.
type Analysis struct {
	RunID       string
	Symbol      string
	Source      string
	Points      int
	LastPrice   float64
	ShortWindow int
	LongWindow  int
	ShortSMA    float64
	LongSMA     float64
	HasSMA      bool
	Signals     []Signal
	Events      []SignalEvent
	LookBack    int
	Forecast    float64
	HasForecast bool
	Conditions  []Condition
}

// LastEvent returns the most recent crossover, if any.
func (a *Analysis) LastEvent() (SignalEvent, bool) {
	if len(a.Events) == 0 {
		return SignalEvent{}, false
	}
	return a.Events[len(a.Events)-1], true
}

// Has reports whether the analysis recorded the given condition.
func (a *Analysis) Has(c Condition) bool {
	for _, x := range a.Conditions {
		if x == c {
			return true
		}
	}
	return false
}
