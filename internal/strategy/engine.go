package strategy

import (
	"fmt"

	"NexSentinel/internal/forecast"
	"NexSentinel/internal/model"
)

// Params are the window sizes used by the engine.
type Params struct {
	ShortWindow int
	LongWindow  int
	LookBack    int
}

// DefaultParams are the windows used when none are configured.
var DefaultParams = Params{ShortWindow: 10, LongWindow: 30, LookBack: 5}

// Engine runs crossover signals and the next-price forecast over one series.
type Engine struct {
	Params    Params
	Predictor *forecast.Predictor
}

// NewEngine creates an Engine. A nil predictor falls back to OLS.
func NewEngine(params Params, predictor *forecast.Predictor) *Engine {
	if predictor == nil {
		predictor = forecast.NewPredictor(nil)
	}
	return &Engine{Params: params, Predictor: predictor}
}

// Evaluate computes the full analysis for series. Short data is reported
// through Analysis.Conditions; only invalid parameters or a failing learner
// return an error.
func (e *Engine) Evaluate(series *model.PriceSeries) (*model.Analysis, error) {
	prices := series.Prices
	a := &model.Analysis{
		Symbol:      series.Symbol,
		Source:      series.Source,
		Points:      len(prices),
		LastPrice:   series.Latest(),
		ShortWindow: e.Params.ShortWindow,
		LongWindow:  e.Params.LongWindow,
		LookBack:    e.Params.LookBack,
	}

	signals, err := Generate(prices, e.Params.ShortWindow, e.Params.LongWindow)
	if err != nil {
		return nil, err
	}
	a.Signals = signals
	a.Events = Events(signals, prices)
	if Insufficient(len(prices), e.Params.LongWindow) {
		a.Conditions = append(a.Conditions, model.ConditionInsufficientSignalData)
	} else {
		a.ShortSMA, a.LongSMA, a.HasSMA = latestSMAs(prices, e.Params.ShortWindow, e.Params.LongWindow)
	}

	m, err := e.Predictor.Fit(prices, e.Params.LookBack)
	if err != nil {
		return nil, fmt.Errorf("forecast: %w", err)
	}
	if m == nil {
		a.Conditions = append(a.Conditions, model.ConditionInsufficientForecastData)
		return a, nil
	}
	a.Forecast, a.HasForecast = m.Predict(prices[len(prices)-e.Params.LookBack:])
	return a, nil
}
